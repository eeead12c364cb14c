//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/attackmap/internal/config"
	"github.com/agenthands/attackmap/internal/core"
	"github.com/agenthands/attackmap/internal/core/model"
	"github.com/agenthands/attackmap/internal/driver"
	"github.com/agenthands/attackmap/internal/export"
)

func connect(t *testing.T) *driver.MemgraphDriver {
	t.Helper()
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}
	d, err := driver.NewMemgraphDriver(context.Background(), uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"), nil)
	require.NoError(t, err)
	return d
}

func count(t *testing.T, d driver.GraphDriver, query string, params map[string]interface{}) int64 {
	t.Helper()
	res, err := d.ExecuteQuery(context.Background(), query, params)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	v, ok := res.Records[0].Get("n")
	require.True(t, ok)
	return v.(int64)
}

func TestMappingExport(t *testing.T) {
	d := connect(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	records := []model.MappingRecord{
		{CapabilityID: "cap-a-" + suffix, MappingType: "Strong", AttackObjectID: "T1-" + suffix, TechnologyDomain: "enterprise", CreationDate: "01/02/2023"},
		{CapabilityID: "cap-b-" + suffix, MappingType: "Weak", AttackObjectID: "T1-" + suffix, TechnologyDomain: "enterprise", CreationDate: "03/02/2023"},
	}

	engine := core.NewEngine(config.Default(), nil)
	report, err := engine.AnalyzeMappings(records)
	require.NoError(t, err)

	sink := export.NewMemgraphSink(d, report.RunID, nil)
	defer sink.Close()
	require.NoError(t, engine.Export(ctx, sink, report.RunID, report.Tables()))

	n := count(t, d, "MATCH (:Capability)-[m:MAPS_TO {run_id: $run_id}]->(:Technique) RETURN count(m) AS n",
		map[string]interface{}{"run_id": report.RunID})
	assert.Equal(t, int64(2), n)

	n = count(t, d, "MATCH (r:Run {id: $run_id}) RETURN count(r) AS n", map[string]interface{}{"run_id": report.RunID})
	assert.Equal(t, int64(1), n)
}

func TestSubgraphExport(t *testing.T) {
	d := connect(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	a, b, c := "malware--a-"+suffix, "attack-pattern--b-"+suffix, "attack-pattern--c-"+suffix
	bundle := model.TaxonomyBundle{
		Objects: []model.TaxonomyObject{
			{ID: a, Name: "A", ObjectType: "malware"},
			{ID: b, Name: "B", ObjectType: "attack-pattern"},
			{ID: c, Name: "C", ObjectType: "attack-pattern"},
		},
		Relationships: []model.Relationship{
			{SourceRef: a, TargetRef: b, RelationshipType: "uses"},
			{SourceRef: a, TargetRef: c, RelationshipType: "uses"},
		},
	}

	cfg := config.Default()
	cfg.Sampler.Threshold = 0
	cfg.Sampler.SampleSize = 3
	engine := core.NewEngine(cfg, nil)
	report, err := engine.ExploreNovelty(bundle)
	require.NoError(t, err)

	sink := export.NewMemgraphSink(d, report.RunID, nil)
	defer sink.Close()
	require.NoError(t, engine.Export(ctx, sink, report.RunID, report.Tables()))

	n := count(t, d, "MATCH ()-[r:RELATES {run_id: $run_id}]->() RETURN count(r) AS n",
		map[string]interface{}{"run_id": report.RunID})
	assert.Equal(t, int64(2), n)

	n = count(t, d, "MATCH (o:TaxonomyObject {seed_of: $run_id}) RETURN count(o) AS n",
		map[string]interface{}{"run_id": report.RunID})
	assert.Equal(t, int64(len(report.Sample.Seeds)), n)
}
