package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/agenthands/attackmap/internal/config"
	"github.com/agenthands/attackmap/internal/core/model"
	"github.com/agenthands/attackmap/internal/driver"
)

func rankedTable() model.RankedTable {
	return model.RankedTable{
		{PrimaryID: "V1", SecondaryID: "T1", MappingType: "Strong", Strength: 1.0, Frequency: 3, ImpactScore: 0.3, TechnologyDomain: "enterprise", CreationDate: "01/01/2024"},
		{PrimaryID: "V2", SecondaryID: "T1", MappingType: "Moderate", Strength: 0.7, Frequency: 3, ImpactScore: 0.21, TechnologyDomain: "enterprise", CreationDate: "02/01/2024"},
	}
}

func TestJSONSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink, err := NewJSONSink(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sink.Export(ctx, model.Table{Name: "mapping_type_analysis", Data: map[string]int{"Strong": 2}}))
	require.NoError(t, sink.Export(ctx, model.Table{Name: "combined_analysis", Data: rankedTable()}))

	data, err := os.ReadFile(filepath.Join(dir, "mapping_type_analysis.json"))
	require.NoError(t, err)
	var dist map[string]int
	require.NoError(t, json.Unmarshal(data, &dist))
	assert.Equal(t, 2, dist["Strong"])

	data, err = os.ReadFile(filepath.Join(dir, "combined_analysis.json"))
	require.NoError(t, err)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "V1", rows[0]["veris_id"])
	assert.Equal(t, "T1", rows[0]["mitre_id"])
}

func TestYAMLSink(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewYAMLSink(dir)
	require.NoError(t, err)

	require.NoError(t, sink.Export(context.Background(), model.Table{Name: "combined_analysis", Data: rankedTable()}))

	data, err := os.ReadFile(filepath.Join(dir, "combined_analysis.yaml"))
	require.NoError(t, err)
	var rows []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "V2", rows[1]["veris_id"])
	assert.Equal(t, 0.7, rows[1]["strength"])
}

func TestCSVSink(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewCSVSink(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sink.Export(ctx, model.Table{Name: "combined_analysis", Data: rankedTable()}))
	require.NoError(t, sink.Export(ctx, model.Table{Name: "basic_stats", Data: map[string]int{"total_nodes": 3}}))

	f, err := os.Open(filepath.Join(dir, "combined_analysis.csv"))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, model.RankedTable{}.Header(), records[0])
	assert.Equal(t, []string{"V1", "T1", "Strong", "1", "3", "0.3", "enterprise", "01/01/2024"}, records[1])

	_, err = os.Stat(filepath.Join(dir, "basic_stats.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestSQLiteSink(t *testing.T) {
	sink, err := NewSQLiteSink(":memory:", "run-1")
	require.NoError(t, err)
	defer sink.Close()

	ctx := context.Background()
	require.NoError(t, sink.Export(ctx, model.Table{Name: "basic_stats", Data: map[string]int{"total_nodes": 3}}))
	require.NoError(t, sink.Export(ctx, model.Table{Name: "combined_analysis", Data: rankedTable()}))
	require.NoError(t, sink.Export(ctx, model.Table{Name: "novelty_scores", Data: model.NoveltyTable{
		{ID: "attack-pattern--1", Name: "Phishing", ObjectType: "attack-pattern", Uniqueness: 1, Isolation: 0.5, PathDiversity: 0.5, Score: 2.0 / 3},
	}}))
	// Exporting again replaces the stored rows.
	require.NoError(t, sink.Export(ctx, model.Table{Name: "combined_analysis", Data: rankedTable()}))

	names, err := sink.TableNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"basic_stats", "combined_analysis", "novelty_scores"}, names)

	top, err := sink.TopImpact(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, rankedTable(), top)

	var count int
	require.NoError(t, sink.DB().QueryRow("SELECT COUNT(*) FROM novelty_scores WHERE run_id = ?", "run-1").Scan(&count))
	assert.Equal(t, 1, count)

	var payload string
	require.NoError(t, sink.DB().QueryRow("SELECT payload FROM analyses WHERE name = 'basic_stats'").Scan(&payload))
	assert.JSONEq(t, `{"total_nodes": 3}`, payload)
}

func TestMemgraphSink(t *testing.T) {
	md := &MockDriver{}
	sink := NewMemgraphSink(md, "run-1", nil)
	ctx := context.Background()

	require.NoError(t, sink.Export(ctx, model.Table{Name: "basic_stats", Data: map[string]int{"total_nodes": 3}}))
	assert.Empty(t, md.Queries)

	require.NoError(t, sink.Export(ctx, model.Table{Name: "combined_analysis", Data: rankedTable()}))
	require.Len(t, md.Queries, 2)
	assert.Equal(t, driver.SaveRunQuery, md.Queries[0])
	assert.Equal(t, driver.SaveMappingsQuery, md.Queries[1])
	assert.Equal(t, "run-1", md.QueryParams[1]["run_id"])
	rows := md.QueryParams[1]["rows"].([]map[string]interface{})
	require.Len(t, rows, 2)
	assert.Equal(t, "V1", rows[0]["veris_id"])
	assert.Equal(t, int64(3), rows[0]["frequency"])

	doc := model.SubgraphDocument{
		Seeds: []string{"a"},
		Nodes: []model.TaxonomyObject{{ID: "a", Name: "A", ObjectType: "malware"}, {ID: "b", Name: "B", ObjectType: "attack-pattern"}},
		Edges: []model.SubgraphEdgeDocument{{SourceRef: "a", TargetRef: "b", RelationshipType: "uses"}},
	}
	require.NoError(t, sink.Export(ctx, model.Table{Name: "novel_subgraph", Data: doc}))
	require.Len(t, md.Queries, 5)
	assert.Equal(t, driver.SaveTaxonomyObjectsQuery, md.Queries[2])
	assert.Equal(t, driver.SaveRelationshipsQuery, md.Queries[3])
	assert.Equal(t, driver.MarkSeedsQuery, md.Queries[4])
	assert.Equal(t, 1, md.IndicesBuilt)

	require.NoError(t, sink.Close())
	assert.True(t, md.Closed)
}

func TestMemgraphSink_Error(t *testing.T) {
	md := &MockDriver{Err: errors.New("connection refused")}
	sink := NewMemgraphSink(md, "run-1", nil)

	err := sink.Export(context.Background(), model.Table{Name: "combined_analysis", Data: rankedTable()})

	var ee *Error
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "memgraph", ee.Sink)
	assert.Equal(t, "combined_analysis", ee.Table)
}

func TestMulti(t *testing.T) {
	dir := t.TempDir()
	jsonSink, err := NewJSONSink(dir)
	require.NoError(t, err)
	boom := errors.New("disk full")

	m := Multi{jsonSink, failingSink{err: boom}}
	err = All(context.Background(), m, []model.Table{{Name: "basic_stats", Data: map[string]int{}}})

	var ee *Error
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "failing", ee.Sink)
	assert.Equal(t, "basic_stats", ee.Table)
	assert.ErrorIs(t, err, boom)
	// Sinks before the failure still wrote.
	assert.FileExists(t, filepath.Join(dir, "basic_stats.json"))
}

func TestNewSinks(t *testing.T) {
	cfg := config.ExportConfig{
		Dir:        t.TempDir(),
		Formats:    []string{"json", "yaml", "csv"},
		SQLitePath: ":memory:",
	}

	sinks, err := NewSinks(cfg, "run-1", &MockDriver{}, nil)
	require.NoError(t, err)
	defer sinks.Close()

	var names []string
	for _, s := range sinks {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"json", "yaml", "csv", "sqlite", "memgraph"}, names)

	_, err = NewSinks(config.ExportConfig{Dir: t.TempDir(), Formats: []string{"parquet"}}, "run-1", nil, nil)
	assert.Error(t, err)
}
