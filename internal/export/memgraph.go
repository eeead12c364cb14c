package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agenthands/attackmap/internal/core/model"
	"github.com/agenthands/attackmap/internal/driver"
)

// MemgraphSink loads the ranked mappings and extracted subgraphs into a
// graph database. Other tables are skipped.
type MemgraphSink struct {
	Driver driver.GraphDriver
	RunID  string
	Logger *slog.Logger

	prepared bool
}

func NewMemgraphSink(d driver.GraphDriver, runID string, logger *slog.Logger) *MemgraphSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemgraphSink{Driver: d, RunID: runID, Logger: logger}
}

func (s *MemgraphSink) Name() string { return "memgraph" }

func (s *MemgraphSink) Export(ctx context.Context, table model.Table) error {
	var err error
	switch data := table.Data.(type) {
	case model.RankedTable:
		err = s.saveMappings(ctx, data)
	case model.SubgraphDocument:
		err = s.saveSubgraph(ctx, data)
	default:
		return nil
	}
	if err != nil {
		return &Error{Sink: s.Name(), Table: table.Name, Err: err}
	}
	s.Logger.Debug("exported table", "sink", s.Name(), "table", table.Name, "run_id", s.RunID)
	return nil
}

func (s *MemgraphSink) prepare(ctx context.Context) error {
	if s.prepared {
		return nil
	}
	if err := s.Driver.BuildIndices(ctx); err != nil {
		return fmt.Errorf("failed to build indices: %w", err)
	}
	params := map[string]interface{}{
		"run_id":     s.RunID,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveRunQuery, params); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	s.prepared = true
	return nil
}

func (s *MemgraphSink) saveMappings(ctx context.Context, rows model.RankedTable) error {
	if err := s.prepare(ctx); err != nil {
		return err
	}
	batch := make([]map[string]interface{}, 0, len(rows))
	for _, r := range rows {
		batch = append(batch, map[string]interface{}{
			"veris_id":          r.PrimaryID,
			"mitre_id":          r.SecondaryID,
			"mapping_type":      r.MappingType,
			"strength":          r.Strength,
			"frequency":         int64(r.Frequency),
			"impact_score":      r.ImpactScore,
			"technology_domain": r.TechnologyDomain,
			"creation_date":     r.CreationDate,
		})
	}
	params := map[string]interface{}{
		"run_id": s.RunID,
		"rows":   batch,
	}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveMappingsQuery, params); err != nil {
		return fmt.Errorf("failed to save mappings: %w", err)
	}
	return nil
}

func (s *MemgraphSink) saveSubgraph(ctx context.Context, doc model.SubgraphDocument) error {
	if err := s.prepare(ctx); err != nil {
		return err
	}

	nodes := make([]map[string]interface{}, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nodes = append(nodes, map[string]interface{}{
			"id":          n.ID,
			"name":        n.Name,
			"object_type": n.ObjectType,
		})
	}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveTaxonomyObjectsQuery, map[string]interface{}{"nodes": nodes}); err != nil {
		return fmt.Errorf("failed to save nodes: %w", err)
	}

	edges := make([]map[string]interface{}, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		edges = append(edges, map[string]interface{}{
			"source_ref":        e.SourceRef,
			"target_ref":        e.TargetRef,
			"relationship_type": e.RelationshipType,
		})
	}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveRelationshipsQuery, map[string]interface{}{
		"run_id": s.RunID,
		"edges":  edges,
	}); err != nil {
		return fmt.Errorf("failed to save relationships: %w", err)
	}

	seeds := make([]interface{}, 0, len(doc.Seeds))
	for _, id := range doc.Seeds {
		seeds = append(seeds, id)
	}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.MarkSeedsQuery, map[string]interface{}{
		"run_id": s.RunID,
		"seeds":  seeds,
	}); err != nil {
		return fmt.Errorf("failed to mark seeds: %w", err)
	}
	return nil
}

func (s *MemgraphSink) Close() error {
	return s.Driver.Close(context.Background())
}
