package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/agenthands/attackmap/internal/config"
	"github.com/agenthands/attackmap/internal/core/analysis"
	"github.com/agenthands/attackmap/internal/core/community"
	"github.com/agenthands/attackmap/internal/core/graph"
	"github.com/agenthands/attackmap/internal/core/impact"
	"github.com/agenthands/attackmap/internal/core/model"
	"github.com/agenthands/attackmap/internal/core/novelty"
	"github.com/agenthands/attackmap/internal/core/sampler"
	"github.com/agenthands/attackmap/internal/export"
)

// Engine runs one batch analysis at a time over in-memory graphs.
type Engine struct {
	Config   *config.Config
	Logger   *slog.Logger
	NewRunID func() string
}

func NewEngine(cfg *config.Config, logger *slog.Logger) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		Config:   cfg,
		Logger:   logger,
		NewRunID: func() string { return uuid.New().String() },
	}
}

type MappingReport struct {
	RunID    string
	Graph    *graph.MappingGraph
	Results  *analysis.Results
	Combined model.RankedTable
}

// Tables returns the analysis tables followed by combined_analysis.
func (r *MappingReport) Tables() []model.Table {
	return append(r.Results.Tables(), model.Table{Name: impact.TableCombined, Data: r.Combined})
}

func (r *MappingReport) Table(name string) (model.Table, bool) {
	for _, t := range r.Tables() {
		if t.Name == name {
			return t, true
		}
	}
	return model.Table{}, false
}

// AnalyzeMappings builds the mapping graph and computes every analysis and
// the ranked table. Metric failures are recorded in the results; the error
// return is reserved for configuration problems.
func (e *Engine) AnalyzeMappings(records []model.MappingRecord) (*MappingReport, error) {
	table, err := e.Config.StrengthTable()
	if err != nil {
		return nil, err
	}
	runID := e.NewRunID()
	log := e.Logger.With("run_id", runID)

	g := graph.BuildMappingGraph(records, table)
	log.Info("built mapping graph", "records", len(records), "nodes", g.NodeCount(), "edges", g.EdgeCount())

	suite := &analysis.Suite{
		PathSource: e.Config.Analysis.PathSource,
		PathTarget: e.Config.Analysis.PathTarget,
	}
	if e.Config.Analysis.DetectCommunities {
		suite.Communities = &community.LabelPropagationDetector{MaxIterations: e.Config.Analysis.CommunityIterations}
	}
	results := suite.Run(g, records)
	for name, err := range results.Errors {
		log.Warn("analysis incomplete", "table", name, "error", err)
	}

	combined := impact.Score(records, results.NodeDegree, table)
	log.Info("scored mappings", "rows", len(combined))

	return &MappingReport{RunID: runID, Graph: g, Results: results, Combined: combined}, nil
}

type NoveltyReport struct {
	RunID   string
	Graph   *graph.RelationshipGraph
	Stats   graph.BuildStats
	Scores  model.NoveltyTable
	Summary model.NoveltySummary
	Sample  *sampler.Result
}

func (r *NoveltyReport) Tables() []model.Table {
	return []model.Table{
		{Name: novelty.TableScores, Data: r.Scores},
		{Name: novelty.TableSummary, Data: r.Summary},
		{Name: sampler.TableSubgraph, Data: r.Sample.Document()},
	}
}

// ExploreNovelty scores every taxonomy object and extracts the neighborhoods
// of a seeded sample of the most novel ones.
func (e *Engine) ExploreNovelty(bundle model.TaxonomyBundle) (*NoveltyReport, error) {
	runID := e.NewRunID()
	log := e.Logger.With("run_id", runID)

	g, stats := graph.BuildRelationshipGraph(bundle)
	if stats.AutoCreated > 0 {
		log.Warn("created placeholder nodes for unknown relationship endpoints", "count", stats.AutoCreated)
	}
	log.Info("built relationship graph", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	scores := novelty.ScoreAll(g)
	s := &sampler.Sampler{
		Threshold:  e.Config.Sampler.Threshold,
		SampleSize: e.Config.Sampler.SampleSize,
		MaxDepth:   e.Config.Sampler.MaxDepth,
		Seed:       e.Config.Sampler.Seed,
	}
	res, err := s.Run(g, scores)
	if err != nil {
		return nil, fmt.Errorf("failed to sample subgraph: %w", err)
	}
	log.Info("extracted subgraph",
		"candidates", res.Candidates,
		"seeds", len(res.Seeds),
		"nodes", res.Subgraph.NodeCount(),
		"edges", res.Subgraph.EdgeCount())

	return &NoveltyReport{
		RunID:   runID,
		Graph:   g,
		Stats:   stats,
		Scores:  scores,
		Summary: novelty.Summarize(scores),
		Sample:  res,
	}, nil
}

// Export writes tables to sink. In-memory results are unaffected by a failure.
func (e *Engine) Export(ctx context.Context, sink export.Sink, runID string, tables []model.Table) error {
	if err := export.All(ctx, sink, tables); err != nil {
		e.Logger.Error("export failed", "run_id", runID, "error", err)
		return err
	}
	e.Logger.Info("exported results", "run_id", runID, "tables", len(tables))
	return nil
}
