package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/attackmap/internal/core"
	"github.com/agenthands/attackmap/internal/ingest"
	"github.com/agenthands/attackmap/internal/output"
)

var (
	analyzeInput       string
	analyzeSource      string
	analyzeTarget      string
	analyzeOut         string
	analyzeFormats     string
	analyzeSQLite      string
	analyzeTop         int
	analyzeCommunities bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a capability-to-technique mapping table",
	Long: `Build the mapping graph from a CSV table and compute basic statistics,
mapping type, node type and technology domain distributions, node degree
ranking, connected components, the weighted shortest path between --source
and --target, edge strength ranking, the creation date range, and the
impact-ranked combined table.

Edge strength comes from the mapping type (Strong 1.0, Moderate 0.7, Weak 0.4,
anything else 0.1 unless configured otherwise). Shortest paths use 1/strength
as the edge weight.`,
	Example: `  # Write JSON and CSV results to analysed/data
  attackmap analyze --input mappings.csv

  # Shortest path between a capability and a technique, YAML output
  attackmap analyze --input mappings.csv --source "action.hacking.variety.Brute force" --target T1110 --format yaml

  # Also keep the run in SQLite
  attackmap analyze --input mappings.csv --sqlite runs.db`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "mapping CSV file (required)")
	analyzeCmd.Flags().StringVar(&analyzeSource, "source", "", "shortest path source node id")
	analyzeCmd.Flags().StringVar(&analyzeTarget, "target", "", "shortest path target node id")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "output directory (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeFormats, "format", "", "comma-separated output formats: json, yaml, csv (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeSQLite, "sqlite", "", "SQLite database to store the run in")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 10, "number of ranked mappings to print")
	analyzeCmd.Flags().BoolVar(&analyzeCommunities, "communities", false, "also detect communities")
	_ = analyzeCmd.MarkFlagRequired("input")

	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeTop < 0 {
		return fmt.Errorf("invalid top: %d (must not be negative)", analyzeTop)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if analyzeSource != "" {
		cfg.Analysis.PathSource = analyzeSource
	}
	if analyzeTarget != "" {
		cfg.Analysis.PathTarget = analyzeTarget
	}
	if analyzeOut != "" {
		cfg.Export.Dir = analyzeOut
	}
	if analyzeFormats != "" {
		cfg.Export.Formats = splitFormats(analyzeFormats)
		if err := validateFormats(cfg.Export.Formats); err != nil {
			return err
		}
	}
	if analyzeSQLite != "" {
		cfg.Export.SQLitePath = analyzeSQLite
	}
	if analyzeCommunities {
		cfg.Analysis.DetectCommunities = true
	}
	logger := newLogger(cfg.LogLevel)

	records, err := ingest.LoadMappings(analyzeInput)
	if err != nil {
		return err
	}

	engine := core.NewEngine(cfg, logger)
	report, err := engine.AnalyzeMappings(records)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	sinks, err := openSinks(ctx, cfg, report.RunID, logger)
	if err != nil {
		return err
	}
	defer sinks.Close()

	if err := engine.Export(ctx, sinks, report.RunID, report.Tables()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, output.RenderBasicStats(report.RunID, report.Results.BasicStats, report.Results.Errors))
	fmt.Fprintln(out)
	fmt.Fprint(out, output.RenderRankedTable(report.Combined, analyzeTop))
	return nil
}
