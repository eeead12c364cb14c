package app

import (
	"github.com/spf13/cobra"

	"github.com/agenthands/attackmap/internal/core"
	"github.com/agenthands/attackmap/internal/ingest"
	"github.com/agenthands/attackmap/internal/server"
)

var (
	serveMappings string
	serveBundle   string
	servePort     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve analysis results over HTTP",
	Long: `Run the mapping analysis (and, with --bundle, the novelty run) once at
startup and serve the results read-only:

  GET  /healthz
  GET  /analyses
  GET  /analyses/:name
  POST /shortest-path     {"source": "...", "target": "..."}
  GET  /novelty/scores
  GET  /novelty/subgraph`,
	Example: `  attackmap serve --mappings mappings.csv --bundle enterprise-attack.json --port 8080`,
	RunE:    runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveMappings, "mappings", "", "mapping CSV file (required)")
	serveCmd.Flags().StringVar(&serveBundle, "bundle", "", "taxonomy bundle JSON file")
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides config and ATTACKMAP_PORT)")
	_ = serveCmd.MarkFlagRequired("mappings")

	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Server.Port = servePort
	}
	logger := newLogger(cfg.LogLevel)
	engine := core.NewEngine(cfg, logger)

	records, err := ingest.LoadMappings(serveMappings)
	if err != nil {
		return err
	}
	mappings, err := engine.AnalyzeMappings(records)
	if err != nil {
		return err
	}

	var novelty *core.NoveltyReport
	if serveBundle != "" {
		bundle, err := ingest.LoadBundle(serveBundle)
		if err != nil {
			return err
		}
		if novelty, err = engine.ExploreNovelty(bundle); err != nil {
			return err
		}
	}

	r := server.NewServer(mappings, novelty, logger).SetupRouter()
	logger.Info("starting server", "port", cfg.Server.Port)
	return r.Run(":" + cfg.Server.Port)
}
