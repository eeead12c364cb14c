package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/attackmap/internal/config"
)

var (
	configPath string
	logLevel   string

	// RootCmd is the root command for attackmap
	RootCmd = &cobra.Command{
		Use:   "attackmap",
		Short: "Graph analysis of VERIS to MITRE ATT&CK mappings",
		Long: `attackmap builds a graph from capability-to-technique mapping records,
runs a suite of structural analyses over it, and ranks mappings by impact.
It can also score the objects of an ATT&CK bundle for novelty and extract
the neighborhoods of a seeded sample of the most novel ones.

Examples:
  # Analyze a mapping table and write JSON + CSV results
  attackmap analyze --input veris-1.3.7_attack-12.1-enterprise.csv

  # Score an ATT&CK bundle and sample a subgraph
  attackmap novelty --input enterprise-attack.json --seed 7

  # Serve results over HTTP
  attackmap serve --mappings veris.csv --bundle enterprise-attack.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.toml", "path to TOML configuration")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// loadConfig reads the configuration file, applies environment overrides and
// the --log-level flag, and validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if logLevel != "" {
		cfg.LogLevel = strings.ToLower(logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func splitFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, strings.ToLower(f))
		}
	}
	return formats
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		switch f {
		case "json", "yaml", "csv":
		default:
			return fmt.Errorf("invalid format %q (must be json, yaml or csv)", f)
		}
	}
	return nil
}
