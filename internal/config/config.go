package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/agenthands/attackmap/internal/core/graph"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

type StrengthConfig struct {
	Default float64            `toml:"default"`
	Labels  map[string]float64 `toml:"labels"`
}

type AnalysisConfig struct {
	PathSource          string `toml:"path_source"`
	PathTarget          string `toml:"path_target"`
	DetectCommunities   bool   `toml:"detect_communities"`
	CommunityIterations int    `toml:"community_iterations"`
}

type SamplerConfig struct {
	Threshold  float64 `toml:"threshold"`
	SampleSize int     `toml:"sample_size"`
	MaxDepth   int     `toml:"max_depth"`
	Seed       int64   `toml:"seed"`
}

type ExportConfig struct {
	Dir        string   `toml:"dir"`
	Formats    []string `toml:"formats"`
	SQLitePath string   `toml:"sqlite_path"`
}

type MemgraphConfig struct {
	Enabled  bool   `toml:"enabled"`
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type Config struct {
	LogLevel string         `toml:"log_level"`
	Strength StrengthConfig `toml:"strength"`
	Analysis AnalysisConfig `toml:"analysis"`
	Sampler  SamplerConfig  `toml:"sampler"`
	Export   ExportConfig   `toml:"export"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Server   ServerConfig   `toml:"server"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Strength: StrengthConfig{
			Default: graph.DefaultStrength,
			Labels: map[string]float64{
				"Strong":   1.0,
				"Moderate": 0.7,
				"Weak":     0.4,
			},
		},
		Analysis: AnalysisConfig{CommunityIterations: 20},
		Sampler: SamplerConfig{
			Threshold:  0.7,
			SampleSize: 5,
			MaxDepth:   2,
			Seed:       1,
		},
		Export: ExportConfig{
			Dir:     "analysed/data",
			Formats: []string{"json", "csv"},
		},
		Memgraph: MemgraphConfig{URI: "bolt://localhost:7687"},
		Server:   ServerConfig{Port: "8080"},
	}
}

// Load reads the TOML file at path over the defaults. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		c.Memgraph.URI = v
		c.Memgraph.Enabled = true
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		c.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		c.Memgraph.Password = v
	}
	if v := os.Getenv("ATTACKMAP_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("ATTACKMAP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// StrengthTable builds the configured strength table.
func (c *Config) StrengthTable() (graph.StrengthTable, error) {
	t, err := graph.NewStrengthTable(c.Strength.Labels, c.Strength.Default)
	if err != nil {
		return graph.StrengthTable{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return t, nil
}

var knownFormats = map[string]bool{"json": true, "yaml": true, "csv": true}

var knownLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func (c *Config) Validate() error {
	if _, err := c.StrengthTable(); err != nil {
		return err
	}
	if c.Sampler.MaxDepth < 0 {
		return fmt.Errorf("%w: sampler.max_depth must not be negative", ErrInvalid)
	}
	if c.Sampler.SampleSize < 0 {
		return fmt.Errorf("%w: sampler.sample_size must not be negative", ErrInvalid)
	}
	if c.Analysis.CommunityIterations < 0 {
		return fmt.Errorf("%w: analysis.community_iterations must not be negative", ErrInvalid)
	}
	for _, f := range c.Export.Formats {
		if !knownFormats[f] {
			return fmt.Errorf("%w: unknown export format %q", ErrInvalid, f)
		}
	}
	if !knownLevels[c.LogLevel] {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}
