package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agenthands/attackmap/internal/config"
	"github.com/agenthands/attackmap/internal/driver"
	"github.com/agenthands/attackmap/internal/export"
)

// openSinks builds the configured sinks, connecting to Memgraph when enabled.
func openSinks(ctx context.Context, cfg *config.Config, runID string, logger *slog.Logger) (export.Multi, error) {
	var d driver.GraphDriver
	if cfg.Memgraph.Enabled {
		md, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Memgraph: %w", err)
		}
		d = md
	}
	sinks, err := export.NewSinks(cfg.Export, runID, d, logger)
	if err != nil {
		if d != nil {
			_ = d.Close(ctx)
		}
		return nil, err
	}
	return sinks, nil
}
