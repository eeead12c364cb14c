package export

import (
	"fmt"
	"log/slog"

	"github.com/agenthands/attackmap/internal/config"
	"github.com/agenthands/attackmap/internal/driver"
)

// NewSinks builds the sinks named by cfg. The Memgraph sink is added when d
// is not nil.
func NewSinks(cfg config.ExportConfig, runID string, d driver.GraphDriver, logger *slog.Logger) (Multi, error) {
	var sinks Multi
	for _, f := range cfg.Formats {
		var (
			s   Sink
			err error
		)
		switch f {
		case "json":
			s, err = NewJSONSink(cfg.Dir)
		case "yaml":
			s, err = NewYAMLSink(cfg.Dir)
		case "csv":
			s, err = NewCSVSink(cfg.Dir)
		default:
			err = fmt.Errorf("unknown export format %q", f)
		}
		if err != nil {
			_ = sinks.Close()
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if cfg.SQLitePath != "" {
		s, err := NewSQLiteSink(cfg.SQLitePath, runID)
		if err != nil {
			_ = sinks.Close()
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if d != nil {
		sinks = append(sinks, NewMemgraphSink(d, runID, logger))
	}
	return sinks, nil
}
