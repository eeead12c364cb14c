package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/agenthands/attackmap/internal/core/model"
)

// JSONSink writes each table to <dir>/<name>.json.
type JSONSink struct {
	Dir string
}

func NewJSONSink(dir string) (*JSONSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &JSONSink{Dir: dir}, nil
}

func (s *JSONSink) Name() string { return "json" }

func (s *JSONSink) Export(_ context.Context, table model.Table) error {
	data, err := json.MarshalIndent(table.Data, "", "  ")
	if err != nil {
		return &Error{Sink: s.Name(), Table: table.Name, Err: err}
	}
	return writeFile(s.Name(), table.Name, filepath.Join(s.Dir, table.Name+".json"), append(data, '\n'))
}

func (s *JSONSink) Close() error { return nil }

// YAMLSink writes each table to <dir>/<name>.yaml.
type YAMLSink struct {
	Dir string
}

func NewYAMLSink(dir string) (*YAMLSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &YAMLSink{Dir: dir}, nil
}

func (s *YAMLSink) Name() string { return "yaml" }

func (s *YAMLSink) Export(_ context.Context, table model.Table) error {
	data, err := yaml.Marshal(table.Data)
	if err != nil {
		return &Error{Sink: s.Name(), Table: table.Name, Err: err}
	}
	return writeFile(s.Name(), table.Name, filepath.Join(s.Dir, table.Name+".yaml"), data)
}

func (s *YAMLSink) Close() error { return nil }

// CSVSink writes tables with a row form to <dir>/<name>.csv and skips the rest.
type CSVSink struct {
	Dir string
}

func NewCSVSink(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &CSVSink{Dir: dir}, nil
}

func (s *CSVSink) Name() string { return "csv" }

func (s *CSVSink) Export(_ context.Context, table model.Table) error {
	tab, ok := table.Data.(model.Tabular)
	if !ok {
		return nil
	}
	f, err := os.Create(filepath.Join(s.Dir, table.Name+".csv"))
	if err != nil {
		return &Error{Sink: s.Name(), Table: table.Name, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tab.Header()); err != nil {
		return &Error{Sink: s.Name(), Table: table.Name, Err: err}
	}
	if err := w.WriteAll(tab.Rows()); err != nil {
		return &Error{Sink: s.Name(), Table: table.Name, Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Sink: s.Name(), Table: table.Name, Err: err}
	}
	return nil
}

func (s *CSVSink) Close() error { return nil }

func writeFile(sink, table, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &Error{Sink: sink, Table: table, Err: err}
	}
	return nil
}
