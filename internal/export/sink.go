// Package export writes named result tables to files, SQLite and Memgraph.
package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenthands/attackmap/internal/core/model"
)

// Sink consumes named result tables. Sinks ignore tables they have no form
// for.
type Sink interface {
	Name() string
	Export(ctx context.Context, table model.Table) error
	Close() error
}

// Error reports a sink that failed to write a table.
type Error struct {
	Sink  string
	Table string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to export %s to %s: %v", e.Table, e.Sink, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Multi fans tables out to several sinks in order.
type Multi []Sink

func (m Multi) Name() string { return "multi" }

// Export stops at the first failing sink.
func (m Multi) Export(ctx context.Context, table model.Table) error {
	for _, s := range m {
		if err := ctx.Err(); err != nil {
			return &Error{Sink: s.Name(), Table: table.Name, Err: err}
		}
		if err := s.Export(ctx, table); err != nil {
			var ee *Error
			if errors.As(err, &ee) {
				return err
			}
			return &Error{Sink: s.Name(), Table: table.Name, Err: err}
		}
	}
	return nil
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// All exports every table to sink.
func All(ctx context.Context, sink Sink, tables []model.Table) error {
	for _, t := range tables {
		if err := sink.Export(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
