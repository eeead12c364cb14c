package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is wrapped when a mapping file has no header row.
	ErrEmptyInput = errors.New("input is empty")

	// ErrMissingColumn is wrapped when a required CSV column is absent.
	ErrMissingColumn = errors.New("required column missing")
)

// Error reports input that could not be read or decoded. Nothing is built
// from an input that produced an Error.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to ingest %s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
