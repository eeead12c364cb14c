package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientNodes is reported by ShortestPath on graphs with fewer than two nodes.
	ErrInsufficientNodes = errors.New("graph has fewer than two nodes")

	// ErrEndpointsRequired is reported by ShortestPath when source or target is empty.
	ErrEndpointsRequired = errors.New("shortest path needs both source and target")

	// ErrUnknownNode is reported by ShortestPath when an endpoint id is not in the graph.
	ErrUnknownNode = errors.New("node not found")

	// ErrNoPath is reported by ShortestPath when the target is unreachable. The
	// result still lists every node reached from the source.
	ErrNoPath = errors.New("no path between nodes")
)

// DateParseError reports a creation date that is not day/month/year.
type DateParseError struct {
	Row   int
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("row %d: cannot parse date %q: %v", e.Row, e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }
