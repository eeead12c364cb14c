package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/agenthands/attackmap/internal/core/graph"
)

type ReachedNode struct {
	ID       string  `json:"id" yaml:"id"`
	Distance float64 `json:"distance" yaml:"distance"`
}

type ShortestPathResult struct {
	Source   string        `json:"source" yaml:"source"`
	Target   string        `json:"target" yaml:"target"`
	Found    bool          `json:"found" yaml:"found"`
	Distance float64       `json:"distance,omitempty" yaml:"distance,omitempty"`
	Path     []string      `json:"path,omitempty" yaml:"path,omitempty"`
	Reached  []ReachedNode `json:"reached,omitempty" yaml:"reached,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// ShortestPath runs Dijkstra from source with edge weight 1/strength over the
// undirected mapping graph. When target is unreachable the result lists every
// node reached from source and the error is ErrNoPath.
func ShortestPath(g *graph.MappingGraph, source, target string) (ShortestPathResult, error) {
	res := ShortestPathResult{Source: source, Target: target}
	fail := func(err error) (ShortestPathResult, error) {
		res.Error = err.Error()
		return res, err
	}

	if g.NodeCount() < 2 {
		return fail(ErrInsufficientNodes)
	}
	if source == "" || target == "" {
		return fail(ErrEndpointsRequired)
	}
	src, ok := g.NodeIndex(source)
	if !ok {
		return fail(fmt.Errorf("source %q: %w", source, ErrUnknownNode))
	}
	dst, ok := g.NodeIndex(target)
	if !ok {
		return fail(fmt.Errorf("target %q: %w", target, ErrUnknownNode))
	}

	wg := g.WeightedUndirected()
	tree := path.DijkstraFrom(simple.Node(int64(src)), wg)

	nodes, weight := tree.To(int64(dst))
	if nodes == nil {
		for i, n := range g.Nodes {
			if i == src {
				continue
			}
			if d := tree.WeightTo(int64(i)); !math.IsInf(d, 1) {
				res.Reached = append(res.Reached, ReachedNode{ID: n.ID, Distance: d})
			}
		}
		sort.SliceStable(res.Reached, func(i, j int) bool {
			return res.Reached[i].Distance < res.Reached[j].Distance
		})
		return fail(fmt.Errorf("%s to %s: %w", source, target, ErrNoPath))
	}

	res.Found = true
	res.Distance = weight
	for _, n := range nodes {
		res.Path = append(res.Path, g.Nodes[n.ID()].ID)
	}
	return res, nil
}
