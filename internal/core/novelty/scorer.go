// Package novelty scores how unusual each node of a relationship graph is.
//
// A node's score is the mean of three parts, each in [0, 1]:
//
//   - uniqueness: distinct outgoing relationship types over outgoing edges,
//     0 for a node without outgoing edges;
//   - isolation: 1 - |SCC(node)| / |V|;
//   - path diversity: 1 / (1 + mean hop distance to the other reachable
//     nodes), 1 when the node reaches nothing.
package novelty

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
	"gonum.org/v1/gonum/stat"

	rgraph "github.com/agenthands/attackmap/internal/core/graph"
	"github.com/agenthands/attackmap/internal/core/model"
)

const (
	TableScores  = "novelty_scores"
	TableSummary = "novelty_summary"
)

// ScoreAll scores every node, highest score first and ties by id.
func ScoreAll(g *rgraph.RelationshipGraph) model.NoveltyTable {
	n := g.NodeCount()
	scores := make(model.NoveltyTable, 0, n)
	if n == 0 {
		return scores
	}

	dg := g.Directed()
	sccSize := make([]int, n)
	for _, scc := range topo.TarjanSCC(dg) {
		for _, node := range scc {
			sccSize[node.ID()] = len(scc)
		}
	}

	for i, obj := range g.Nodes {
		uniqueness := Uniqueness(g, i)
		isolation := 1 - float64(sccSize[i])/float64(n)
		diversity := PathDiversity(dg, i)
		scores = append(scores, model.NoveltyScore{
			ID:            obj.ID,
			Name:          obj.Name,
			ObjectType:    obj.ObjectType,
			Uniqueness:    uniqueness,
			Isolation:     isolation,
			PathDiversity: diversity,
			Score:         (uniqueness + isolation + diversity) / 3,
		})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].ID < scores[j].ID
	})
	return scores
}

// Uniqueness is the share of distinct relationship types among node's
// outgoing edges.
func Uniqueness(g *rgraph.RelationshipGraph, node int) float64 {
	out := g.Outgoing(node)
	if len(out) == 0 {
		return 0
	}
	labels := make(map[string]struct{}, len(out))
	for _, e := range out {
		labels[g.Edges[e].Type] = struct{}{}
	}
	return float64(len(labels)) / float64(len(out))
}

// PathDiversity walks breadth first from node and inverts the mean hop count
// to every other node it reaches.
func PathDiversity(dg *simple.DirectedGraph, node int) float64 {
	var (
		bf      traverse.BreadthFirst
		total   int
		reached int
	)
	from := int64(node)
	bf.Walk(dg, simple.Node(from), func(n graph.Node, depth int) bool {
		if n.ID() != from {
			total += depth
			reached++
		}
		return false
	})
	if reached == 0 {
		return 1
	}
	return 1 / (1 + float64(total)/float64(reached))
}

// Summarize describes the score distribution. It returns the zero summary
// for no scores.
func Summarize(scores model.NoveltyTable) model.NoveltySummary {
	if len(scores) == 0 {
		return model.NoveltySummary{}
	}
	x := make([]float64, 0, len(scores))
	for _, s := range scores {
		x = append(x, s.Score)
	}
	sort.Float64s(x)

	summary := model.NoveltySummary{
		Count:  len(x),
		Mean:   stat.Mean(x, nil),
		Min:    floats.Min(x),
		Median: stat.Quantile(0.5, stat.Empirical, x, nil),
		Max:    floats.Max(x),
	}
	if len(x) > 1 {
		summary.StdDev = stat.StdDev(x, nil)
	}
	return summary
}
