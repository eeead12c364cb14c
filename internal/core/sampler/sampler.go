package sampler

import (
	"errors"
	"math/rand"

	"github.com/agenthands/attackmap/internal/core/graph"
	"github.com/agenthands/attackmap/internal/core/model"
)

const TableSubgraph = "novel_subgraph"

// ErrNegativeDepth is returned by Extract for a max depth below zero.
var ErrNegativeDepth = errors.New("max depth must not be negative")

// Sampler selects high-novelty seeds and extracts their neighborhoods.
type Sampler struct {
	Threshold  float64
	SampleSize int
	MaxDepth   int
	Seed       int64
}

type Result struct {
	Candidates int
	Seeds      []string
	Subgraph   *graph.RelationshipGraph
}

// Document is the exported form of the result.
func (r *Result) Document() model.SubgraphDocument {
	return r.Subgraph.Document(r.Seeds)
}

// Run filters scores by threshold, samples seeds, and extracts the union of
// their neighborhoods from g.
func (s *Sampler) Run(g *graph.RelationshipGraph, scores model.NoveltyTable) (*Result, error) {
	if s.MaxDepth < 0 {
		return nil, ErrNegativeDepth
	}
	candidates := Filter(scores, s.Threshold)
	seeds := Sample(candidates, s.SampleSize, s.Seed)

	sub, err := Extract(g, seeds, s.MaxDepth)
	if err != nil {
		return nil, err
	}
	return &Result{Candidates: len(candidates), Seeds: seeds, Subgraph: sub}, nil
}

// Filter keeps the ids of nodes scoring strictly above threshold, in score order.
func Filter(scores model.NoveltyTable, threshold float64) []string {
	var ids []string
	for _, s := range scores {
		if s.Score > threshold {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// Sample draws up to n ids uniformly without replacement. The same seed
// always yields the same sample.
func Sample(ids []string, n int, seed int64) []string {
	if n <= 0 || len(ids) == 0 {
		return nil
	}
	if n > len(ids) {
		n = len(ids)
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(ids))
	out := make([]string, n)
	for i := range out {
		out[i] = ids[perm[i]]
	}
	return out
}

// Extract walks outgoing edges breadth first from each seed, expanding nodes
// closer than maxDepth hops. Depth 0 yields only the seeds. Nodes appear once
// and edges once per (source, target, relationship type). Seeds missing from
// g are skipped.
func Extract(g *graph.RelationshipGraph, seeds []string, maxDepth int) (*graph.RelationshipGraph, error) {
	if maxDepth < 0 {
		return nil, ErrNegativeDepth
	}

	type edgeKey struct {
		from, to int
		label    string
	}
	sub := graph.NewRelationshipGraph()
	seenEdges := make(map[edgeKey]struct{})

	for _, id := range seeds {
		start, ok := g.NodeIndex(id)
		if !ok {
			continue
		}
		sub.AddNode(g.Nodes[start])

		depth := map[int]int{start: 0}
		queue := []int{start}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			if depth[u] >= maxDepth {
				continue
			}
			for _, ei := range g.Outgoing(u) {
				e := g.Edges[ei]
				from := sub.AddNode(g.Nodes[e.From])
				to := sub.AddNode(g.Nodes[e.To])
				key := edgeKey{from: from, to: to, label: e.Type}
				if _, dup := seenEdges[key]; !dup {
					seenEdges[key] = struct{}{}
					sub.AddEdge(from, to, e.Type)
				}
				if _, visited := depth[e.To]; !visited {
					depth[e.To] = depth[u] + 1
					queue = append(queue, e.To)
				}
			}
		}
	}
	return sub, nil
}
