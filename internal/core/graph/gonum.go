package graph

import (
	"math"

	"gonum.org/v1/gonum/graph/simple"
)

// WeightedUndirected projects the mapping graph onto a gonum graph whose node
// ids are arena indices. Edge weight is 1/strength; parallel edges keep the
// lightest weight and self-loops are dropped.
func (g *MappingGraph) WeightedUndirected() *simple.WeightedUndirectedGraph {
	wg := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := range g.Nodes {
		wg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.Edges {
		if e.From == e.To {
			continue
		}
		w := 1 / e.Strength
		if existing := wg.WeightedEdge(int64(e.From), int64(e.To)); existing != nil && existing.Weight() <= w {
			continue
		}
		wg.SetWeightedEdge(wg.NewWeightedEdge(simple.Node(int64(e.From)), simple.Node(int64(e.To)), w))
	}
	return wg
}

// Directed projects the relationship graph onto a gonum directed graph with
// arena indices as node ids. Labels, parallel edges and self-loops are dropped.
func (g *RelationshipGraph) Directed() *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for i := range g.Nodes {
		dg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.Edges {
		if e.From == e.To || dg.HasEdgeFromTo(int64(e.From), int64(e.To)) {
			continue
		}
		dg.SetEdge(dg.NewEdge(simple.Node(int64(e.From)), simple.Node(int64(e.To))))
	}
	return dg
}
