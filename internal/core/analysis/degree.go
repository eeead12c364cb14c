package analysis

import (
	"sort"

	"github.com/agenthands/attackmap/internal/core/graph"
)

type DegreeEntry struct {
	ID     string `json:"id" yaml:"id"`
	Kind   string `json:"kind" yaml:"kind"`
	Degree int    `json:"degree" yaml:"degree"`
}

// NodeDegreeRanking counts incident edges per node, parallel edges
// individually, and orders by degree descending then id ascending.
func NodeDegreeRanking(g *graph.MappingGraph) []DegreeEntry {
	degrees := make([]int, g.NodeCount())
	for _, e := range g.Edges {
		degrees[e.From]++
		degrees[e.To]++
	}

	ranking := make([]DegreeEntry, 0, len(g.Nodes))
	for i, n := range g.Nodes {
		ranking = append(ranking, DegreeEntry{ID: n.ID, Kind: n.Kind.String(), Degree: degrees[i]})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Degree != ranking[j].Degree {
			return ranking[i].Degree > ranking[j].Degree
		}
		return ranking[i].ID < ranking[j].ID
	})
	return ranking
}
