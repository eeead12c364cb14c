package analysis

import (
	"sort"

	"github.com/agenthands/attackmap/internal/core/graph"
)

type EdgeStrength struct {
	Source      string  `json:"source" yaml:"source"`
	Target      string  `json:"target" yaml:"target"`
	MappingType string  `json:"mapping_type" yaml:"mapping_type"`
	Strength    float64 `json:"strength" yaml:"strength"`
}

// EdgeStrengthRanking orders edges by strength descending. Equal strengths
// keep record order.
func EdgeStrengthRanking(g *graph.MappingGraph) []EdgeStrength {
	ranking := make([]EdgeStrength, 0, len(g.Edges))
	for _, e := range g.Edges {
		ranking = append(ranking, EdgeStrength{
			Source:      g.Nodes[e.From].ID,
			Target:      g.Nodes[e.To].ID,
			MappingType: e.MappingType,
			Strength:    e.Strength,
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Strength > ranking[j].Strength
	})
	return ranking
}
