package analysis

import (
	"sort"

	"gonum.org/v1/gonum/graph/topo"

	"github.com/agenthands/attackmap/internal/core/graph"
)

type ComponentsResult struct {
	NumberOfComponents int   `json:"number_of_components" yaml:"number_of_components"`
	ComponentSizes     []int `json:"component_sizes" yaml:"component_sizes"`
}

// ConnectedComponents counts weakly connected components, largest first.
func ConnectedComponents(g *graph.MappingGraph) ComponentsResult {
	if g.NodeCount() == 0 {
		return ComponentsResult{ComponentSizes: []int{}}
	}
	cc := topo.ConnectedComponents(g.WeightedUndirected())
	sizes := make([]int, 0, len(cc))
	for _, c := range cc {
		sizes = append(sizes, len(c))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return ComponentsResult{NumberOfComponents: len(cc), ComponentSizes: sizes}
}
