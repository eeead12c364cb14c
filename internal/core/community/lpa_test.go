package community

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/attackmap/internal/core/graph"
	"github.com/agenthands/attackmap/internal/core/model"
)

func buildGraph(edges [][2]string) *graph.MappingGraph {
	g := graph.NewMappingGraph()
	for _, e := range edges {
		from := g.GetOrCreateNode(e[0], model.Primary)
		to := g.GetOrCreateNode(e[1], model.Secondary)
		g.AddEdge(from, to, "related-to", 1.0)
	}
	return g
}

func TestLPA_DisconnectedComponents(t *testing.T) {
	// Graph: [1-2-3-1] (Triangle A) ... [4-5-6-4] (Triangle B)
	g := buildGraph([][2]string{
		{"1", "2"}, {"2", "3"}, {"3", "1"},
		{"4", "5"}, {"5", "6"}, {"6", "4"},
	})

	communities := NewLabelPropagationDetector().Detect(g)

	assert.Len(t, communities, 2)
	assert.Equal(t, []string{"1", "2", "3"}, communities[0].Members)
	assert.Equal(t, []string{"4", "5", "6"}, communities[1].Members)
}

func TestLPA_Stars(t *testing.T) {
	g := buildGraph([][2]string{
		{"action.hacking.variety.Brute force", "T1110"},
		{"action.hacking.variety.Brute force", "T1110.001"},
		{"action.hacking.variety.Brute force", "T1110.003"},
		{"action.malware.variety.Ransomware", "T1486"},
		{"action.malware.variety.Ransomware", "T1490"},
	})

	communities := NewLabelPropagationDetector().Detect(g)

	assert.Len(t, communities, 2)
	assert.Len(t, communities[0].Members, 4)
	assert.Equal(t, "T1110.003", communities[0].Label)
	assert.Len(t, communities[1].Members, 3)
}

func TestLPA_LargeClique(t *testing.T) {
	ids := []string{"1", "2", "3", "4", "5"}
	var edges [][2]string
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			edges = append(edges, [2]string{ids[i], ids[j]})
		}
	}

	communities := NewLabelPropagationDetector().Detect(buildGraph(edges))

	assert.Len(t, communities, 1)
	assert.Len(t, communities[0].Members, 5)
}

func TestLPA_EmptyAndSingletons(t *testing.T) {
	d := NewLabelPropagationDetector()
	assert.Empty(t, d.Detect(graph.NewMappingGraph()))

	g := graph.NewMappingGraph()
	g.GetOrCreateNode("lonely", model.Primary)
	communities := d.Detect(g)
	assert.NotNil(t, communities)
	assert.Empty(t, communities)
}
