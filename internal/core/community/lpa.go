package community

import (
	"sort"

	"github.com/agenthands/attackmap/internal/core/graph"
)

// Community is a group of mapping-graph nodes sharing a propagated label.
type Community struct {
	Label   string   `json:"label" yaml:"label"`
	Members []string `json:"members" yaml:"members"`
}

// LabelPropagationDetector implements community detection using Label Propagation Algorithm (LPA).
type LabelPropagationDetector struct {
	MaxIterations int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
	}
}

// Detect propagates labels over the undirected mapping graph. Parallel edges
// weigh as many times as they occur. Singletons are not reported.
func (d *LabelPropagationDetector) Detect(g *graph.MappingGraph) []Community {
	communities := []Community{}
	if g.NodeCount() == 0 {
		return communities
	}

	adj := make([]map[int]int, g.NodeCount()) // node -> neighbor -> weight
	for i := range adj {
		adj[i] = make(map[int]int)
	}
	for _, e := range g.Edges {
		if e.From == e.To {
			continue
		}
		adj[e.From][e.To]++
		adj[e.To][e.From]++
	}

	labels := make([]string, g.NodeCount())
	for i, n := range g.Nodes {
		labels[i] = n.ID
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changeCount := 0

		for u, neighbors := range adj {
			if len(neighbors) == 0 {
				continue
			}

			labelCounts := make(map[string]int)
			maxCount := 0
			for v, weight := range neighbors {
				label := labels[v]
				labelCounts[label] += weight
				if labelCounts[label] > maxCount {
					maxCount = labelCounts[label]
				}
			}

			var candidates []string
			for label, count := range labelCounts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}
			// Lexicographically largest wins ties.
			sort.Strings(candidates)
			bestLabel := candidates[len(candidates)-1]

			if labels[u] != bestLabel {
				labels[u] = bestLabel
				changeCount++
			}
		}

		if changeCount == 0 {
			break
		}
	}

	clusters := make(map[string][]string)
	for i, label := range labels {
		clusters[label] = append(clusters[label], g.Nodes[i].ID)
	}
	for label, members := range clusters {
		if len(members) < 2 {
			continue
		}
		sort.Strings(members)
		communities = append(communities, Community{Label: label, Members: members})
	}
	sort.Slice(communities, func(i, j int) bool {
		if len(communities[i].Members) != len(communities[j].Members) {
			return len(communities[i].Members) > len(communities[j].Members)
		}
		return communities[i].Label < communities[j].Label
	})
	return communities
}
