package analysis

import (
	"github.com/agenthands/attackmap/internal/core/graph"
	"github.com/agenthands/attackmap/internal/core/model"
)

type BasicStats struct {
	TotalMappings int `json:"total_mappings" yaml:"total_mappings"`
	TotalNodes    int `json:"total_nodes" yaml:"total_nodes"`
	TotalEdges    int `json:"total_edges" yaml:"total_edges"`
}

func ComputeBasicStats(g *graph.MappingGraph, records []model.MappingRecord) BasicStats {
	return BasicStats{
		TotalMappings: len(records),
		TotalNodes:    g.NodeCount(),
		TotalEdges:    g.EdgeCount(),
	}
}

func MappingTypeDistribution(g *graph.MappingGraph) map[string]int {
	dist := make(map[string]int)
	for _, e := range g.Edges {
		dist[e.MappingType]++
	}
	return dist
}

func NodeTypeDistribution(g *graph.MappingGraph) map[string]int {
	dist := make(map[string]int)
	for _, n := range g.Nodes {
		dist[n.Kind.String()]++
	}
	return dist
}

func TechDomainDistribution(records []model.MappingRecord) map[string]int {
	dist := make(map[string]int)
	for _, r := range records {
		dist[r.TechnologyDomain]++
	}
	return dist
}
