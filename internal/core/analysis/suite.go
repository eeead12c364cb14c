package analysis

import (
	"github.com/agenthands/attackmap/internal/core/community"
	"github.com/agenthands/attackmap/internal/core/graph"
	"github.com/agenthands/attackmap/internal/core/model"
)

// Table names of the analysis results.
const (
	TableBasicStats   = "basic_stats"
	TableMappingTypes = "mapping_type_analysis"
	TableNodeDegree   = "node_degree_analysis"
	TableComponents   = "connected_components_analysis"
	TableShortestPath = "shortest_path_analysis"
	TableEdgeStrength = "edge_strength_analysis"
	TableNodeTypes    = "node_type_distribution"
	TableTemporal     = "temporal_analysis"
	TableTechDomains  = "tech_domain_analysis"
	TableCommunities  = "community_analysis"
)

// Suite runs every metric over a finished mapping graph.
type Suite struct {
	PathSource string
	PathTarget string

	// Communities enables the community_analysis table when set.
	Communities *community.LabelPropagationDetector
}

type Results struct {
	BasicStats   BasicStats
	MappingTypes map[string]int
	NodeDegree   []DegreeEntry
	Components   ComponentsResult
	ShortestPath ShortestPathResult
	EdgeStrength []EdgeStrength
	NodeTypes    map[string]int
	Temporal     TemporalRange
	TechDomains  map[string]int
	Communities  []community.Community

	// Errors holds the metric failures by table name. A failed metric still
	// has a table describing the failure.
	Errors map[string]error
}

func (s *Suite) Run(g *graph.MappingGraph, records []model.MappingRecord) *Results {
	res := &Results{
		BasicStats:   ComputeBasicStats(g, records),
		MappingTypes: MappingTypeDistribution(g),
		NodeDegree:   NodeDegreeRanking(g),
		Components:   ConnectedComponents(g),
		EdgeStrength: EdgeStrengthRanking(g),
		NodeTypes:    NodeTypeDistribution(g),
		TechDomains:  TechDomainDistribution(records),
		Errors:       make(map[string]error),
	}

	var err error
	if res.ShortestPath, err = ShortestPath(g, s.PathSource, s.PathTarget); err != nil {
		res.Errors[TableShortestPath] = err
	}
	if res.Temporal, err = ComputeTemporalRange(records); err != nil {
		res.Errors[TableTemporal] = err
	}
	if s.Communities != nil {
		res.Communities = s.Communities.Detect(g)
	}
	return res
}

// Tables returns the results in export order.
func (r *Results) Tables() []model.Table {
	tables := []model.Table{
		{Name: TableBasicStats, Data: r.BasicStats},
		{Name: TableMappingTypes, Data: r.MappingTypes},
		{Name: TableNodeDegree, Data: r.NodeDegree},
		{Name: TableComponents, Data: r.Components},
		{Name: TableShortestPath, Data: r.ShortestPath},
		{Name: TableEdgeStrength, Data: r.EdgeStrength},
		{Name: TableNodeTypes, Data: r.NodeTypes},
		{Name: TableTemporal, Data: r.Temporal},
		{Name: TableTechDomains, Data: r.TechDomains},
	}
	if r.Communities != nil {
		tables = append(tables, model.Table{Name: TableCommunities, Data: r.Communities})
	}
	return tables
}

// Table looks up one result table by name.
func (r *Results) Table(name string) (model.Table, bool) {
	for _, t := range r.Tables() {
		if t.Name == name {
			return t, true
		}
	}
	return model.Table{}, false
}
