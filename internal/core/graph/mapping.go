package graph

import (
	"github.com/agenthands/attackmap/internal/core/model"
)

// MappingGraph holds capability and technique nodes in an arena addressed by
// index, with an id index for constant-time dedup. It is not modified after
// BuildMappingGraph returns.
type MappingGraph struct {
	Nodes []model.TaxonomyNode
	Edges []model.MappingEdge

	index map[string]int
}

func NewMappingGraph() *MappingGraph {
	return &MappingGraph{index: make(map[string]int)}
}

// GetOrCreateNode returns the index of the node with id, adding it with kind
// if it is not present yet.
func (g *MappingGraph) GetOrCreateNode(id string, kind model.NodeKind) int {
	if idx, ok := g.index[id]; ok {
		return idx
	}
	idx := len(g.Nodes)
	g.Nodes = append(g.Nodes, model.TaxonomyNode{ID: id, Kind: kind, Metadata: map[string]string{}})
	g.index[id] = idx
	return idx
}

func (g *MappingGraph) NodeIndex(id string) (int, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

func (g *MappingGraph) NodeCount() int { return len(g.Nodes) }
func (g *MappingGraph) EdgeCount() int { return len(g.Edges) }

// AddEdge appends an edge; parallel edges are kept.
func (g *MappingGraph) AddEdge(from, to int, mappingType string, strength float64) {
	g.Edges = append(g.Edges, model.MappingEdge{
		From:        from,
		To:          to,
		MappingType: mappingType,
		Strength:    strength,
	})
}

// BuildMappingGraph adds one edge per record, creating endpoint nodes on
// first sight. The same records always produce the same graph.
func BuildMappingGraph(records []model.MappingRecord, table StrengthTable) *MappingGraph {
	g := NewMappingGraph()
	for _, r := range records {
		p := g.GetOrCreateNode(r.CapabilityID, model.Primary)
		setMissing(g.Nodes[p].Metadata, "capability_group", r.CapabilityGroup)
		setMissing(g.Nodes[p].Metadata, "capability_description", r.CapabilityDescription)
		setMissing(g.Nodes[p].Metadata, "mapping_framework", r.MappingFramework)

		s := g.GetOrCreateNode(r.AttackObjectID, model.Secondary)
		setMissing(g.Nodes[s].Metadata, "attack_object_name", r.AttackObjectName)
		setMissing(g.Nodes[s].Metadata, "attack_version", r.AttackVersion)

		g.AddEdge(p, s, r.MappingType, table.Strength(r))
	}
	return g
}

func setMissing(m map[string]string, key, value string) {
	if value == "" {
		return
	}
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}
