package graph

import (
	"github.com/agenthands/attackmap/internal/core/model"
)

// UnknownObjectType marks nodes created for relationship endpoints that were
// not among the bundle's objects.
const UnknownObjectType = "unknown"

// RelationshipGraph is a directed, labeled graph of taxonomy objects.
type RelationshipGraph struct {
	Nodes []model.TaxonomyObject
	Edges []model.RelationshipEdge

	index map[string]int
	out   [][]int
}

type BuildStats struct {
	Objects       int `json:"objects"`
	Relationships int `json:"relationships"`
	AutoCreated   int `json:"auto_created"`
}

func NewRelationshipGraph() *RelationshipGraph {
	return &RelationshipGraph{index: make(map[string]int)}
}

// AddNode upserts obj by id and returns its index. A later object with a known
// id fills in a placeholder created for a dangling reference.
func (g *RelationshipGraph) AddNode(obj model.TaxonomyObject) int {
	if idx, ok := g.index[obj.ID]; ok {
		if g.Nodes[idx].ObjectType == UnknownObjectType && obj.ObjectType != UnknownObjectType {
			g.Nodes[idx] = obj
		}
		return idx
	}
	idx := len(g.Nodes)
	g.Nodes = append(g.Nodes, obj)
	g.out = append(g.out, nil)
	g.index[obj.ID] = idx
	return idx
}

func (g *RelationshipGraph) AddEdge(from, to int, relType string) {
	g.out[from] = append(g.out[from], len(g.Edges))
	g.Edges = append(g.Edges, model.RelationshipEdge{From: from, To: to, Type: relType})
}

func (g *RelationshipGraph) NodeIndex(id string) (int, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

// Outgoing returns the indices into Edges of the edges leaving node.
func (g *RelationshipGraph) Outgoing(node int) []int {
	return g.out[node]
}

func (g *RelationshipGraph) NodeCount() int { return len(g.Nodes) }
func (g *RelationshipGraph) EdgeCount() int { return len(g.Edges) }

// Document converts the graph to its exported form.
func (g *RelationshipGraph) Document(seeds []string) model.SubgraphDocument {
	doc := model.SubgraphDocument{
		Seeds: seeds,
		Nodes: append([]model.TaxonomyObject(nil), g.Nodes...),
		Edges: make([]model.SubgraphEdgeDocument, 0, len(g.Edges)),
	}
	for _, e := range g.Edges {
		doc.Edges = append(doc.Edges, model.SubgraphEdgeDocument{
			SourceRef:        g.Nodes[e.From].ID,
			TargetRef:        g.Nodes[e.To].ID,
			RelationshipType: e.Type,
		})
	}
	return doc
}

// BuildRelationshipGraph loads every object and then every relationship.
// Relationships naming an unknown object get a placeholder node, the same
// policy BuildMappingGraph applies to mapping records.
func BuildRelationshipGraph(bundle model.TaxonomyBundle) (*RelationshipGraph, BuildStats) {
	g := NewRelationshipGraph()
	stats := BuildStats{Objects: len(bundle.Objects), Relationships: len(bundle.Relationships)}

	for _, obj := range bundle.Objects {
		g.AddNode(obj)
	}
	for _, rel := range bundle.Relationships {
		from := g.endpoint(rel.SourceRef, &stats)
		to := g.endpoint(rel.TargetRef, &stats)
		g.AddEdge(from, to, rel.RelationshipType)
	}
	return g, stats
}

func (g *RelationshipGraph) endpoint(id string, stats *BuildStats) int {
	if idx, ok := g.index[id]; ok {
		return idx
	}
	stats.AutoCreated++
	return g.AddNode(model.TaxonomyObject{ID: id, Name: id, ObjectType: UnknownObjectType})
}
