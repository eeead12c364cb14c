package model

import "strconv"

// NoveltyScore is the novelty of one relationship-graph node with its three parts.
type NoveltyScore struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	ObjectType    string  `json:"object_type" yaml:"object_type"`
	Uniqueness    float64 `json:"uniqueness" yaml:"uniqueness"`
	Isolation     float64 `json:"isolation" yaml:"isolation"`
	PathDiversity float64 `json:"path_diversity" yaml:"path_diversity"`
	Score         float64 `json:"score" yaml:"score"`
}

type NoveltyTable []NoveltyScore

func (NoveltyTable) Header() []string {
	return []string{"id", "name", "object_type", "uniqueness", "isolation", "path_diversity", "score"}
}

func (t NoveltyTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, s := range t {
		rows = append(rows, []string{
			s.ID,
			s.Name,
			s.ObjectType,
			strconv.FormatFloat(s.Uniqueness, 'f', -1, 64),
			strconv.FormatFloat(s.Isolation, 'f', -1, 64),
			strconv.FormatFloat(s.PathDiversity, 'f', -1, 64),
			strconv.FormatFloat(s.Score, 'f', -1, 64),
		})
	}
	return rows
}

// NoveltySummary describes the distribution of novelty scores in one run.
type NoveltySummary struct {
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Min    float64 `json:"min" yaml:"min"`
	Median float64 `json:"median" yaml:"median"`
	Max    float64 `json:"max" yaml:"max"`
}

// SubgraphDocument is the exported form of an extracted subgraph.
type SubgraphDocument struct {
	Seeds []string               `json:"seeds" yaml:"seeds"`
	Nodes []TaxonomyObject       `json:"nodes" yaml:"nodes"`
	Edges []SubgraphEdgeDocument `json:"edges" yaml:"edges"`
}

type SubgraphEdgeDocument struct {
	SourceRef        string `json:"source_ref" yaml:"source_ref"`
	TargetRef        string `json:"target_ref" yaml:"target_ref"`
	RelationshipType string `json:"relationship_type" yaml:"relationship_type"`
}
