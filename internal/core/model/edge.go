package model

// MappingEdge always joins one Primary and one Secondary node. From and To are
// arena indices of the owning graph.
type MappingEdge struct {
	From        int     `json:"from"`
	To          int     `json:"to"`
	MappingType string  `json:"mapping_type"`
	Strength    float64 `json:"strength"`
}

type RelationshipEdge struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	Type string `json:"relationship_type"`
}

// Relationship is the input form of a RelationshipEdge, addressed by object id.
type Relationship struct {
	SourceRef        string `json:"source_ref"`
	TargetRef        string `json:"target_ref"`
	RelationshipType string `json:"relationship_type"`
}

// TaxonomyBundle is the ingested pair of object and relationship collections.
type TaxonomyBundle struct {
	Objects       []TaxonomyObject `json:"objects"`
	Relationships []Relationship   `json:"relationships"`
}
