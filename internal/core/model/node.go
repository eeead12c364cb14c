package model

// NodeKind tells which framework a mapping-graph node belongs to.
type NodeKind int

const (
	// Primary nodes come from the capability framework (VERIS).
	Primary NodeKind = iota
	// Secondary nodes come from the attack framework (ATT&CK).
	Secondary
)

func (k NodeKind) String() string {
	switch k {
	case Primary:
		return "veris"
	case Secondary:
		return "mitre"
	default:
		return "unknown"
	}
}

func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type TaxonomyNode struct {
	ID       string            `json:"id"`
	Kind     NodeKind          `json:"kind"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// TaxonomyObject is a node of the relationship graph built from an ATT&CK bundle.
type TaxonomyObject struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	ObjectType string `json:"object_type" yaml:"object_type"`
}
