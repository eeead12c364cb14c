package ingest

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/agenthands/attackmap/internal/core/model"
)

// rawObject covers both the flat object form and STIX 2.1 objects.
type rawObject struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ObjectType string `json:"object_type"`
	Type       string `json:"type"`

	SourceRef        string `json:"source_ref"`
	TargetRef        string `json:"target_ref"`
	RelationshipType string `json:"relationship_type"`
}

type rawBundle struct {
	Objects       []rawObject          `json:"objects"`
	Relationships []model.Relationship `json:"relationships"`
}

// LoadBundle reads the taxonomy bundle at path.
func LoadBundle(path string) (model.TaxonomyBundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.TaxonomyBundle{}, &Error{Source: path, Err: err}
	}
	defer f.Close()

	b, err := ReadBundle(f)
	if err != nil {
		var ie *Error
		if errors.As(err, &ie) {
			ie.Source = path
		}
		return model.TaxonomyBundle{}, err
	}
	return b, nil
}

// ReadBundle accepts {"objects": [...], "relationships": [...]} as well as a
// STIX 2.1 bundle, where relationships are objects of type "relationship".
func ReadBundle(r io.Reader) (model.TaxonomyBundle, error) {
	var raw rawBundle
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return model.TaxonomyBundle{}, &Error{Source: "json", Err: err}
	}

	b := model.TaxonomyBundle{Relationships: raw.Relationships}
	for _, o := range raw.Objects {
		if o.Type == "relationship" {
			b.Relationships = append(b.Relationships, model.Relationship{
				SourceRef:        o.SourceRef,
				TargetRef:        o.TargetRef,
				RelationshipType: o.RelationshipType,
			})
			continue
		}
		objectType := o.ObjectType
		if objectType == "" {
			objectType = o.Type
		}
		b.Objects = append(b.Objects, model.TaxonomyObject{ID: o.ID, Name: o.Name, ObjectType: objectType})
	}
	return b, nil
}
