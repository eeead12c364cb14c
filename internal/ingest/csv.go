// Package ingest reads mapping tables and taxonomy bundles.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agenthands/attackmap/internal/core/model"
)

var requiredColumns = []string{
	"capability_id",
	"attack_object_id",
	"mapping_type",
	"technology_domain",
	"creation_date",
}

// LoadMappings reads the mapping CSV at path.
func LoadMappings(path string) ([]model.MappingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Source: path, Err: err}
	}
	defer f.Close()

	records, err := ReadMappingsCSV(f)
	if err != nil {
		var ie *Error
		if errors.As(err, &ie) {
			ie.Source = path
		}
		return nil, err
	}
	return records, nil
}

// ReadMappingsCSV decodes a header-led mapping table. Columns may come in any
// order; unknown columns are ignored.
func ReadMappingsCSV(r io.Reader) ([]model.MappingRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &Error{Source: "csv", Err: ErrEmptyInput}
	}
	if err != nil {
		return nil, &Error{Source: "csv", Err: fmt.Errorf("failed to read header: %w", err)}
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, &Error{Source: "csv", Err: fmt.Errorf("%w: %s", ErrMissingColumn, c)}
		}
	}

	var records []model.MappingRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &Error{Source: "csv", Err: fmt.Errorf("line %d: %w", line, err)}
		}
		get := func(name string) string {
			if i, ok := cols[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		records = append(records, model.MappingRecord{
			MappingFramework:        get("mapping_framework"),
			MappingFrameworkVersion: get("mapping_framework_version"),
			CapabilityGroup:         get("capability_group"),
			CapabilityID:            get("capability_id"),
			CapabilityDescription:   get("capability_description"),
			MappingType:             get("mapping_type"),
			AttackObjectID:          get("attack_object_id"),
			AttackObjectName:        get("attack_object_name"),
			AttackVersion:           get("attack_version"),
			TechnologyDomain:        get("technology_domain"),
			References:              get("references"),
			Comments:                get("comments"),
			Organization:            get("organization"),
			CreationDate:            get("creation_date"),
			LastUpdate:              get("last_update"),
		})
	}
	return records, nil
}
