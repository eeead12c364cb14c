package graph

import (
	"fmt"
	"strings"

	"github.com/agenthands/attackmap/internal/core/model"
)

// DefaultStrength applies to mapping types the table does not name.
const DefaultStrength = 0.1

// StrengthTable maps a mapping-type label to an edge strength in (0, 1].
// Labels match case-insensitively.
type StrengthTable struct {
	labels   map[string]float64
	fallback float64
}

// DefaultStrengthTable returns Strong 1.0, Moderate 0.7, Weak 0.4, anything else 0.1.
func DefaultStrengthTable() StrengthTable {
	t, _ := NewStrengthTable(map[string]float64{
		"Strong":   1.0,
		"Moderate": 0.7,
		"Weak":     0.4,
	}, DefaultStrength)
	return t
}

func NewStrengthTable(labels map[string]float64, fallback float64) (StrengthTable, error) {
	if fallback <= 0 || fallback > 1 {
		return StrengthTable{}, fmt.Errorf("default strength %v out of range (0, 1]", fallback)
	}
	t := StrengthTable{labels: make(map[string]float64, len(labels)), fallback: fallback}
	for label, s := range labels {
		if s <= 0 || s > 1 {
			return StrengthTable{}, fmt.Errorf("strength %v for %q out of range (0, 1]", s, label)
		}
		t.labels[normalizeLabel(label)] = s
	}
	return t, nil
}

func (t StrengthTable) Lookup(mappingType string) float64 {
	if s, ok := t.labels[normalizeLabel(mappingType)]; ok {
		return s
	}
	if t.fallback == 0 {
		return DefaultStrength
	}
	return t.fallback
}

func (t StrengthTable) Strength(r model.MappingRecord) float64 {
	return t.Lookup(r.MappingType)
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
