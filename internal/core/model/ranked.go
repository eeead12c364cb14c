package model

import "strconv"

// RankedRow is one row of the combined_analysis table.
type RankedRow struct {
	PrimaryID        string  `json:"veris_id" yaml:"veris_id"`
	SecondaryID      string  `json:"mitre_id" yaml:"mitre_id"`
	MappingType      string  `json:"mapping_type" yaml:"mapping_type"`
	Strength         float64 `json:"strength" yaml:"strength"`
	Frequency        int     `json:"frequency" yaml:"frequency"`
	ImpactScore      float64 `json:"impact_score" yaml:"impact_score"`
	TechnologyDomain string  `json:"technology_domain" yaml:"technology_domain"`
	CreationDate     string  `json:"creation_date" yaml:"creation_date"`
}

// RankedTable is the combined_analysis table in ranking order.
type RankedTable []RankedRow

func (RankedTable) Header() []string {
	return []string{"veris_id", "mitre_id", "mapping_type", "strength", "frequency", "impact_score", "technology_domain", "creation_date"}
}

func (t RankedTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		rows = append(rows, []string{
			r.PrimaryID,
			r.SecondaryID,
			r.MappingType,
			strconv.FormatFloat(r.Strength, 'f', -1, 64),
			strconv.Itoa(r.Frequency),
			strconv.FormatFloat(r.ImpactScore, 'f', -1, 64),
			r.TechnologyDomain,
			r.CreationDate,
		})
	}
	return rows
}
