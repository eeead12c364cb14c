// Package impact ranks mapping records by how strongly they connect to
// frequently mapped techniques.
package impact

import (
	"sort"

	"github.com/agenthands/attackmap/internal/core/analysis"
	"github.com/agenthands/attackmap/internal/core/graph"
	"github.com/agenthands/attackmap/internal/core/model"
)

// TableCombined is the name of the ranked table.
const TableCombined = "combined_analysis"

// Score builds one row per record. Frequency is the degree of the record's
// technique node in ranking, 0 when the node is not ranked, and
// impact_score = frequency * strength / 10. Rows are ordered by impact score
// descending; equal scores keep record order.
func Score(records []model.MappingRecord, ranking []analysis.DegreeEntry, table graph.StrengthTable) model.RankedTable {
	degrees := make(map[string]int, len(ranking))
	for _, d := range ranking {
		if d.Kind == model.Secondary.String() {
			degrees[d.ID] = d.Degree
		}
	}

	rows := make(model.RankedTable, 0, len(records))
	for _, r := range records {
		strength := table.Strength(r)
		frequency := degrees[r.AttackObjectID]
		rows = append(rows, model.RankedRow{
			PrimaryID:        r.CapabilityID,
			SecondaryID:      r.AttackObjectID,
			MappingType:      r.MappingType,
			Strength:         strength,
			Frequency:        frequency,
			ImpactScore:      float64(frequency) * strength / 10.0,
			TechnologyDomain: r.TechnologyDomain,
			CreationDate:     r.CreationDate,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ImpactScore > rows[j].ImpactScore
	})
	return rows
}
