package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/attackmap/internal/core/analysis"
	"github.com/agenthands/attackmap/internal/core/model"
)

func TestRenderRankedTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	rows := model.RankedTable{
		{PrimaryID: "action.hacking.variety.Brute force", SecondaryID: "T1110", MappingType: "Strong", Strength: 1, Frequency: 3, ImpactScore: 0.3},
		{PrimaryID: "V2", SecondaryID: "T1486", MappingType: "Weak", Strength: 0.4, Frequency: 1, ImpactScore: 0.04},
	}

	out := RenderRankedTable(rows, 1)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[2], "T1110")
	assert.Contains(t, lines[2], "0.300")
	assert.NotContains(t, out, "\033[")
	assert.Equal(t, "No mappings.\n", RenderRankedTable(nil, 5))
}

func TestRenderNoveltyTable(t *testing.T) {
	scores := model.NoveltyTable{
		{ID: "malware--1", Name: "Emotet", ObjectType: "malware", Score: 0.75},
		{ID: "attack-pattern--9", ObjectType: "unknown", Score: 0.5},
	}

	out := RenderNoveltyTable(scores, 0)

	assert.Contains(t, out, "Emotet")
	assert.Contains(t, out, "attack-pattern--9")
	assert.Contains(t, out, "0.750")
}

func TestRenderBasicStats(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out := RenderBasicStats("run-1", analysis.BasicStats{TotalMappings: 3, TotalNodes: 4, TotalEdges: 3},
		map[string]error{analysis.TableShortestPath: analysis.ErrInsufficientNodes})

	assert.Contains(t, out, "Run run-1")
	assert.Contains(t, out, "nodes: 4")
	assert.Contains(t, out, "warning shortest_path_analysis")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "ab", truncate("abcdefgh", 2))
}
