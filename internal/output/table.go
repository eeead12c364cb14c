// Package output renders run summaries for the terminal.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/agenthands/attackmap/internal/core/analysis"
	"github.com/agenthands/attackmap/internal/core/model"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// IsColorEnabled reports whether stdout is a TTY and NO_COLOR is unset.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

func RenderBasicStats(runID string, stats analysis.BasicStats, errs map[string]error) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run %s\n", runID))
	sb.WriteString(fmt.Sprintf("  mappings: %d  nodes: %d  edges: %d\n", stats.TotalMappings, stats.TotalNodes, stats.TotalEdges))
	for name, err := range errs {
		sb.WriteString(fmt.Sprintf("  %s %s: %v\n", colorize(colorYellow, "warning"), name, err))
	}
	return sb.String()
}

// RenderRankedTable renders the first limit rows; limit <= 0 renders all.
func RenderRankedTable(rows model.RankedTable, limit int) string {
	if len(rows) == 0 {
		return "No mappings.\n"
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-40s %-12s %-10s %8s %5s %7s\n",
		"Capability", "Technique", "Type", "Strength", "Freq", "Impact"))
	sb.WriteString(strings.Repeat("─", 87))
	sb.WriteString("\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-40s %-12s %-10s %8.2f %5d %s\n",
			truncate(r.PrimaryID, 40),
			truncate(r.SecondaryID, 12),
			truncate(r.MappingType, 10),
			r.Strength,
			r.Frequency,
			colorize(impactColor(r.ImpactScore), fmt.Sprintf("%7.3f", r.ImpactScore))))
	}
	return sb.String()
}

func RenderNoveltyTable(scores model.NoveltyTable, limit int) string {
	if len(scores) == 0 {
		return "No taxonomy objects.\n"
	}
	if limit > 0 && limit < len(scores) {
		scores = scores[:limit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-45s %-18s %6s\n", "Object", "Type", "Score"))
	sb.WriteString(strings.Repeat("─", 71))
	sb.WriteString("\n")
	for _, s := range scores {
		name := s.Name
		if name == "" {
			name = s.ID
		}
		sb.WriteString(fmt.Sprintf("%-45s %-18s %6.3f\n", truncate(name, 45), truncate(s.ObjectType, 18), s.Score))
	}
	return sb.String()
}

func RenderSubgraph(doc model.SubgraphDocument) string {
	return fmt.Sprintf("Sampled %d seeds: %d nodes, %d edges\n", len(doc.Seeds), len(doc.Nodes), len(doc.Edges))
}

func impactColor(score float64) string {
	switch {
	case score >= 0.5:
		return colorRed
	case score >= 0.2:
		return colorYellow
	default:
		return colorGreen
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
