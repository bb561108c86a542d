// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/venture-compass/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecommendations outputs the ranked recommendations with scores and reasoning.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		p.printBox("RECOMMENDED STEPS", "No recommendations available")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total recommendations: %d\n\n", len(recs)))

	count := min(len(recs), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := recs[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, rec.Name))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  Phase: %s\n", rec.RelevanceScore, rec.Phase.Name))
		if len(rec.Reasoning) > 0 {
			reason := rec.Reasoning[0]
			if len(reason) > 44 {
				reason = reason[:41] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Why: %s\n", reason))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(recs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(recs)-maxItemsToShow))
	}

	p.printBox("RECOMMENDED STEPS", sb.String())
}

// PrintOptimizedPath outputs the path sequence with time estimates.
func (p *Printer) PrintOptimizedPath(path []types.Recommendation) {
	if len(path) == 0 {
		p.printBox("OPTIMIZED PATH", "No steps fit the given constraints")
		return
	}

	var sb strings.Builder
	totalMinutes := 0.0
	for _, step := range path {
		totalMinutes += step.Estimate.AverageMinutes()
	}
	sb.WriteString(fmt.Sprintf("%d steps, ~%.0f hours total\n\n", len(path), totalMinutes/60))

	for i, step := range path {
		name := step.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
		sb.WriteString(fmt.Sprintf("   ~%.0f min, difficulty %d\n", step.Estimate.AverageMinutes(), step.Difficulty))
	}

	p.printBox("OPTIMIZED PATH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRelationships outputs the relationship edges grouped by type.
func (p *Printer) PrintRelationships(edges []types.StepRelationship) {
	if len(edges) == 0 {
		p.printBox("STEP RELATIONSHIPS", "No relationships found")
		return
	}

	byType := map[types.RelationshipType][]types.StepRelationship{}
	for _, e := range edges {
		byType[e.Type] = append(byType[e.Type], e)
	}

	var sb strings.Builder
	for _, relType := range []types.RelationshipType{types.RelPrerequisite, types.RelDependent, types.RelRelated} {
		group := byType[relType]
		if len(group) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s (%d):\n", strings.ToUpper(string(relType)), len(group)))
		count := min(len(group), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := group[i]
			sb.WriteString(fmt.Sprintf("  %s → %s\n", displayName(e.SourceName, e.SourceID.String()), displayName(e.TargetName, e.TargetID.String())))
		}
		if len(group) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(group)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	p.printBox("STEP RELATIONSHIPS", strings.TrimSuffix(sb.String(), "\n"))
}

// displayName prefers the resolved name, falling back to the raw identifier
func displayName(name, fallback string) string {
	if name != "" {
		return name
	}
	if len(fallback) > 8 {
		return fallback[:8]
	}
	return fallback
}
