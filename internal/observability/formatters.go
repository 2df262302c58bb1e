// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/alanranger/seo-audit-agent/internal/money"
	"github.com/alanranger/seo-audit-agent/internal/types"
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

// PrintPillarScores outputs a human-readable summary of the composite record.
func (p *Printer) PrintPillarScores(scores *types.PillarScores) {
	if scores == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Visibility:      %d\n", scores.Visibility))
	sb.WriteString(fmt.Sprintf("Authority:       %d\n", scores.Authority.Score))
	sb.WriteString(fmt.Sprintf("Content/Schema:  %d\n", scores.ContentSchema))
	sb.WriteString(fmt.Sprintf("Local Entity:    %d\n", scores.LocalEntity))
	sb.WriteString(fmt.Sprintf("Service Area:    %d\n", scores.ServiceArea))
	sb.WriteString(fmt.Sprintf("Brand Overlay:   %d (%s)\n", scores.BrandOverlay.Score, scores.BrandOverlay.Label))
	sb.WriteString("\n")
	sb.WriteString("Authority by segment:\n")
	for _, v := range []struct {
		name string
		seg  types.SegmentAuthority
	}{
		{"all", scores.Authority.All},
		{"non-education", scores.Authority.NonEducation},
		{"money", scores.Authority.Money},
	} {
		sb.WriteString(fmt.Sprintf("  %-14s beh=%d rank=%d links=%d rev=%d → %d\n",
			v.name, v.seg.Behaviour, v.seg.Ranking, v.seg.Backlinks, v.seg.Reviews, v.seg.Total))
	}

	if len(scores.BrandOverlay.Notes) > 0 {
		sb.WriteString("\nBrand notes:\n")
		for _, note := range scores.BrandOverlay.Notes {
			sb.WriteString(fmt.Sprintf("  • %s\n", note))
		}
	}

	p.printBox("PILLAR SCORES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMoneyPages outputs the money-page triage list, highest lost-clicks
// first (the list arrives already ordered by the analyzer).
func (p *Printer) PrintMoneyPages(pages []money.PageMetrics) {
	if len(pages) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Money pages analyzed: %d\n\n", len(pages)))

	count := min(len(pages), maxItemsToShow)
	for i := 0; i < count; i++ {
		pg := pages[i]
		url := pg.URL
		if len(url) > 44 {
			url = url[:41] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, url))
		sb.WriteString(fmt.Sprintf("    %s | lost≈%.1f | %s/%s → %s\n",
			pg.Opportunity.Category, pg.LostClicks,
			pg.ImpactLevel, pg.DifficultyLevel, pg.PriorityLevel))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(pages) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more pages", len(pages)-maxItemsToShow))
	}

	p.printBox("MONEY PAGE TRIAGE", sb.String())
}

// PrintSegmentRollups outputs portfolio segment rollups for one scope.
func (p *Printer) PrintSegmentRollups(scope string, rows []types.PortfolioSegmentMetricsRow) {
	if len(rows) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range rows {
		pos := "  n/a"
		if r.AvgPosition != nil {
			pos = fmt.Sprintf("%5.1f", *r.AvgPosition)
		}
		sb.WriteString(fmt.Sprintf("%-12s pages=%-4d clicks=%-7.0f pos=%s ai=%d\n",
			r.Segment, r.PagesCount, r.Clicks, pos, r.AICitations))
	}

	p.printBox("SEGMENTS ("+strings.ToUpper(scope)+")", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords outputs the top classified keywords.
func (p *Printer) PrintKeywords(rows []types.KeywordRow) {
	if len(rows) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Keywords classified: %d\n\n", len(rows)))

	count := min(len(rows), maxItemsToShow)
	for i := 0; i < count; i++ {
		kw := rows[i]
		name := kw.Keyword
		if len(name) > 34 {
			name = name[:31] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %-34s %s (%.2f)\n", name, kw.Segment, kw.SegmentConfidence))
	}

	if len(rows) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more keywords", len(rows)-maxItemsToShow))
	}

	p.printBox("KEYWORD SEGMENTS", sb.String())
}
