// Package money analyzes money pages: opportunity categories and the
// impact/difficulty/priority triage grid.
package money

import (
	"fmt"
	"strings"
)

// OpportunityCategory classifies what kind of attention a money page needs.
type OpportunityCategory string

// Opportunity categories.
const (
	HighOpportunity OpportunityCategory = "HIGH_OPPORTUNITY"
	VisibilityFix   OpportunityCategory = "VISIBILITY_FIX"
	Maintain        OpportunityCategory = "MAINTAIN"
)

// Classification thresholds.
const (
	// MinImpressions is the impression floor below which a page cannot be a
	// high-opportunity or maintain candidate.
	MinImpressions = 100
	// HighOppMaxPos is the worst position still counted as "ranking but
	// underperforming".
	HighOppMaxPos = 15.0
	// HighOppMinPos is the best position for the high-opportunity window;
	// pages above it are already winning placement.
	HighOppMinPos = 3.0
	// MaintainMaxPos is the worst position a page can hold and still be
	// considered established.
	MaintainMaxPos = 8.0
	// MaintainMinCTR is the CTR floor for a maintained page.
	MaintainMinCTR = 0.03
	// unrankedPosition substitutes for a missing average position.
	unrankedPosition = 99.0
)

// moneySchemaTypes are the rich-result types a money page is expected to
// carry; schema-gap recommendations are phrased over this set.
var moneySchemaTypes = []string{"Product", "Event", "FAQPage"}

// PageMetricsInput holds the search metrics used to classify one money page.
// Missing position is treated as effectively unranked; missing CTR and
// impressions as zero.
type PageMetricsInput struct {
	CTR         float64
	AvgPosition *float64
	Impressions int
}

// SchemaPresence reports which rich-result schema types a page carries.
// A nil value means no schema signal is available.
type SchemaPresence struct {
	Types []string
}

// Has reports whether the given schema type is present.
func (s *SchemaPresence) Has(schemaType string) bool {
	if s == nil {
		return false
	}
	for _, t := range s.Types {
		if strings.EqualFold(t, schemaType) {
			return true
		}
	}
	return false
}

// Opportunity is one money page's classified opportunity with its display
// metadata and recommendation text.
type Opportunity struct {
	Category       OpportunityCategory `json:"category"`
	CategoryLabel  string              `json:"category_label"`
	CategoryColor  string              `json:"category_color"`
	Recommendation string              `json:"recommendation"`
}

// ctrTargetForPosition returns the CTR a page at the given position should be
// achieving, banded by position.
func ctrTargetForPosition(position float64) float64 {
	switch {
	case position <= 6:
		return 0.05
	case position <= 10:
		return 0.03
	case position <= 15:
		return 0.02
	default:
		return 0
	}
}

// ClassifyOpportunity assigns an opportunity category to a money page.
//
// Decision order: a page ranking in [3,15] with enough impressions but a CTR
// below its band target is a high opportunity; an established page (position
// within 8, CTR at least 3%, enough impressions) is maintained; everything
// else needs a visibility fix.
func ClassifyOpportunity(metrics PageMetricsInput, schema *SchemaPresence) Opportunity {
	position := unrankedPosition
	if metrics.AvgPosition != nil {
		position = *metrics.AvgPosition
	}
	ctr := metrics.CTR
	if ctr < 0 {
		ctr = 0
	}
	impressions := metrics.Impressions
	if impressions < 0 {
		impressions = 0
	}

	target := ctrTargetForPosition(position)

	if position >= HighOppMinPos && position <= HighOppMaxPos &&
		impressions >= MinImpressions && target > 0 && ctr < target {
		return Opportunity{
			Category:      HighOpportunity,
			CategoryLabel: "High opportunity",
			CategoryColor: "amber",
			Recommendation: fmt.Sprintf(
				"Ranking at position %.1f with %d impressions but only %.1f%% CTR (target %.0f%%). "+
					"Rework the title and meta description, add an FAQ section%s.",
				position, impressions, ctr*100, target*100, schemaGapPhrase(schema)),
		}
	}

	if position <= MaintainMaxPos && ctr >= MaintainMinCTR && impressions >= MinImpressions {
		return Opportunity{
			Category:       Maintain,
			CategoryLabel:  "Maintain",
			CategoryColor:  "green",
			Recommendation: "Performing well. Keep content fresh and monitor for ranking drops.",
		}
	}

	return Opportunity{
		Category:      VisibilityFix,
		CategoryLabel: "Visibility fix",
		CategoryColor: "red",
		Recommendation: fmt.Sprintf(
			"Low visibility. Strengthen internal linking from high-traffic pages%s.",
			schemaGapPhrase(schema)),
	}
}

// schemaGapPhrase names the rich-result types missing from the page, or all
// three when no schema is present at all. Returns "" when nothing is missing.
func schemaGapPhrase(schema *SchemaPresence) string {
	var missing []string
	for _, t := range moneySchemaTypes {
		if !schema.Has(t) {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		return ""
	}
	return fmt.Sprintf(" and add %s schema", strings.Join(missing, ", "))
}
