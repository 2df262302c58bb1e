package money

import (
	"github.com/alanranger/seo-audit-agent/internal/segment"
	"github.com/alanranger/seo-audit-agent/internal/types"
)

// Level is a coarse HIGH/MEDIUM/LOW band used for impact, difficulty, and
// priority.
type Level string

// Triage levels.
const (
	LevelHigh   Level = "HIGH"
	LevelMedium Level = "MEDIUM"
	LevelLow    Level = "LOW"
)

// Impact band thresholds, relative to the batch maximum lost-clicks value.
const (
	highImpactShare   = 0.75
	mediumImpactShare = 0.35
)

// PageMetrics is the full triage record for one money page.
type PageMetrics struct {
	URL             string                  `json:"url"`
	SubSegment      segment.MoneySubSegment `json:"sub_segment"`
	Clicks          int                     `json:"clicks"`
	Impressions     int                     `json:"impressions"`
	CTR             float64                 `json:"ctr"`
	AvgPosition     *float64                `json:"avg_position,omitempty"`
	LostClicks      float64                 `json:"lost_clicks"`
	ImpactLevel     Level                   `json:"impact_level"`
	DifficultyLevel Level                   `json:"difficulty_level"`
	PriorityLevel   Level                   `json:"priority_level"`
	Opportunity     Opportunity             `json:"opportunity"`
}

// expectedCTRForPosition is the step function estimating the CTR a page
// should earn at a given position.
func expectedCTRForPosition(position float64) float64 {
	switch {
	case position <= 3:
		return 0.10
	case position <= 6:
		return 0.07
	case position <= 10:
		return 0.05
	case position <= 20:
		return 0.03
	default:
		return 0.02
	}
}

// lostClicks estimates the clicks a page leaves on the table: impressions
// times the shortfall between the expected CTR for its position and its
// actual CTR. Never negative.
func lostClicks(impressions int, position, actualCTR float64) float64 {
	shortfall := expectedCTRForPosition(position) - actualCTR
	if shortfall < 0 {
		shortfall = 0
	}
	return float64(impressions) * shortfall
}

// difficultyLevel bands how hard a page will be to improve from its current
// position: already near the top is easy, page two or beyond is hard. The
// band escalates one step when an event or product page lacks the schema
// type expected for its sub-segment.
func difficultyLevel(position float64, sub segment.MoneySubSegment, schema *SchemaPresence) Level {
	var level Level
	switch {
	case position > 0 && position <= 5:
		level = LevelLow
	case position <= 10:
		level = LevelMedium
	default:
		level = LevelHigh
	}

	if sub == segment.MoneyEvent && !schema.Has("Event") {
		level = escalate(level)
	} else if sub == segment.MoneyProduct && !schema.Has("Product") {
		level = escalate(level)
	}
	return level
}

// escalate moves a level one band harder, capped at HIGH.
func escalate(level Level) Level {
	switch level {
	case LevelLow:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// priorityLevel derives priority from the fixed (impact, difficulty) grid:
// high impact is a high priority unless the fix is hard; low impact is never
// more than a low priority.
func priorityLevel(impact, difficulty Level) Level {
	switch impact {
	case LevelHigh:
		if difficulty == LevelHigh {
			return LevelMedium
		}
		return LevelHigh
	case LevelMedium:
		if difficulty == LevelHigh {
			return LevelLow
		}
		return LevelMedium
	default:
		return LevelLow
	}
}

// BuildMoneyPageMetrics computes the triage grid for every money page in the
// given rows.
//
// Impact levels are batch-relative: bands are set against the maximum
// lost-clicks value in this page set, so re-running over a different set can
// move pages between bands. This matches how the triage is consumed (ranking
// within one audit) and must not be replaced with absolute thresholds.
func BuildMoneyPageMetrics(pages []types.PageRow, audit *types.SchemaAudit) []PageMetrics {
	var metrics []PageMetrics

	maxLost := 0.0
	for _, page := range pages {
		if segment.ClassifyPage(page.URL, page.Title, "") != segment.PageMoney {
			continue
		}

		schema := schemaPresenceFor(audit, page.URL)
		position := page.Position(unrankedPosition)
		lost := lostClicks(page.Impressions, position, page.CTR)
		if lost > maxLost {
			maxLost = lost
		}

		sub := segment.ClassifyMoneySubSegment(page.URL)
		metrics = append(metrics, PageMetrics{
			URL:         page.URL,
			SubSegment:  sub,
			Clicks:      page.Clicks,
			Impressions: page.Impressions,
			CTR:         page.CTR,
			AvgPosition: page.AvgPosition,
			LostClicks:  lost,
			DifficultyLevel: difficultyLevel(position, sub, schema),
			Opportunity: ClassifyOpportunity(PageMetricsInput{
				CTR:         page.CTR,
				AvgPosition: page.AvgPosition,
				Impressions: page.Impressions,
			}, schema),
		})
	}

	// Second pass: impact is relative to the batch maximum, and priority
	// needs impact.
	for i := range metrics {
		metrics[i].ImpactLevel = impactLevel(metrics[i].LostClicks, maxLost)
		metrics[i].PriorityLevel = priorityLevel(metrics[i].ImpactLevel, metrics[i].DifficultyLevel)
	}

	return metrics
}

// impactLevel bands a page's lost clicks against the batch maximum.
func impactLevel(lost, maxLost float64) Level {
	if maxLost <= 0 {
		return LevelLow
	}
	share := lost / maxLost
	switch {
	case share >= highImpactShare:
		return LevelHigh
	case share >= mediumImpactShare:
		return LevelMedium
	default:
		return LevelLow
	}
}

// schemaPresenceFor builds the schema signal for one URL from the audit, or
// nil when the audit is absent or has no record of the page.
func schemaPresenceFor(audit *types.SchemaAudit, url string) *SchemaPresence {
	schemaTypes := audit.PageSchemaTypes(url)
	if schemaTypes == nil {
		return nil
	}
	return &SchemaPresence{Types: schemaTypes}
}
