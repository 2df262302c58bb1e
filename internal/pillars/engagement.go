package pillars

import (
	"github.com/alanranger/seo-audit-agent/internal/segment"
	"github.com/alanranger/seo-audit-agent/internal/types"
)

// Segment variants the behaviour and ranking scores are computed for.
type segmentVariant int

const (
	variantAll segmentVariant = iota
	variantNonEducation
	variantMoney
)

// Behaviour and ranking calibration constants.
const (
	// neutralScore is returned when a variant has no ranking rows at all.
	neutralScore = 50
	// overallCTRTarget is the site-wide CTR that earns a full behaviour
	// component.
	overallCTRTarget = 0.05
	// top10CTRTarget is the CTR expected of rows already ranking top 10.
	top10CTRTarget = 0.10
	// rankingMaxPosition clamps the average position for the ranking score.
	rankingMaxPosition = 20.0
)

// rowInVariant reports whether a query row belongs to the given segment
// variant, classifying the row's page.
func rowInVariant(row types.QueryRow, variant segmentVariant) bool {
	switch variant {
	case variantNonEducation:
		return segment.ClassifyPage(row.Page, "", "") != segment.PageEducation
	case variantMoney:
		return segment.ClassifyPage(row.Page, "", "") == segment.PageMoney
	default:
		return true
	}
}

// variantRows filters query rows to those ranking (position present and
// positive, impressions positive) within the given variant.
func variantRows(rows []types.QueryRow, variant segmentVariant) []types.QueryRow {
	var out []types.QueryRow
	for _, row := range rows {
		if row.AvgPosition == nil || *row.AvgPosition <= 0 || row.Impressions <= 0 {
			continue
		}
		if rowInVariant(row, variant) {
			out = append(out, row)
		}
	}
	return out
}

// behaviourScore blends overall CTR against a 5% target with top-10 CTR
// against a 10% target. Neutral 50 when the variant has no ranking rows.
func behaviourScore(rows []types.QueryRow, variant segmentVariant) int {
	ranking := variantRows(rows, variant)
	if len(ranking) == 0 {
		return neutralScore
	}

	var clicks, impressions, top10Clicks, top10Impressions int
	for _, row := range ranking {
		clicks += row.Clicks
		impressions += row.Impressions
		if *row.AvgPosition <= 10 {
			top10Clicks += row.Clicks
			top10Impressions += row.Impressions
		}
	}

	overallCTR := 0.0
	if impressions > 0 {
		overallCTR = float64(clicks) / float64(impressions)
	}
	top10CTR := 0.0
	if top10Impressions > 0 {
		top10CTR = float64(top10Clicks) / float64(top10Impressions)
	}

	score := 0.5*normalisePct(overallCTR, overallCTRTarget) + 0.5*normalisePct(top10CTR, top10CTRTarget)
	return clampScore(score)
}

// rankingScore blends the impression-weighted average position (clamped to
// [1,20]) with the share of impressions already ranking top 10. Neutral 50
// when the variant has no ranking rows.
func rankingScore(rows []types.QueryRow, variant segmentVariant) int {
	ranking := variantRows(rows, variant)
	if len(ranking) == 0 {
		return neutralScore
	}

	var impressions, top10Impressions int
	var positionWeight float64
	for _, row := range ranking {
		impressions += row.Impressions
		positionWeight += *row.AvgPosition * float64(row.Impressions)
		if *row.AvgPosition <= 10 {
			top10Impressions += row.Impressions
		}
	}

	avgPosition := positionWeight / float64(impressions)
	top10Share := float64(top10Impressions) / float64(impressions)

	score := 0.5*linearPositionScore(avgPosition, 1, rankingMaxPosition) + 0.5*(top10Share*100)
	return clampScore(score)
}
