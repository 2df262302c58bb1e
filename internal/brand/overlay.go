// Package brand computes branded-search metrics and the brand overlay score.
package brand

import (
	"math"
	"strings"

	"github.com/alanranger/seo-audit-agent/internal/types"
)

// brandPhrases identify branded queries. A query is branded when it contains
// any of these, case-insensitively.
var brandPhrases = []string{
	"alan ranger",
	"alanranger",
	"alan ranger photography",
	"ranger photography",
	"alan ranger workshops",
}

// Ranking window and score calibration constants.
const (
	// maxRankingPosition is the worst position still counted as ranking.
	maxRankingPosition = 20.0
	// shareTarget is the branded-impression share that earns a full share
	// score.
	shareTarget = 0.30
	// ctrTarget is the branded CTR that earns a full CTR score.
	ctrTarget = 0.40
)

// Label thresholds.
const (
	weakBelow       = 40
	developingBelow = 70
)

// Metrics are the branded-search aggregates computed from query rows.
type Metrics struct {
	BrandQueryShare  float64  `json:"brand_query_share"`
	BrandCTR         float64  `json:"brand_ctr"`
	BrandAvgPosition *float64 `json:"brand_avg_position,omitempty"`
}

// Inputs combines branded-search metrics with the review and entity scores
// the overlay blends in.
type Inputs struct {
	Metrics     Metrics
	ReviewScore float64
	EntityScore float64
}

// IsBrandQuery reports whether the query contains a brand phrase.
func IsBrandQuery(query string) bool {
	q := strings.ToLower(query)
	for _, phrase := range brandPhrases {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}

// CalculateMetrics computes branded share, CTR, and impression-weighted
// average position from query rows. Only rows ranking within the top 20 with
// at least one impression count; all metrics default to zero (position nil)
// when no such rows exist.
func CalculateMetrics(queries []types.QueryRow) Metrics {
	var totalImpressions, brandImpressions, brandClicks int
	var brandPositionWeight float64

	for _, q := range queries {
		if q.AvgPosition == nil {
			continue
		}
		position := *q.AvgPosition
		if position <= 0 || position > maxRankingPosition || q.Impressions <= 0 {
			continue
		}

		totalImpressions += q.Impressions
		if !IsBrandQuery(q.Query) {
			continue
		}
		brandImpressions += q.Impressions
		brandClicks += q.Clicks
		brandPositionWeight += position * float64(q.Impressions)
	}

	m := Metrics{}
	if totalImpressions > 0 {
		m.BrandQueryShare = float64(brandImpressions) / float64(totalImpressions)
	}
	if brandImpressions > 0 {
		m.BrandCTR = float64(brandClicks) / float64(brandImpressions)
		avg := brandPositionWeight / float64(brandImpressions)
		m.BrandAvgPosition = &avg
	}
	return m
}

// positionScore maps a top-10 position to 100 (position 1) down to 10
// (position 10), linearly, clamping positions outside [1,10].
func positionScore(position float64) float64 {
	if position < 1 {
		position = 1
	}
	if position > 10 {
		position = 10
	}
	return 100 - ((position - 1) / 9 * 90)
}

// ComputeOverlay blends the brand-search score with review and entity scores
// into the final 0-100 brand score, label, and diagnostic notes.
func ComputeOverlay(in Inputs) types.BrandOverlay {
	shareScore := math.Min(in.Metrics.BrandQueryShare/shareTarget, 1) * 100
	ctrScore := math.Min(in.Metrics.BrandCTR/ctrTarget, 1) * 100

	posScore := 0.0
	if in.Metrics.BrandAvgPosition != nil {
		posScore = positionScore(*in.Metrics.BrandAvgPosition)
	}

	brandSearchScore := 0.4*shareScore + 0.3*ctrScore + 0.3*posScore
	score := int(math.Round(0.4*brandSearchScore + 0.3*in.ReviewScore + 0.3*in.EntityScore))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return types.BrandOverlay{
		Score: score,
		Label: label(score),
		Notes: notes(in),
	}
}

// label maps a score to its coarse band.
func label(score int) string {
	switch {
	case score < weakBelow:
		return "Weak"
	case score < developingBelow:
		return "Developing"
	default:
		return "Strong"
	}
}

// notes lists one warning per failing heuristic check, in fixed order so the
// output is diffable across runs.
func notes(in Inputs) []string {
	var out []string
	if in.Metrics.BrandQueryShare < 0.10 {
		out = append(out, "Branded queries are under 10% of ranking impressions")
	}
	if in.Metrics.BrandCTR < 0.25 {
		out = append(out, "Branded CTR is below 25%")
	}
	if in.Metrics.BrandAvgPosition == nil || *in.Metrics.BrandAvgPosition > 5 {
		out = append(out, "Branded queries are not ranking in the top 5")
	}
	if in.ReviewScore < 70 {
		out = append(out, "Review score is below 70")
	}
	if in.EntityScore < 70 {
		out = append(out, "Entity score is below 70")
	}
	return out
}
