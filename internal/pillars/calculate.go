package pillars

import (
	"github.com/alanranger/seo-audit-agent/internal/brand"
	"github.com/alanranger/seo-audit-agent/internal/types"
)

// Inputs bundles everything the pillar calculation consumes. Only Search is
// required; every other input has a documented neutral default when nil.
type Inputs struct {
	Search       *types.SearchData
	SchemaAudit  *types.SchemaAudit
	LocalSignals *types.LocalSignals
	SiteReviews  *types.SiteReviews
	Backlinks    *types.BacklinkMetrics
}

// Calculate computes the full pillar-score record for one audit run.
//
// The calculation is pure: no I/O, no retained state, and it always returns
// a complete, internally consistent record even when optional inputs are
// missing.
func Calculate(in Inputs) types.PillarScores {
	var queries []types.QueryRow
	if in.Search != nil {
		queries = in.Search.Queries
	}

	avgPosition, overallCTR, hasRanking := overallSearchStats(queries)

	visibility := neutralScore
	if hasRanking {
		visibility = ComputeVisibility(avgPosition)
	}

	backlinks := backlinkScore(in.Backlinks)
	reviews := reviewScore(in.LocalSignals, in.SiteReviews)
	authority := computeAuthority(queries, backlinks, reviews)

	content := computeContentSchema(in.SchemaAudit)
	localEntity := computeLocalEntity(in.LocalSignals, visibility, overallCTR)
	serviceArea := computeServiceArea(in.LocalSignals, visibility)

	overlay := brand.ComputeOverlay(brand.Inputs{
		Metrics:     brand.CalculateMetrics(queries),
		ReviewScore: float64(reviews),
		EntityScore: float64(localEntity),
	})

	return types.PillarScores{
		Visibility:     visibility,
		Authority:      authority,
		ContentSchema:  content.Total,
		LocalEntity:    localEntity,
		ServiceArea:    serviceArea,
		BrandOverlay:   overlay,
		CoverageScore:  content.Coverage,
		DiversityScore: content.Diversity,
	}
}

// overallSearchStats computes the impression-weighted average position and
// overall CTR across all ranking query rows.
func overallSearchStats(queries []types.QueryRow) (avgPosition, overallCTR float64, hasRanking bool) {
	var clicks, impressions int
	var positionWeight float64

	for _, q := range queries {
		if q.AvgPosition == nil || *q.AvgPosition <= 0 || q.Impressions <= 0 {
			continue
		}
		clicks += q.Clicks
		impressions += q.Impressions
		positionWeight += *q.AvgPosition * float64(q.Impressions)
	}

	if impressions == 0 {
		return 0, 0, false
	}
	return positionWeight / float64(impressions), float64(clicks) / float64(impressions), true
}
