package pillars

import (
	"math"

	"github.com/alanranger/seo-audit-agent/internal/types"
)

// Authority component weights.
const (
	behaviourWeight = 0.4
	rankingWeight   = 0.2
	backlinksWeight = 0.2
	reviewsWeight   = 0.2
)

// backlinkScore scores the backlink profile: referring domains dominate,
// with raw volume and follow ratio as secondary signals. Zero when no
// backlink data is available.
func backlinkScore(metrics *types.BacklinkMetrics) int {
	if metrics == nil {
		return 0
	}

	domains := math.Min(float64(metrics.ReferringDomains), 100)
	volume := math.Min(float64(metrics.TotalBacklinks)/10, 100)
	follow := math.Min(metrics.FollowRatio*100, 100)

	return clampScore(0.5*domains + 0.3*volume + 0.2*follow)
}

// reviewScore averages the Google Business Profile rating score and the
// site-review (Trustpilot snapshot) rating score, each rating mapped as
// (rating/5)*100. Either source alone is used when the other is missing;
// neutral 50 when neither is available.
func reviewScore(local *types.LocalSignals, reviews *types.SiteReviews) int {
	var scores []float64

	if local.OK() && local.Data.GBPRating > 0 {
		scores = append(scores, local.Data.GBPRating/5*100)
	}
	if reviews.Valid() {
		scores = append(scores, reviews.SiteRating/5*100)
	}

	if len(scores) == 0 {
		return neutralScore
	}

	total := 0.0
	for _, s := range scores {
		total += s
	}
	return clampScore(total / float64(len(scores)))
}

// authorityTotal combines the four authority components with fixed weights.
func authorityTotal(behaviour, ranking, backlinks, reviews int) int {
	return clampScore(behaviourWeight*float64(behaviour) +
		rankingWeight*float64(ranking) +
		backlinksWeight*float64(backlinks) +
		reviewsWeight*float64(reviews))
}

// computeAuthority builds the full authority pillar: one breakdown per
// segment variant, sharing the backlink and review components (those are not
// segment-specific), with the "all" variant's total as the headline score.
func computeAuthority(rows []types.QueryRow, backlinks, reviews int) types.AuthorityScores {
	build := func(variant segmentVariant) types.SegmentAuthority {
		behaviour := behaviourScore(rows, variant)
		ranking := rankingScore(rows, variant)
		return types.SegmentAuthority{
			Behaviour: behaviour,
			Ranking:   ranking,
			Backlinks: backlinks,
			Reviews:   reviews,
			Total:     authorityTotal(behaviour, ranking, backlinks, reviews),
		}
	}

	all := build(variantAll)
	return types.AuthorityScores{
		Score:        all.Total,
		All:          all,
		NonEducation: build(variantNonEducation),
		Money:        build(variantMoney),
	}
}
