package pillars

import (
	"testing"

	"github.com/alanranger/seo-audit-agent/internal/types"
	"github.com/stretchr/testify/assert"
)

func pos(v float64) *float64 { return &v }

func TestBehaviourScore_NeutralWhenEmpty(t *testing.T) {
	assert.Equal(t, neutralScore, behaviourScore(nil, variantAll))
}

func TestBehaviourScore_TargetsMet(t *testing.T) {
	rows := []types.QueryRow{
		// Overall CTR 10% (target 5%), top-10 CTR 10% (target 10%).
		{Query: "a", Page: "/x", Clicks: 100, Impressions: 1000, AvgPosition: pos(4)},
	}
	assert.Equal(t, 100, behaviourScore(rows, variantAll))
}

func TestBehaviourScore_HalfwayToTargets(t *testing.T) {
	rows := []types.QueryRow{
		// CTR 2.5% is half the 5% overall target and a quarter of the
		// top-10 target: 0.5*50 + 0.5*25 = 37.5 -> 38.
		{Query: "a", Page: "/x", Clicks: 25, Impressions: 1000, AvgPosition: pos(4)},
	}
	assert.Equal(t, 38, behaviourScore(rows, variantAll))
}

func TestRankingScore_NeutralWhenEmpty(t *testing.T) {
	assert.Equal(t, neutralScore, rankingScore(nil, variantMoney))
}

func TestRankingScore_TopPositionsFullShare(t *testing.T) {
	rows := []types.QueryRow{
		// Average position 1, all impressions top 10: 0.5*100 + 0.5*100.
		{Query: "a", Page: "/x", Clicks: 10, Impressions: 100, AvgPosition: pos(1)},
	}
	assert.Equal(t, 100, rankingScore(rows, variantAll))
}

func TestRankingScore_WeightedPositionAndShare(t *testing.T) {
	rows := []types.QueryRow{
		{Query: "a", Page: "/x", Clicks: 0, Impressions: 100, AvgPosition: pos(20)},
		{Query: "b", Page: "/y", Clicks: 0, Impressions: 100, AvgPosition: pos(2)},
	}
	// Weighted avg position 11: positionScore = 100 - (10/19)*90 = 52.63.
	// Top-10 share 0.5: 0.5*52.63 + 0.5*50 = 51.3 -> 51.
	assert.Equal(t, 51, rankingScore(rows, variantAll))
}

func TestSegmentVariants_FilterRowsByPageSegment(t *testing.T) {
	rows := []types.QueryRow{
		// Education page: strong CTR.
		{Query: "how to", Page: "/blog-on-photography/x", Clicks: 100, Impressions: 1000, AvgPosition: pos(5)},
		// Money page: weak CTR.
		{Query: "workshops", Page: "/photography-workshops-uk", Clicks: 2, Impressions: 1000, AvgPosition: pos(5)},
	}

	all := behaviourScore(rows, variantAll)
	nonEdu := behaviourScore(rows, variantNonEducation)
	moneyOnly := behaviourScore(rows, variantMoney)

	// Excluding the education row drops the blended CTR.
	assert.Less(t, nonEdu, all)
	// The money-only variant sees just the weak row.
	assert.Equal(t, moneyOnly, nonEdu)

	// Money variant of the end-to-end scenario: only the money row counts.
	rows = append(rows, types.QueryRow{Query: "terms", Page: "/terms", Clicks: 0, Impressions: 10, AvgPosition: pos(30)})
	moneyRows := variantRows(rows, variantMoney)
	assert.Len(t, moneyRows, 1)
	assert.Equal(t, "/photography-workshops-uk", moneyRows[0].Page)
}

func TestVariantRows_SkipsNonRankingRows(t *testing.T) {
	rows := []types.QueryRow{
		{Query: "a", Page: "/x", Clicks: 1, Impressions: 0, AvgPosition: pos(2)},
		{Query: "b", Page: "/y", Clicks: 1, Impressions: 10},
		{Query: "c", Page: "/z", Clicks: 1, Impressions: 10, AvgPosition: pos(3)},
	}
	assert.Len(t, variantRows(rows, variantAll), 1)
}
