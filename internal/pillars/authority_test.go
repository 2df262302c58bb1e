package pillars

import (
	"testing"

	"github.com/alanranger/seo-audit-agent/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestBacklinkScore_ZeroWithoutData(t *testing.T) {
	assert.Equal(t, 0, backlinkScore(nil))
}

func TestBacklinkScore_Components(t *testing.T) {
	// 0.5*min(50,100) + 0.3*min(200/10,100) + 0.2*min(0.8*100,100)
	// = 25 + 6 + 16 = 47.
	got := backlinkScore(&types.BacklinkMetrics{
		ReferringDomains: 50,
		TotalBacklinks:   200,
		FollowRatio:      0.8,
	})
	assert.Equal(t, 47, got)
}

func TestBacklinkScore_CapsEachComponent(t *testing.T) {
	got := backlinkScore(&types.BacklinkMetrics{
		ReferringDomains: 5000,
		TotalBacklinks:   1000000,
		FollowRatio:      2.0,
	})
	assert.Equal(t, 100, got)
}

func TestReviewScore_NeutralWithoutAnySource(t *testing.T) {
	assert.Equal(t, neutralScore, reviewScore(nil, nil))
}

func TestReviewScore_GBPOnly(t *testing.T) {
	local := &types.LocalSignals{
		Status: types.StatusOK,
		Data:   &types.LocalSignalsData{GBPRating: 4.5},
	}
	// 4.5/5 * 100 = 90.
	assert.Equal(t, 90, reviewScore(local, nil))
}

func TestReviewScore_AveragesBothSources(t *testing.T) {
	local := &types.LocalSignals{
		Status: types.StatusOK,
		Data:   &types.LocalSignalsData{GBPRating: 5},
	}
	reviews := &types.SiteReviews{SiteRating: 4}
	// (100 + 80) / 2 = 90.
	assert.Equal(t, 90, reviewScore(local, reviews))
}

func TestReviewScore_IgnoresInvalidSiteRating(t *testing.T) {
	reviews := &types.SiteReviews{SiteRating: 9.9}
	assert.Equal(t, neutralScore, reviewScore(nil, reviews))
}

func TestAuthorityTotal_Weights(t *testing.T) {
	// 0.4*80 + 0.2*60 + 0.2*40 + 0.2*90 = 32 + 12 + 8 + 18 = 70.
	assert.Equal(t, 70, authorityTotal(80, 60, 40, 90))
}

func TestComputeAuthority_SharedComponentsAcrossVariants(t *testing.T) {
	rows := []types.QueryRow{
		{Query: "workshops", Page: "/photography-workshops-uk", Clicks: 50, Impressions: 1000, AvgPosition: pos(4)},
		{Query: "how to", Page: "/blog-on-photography/x", Clicks: 10, Impressions: 200, AvgPosition: pos(7)},
	}

	got := computeAuthority(rows, 40, 90)

	// Backlink and review components are not segment-specific.
	for _, variant := range []types.SegmentAuthority{got.All, got.NonEducation, got.Money} {
		assert.Equal(t, 40, variant.Backlinks)
		assert.Equal(t, 90, variant.Reviews)
	}
	assert.Equal(t, got.All.Total, got.Score)
}
