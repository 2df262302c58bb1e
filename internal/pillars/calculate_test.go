package pillars

import (
	"testing"

	"github.com/alanranger/seo-audit-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_CompleteRecordFromMissingInputs(t *testing.T) {
	// Every optional input absent: the record still comes back complete,
	// using the documented neutral defaults.
	got := Calculate(Inputs{})

	assert.Equal(t, neutralScore, got.Visibility)
	assert.Equal(t, neutralScore, got.Authority.All.Behaviour)
	assert.Equal(t, neutralScore, got.Authority.All.Ranking)
	assert.Equal(t, 0, got.Authority.All.Backlinks)
	assert.Equal(t, neutralScore, got.Authority.All.Reviews)
	assert.Equal(t, 0, got.ContentSchema)
	assert.NotEmpty(t, got.BrandOverlay.Label)
}

func TestCalculate_EndToEndScenario(t *testing.T) {
	// Three pages: education, money, system. The money behaviour variant
	// must be computed from the money row only.
	search := &types.SearchData{
		PropertyURL: "https://www.alanranger.com",
		Queries: []types.QueryRow{
			{Query: "how to photograph x", Page: "/blog-on-photography/x", Clicks: 2, Impressions: 100, AvgPosition: pos(5)},
			{Query: "photography workshops", Page: "/photography-workshops", Clicks: 20, Impressions: 200, AvgPosition: pos(2)},
			{Query: "terms", Page: "/terms", Clicks: 0, Impressions: 10, AvgPosition: pos(30)},
		},
	}

	got := Calculate(Inputs{Search: search})

	// Money row alone: CTR 10% beats both targets -> behaviour 100.
	assert.Equal(t, 100, got.Authority.Money.Behaviour)
	// All rows blended land lower.
	assert.Less(t, got.Authority.All.Behaviour, got.Authority.Money.Behaviour)

	// Impression-weighted avg position: (100*5 + 200*2 + 10*30) / 310 = 3.87.
	// Visibility = round(100 - (2.87/39)*90) = round(93.37) = 93.
	assert.Equal(t, 93, got.Visibility)
}

func TestCalculate_IsPure(t *testing.T) {
	search := &types.SearchData{
		Queries: []types.QueryRow{
			{Query: "alan ranger", Page: "/", Clicks: 10, Impressions: 100, AvgPosition: pos(1)},
		},
	}
	in := Inputs{Search: search}

	first := Calculate(in)
	second := Calculate(in)
	assert.Equal(t, first, second)
}

func TestOverallSearchStats(t *testing.T) {
	avg, ctr, ok := overallSearchStats([]types.QueryRow{
		{Clicks: 10, Impressions: 100, AvgPosition: pos(10)},
		{Clicks: 30, Impressions: 300, AvgPosition: pos(2)},
	})
	require.True(t, ok)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 0.1, ctr)

	_, _, ok = overallSearchStats(nil)
	assert.False(t, ok)
}
