package portfolio

import (
	"testing"

	"github.com/alanranger/seo-audit-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(v float64) *float64 { return &v }

func findRow(t *testing.T, rows []types.PortfolioSegmentMetricsRow, seg, scope string) types.PortfolioSegmentMetricsRow {
	t.Helper()
	for _, row := range rows {
		if row.Segment == seg && row.Scope == scope {
			return row
		}
	}
	t.Fatalf("no row for segment %q scope %q", seg, scope)
	return types.PortfolioSegmentMetricsRow{}
}

func TestSegmentsForPage(t *testing.T) {
	assert.Contains(t, SegmentsForPage(PageInput{URL: "/blog-on-photography/light"}), SegmentBlog)
	assert.Contains(t, SegmentsForPage(PageInput{URL: "/photography-academy"}), SegmentAcademy)

	event := SegmentsForPage(PageInput{URL: "/photographic-workshops-near-me"})
	assert.Contains(t, event, SegmentMoney)
	assert.Contains(t, event, SegmentEvent)

	product := SegmentsForPage(PageInput{URL: "/photography-gift-vouchers"})
	assert.Contains(t, product, SegmentProduct)

	landing := SegmentsForPage(PageInput{URL: "/photography-courses-near-me"})
	assert.Contains(t, landing, SegmentLanding)

	other := SegmentsForPage(PageInput{URL: "/terms"})
	assert.Contains(t, other, SegmentOther)

	tracked := SegmentsForPage(PageInput{URL: "/terms", Tracked: true})
	assert.Contains(t, tracked, SegmentAllTracked)

	// Every page is in the site segment.
	for _, p := range []string{"/terms", "/blog-on-photography/x", "/photography-workshops-uk"} {
		assert.Contains(t, SegmentsForPage(PageInput{URL: p}), SegmentSite)
	}
}

func TestAggregate_CalibrationScaling(t *testing.T) {
	in := RunInput{
		RunID:   "2026-08-30",
		SiteURL: "https://www.alanranger.com",
		Pages: []PageInput{
			{URL: "/photography-workshops-uk", Clicks: 50, Impressions: 500, AvgPosition: pos(4)},
			{URL: "/terms", Clicks: 450, Impressions: 4500, AvgPosition: pos(12)},
		},
		// Raw all-pages clicks 500 against a trusted overview of 550:
		// scale 1.1. Impressions 5000 against 10000: scale 2.
		Overview: []types.DailyOverviewPoint{
			{Date: "2026-08-29", Clicks: 250, Impressions: 5000},
			{Date: "2026-08-30", Clicks: 300, Impressions: 5000},
		},
	}

	rows := Aggregate(in)

	moneyRow := findRow(t, rows, SegmentMoney, types.ScopeAllPages)
	assert.InDelta(t, 55.0, moneyRow.Clicks, 1e-9)
	assert.InDelta(t, 1000.0, moneyRow.Impressions, 1e-9)

	siteRow := findRow(t, rows, SegmentSite, types.ScopeAllPages)
	assert.InDelta(t, 550.0, siteRow.Clicks, 1e-9)
	assert.InDelta(t, 10000.0, siteRow.Impressions, 1e-9)
}

func TestAggregate_ActiveCyclesScopeNeverCalibrated(t *testing.T) {
	in := RunInput{
		RunID:   "2026-08",
		SiteURL: "https://www.alanranger.com",
		Pages: []PageInput{
			{URL: "/photography-workshops-uk", Clicks: 50, Impressions: 500, AvgPosition: pos(4), Tracked: true},
			{URL: "/terms", Clicks: 450, Impressions: 4500, AvgPosition: pos(12)},
		},
		Overview: []types.DailyOverviewPoint{{Date: "2026-08-01", Clicks: 1000, Impressions: 10000}},
	}

	rows := Aggregate(in)

	// The tracked subset keeps its raw totals even though all_pages scaled.
	trackedSite := findRow(t, rows, SegmentSite, types.ScopeActiveCycles)
	assert.InDelta(t, 50.0, trackedSite.Clicks, 1e-9)
	assert.InDelta(t, 500.0, trackedSite.Impressions, 1e-9)
}

func TestAggregate_ImpressionWeightedAvgPosition(t *testing.T) {
	in := RunInput{
		RunID:   "2026-08-30",
		SiteURL: "https://www.alanranger.com",
		Pages: []PageInput{
			{URL: "/photography-workshops-uk", Clicks: 1, Impressions: 100, AvgPosition: pos(10)},
			{URL: "/photography-courses-near-me", Clicks: 3, Impressions: 300, AvgPosition: pos(2)},
			// Zero impressions: excluded from the weighting.
			{URL: "/landscape-photography-workshops", Clicks: 0, Impressions: 0, AvgPosition: pos(1)},
		},
	}

	rows := Aggregate(in)
	moneyRow := findRow(t, rows, SegmentMoney, types.ScopeAllPages)
	require.NotNil(t, moneyRow.AvgPosition)
	// (100*10 + 300*2) / 400 = 4.0
	assert.Equal(t, 4.0, *moneyRow.AvgPosition)
	assert.Equal(t, 3, moneyRow.PagesCount)
}

func TestAggregate_AICitationAttribution(t *testing.T) {
	in := RunInput{
		RunID:   "2026-08-30",
		SiteURL: "https://www.alanranger.com",
		Pages: []PageInput{
			{URL: "/photography-workshops-uk", Clicks: 1, Impressions: 10, AvgPosition: pos(3)},
			{URL: "/blog-on-photography/x", Clicks: 1, Impressions: 10, AvgPosition: pos(3)},
		},
		Keywords: []types.KeywordRow{
			{
				Keyword:              "photography workshops",
				HasAIOverview:        true,
				AIAlanCitationsCount: 3,
				// One cited URL recorded against a count of 3: the site
				// total uses the count, segment attribution the URLs.
				CitedURLs: []string{"/photography-workshops-uk"},
			},
			{
				Keyword:              "how to photograph stars",
				HasAIOverview:        true,
				AIAlanCitationsCount: 1,
				CitedURLs:            []string{"/blog-on-photography/x"},
			},
		},
	}

	rows := Aggregate(in)

	siteRow := findRow(t, rows, SegmentSite, types.ScopeAllPages)
	assert.Equal(t, 4, siteRow.AICitations)
	assert.Equal(t, 2, siteRow.AIOverviewCount)

	moneyRow := findRow(t, rows, SegmentMoney, types.ScopeAllPages)
	assert.Equal(t, 1, moneyRow.AICitations)
	assert.Equal(t, 1, moneyRow.AIOverviewCount)

	blogRow := findRow(t, rows, SegmentBlog, types.ScopeAllPages)
	assert.Equal(t, 1, blogRow.AICitations)

	// Segment citations under-sum the site total by design.
	assert.Less(t, moneyRow.AICitations+blogRow.AICitations, siteRow.AICitations)
}

func TestAggregate_RowKeyFieldsPopulated(t *testing.T) {
	in := RunInput{
		RunID:      "2026-08-30",
		SiteURL:    "https://www.alanranger.com",
		WindowDays: 7,
		Pages:      []PageInput{{URL: "/terms", Clicks: 1, Impressions: 10, AvgPosition: pos(5)}},
	}

	rows := Aggregate(in)
	require.NotEmpty(t, rows)
	for _, row := range rows {
		assert.Equal(t, "2026-08-30", row.RunID)
		assert.Equal(t, "https://www.alanranger.com", row.SiteURL)
		assert.Equal(t, 7, row.WindowDays)
	}
}

func TestAggregate_DeterministicAcrossRuns(t *testing.T) {
	in := RunInput{
		RunID:   "2026-08-30",
		SiteURL: "https://www.alanranger.com",
		Pages: []PageInput{
			{URL: "/photography-workshops-uk", Clicks: 5, Impressions: 100, AvgPosition: pos(3)},
			{URL: "/terms", Clicks: 1, Impressions: 50, AvgPosition: pos(20)},
		},
	}

	first := Aggregate(in)
	second := Aggregate(in)
	assert.Equal(t, first, second)
}
