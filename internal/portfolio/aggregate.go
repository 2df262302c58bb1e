// Package portfolio rolls page-level search metrics up into named business
// segments across scopes and trailing windows.
package portfolio

import (
	"sort"
	"strings"

	"github.com/alanranger/seo-audit-agent/internal/segment"
	"github.com/alanranger/seo-audit-agent/internal/types"
)

// Segment names produced by the rollup, in the order rows are emitted.
const (
	SegmentSite       = "site"
	SegmentMoney      = "money"
	SegmentAcademy    = "academy"
	SegmentLanding    = "landing"
	SegmentEvent      = "event"
	SegmentProduct    = "product"
	SegmentBlog       = "blog"
	SegmentOther      = "other"
	SegmentAllTracked = "all_tracked"
)

// segmentOrder fixes the emission order so recomputed rollups diff cleanly.
var segmentOrder = []string{
	SegmentSite, SegmentMoney, SegmentAcademy, SegmentLanding,
	SegmentEvent, SegmentProduct, SegmentBlog, SegmentOther,
	SegmentAllTracked,
}

// Fixed paths for the academy and blog segments.
const (
	academyPath    = "/photography-academy"
	blogPathPrefix = "/blog-on-photography"
)

// PageInput is one page's metrics for the window being aggregated. Tracked
// marks membership in the active-cycles URL subset.
type PageInput struct {
	URL         string
	Clicks      float64
	Impressions float64
	AvgPosition *float64
	Tracked     bool
}

// RunInput is everything one aggregation pass consumes. WindowDays is zero
// for the unwindowed daily variant. Overview is the site-wide trusted daily
// series used to calibrate all_pages totals.
type RunInput struct {
	RunID      string
	SiteURL    string
	WindowDays int
	Pages      []PageInput
	Keywords   []types.KeywordRow
	Overview   []types.DailyOverviewPoint
}

// SegmentsForPage returns every rollup segment the page belongs to. Every
// page is in "site"; money pages are also in "money" and their sub-segment;
// blog and academy pages in theirs; everything else falls to "other".
// Tracked pages additionally join "all_tracked".
func SegmentsForPage(p PageInput) []string {
	segments := []string{SegmentSite}

	path := segment.NormalizePath(p.URL)
	switch {
	case path == academyPath:
		segments = append(segments, SegmentAcademy)
	case strings.HasPrefix(path, blogPathPrefix):
		segments = append(segments, SegmentBlog)
	case segment.ClassifyPage(p.URL, "", "") == segment.PageMoney:
		segments = append(segments, SegmentMoney)
		switch segment.ClassifyMoneySubSegment(p.URL) {
		case segment.MoneyEvent:
			segments = append(segments, SegmentEvent)
		case segment.MoneyProduct:
			segments = append(segments, SegmentProduct)
		default:
			segments = append(segments, SegmentLanding)
		}
	default:
		segments = append(segments, SegmentOther)
	}

	if p.Tracked {
		segments = append(segments, SegmentAllTracked)
	}
	return segments
}

// accumulator collects one segment's running totals within one scope.
type accumulator struct {
	pages           int
	clicks          float64
	impressions     float64
	positionWeight  float64
	positionWeights float64
	aiCitations     int
	aiOverviews     int
}

func (a *accumulator) addPage(p PageInput) {
	a.pages++
	a.clicks += p.Clicks
	a.impressions += p.Impressions
	// Zero-impression pages are excluded from the position weighting to
	// avoid division artifacts.
	if p.AvgPosition != nil && p.Impressions > 0 {
		a.positionWeight += *p.AvgPosition * p.Impressions
		a.positionWeights += p.Impressions
	}
}

// Aggregate computes the calibrated per-segment rollups for one run: every
// segment in both scopes. Rows are keyed by (run_id, site_url, segment,
// scope, window_days) and are safe to upsert idempotently.
//
// Calibration: all_pages totals are scaled so the run reconciles to the
// trusted overview series; the active_cycles_only scope is a sampled subset
// and is never calibrated.
func Aggregate(in RunInput) []types.PortfolioSegmentMetricsRow {
	scaleClicks, scaleImpressions := calibrationScales(in)

	allScope := aggregateScope(in, false)
	trackedScope := aggregateScope(in, true)

	var rows []types.PortfolioSegmentMetricsRow
	rows = append(rows, emitScope(in, allScope, types.ScopeAllPages, scaleClicks, scaleImpressions)...)
	rows = append(rows, emitScope(in, trackedScope, types.ScopeActiveCycles, 1, 1)...)
	return rows
}

// aggregateScope runs one deterministic pass over the input pages and
// keywords for one scope. Row order does not affect the totals: everything
// here is commutative summation.
func aggregateScope(in RunInput, trackedOnly bool) map[string]*accumulator {
	acc := map[string]*accumulator{}
	get := func(name string) *accumulator {
		a, ok := acc[name]
		if !ok {
			a = &accumulator{}
			acc[name] = a
		}
		return a
	}

	for _, page := range in.Pages {
		if trackedOnly && !page.Tracked {
			continue
		}
		for _, name := range SegmentsForPage(page) {
			get(name).addPage(page)
		}
	}

	attributeAISignals(in.Keywords, get, trackedOnly)
	return acc
}

// attributeAISignals distributes AI citation and overview counts onto
// segments. Per-segment counts come from classifying each cited URL; the
// site total uses the keyword's stored citation count directly, because the
// cited-URL list can be shorter than the recorded count (upstream dedup or
// truncation). The two can therefore legitimately disagree; that mismatch is
// documented behaviour, not something to reconcile here.
func attributeAISignals(keywords []types.KeywordRow, get func(string) *accumulator, trackedOnly bool) {
	if trackedOnly {
		// AI signals are keyword-level, not page-level; they are reported
		// on the whole-site scope only.
		return
	}

	for _, kw := range keywords {
		get(SegmentSite).aiCitations += kw.AIAlanCitationsCount
		if kw.HasAIOverview {
			get(SegmentSite).aiOverviews++
		}

		touched := map[string]bool{}
		for _, cited := range kw.CitedURLs {
			for _, name := range SegmentsForPage(PageInput{URL: cited}) {
				if name == SegmentSite || name == SegmentAllTracked {
					continue
				}
				get(name).aiCitations++
				touched[name] = true
			}
		}
		if kw.HasAIOverview {
			for name := range touched {
				get(name).aiOverviews++
			}
		}
	}
}

// calibrationScales derives the per-run multiplicative factors that
// reconcile raw all-pages totals with the trusted overview series. Factors
// default to 1 when either side is empty.
func calibrationScales(in RunInput) (scaleClicks, scaleImpressions float64) {
	scaleClicks, scaleImpressions = 1, 1

	var overviewClicks, overviewImpressions float64
	for _, point := range in.Overview {
		overviewClicks += point.Clicks
		overviewImpressions += point.Impressions
	}

	var rawClicks, rawImpressions float64
	for _, page := range in.Pages {
		rawClicks += page.Clicks
		rawImpressions += page.Impressions
	}

	if overviewClicks > 0 && rawClicks > 0 {
		scaleClicks = overviewClicks / rawClicks
	}
	if overviewImpressions > 0 && rawImpressions > 0 {
		scaleImpressions = overviewImpressions / rawImpressions
	}
	return scaleClicks, scaleImpressions
}

// emitScope converts a scope's accumulators into output rows in the fixed
// segment order, applying the calibration scales.
func emitScope(in RunInput, acc map[string]*accumulator, scope string, scaleClicks, scaleImpressions float64) []types.PortfolioSegmentMetricsRow {
	names := make([]string, 0, len(acc))
	for name := range acc {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return segmentRank(names[i]) < segmentRank(names[j])
	})

	var rows []types.PortfolioSegmentMetricsRow
	for _, name := range names {
		a := acc[name]

		clicks := a.clicks * scaleClicks
		impressions := a.impressions * scaleImpressions

		ctr := 0.0
		if impressions > 0 {
			ctr = clicks / impressions
		}

		var avgPosition *float64
		if a.positionWeights > 0 {
			avg := a.positionWeight / a.positionWeights
			avgPosition = &avg
		}

		rows = append(rows, types.PortfolioSegmentMetricsRow{
			RunID:           in.RunID,
			SiteURL:         in.SiteURL,
			Segment:         name,
			Scope:           scope,
			WindowDays:      in.WindowDays,
			PagesCount:      a.pages,
			Clicks:          clicks,
			Impressions:     impressions,
			CTR:             ctr,
			AvgPosition:     avgPosition,
			AICitations:     a.aiCitations,
			AIOverviewCount: a.aiOverviews,
		})
	}
	return rows
}

// segmentRank orders segments by the fixed emission order, unknown names
// last.
func segmentRank(name string) int {
	for i, s := range segmentOrder {
		if s == name {
			return i
		}
	}
	return len(segmentOrder)
}
