package types

// Aggregation scopes for portfolio segment rollups.
const (
	// ScopeAllPages covers every page the property reported; its totals are
	// calibrated against the trusted daily time series.
	ScopeAllPages = "all_pages"
	// ScopeActiveCycles covers only the tracked-URL subset. It is a sampled
	// subset and is never calibrated to the site total.
	ScopeActiveCycles = "active_cycles_only"
)

// PortfolioSegmentMetricsRow is one (run_id, site_url, segment, scope,
// window_days) rollup. Rows are upserted on their natural composite key and
// recomputed wholesale on each aggregation run, never incrementally patched.
type PortfolioSegmentMetricsRow struct {
	RunID           string   `json:"run_id"`
	SiteURL         string   `json:"site_url"`
	Segment         string   `json:"segment"`
	Scope           string   `json:"scope"`
	WindowDays      int      `json:"window_days,omitempty"`
	PagesCount      int      `json:"pages_count"`
	Clicks          float64  `json:"clicks"`
	Impressions     float64  `json:"impressions"`
	CTR             float64  `json:"ctr"`
	AvgPosition     *float64 `json:"avg_position,omitempty"`
	AICitations     int      `json:"ai_citations"`
	AIOverviewCount int      `json:"ai_overview_count"`
}

// DailyOverviewPoint is one day of the site-wide trusted time series used to
// calibrate all_pages rollups.
type DailyOverviewPoint struct {
	Date        string  `json:"date"`
	Clicks      float64 `json:"clicks"`
	Impressions float64 `json:"impressions"`
}
