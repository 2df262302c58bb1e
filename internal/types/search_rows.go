// Package types provides type definitions for structured data used throughout the audit pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PageRow represents one URL's aggregated search performance over a date window.
// Rows are produced by the Search Console collector and consumed read-only by
// classifiers and scorers; they exist only for the duration of one audit run.
type PageRow struct {
	URL             string   `json:"url"`
	Clicks          int      `json:"clicks"`
	Impressions     int      `json:"impressions"`
	CTR             float64  `json:"ctr"`
	AvgPosition     *float64 `json:"avg_position,omitempty"`
	Title           string   `json:"title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
}

// QueryRow represents one (query, page) pair's search performance.
type QueryRow struct {
	Query       string   `json:"query"`
	Page        string   `json:"page,omitempty"`
	Clicks      int      `json:"clicks"`
	Impressions int      `json:"impressions"`
	CTR         float64  `json:"ctr"`
	AvgPosition *float64 `json:"avg_position,omitempty"`
}

// Position returns the row's average position, or the given fallback when
// the position is missing.
func (r *PageRow) Position(fallback float64) float64 {
	if r.AvgPosition == nil {
		return fallback
	}
	return *r.AvgPosition
}

// Position returns the row's average position, or the given fallback when
// the position is missing.
func (r *QueryRow) Position(fallback float64) float64 {
	if r.AvgPosition == nil {
		return fallback
	}
	return *r.AvgPosition
}

// SearchData bundles the page-level and query-level rows collected for one
// property over one date window.
type SearchData struct {
	PropertyURL string     `json:"property_url"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Pages       []PageRow  `json:"pages"`
	Queries     []QueryRow `json:"queries"`
}
