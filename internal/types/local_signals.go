package types

// LocalSignalsData holds local-entity signals gathered for a property:
// NAP (name/address/phone) consistency, knowledge panel detection, listed
// locations and service areas, and Google Business Profile review figures.
type LocalSignalsData struct {
	NAPConsistencyScore    float64  `json:"nap_consistency_score"`
	KnowledgePanelDetected bool     `json:"knowledge_panel_detected"`
	Locations              []string `json:"locations"`
	ServiceAreas           []string `json:"service_areas"`
	GBPRating              float64  `json:"gbp_rating"`
	GBPReviewCount         int      `json:"gbp_review_count"`
}

// LocalSignals wraps local-entity signals with a collection status.
type LocalSignals struct {
	Status string            `json:"status"`
	Data   *LocalSignalsData `json:"data,omitempty"`
}

// OK reports whether local signals were collected successfully.
func (s *LocalSignals) OK() bool {
	return s != nil && s.Status == StatusOK && s.Data != nil
}

// BacklinkMetrics holds the backlink profile figures for a property.
type BacklinkMetrics struct {
	ReferringDomains int     `json:"referring_domains"`
	TotalBacklinks   int     `json:"total_backlinks"`
	FollowRatio      float64 `json:"follow_ratio"`
}

// SiteReviews holds site-wide review figures from an external review
// platform. When absent or invalid, scorers fall back to the configured
// snapshot (see config.TrustpilotSnapshot).
type SiteReviews struct {
	SiteRating      float64 `json:"site_rating"`
	SiteReviewCount int     `json:"site_review_count"`
	LastUpdated     string  `json:"last_updated,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

// Valid reports whether the review figures are usable for scoring.
func (r *SiteReviews) Valid() bool {
	return r != nil && r.SiteRating > 0 && r.SiteRating <= 5
}
