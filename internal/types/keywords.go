package types

// KeywordRow is one classified keyword with its best ranking and AI-visibility
// signals, persisted per run.
type KeywordRow struct {
	Keyword              string  `json:"keyword"`
	Segment              string  `json:"segment"`
	SegmentConfidence    float64 `json:"segment_confidence"`
	SegmentReason        string  `json:"segment_reason"`
	SegmentSource        string  `json:"segment_source"`
	BestRankGroup        int     `json:"best_rank_group,omitempty"`
	BestURL              string  `json:"best_url,omitempty"`
	HasAIOverview        bool    `json:"has_ai_overview"`
	AIAlanCitationsCount int     `json:"ai_alan_citations_count"`
	// CitedURLs is the deduplicated list of this property's URLs cited in
	// the keyword's AI overview. It can be shorter than
	// AIAlanCitationsCount (dedup/truncation upstream), so site-level
	// citation totals use the count field, not this slice.
	CitedURLs []string `json:"cited_urls,omitempty"`
}
