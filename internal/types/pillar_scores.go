package types

// SegmentAuthority is the authority breakdown for one page-segment variant.
type SegmentAuthority struct {
	Behaviour int `json:"behaviour"`
	Ranking   int `json:"ranking"`
	Backlinks int `json:"backlinks"`
	Reviews   int `json:"reviews"`
	Total     int `json:"total"`
}

// AuthorityScores holds the authority pillar computed three ways: over all
// rows, excluding education rows, and over money rows only. The backlink and
// review components are shared across variants.
type AuthorityScores struct {
	Score        int              `json:"score"`
	All          SegmentAuthority `json:"all"`
	NonEducation SegmentAuthority `json:"non_education"`
	Money        SegmentAuthority `json:"money"`
}

// BrandOverlay is the brand pillar result: a 0-100 score, a coarse label,
// and deterministic diagnostic notes.
type BrandOverlay struct {
	Score int      `json:"score"`
	Label string   `json:"label"`
	Notes []string `json:"notes"`
}

// PillarScores is the audit's composite record. Created fresh on every audit
// run and never mutated after construction; persisted keyed by
// (property_url, audit_date).
type PillarScores struct {
	Visibility     int             `json:"visibility"`
	Authority      AuthorityScores `json:"authority"`
	ContentSchema  int             `json:"content_schema"`
	LocalEntity    int             `json:"local_entity"`
	ServiceArea    int             `json:"service_area"`
	BrandOverlay   BrandOverlay    `json:"brand_overlay"`
	CoverageScore  int             `json:"coverage_score"`
	DiversityScore int             `json:"diversity_score"`
}
