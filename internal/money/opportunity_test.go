package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pos(v float64) *float64 { return &v }

func TestClassifyOpportunity_HighOpportunityBelowBandTarget(t *testing.T) {
	// Position 5 targets 5% CTR; 1% is well short.
	got := ClassifyOpportunity(PageMetricsInput{CTR: 0.01, AvgPosition: pos(5), Impressions: 500}, nil)
	assert.Equal(t, HighOpportunity, got.Category)
	assert.Equal(t, "amber", got.CategoryColor)
	assert.Contains(t, got.Recommendation, "position 5.0")
	assert.Contains(t, got.Recommendation, "500 impressions")
}

func TestClassifyOpportunity_MaintainWhenCTRHealthy(t *testing.T) {
	// Same page with a healthy CTR is established, not an opportunity.
	got := ClassifyOpportunity(PageMetricsInput{CTR: 0.06, AvgPosition: pos(5), Impressions: 500}, nil)
	assert.Equal(t, Maintain, got.Category)
	assert.Equal(t, "green", got.CategoryColor)
}

func TestClassifyOpportunity_VisibilityFixWhenUnranked(t *testing.T) {
	got := ClassifyOpportunity(PageMetricsInput{CTR: 0, AvgPosition: nil, Impressions: 50}, nil)
	assert.Equal(t, VisibilityFix, got.Category)
	assert.Equal(t, "red", got.CategoryColor)
	assert.Contains(t, got.Recommendation, "internal linking")
}

func TestClassifyOpportunity_VisibilityFixBelowImpressionFloor(t *testing.T) {
	// Good position and CTR band miss, but too few impressions to qualify
	// as a high opportunity.
	got := ClassifyOpportunity(PageMetricsInput{CTR: 0.01, AvgPosition: pos(5), Impressions: 50}, nil)
	assert.Equal(t, VisibilityFix, got.Category)
}

func TestClassifyOpportunity_SchemaGapNamesAllThreeWhenAbsent(t *testing.T) {
	got := ClassifyOpportunity(PageMetricsInput{CTR: 0.01, AvgPosition: pos(5), Impressions: 500}, nil)
	assert.Contains(t, got.Recommendation, "Product, Event, FAQPage schema")
}

func TestClassifyOpportunity_SchemaGapNamesOnlyMissing(t *testing.T) {
	schema := &SchemaPresence{Types: []string{"Product", "FAQPage"}}
	got := ClassifyOpportunity(PageMetricsInput{CTR: 0.01, AvgPosition: pos(5), Impressions: 500}, schema)
	assert.Contains(t, got.Recommendation, "add Event schema")
	assert.NotContains(t, got.Recommendation, "Product,")
}

func TestClassifyOpportunity_NoSchemaPhraseWhenComplete(t *testing.T) {
	schema := &SchemaPresence{Types: []string{"Product", "Event", "FAQPage"}}
	got := ClassifyOpportunity(PageMetricsInput{CTR: 0.01, AvgPosition: pos(5), Impressions: 500}, schema)
	assert.NotContains(t, got.Recommendation, "schema")
}

func TestCTRTargetBands(t *testing.T) {
	assert.Equal(t, 0.05, ctrTargetForPosition(6))
	assert.Equal(t, 0.03, ctrTargetForPosition(10))
	assert.Equal(t, 0.02, ctrTargetForPosition(15))
	assert.Equal(t, 0.0, ctrTargetForPosition(16))
}
