package pillars

import (
	"testing"

	"github.com/alanranger/seo-audit-agent/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestComputeContentSchema_ZeroWhenAbsentOrFailed(t *testing.T) {
	assert.Equal(t, contentSchemaScores{}, computeContentSchema(nil))
	failed := &types.SchemaAudit{Status: "error"}
	assert.Equal(t, contentSchemaScores{}, computeContentSchema(failed))
}

func TestComputeContentSchema_FullMarks(t *testing.T) {
	foundation := map[string]bool{}
	for _, name := range types.FoundationTypes {
		foundation[name] = true
	}
	rich := map[string]bool{}
	for _, name := range types.RichResultTypes {
		rich[name] = true
	}
	detected := make([]string, 15)
	for i := range detected {
		detected[i] = types.RichResultTypes[i%len(types.RichResultTypes)]
	}

	audit := &types.SchemaAudit{
		Status: types.StatusOK,
		Data: &types.SchemaAuditData{
			TotalPages:       100,
			PagesWithSchema:  100,
			Foundation:       foundation,
			RichEligible:     rich,
			AllDetectedTypes: detected,
		},
	}

	got := computeContentSchema(audit)
	assert.Equal(t, 100, got.Total)
	assert.Equal(t, 100, got.Coverage)
	assert.Equal(t, 100, got.Diversity)
}

func TestComputeContentSchema_PartialComponents(t *testing.T) {
	audit := &types.SchemaAudit{
		Status: types.StatusOK,
		Data: &types.SchemaAuditData{
			TotalPages:      200,
			PagesWithSchema: 100,
			// 2 of 4 foundation types.
			Foundation: map[string]bool{"Organization": true, "WebSite": true},
			// 0 of 11 rich-result types.
			RichEligible:     map[string]bool{},
			AllDetectedTypes: []string{"Organization", "WebSite", "Article"},
		},
	}

	got := computeContentSchema(audit)
	// foundation 50, rich 0, coverage 50, diversity 3/15*100 = 20.
	// 0.3*50 + 0.35*0 + 0.2*50 + 0.15*20 = 15 + 0 + 10 + 3 = 28.
	assert.Equal(t, 28, got.Total)
	assert.Equal(t, 50, got.Coverage)
	assert.Equal(t, 20, got.Diversity)
}
