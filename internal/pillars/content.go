package pillars

import (
	"math"

	"github.com/alanranger/seo-audit-agent/internal/types"
)

// Content/schema component weights.
const (
	foundationWeight = 0.3
	richResultWeight = 0.35
	coverageWeight   = 0.2
	diversityWeight  = 0.15
	// diversityTargetTypes is the number of distinct schema types that earns
	// a full diversity score.
	diversityTargetTypes = 15
)

// contentSchemaScores holds the content pillar and its coverage/diversity
// sub-scores, which are surfaced separately on the audit record.
type contentSchemaScores struct {
	Total     int
	Coverage  int
	Diversity int
}

// computeContentSchema scores the structured-data footprint of the site.
// All components are zero when the audit is absent or failed.
func computeContentSchema(audit *types.SchemaAudit) contentSchemaScores {
	if !audit.OK() {
		return contentSchemaScores{}
	}
	data := audit.Data

	foundation := presentFraction(data.Foundation, types.FoundationTypes) * 100
	rich := presentFraction(data.RichEligible, types.RichResultTypes) * 100

	coverage := 0.0
	if data.TotalPages > 0 {
		coverage = float64(data.PagesWithSchema) / float64(data.TotalPages) * 100
	}

	diversity := math.Min(float64(len(data.AllDetectedTypes))/diversityTargetTypes, 1) * 100

	total := foundationWeight*foundation + richResultWeight*rich +
		coverageWeight*coverage + diversityWeight*diversity

	return contentSchemaScores{
		Total:     clampScore(total),
		Coverage:  clampScore(coverage),
		Diversity: clampScore(diversity),
	}
}

// presentFraction returns the fraction of the expected type names marked
// true in the detection map.
func presentFraction(detected map[string]bool, expected []string) float64 {
	if len(expected) == 0 {
		return 0
	}
	present := 0
	for _, name := range expected {
		if detected[name] {
			present++
		}
	}
	return float64(present) / float64(len(expected))
}
