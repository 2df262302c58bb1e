package pillars

import "github.com/alanranger/seo-audit-agent/internal/types"

// Local-entity bonuses and service-area scaling.
const (
	knowledgePanelBonus = 10
	locationBonus       = 5
	// pointsPerServiceArea scales the service-area score: 8 areas or more
	// earn the full 100.
	pointsPerServiceArea = 12.5
)

// computeLocalEntity scores local-entity strength from NAP consistency plus
// bonuses for a detected knowledge panel and at least one listed location.
// Without local signals it falls back to a heuristic over CTR and the
// visibility pillar.
func computeLocalEntity(signals *types.LocalSignals, visibility int, overallCTR float64) int {
	if !signals.OK() {
		return clampScore(float64(visibility)*0.6 + normalisePct(overallCTR, overallCTRTarget)*0.4)
	}

	score := signals.Data.NAPConsistencyScore
	if signals.Data.KnowledgePanelDetected {
		score += knowledgePanelBonus
	}
	if len(signals.Data.Locations) > 0 {
		score += locationBonus
	}
	return clampScore(score)
}

// computeServiceArea scales with the number of service areas listed, then
// discounts proportionally when NAP consistency is below 100%. Without local
// signals it falls back to a heuristic over the visibility pillar.
func computeServiceArea(signals *types.LocalSignals, visibility int) int {
	if !signals.OK() {
		return clampScore(float64(visibility) * 0.5)
	}

	areas := float64(len(signals.Data.ServiceAreas))
	score := areas * pointsPerServiceArea
	if score > 100 {
		score = 100
	}

	if signals.Data.NAPConsistencyScore < 100 {
		score = score * signals.Data.NAPConsistencyScore / 100
	}
	return clampScore(score)
}
