package pillars

import (
	"testing"

	"github.com/alanranger/seo-audit-agent/internal/types"
	"github.com/stretchr/testify/assert"
)

func localSignals(data types.LocalSignalsData) *types.LocalSignals {
	return &types.LocalSignals{Status: types.StatusOK, Data: &data}
}

func TestComputeLocalEntity_NAPPlusBonuses(t *testing.T) {
	signals := localSignals(types.LocalSignalsData{
		NAPConsistencyScore:    80,
		KnowledgePanelDetected: true,
		Locations:              []string{"Coventry"},
	})
	// 80 + 10 + 5 = 95.
	assert.Equal(t, 95, computeLocalEntity(signals, 0, 0))
}

func TestComputeLocalEntity_ClampsAt100(t *testing.T) {
	signals := localSignals(types.LocalSignalsData{
		NAPConsistencyScore:    98,
		KnowledgePanelDetected: true,
		Locations:              []string{"Coventry"},
	})
	assert.Equal(t, 100, computeLocalEntity(signals, 0, 0))
}

func TestComputeLocalEntity_FallbackHeuristic(t *testing.T) {
	// visibility 80, CTR at target: 0.6*80 + 0.4*100 = 88.
	assert.Equal(t, 88, computeLocalEntity(nil, 80, 0.05))
}

func TestComputeServiceArea_ScalesWithAreas(t *testing.T) {
	four := localSignals(types.LocalSignalsData{
		NAPConsistencyScore: 100,
		ServiceAreas:        []string{"a", "b", "c", "d"},
	})
	assert.Equal(t, 50, computeServiceArea(four, 0))

	eight := localSignals(types.LocalSignalsData{
		NAPConsistencyScore: 100,
		ServiceAreas:        []string{"a", "b", "c", "d", "e", "f", "g", "h"},
	})
	assert.Equal(t, 100, computeServiceArea(eight, 0))

	none := localSignals(types.LocalSignalsData{NAPConsistencyScore: 100})
	assert.Equal(t, 0, computeServiceArea(none, 0))
}

func TestComputeServiceArea_DiscountedByNAPConsistency(t *testing.T) {
	signals := localSignals(types.LocalSignalsData{
		NAPConsistencyScore: 50,
		ServiceAreas:        []string{"a", "b", "c", "d", "e", "f", "g", "h"},
	})
	// 100 scaled by 50% consistency.
	assert.Equal(t, 50, computeServiceArea(signals, 0))
}

func TestComputeServiceArea_FallbackHeuristic(t *testing.T) {
	assert.Equal(t, 40, computeServiceArea(nil, 80))
}
