package pillars

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeVisibility_Endpoints(t *testing.T) {
	assert.Equal(t, 100, ComputeVisibility(1))
	assert.Equal(t, 10, ComputeVisibility(40))
}

func TestComputeVisibility_ClampsOutOfRange(t *testing.T) {
	assert.Equal(t, 100, ComputeVisibility(0.3))
	assert.Equal(t, 10, ComputeVisibility(85))
}

func TestComputeVisibility_StrictlyDecreasing(t *testing.T) {
	prev := ComputeVisibility(1)
	for p := 3.0; p <= 40; p += 2 {
		cur := ComputeVisibility(p)
		assert.Less(t, cur, prev, "position %.0f should score below position %.0f", p, p-2)
		prev = cur
	}
}

func TestNormalisePct(t *testing.T) {
	assert.Equal(t, 100.0, normalisePct(0.05, 0.05))
	assert.Equal(t, 100.0, normalisePct(0.5, 0.05))
	assert.Equal(t, 50.0, normalisePct(0.025, 0.05))
	assert.Equal(t, 0.0, normalisePct(0, 0.05))
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-3))
	assert.Equal(t, 100, clampScore(140))
	assert.Equal(t, 73, clampScore(72.6))
}
