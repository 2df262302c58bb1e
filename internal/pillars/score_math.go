// Package pillars computes the audit's composite 0-100 pillar scores from
// search rows, schema audit data, local signals, reviews, and backlinks.
package pillars

import "math"

// clampScore rounds a raw score and clamps it into [0,100].
func clampScore(v float64) int {
	score := int(math.Round(v))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// normalisePct scales a ratio against a target: hitting the target (or
// better) earns 100, everything below scales linearly.
func normalisePct(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	score := value / target * 100
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// linearPositionScore maps a position within [minPos,maxPos] onto 100 down
// to 10, linearly, clamping out-of-range positions.
func linearPositionScore(position, minPos, maxPos float64) float64 {
	if position < minPos {
		position = minPos
	}
	if position > maxPos {
		position = maxPos
	}
	return 100 - ((position-minPos)/(maxPos-minPos))*90
}

// ComputeVisibility maps an average position to the visibility pillar:
// position 1 scores 100, position 40 scores 10, linear in between.
func ComputeVisibility(position float64) int {
	return clampScore(linearPositionScore(position, 1, 40))
}
