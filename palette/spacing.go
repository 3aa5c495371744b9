package palette

import (
	"math"

	mandel "github.com/marben/mandel_hues"
)

// IndexFor maps an escape-time value to a position in a table of tableLen colors.
//
// The iteration range [0, max) is cut into BlockCount equal cycles and every cycle sweeps the
// whole table once. Inside a cycle the position follows a two-segment curve that meets the
// identity at YInput: the segment before the pivot (fast escapes, far from the set) is bent by
// SpacingFar, the segment after it (slow escapes, near the set) by SpacingNear. Zero spacing
// is linear, larger values hold the early colors of a segment longer. The curve is continuous
// and increasing, so the index never decreases within a cycle.
//
// Values at or above max belong to points that never escaped and map to position 0.
func IndexFor(value, max, tableLen int, p mandel.SpacingParameters) int {
	if value >= max {
		return 0
	}
	return IndexForSmooth(float64(value), max, tableLen, p)
}

// IndexForSmooth is IndexFor for refined, fractional escape values.
func IndexForSmooth(mu float64, max, tableLen int, p mandel.SpacingParameters) int {
	if tableLen <= 1 || max <= 0 || !(mu < float64(max)) {
		return 0
	}
	if mu < 0 {
		mu = 0
	}
	p = p.Normalized()

	cycle := float64(max) / float64(p.BlockCount)
	t := math.Mod(mu, cycle) / cycle

	idx := int(curve(t, p) * float64(tableLen))
	return min(max0(idx), tableLen-1)
}

// curve bends t in [0, 1) around the pivot, staying in [0, 1).
func curve(t float64, p mandel.SpacingParameters) float64 {
	pivot := p.YInput
	switch {
	case pivot <= 0:
		return math.Pow(t, 1+p.SpacingNear)
	case pivot >= 1:
		return math.Pow(t, 1+p.SpacingFar)
	case t < pivot:
		return pivot * math.Pow(t/pivot, 1+p.SpacingFar)
	default:
		return pivot + (1-pivot)*math.Pow((t-pivot)/(1-pivot), 1+p.SpacingNear)
	}
}

func max0(i int) int {
	if i < 0 {
		return 0
	}
	return i
}
