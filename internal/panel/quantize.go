package panel

import "math"

// Percent maps value within [min, max] to a display percentage, clamped to
// [0, 100]. A degenerate range (min == max) yields 0 rather than a
// division fault.
func Percent(value, min, max float64) float64 {
	if min == max {
		return 0
	}
	pct := (value - min) / (max - min) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// StepDelta returns the spacing between adjacent grid positions for a
// parameter with steps >= 2 discrete positions spanning [min, max]
// inclusive of both endpoints.
func StepDelta(min, max float64, steps int) float64 {
	return (max - min) / float64(steps-1)
}

// StepValue returns the exact value of grid position idx.
func StepValue(min, delta float64, idx int) float64 {
	return min + delta*float64(idx)
}

// NearestStepIndex maps an arbitrary value back onto the nearest grid
// position. The result is the raw rounded index and may fall outside
// [0, steps-1] for values outside the parameter's range; callers clamp
// with ClampIndex before indexing into anything.
func NearestStepIndex(value, min, delta float64) int {
	if delta == 0 {
		return 0
	}
	return int(math.Round((value - min) / delta))
}

// ClampIndex clamps idx into [0, steps-1].
func ClampIndex(idx, steps int) int {
	if idx < 0 {
		return 0
	}
	if idx > steps-1 {
		return steps - 1
	}
	return idx
}

// clampValue clamps v into [min, max].
func clampValue(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
