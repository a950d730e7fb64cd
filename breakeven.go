package main

import "math"

// finalDelta returns the last projected year's delta, or 0 for an empty
// projection.
func finalDelta(outcomes []YearlyOutcome) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	return outcomes[len(outcomes)-1].Delta
}

// BreakEvenYear returns the first year in which holding is worth at least
// as much as selling, or 0 if holding never catches up within the horizon.
func BreakEvenYear(outcomes []YearlyOutcome) int {
	for _, o := range outcomes {
		if o.Delta >= 0 {
			return o.Year
		}
	}
	return 0
}

// Search bounds for the break-even appreciation rate. Rates outside
// -50%..+50% per year are not meaningful scenarios.
const (
	breakEvenRateMin = -0.50
	breakEvenRateMax = 0.50

	// One basis point is finer than the cent rounding inside the engine can
	// distinguish for realistic property values.
	breakEvenRateTolerance = 0.0001
)

// BreakEvenAppreciationRate searches for the appreciation rate at which the
// two strategies tie at the end of the horizon, holding every other
// assumption fixed. The reported rate answers "how fast must the property
// appreciate for keeping it to pay off".
//
// The final delta is non-decreasing in the appreciation rate (a faster
// growing property can only help the hold strategy), so a bisection over
// the bracket converges. The second return is false when no crossing exists
// inside the bracket: the property value is zero, the horizon is empty, or
// one strategy dominates at both extremes.
func BreakEvenAppreciationRate(a Assumptions) (float64, bool) {
	deltaAt := func(rate float64) float64 {
		test := a
		test.AppreciationRate = rate
		return finalDelta(RunProjection(test))
	}

	lo, hi := breakEvenRateMin, breakEvenRateMax
	dLo, dHi := deltaAt(lo), deltaAt(hi)
	if dLo == 0 && dHi == 0 {
		// Flat in the appreciation rate: empty horizon or no property value.
		return 0, false
	}
	if dLo == 0 {
		return lo, true
	}
	if dHi == 0 {
		return hi, true
	}
	if (dLo < 0) == (dHi < 0) {
		return 0, false
	}

	for hi-lo > breakEvenRateTolerance {
		mid := (lo + hi) / 2
		d := deltaAt(mid)
		if d == 0 {
			return mid, true
		}
		if (d < 0) == (dLo < 0) {
			lo = mid
		} else {
			hi = mid
		}
	}

	// Snap to a whole basis point for presentation.
	return roundTo4Decimals((lo + hi) / 2), true
}

func roundTo4Decimals(value float64) float64 {
	return math.Round(value*10000) / 10000
}
