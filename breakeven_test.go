package main

import (
	"math"
	"testing"
)

// Break-Even Analysis Test Suite
//
// Covers the two derived summary figures: the first year holding pulls
// ahead, and the appreciation rate at which the strategies would tie at the
// end of the horizon.

// =============================================================================
// Final Delta & Break-Even Year
// =============================================================================

func TestFinalDelta(t *testing.T) {
	outcomes := []YearlyOutcome{
		{Year: 1, Delta: -500},
		{Year: 2, Delta: 125.25},
	}
	if got := finalDelta(outcomes); got != 125.25 {
		t.Errorf("Expected final delta $125.25, got $%.2f", got)
	}

	if got := finalDelta(nil); got != 0 {
		t.Errorf("Empty projection should have zero final delta, got $%.2f", got)
	}
}

func TestBreakEvenYear(t *testing.T) {
	testCases := []struct {
		name   string
		deltas []float64
		want   int
	}{
		{"catches up mid-horizon", []float64{-500, -100, 0.00, 300}, 3},
		{"ahead from the start", []float64{250, 400}, 1},
		{"never catches up", []float64{-10, -20, -30}, 0},
		{"exact tie counts", []float64{-1, 0}, 2},
		{"empty projection", nil, 0},
	}

	for _, tc := range testCases {
		outcomes := make([]YearlyOutcome, len(tc.deltas))
		for i, d := range tc.deltas {
			outcomes[i] = YearlyOutcome{Year: i + 1, Delta: d}
		}

		if got := BreakEvenYear(outcomes); got != tc.want {
			t.Errorf("%s: expected year %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestInvariant_BreakEvenYearMatchesDeltas(t *testing.T) {
	// Property: the reported year is the first row with a non-negative
	// delta, and every earlier row is strictly negative

	// Holding starts $49k behind but appreciates faster, so it crosses
	// somewhere mid-horizon.
	a := Assumptions{
		HorizonYears:     25,
		MarketReturnRate: 0.07,
		AppreciationRate: 0.08,
		ReinvestmentRate: 0.07,
		SaleProceeds:     300000,
		PropertyValue:    250000,
		AnnualRent:       2000,
	}

	outcomes := RunProjection(a)
	year := BreakEvenYear(outcomes)

	if year == 0 {
		// Nothing crossed: every delta must be negative.
		for _, o := range outcomes {
			if o.Delta >= 0 {
				t.Fatalf("Year 0 reported but year %d has delta $%.2f", o.Year, o.Delta)
			}
		}
		return
	}

	for _, o := range outcomes {
		if o.Year < year && o.Delta >= 0 {
			t.Errorf("Year %d before break-even has non-negative delta $%.2f", o.Year, o.Delta)
		}
		if o.Year == year && o.Delta < 0 {
			t.Errorf("Break-even year %d has negative delta $%.2f", o.Year, o.Delta)
		}
	}
}

// =============================================================================
// Break-Even Appreciation Rate
// =============================================================================

func TestInvariant_FinalDeltaMonotonicInAppreciation(t *testing.T) {
	// Property: a faster-appreciating property can only help the hold
	// strategy, so the final delta is non-decreasing in the appreciation
	// rate. The bisection relies on this.

	a := DefaultAssumptions()
	rates := []float64{-0.20, -0.10, -0.05, 0, 0.02, 0.04, 0.08, 0.15}

	previous := math.Inf(-1)
	for _, rate := range rates {
		test := a
		test.AppreciationRate = rate
		delta := finalDelta(RunProjection(test))

		if delta < previous {
			t.Errorf("Final delta decreased from $%.2f to $%.2f when appreciation rose to %.0f%%",
				previous, delta, rate*100)
		}
		previous = delta
	}
}

func TestBreakEvenAppreciationRate_FindsCrossing(t *testing.T) {
	// Scenario: no rental cash flow at all, so the property value alone has
	// to catch the invested proceeds. The crossing rate solves
	// 800000*(1+r)^15 = 300000*1.07^15, roughly r = 0.23%.

	a := Assumptions{
		HorizonYears:     15,
		MarketReturnRate: 0.07,
		SaleProceeds:     300000,
		PropertyValue:    800000,
	}

	rate, found := BreakEvenAppreciationRate(a)
	if !found {
		t.Fatal("Expected a break-even appreciation rate, found none")
	}
	if rate < breakEvenRateMin || rate > breakEvenRateMax {
		t.Fatalf("Rate %.4f outside the search bracket", rate)
	}

	// The reported rate should actually sit on the crossing: clearly sell
	// territory just below it, clearly hold territory just above.
	below := a
	below.AppreciationRate = rate - 0.01
	if d := finalDelta(RunProjection(below)); d >= 0 {
		t.Errorf("1%% below the break-even rate, holding should lose: delta $%.2f", d)
	}

	above := a
	above.AppreciationRate = rate + 0.01
	if d := finalDelta(RunProjection(above)); d <= 0 {
		t.Errorf("1%% above the break-even rate, holding should win: delta $%.2f", d)
	}

	// At the rate itself the strategies are within the bisection's
	// resolution of each other.
	at := a
	at.AppreciationRate = rate
	if d := finalDelta(RunProjection(at)); math.Abs(d) > 2500 {
		t.Errorf("At the break-even rate the delta should be near zero, got $%.2f", d)
	}

	t.Logf("Break-even appreciation rate: %.4f (%.2f%%)", rate, rate*100)
}

func TestBreakEvenAppreciationRate_NoCrossing(t *testing.T) {
	// When one strategy dominates across the whole bracket there is no rate
	// to report.

	holdAlwaysWins := Assumptions{
		HorizonYears:     15,
		MarketReturnRate: 0.07,
		SaleProceeds:     300000,
		PropertyValue:    1000,
		AnnualRent:       200000,
	}
	if _, found := BreakEvenAppreciationRate(holdAlwaysWins); found {
		t.Error("Holding dominates at both bracket ends, no rate should be found")
	}

	sellAlwaysWins := Assumptions{
		HorizonYears:     15,
		MarketReturnRate: 0.07,
		SaleProceeds:     300000,
		PropertyValue:    1000,
	}
	if _, found := BreakEvenAppreciationRate(sellAlwaysWins); found {
		t.Error("Selling dominates at both bracket ends, no rate should be found")
	}
}

func TestBreakEvenAppreciationRate_DegenerateScenarios(t *testing.T) {
	// An empty horizon or a zero-value property leaves the delta flat in
	// the appreciation rate, so there is nothing to solve.

	emptyHorizon := DefaultAssumptions()
	emptyHorizon.HorizonYears = 0
	if _, found := BreakEvenAppreciationRate(emptyHorizon); found {
		t.Error("Empty horizon should not report a break-even rate")
	}

	if _, found := BreakEvenAppreciationRate(Assumptions{HorizonYears: 10}); found {
		t.Error("All-zero scenario should not report a break-even rate")
	}
}
