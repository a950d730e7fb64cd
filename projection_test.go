package main

import (
	"math"
	"testing"
)

// Projection Engine Test Suite
//
// These tests pin down the arithmetic of the year-by-year projection: the
// compounding recurrences, the cent rounding carried between years, and the
// final-year classification.
//
// The concrete-value tests use exact comparisons on purpose: every
// accumulator is rounded to cents before it is carried forward, so outputs
// are exact decimal values, not approximations.

// =============================================================================
// Concrete Scenarios
// =============================================================================

func TestProjection_TwoYearHandComputedScenario(t *testing.T) {
	// Scenario: $1000 sale proceeds at 10% market return vs a worthless
	// property renting for $100/year with no costs and no reinvestment
	// return. Every value below is hand-computed.

	a := Assumptions{
		HorizonYears:     2,
		MarketReturnRate: 0.10,
		SaleProceeds:     1000,
		AnnualRent:       100,
	}

	outcomes := RunProjection(a)

	if len(outcomes) != 2 {
		t.Fatalf("Expected 2 years, got %d", len(outcomes))
	}

	expected := []YearlyOutcome{
		{Year: 1, SellStrategyValue: 1100.00, HoldPropertyValue: 0.00, HoldCashValue: 100.00, HoldNetValue: 100.00, Delta: -1000.00},
		{Year: 2, SellStrategyValue: 1210.00, HoldPropertyValue: 0.00, HoldCashValue: 200.00, HoldNetValue: 200.00, Delta: -1010.00},
	}

	for i, want := range expected {
		if outcomes[i] != want {
			t.Errorf("Year %d: expected %+v, got %+v", want.Year, want, outcomes[i])
		}
	}

	if got := Classify(outcomes); got != VerdictSellWins {
		t.Errorf("Selling should win this scenario, got %s", got)
	}
}

func TestProjection_DefaultScenarioFirstYear(t *testing.T) {
	// Scenario: the documented defaults, first year hand-computed.
	//   sell:     300000 * 1.07          = 321000.00
	//   property: 800000 * 1.03          = 824000.00
	//   cash:     42000 - 2500 - 3600    =  35900.00
	//   hold net: 824000 + 35900         = 859900.00
	//   delta:    859900 - 321000        = 538900.00

	outcomes := RunProjection(DefaultAssumptions())

	if len(outcomes) != 15 {
		t.Fatalf("Expected 15 years, got %d", len(outcomes))
	}

	want := YearlyOutcome{
		Year:              1,
		SellStrategyValue: 321000.00,
		HoldPropertyValue: 824000.00,
		HoldCashValue:     35900.00,
		HoldNetValue:      859900.00,
		Delta:             538900.00,
	}
	if outcomes[0] != want {
		t.Errorf("Default first year: expected %+v, got %+v", want, outcomes[0])
	}

	// With a 3x rent yield over the carrying costs, holding wins from the
	// first year and never falls behind.
	if got := Classify(outcomes); got != VerdictHoldWins {
		t.Errorf("Holding should win the default scenario, got %s", got)
	}
	if got := BreakEvenYear(outcomes); got != 1 {
		t.Errorf("Default scenario should break even in year 1, got %d", got)
	}
}

// =============================================================================
// Projection Invariants
// =============================================================================

func TestInvariant_ProjectionLengthEqualsHorizon(t *testing.T) {
	// Property: the projection has exactly one row per year of the horizon,
	// and a non-positive horizon yields an empty projection

	horizons := []int{-3, 0, 1, 2, 15, 40}

	for _, h := range horizons {
		a := DefaultAssumptions()
		a.HorizonYears = h

		outcomes := RunProjection(a)

		want := h
		if want < 0 {
			want = 0
		}
		if len(outcomes) != want {
			t.Errorf("Horizon %d: expected %d rows, got %d", h, want, len(outcomes))
		}
	}
}

func TestInvariant_YearsNumberedSequentially(t *testing.T) {
	// Property: rows are numbered 1..N in order with no gaps

	outcomes := RunProjection(DefaultAssumptions())

	for i, o := range outcomes {
		if o.Year != i+1 {
			t.Errorf("Row %d should be year %d, got %d", i, i+1, o.Year)
		}
	}
}

func TestInvariant_RecurrenceUsesRoundedAccumulators(t *testing.T) {
	// Property: each year derives from the previous year's ROUNDED values,
	// so an independent replay of the recurrence reproduces every row
	// exactly. A full-precision engine would drift from this replay.

	scenarios := []Assumptions{
		DefaultAssumptions(),
		{
			HorizonYears:     30,
			MarketReturnRate: 0.0333,
			AppreciationRate: 0.0177,
			ReinvestmentRate: 0.0411,
			SaleProceeds:     123456.78,
			PropertyValue:    654321.09,
			AnnualRent:       13579.11,
			MaintenanceCost:  1234.56,
			HOACost:          789.01,
			OtherCosts:       55.55,
		},
		{
			HorizonYears:     10,
			MarketReturnRate: -0.05,
			AppreciationRate: -0.02,
			ReinvestmentRate: 0.01,
			SaleProceeds:     50000,
			PropertyValue:    90000,
			AnnualRent:       1200,
			MaintenanceCost:  3400,
			OtherCosts:       100,
		},
	}

	for si, a := range scenarios {
		outcomes := RunProjection(a)

		sell := a.SaleProceeds
		property := a.PropertyValue
		cash := 0.0

		for i, o := range outcomes {
			sell = roundTo2Decimals(sell * (1 + a.MarketReturnRate))
			property = roundTo2Decimals(property * (1 + a.AppreciationRate))
			cash = roundTo2Decimals(cash*(1+a.ReinvestmentRate) + a.NetAnnualCashFlow())

			if o.SellStrategyValue != sell {
				t.Errorf("Scenario %d year %d: sell replay mismatch: got $%.2f, want $%.2f",
					si, i+1, o.SellStrategyValue, sell)
			}
			if o.HoldPropertyValue != property {
				t.Errorf("Scenario %d year %d: property replay mismatch: got $%.2f, want $%.2f",
					si, i+1, o.HoldPropertyValue, property)
			}
			if o.HoldCashValue != cash {
				t.Errorf("Scenario %d year %d: cash replay mismatch: got $%.2f, want $%.2f",
					si, i+1, o.HoldCashValue, cash)
			}
		}
	}
}

func TestInvariant_ZeroRatesFreezeBalances(t *testing.T) {
	// Property: with every rate at zero, the sale proceeds and property
	// value never move and the cash pot grows by exactly the net cash flow
	// each year

	a := Assumptions{
		HorizonYears:    12,
		SaleProceeds:    250000,
		PropertyValue:   500000,
		AnnualRent:      24000,
		MaintenanceCost: 1500,
		HOACost:         2400,
		OtherCosts:      100,
	}
	net := a.NetAnnualCashFlow()

	outcomes := RunProjection(a)

	for i, o := range outcomes {
		if o.SellStrategyValue != a.SaleProceeds {
			t.Errorf("Year %d: sale proceeds should stay $%.2f, got $%.2f",
				o.Year, a.SaleProceeds, o.SellStrategyValue)
		}
		if o.HoldPropertyValue != a.PropertyValue {
			t.Errorf("Year %d: property value should stay $%.2f, got $%.2f",
				o.Year, a.PropertyValue, o.HoldPropertyValue)
		}
		wantCash := roundTo2Decimals(net * float64(i+1))
		if o.HoldCashValue != wantCash {
			t.Errorf("Year %d: cash pot should be $%.2f, got $%.2f",
				o.Year, wantCash, o.HoldCashValue)
		}
	}
}

func TestInvariant_DeltaAndHoldNetConsistent(t *testing.T) {
	// Property: hold net is property plus cash and delta is hold net minus
	// the sell value, both to the cent, in every row

	scenarios := []Assumptions{
		DefaultAssumptions(),
		{
			HorizonYears:     25,
			MarketReturnRate: 0.09,
			AppreciationRate: 0.01,
			ReinvestmentRate: 0.02,
			SaleProceeds:     480000,
			PropertyValue:    475000,
			AnnualRent:       9000,
			MaintenanceCost:  9500,
			HOACost:          4800,
		},
	}

	for si, a := range scenarios {
		for _, o := range RunProjection(a) {
			if o.HoldNetValue != roundTo2Decimals(o.HoldPropertyValue+o.HoldCashValue) {
				t.Errorf("Scenario %d year %d: hold net $%.2f != property $%.2f + cash $%.2f",
					si, o.Year, o.HoldNetValue, o.HoldPropertyValue, o.HoldCashValue)
			}
			if o.Delta != roundTo2Decimals(o.HoldNetValue-o.SellStrategyValue) {
				t.Errorf("Scenario %d year %d: delta $%.2f != hold net $%.2f - sell $%.2f",
					si, o.Year, o.Delta, o.HoldNetValue, o.SellStrategyValue)
			}
		}
	}
}

func TestInvariant_NegativeCashFlowDrainsPot(t *testing.T) {
	// Property: when carrying costs exceed rent, the cash pot goes negative
	// and keeps falling year over year

	a := Assumptions{
		HorizonYears:    5,
		SaleProceeds:    100000,
		PropertyValue:   100000,
		AnnualRent:      1000,
		MaintenanceCost: 2000,
		HOACost:         500,
	}

	previous := 0.0
	for _, o := range RunProjection(a) {
		if o.HoldCashValue >= previous {
			t.Errorf("Year %d: cash pot $%.2f should be below previous $%.2f",
				o.Year, o.HoldCashValue, previous)
		}
		previous = o.HoldCashValue
	}
}

func TestInvariant_AllValuesFinite(t *testing.T) {
	// Property: extreme but finite inputs still produce finite rows

	scenarios := []Assumptions{
		{HorizonYears: 50, MarketReturnRate: 0.25, AppreciationRate: 0.25, ReinvestmentRate: 0.25, SaleProceeds: 9000000, PropertyValue: 9000000, AnnualRent: 900000},
		{HorizonYears: 50, MarketReturnRate: -0.5, AppreciationRate: -0.5, ReinvestmentRate: -0.5, SaleProceeds: 100, PropertyValue: 100, AnnualRent: 1},
	}

	for si, a := range scenarios {
		for _, o := range RunProjection(a) {
			values := []float64{o.SellStrategyValue, o.HoldPropertyValue, o.HoldCashValue, o.HoldNetValue, o.Delta}
			for _, v := range values {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("Scenario %d year %d produced a non-finite value: %+v", si, o.Year, o)
				}
			}
		}
	}
}

// =============================================================================
// Verdict Classification
// =============================================================================

func TestClassify_FinalYearDecides(t *testing.T) {
	// Property: only the final row matters, intermediate leads are ignored

	holdLeadsThenLoses := []YearlyOutcome{
		{Year: 1, SellStrategyValue: 100, HoldNetValue: 500, Delta: 400},
		{Year: 2, SellStrategyValue: 900, HoldNetValue: 200, Delta: -700},
	}
	if got := Classify(holdLeadsThenLoses); got != VerdictSellWins {
		t.Errorf("Final-year sell lead should classify as sell wins, got %s", got)
	}

	sellLeadsThenLoses := []YearlyOutcome{
		{Year: 1, SellStrategyValue: 500, HoldNetValue: 100, Delta: -400},
		{Year: 2, SellStrategyValue: 200, HoldNetValue: 900, Delta: 700},
	}
	if got := Classify(sellLeadsThenLoses); got != VerdictHoldWins {
		t.Errorf("Final-year hold lead should classify as hold wins, got %s", got)
	}
}

func TestClassify_Verdicts(t *testing.T) {
	testCases := []struct {
		name string
		sell float64
		hold float64
		want Verdict
	}{
		{"hold ahead", 100000, 150000, VerdictHoldWins},
		{"sell ahead", 150000, 100000, VerdictSellWins},
		{"level to the cent", 123456.78, 123456.78, VerdictTie},
		{"one cent apart", 123456.78, 123456.79, VerdictHoldWins},
	}

	for _, tc := range testCases {
		outcomes := []YearlyOutcome{
			{Year: 1, SellStrategyValue: tc.sell, HoldNetValue: tc.hold},
		}
		if got := Classify(outcomes); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestClassify_EmptyProjectionIsTie(t *testing.T) {
	if got := Classify(nil); got != VerdictTie {
		t.Errorf("Nil projection should be a tie, got %s", got)
	}
	if got := Classify([]YearlyOutcome{}); got != VerdictTie {
		t.Errorf("Empty projection should be a tie, got %s", got)
	}
}

func TestVerdict_Keys(t *testing.T) {
	// The keys are wire tokens: the web UI and the string tables look
	// verdicts up by them, so they must stay stable.

	testCases := []struct {
		verdict Verdict
		key     string
	}{
		{VerdictHoldWins, "hold"},
		{VerdictSellWins, "sell"},
		{VerdictTie, "tie"},
	}

	for _, tc := range testCases {
		if got := tc.verdict.Key(); got != tc.key {
			t.Errorf("%s: expected key %q, got %q", tc.verdict, tc.key, got)
		}
		if tc.verdict.String() == "" {
			t.Errorf("Verdict %d has an empty display string", tc.verdict)
		}
	}
}

func TestNetAnnualCashFlow(t *testing.T) {
	testCases := []struct {
		name string
		a    Assumptions
		want float64
	}{
		{"defaults", DefaultAssumptions(), 35900},
		{"costs exceed rent", Assumptions{AnnualRent: 1000, MaintenanceCost: 900, HOACost: 600, OtherCosts: 100}, -600},
		{"no costs", Assumptions{AnnualRent: 42000}, 42000},
		{"zero everything", Assumptions{}, 0},
	}

	for _, tc := range testCases {
		if got := tc.a.NetAnnualCashFlow(); got != tc.want {
			t.Errorf("%s: expected $%.2f, got $%.2f", tc.name, tc.want, got)
		}
	}
}
