package main

import "math"

// roundTo2Decimals rounds a monetary value to the nearest cent, half away
// from zero.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// RunProjection computes the year-by-year value of both strategies.
//
// Three accumulators are carried across the loop: the invested sale
// proceeds, the appreciating property value, and the reinvested rental cash
// pot. Each is rounded to cents at the end of every year and the rounded
// value feeds the next iteration, so the carried, displayed and exported
// figures always agree to the cent. Do not switch this to full-precision
// accumulation: every multi-year output would shift.
//
// The function is total: any finite inputs produce a result, and a
// non-positive horizon produces an empty one. No validation, no I/O.
func RunProjection(a Assumptions) []YearlyOutcome {
	if a.HorizonYears <= 0 {
		return nil
	}

	outcomes := make([]YearlyOutcome, 0, a.HorizonYears)
	sellValue := a.SaleProceeds
	propertyValue := a.PropertyValue
	cashPot := 0.0

	for year := 1; year <= a.HorizonYears; year++ {
		sellValue = roundTo2Decimals(sellValue * (1 + a.MarketReturnRate))
		propertyValue = roundTo2Decimals(propertyValue * (1 + a.AppreciationRate))

		// Recomputed per year so a future rent escalation only touches this
		// line. Flow arrives at year end, undiscounted within its year.
		netCashFlow := a.NetAnnualCashFlow()
		cashPot = roundTo2Decimals(cashPot*(1+a.ReinvestmentRate) + netCashFlow)

		holdNet := roundTo2Decimals(propertyValue + cashPot)
		delta := roundTo2Decimals(holdNet - sellValue)

		outcomes = append(outcomes, YearlyOutcome{
			Year:              year,
			SellStrategyValue: sellValue,
			HoldPropertyValue: propertyValue,
			HoldCashValue:     cashPot,
			HoldNetValue:      holdNet,
			Delta:             delta,
		})
	}

	return outcomes
}

// Classify reports which strategy leads after the final projected year.
// Only the last row matters. An empty projection is a tie.
func Classify(outcomes []YearlyOutcome) Verdict {
	if len(outcomes) == 0 {
		return VerdictTie
	}
	last := outcomes[len(outcomes)-1]
	switch {
	case last.HoldNetValue > last.SellStrategyValue:
		return VerdictHoldWins
	case last.HoldNetValue < last.SellStrategyValue:
		return VerdictSellWins
	default:
		return VerdictTie
	}
}
