package main

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatMoney formats a float as a compact currency string
func FormatMoney(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if amount >= 1000000 {
		return fmt.Sprintf("%s$%.2fM", sign, amount/1000000)
	}
	if amount >= 1000 {
		return fmt.Sprintf("%s$%.0fk", sign, amount/1000)
	}
	return fmt.Sprintf("%s$%.0f", sign, amount)
}

// centerPad centers s within width columns (rune-aware)
func centerPad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	right := width - n - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

func printBoxHeader(title string) {
	fmt.Println("╔" + strings.Repeat("═", 78) + "╗")
	fmt.Printf("║%s║\n", centerPad(title, 78))
	fmt.Println("╚" + strings.Repeat("═", 78) + "╝")
}

// PrintHeader prints the application banner
func PrintHeader(st StringTable) {
	printBoxHeader(strings.ToUpper(st.AppTitle))
	fmt.Println()
}

// PrintAssumptions prints the projection inputs
func PrintAssumptions(a Assumptions, lang string) {
	st := StringsFor(lang)

	fmt.Println(st.SectionAssumptions + ":")
	fmt.Println(strings.Repeat("─", utf8.RuneCountInString(st.SectionAssumptions)+1))

	fmt.Printf("  %s: %s | %s: %s\n",
		st.LabelSaleProceeds, MoneyString(lang, a.SaleProceeds),
		st.LabelMarketReturnRate, PercentString(lang, a.MarketReturnRate))
	fmt.Printf("  %s: %s | %s: %s\n",
		st.LabelPropertyValue, MoneyString(lang, a.PropertyValue),
		st.LabelAppreciationRate, PercentString(lang, a.AppreciationRate))
	fmt.Printf("  %s: %s | %s: %s | %s: %s | %s: %s\n",
		st.LabelAnnualRent, MoneyString(lang, a.AnnualRent),
		st.LabelMaintenanceCost, MoneyString(lang, a.MaintenanceCost),
		st.LabelHOACost, MoneyString(lang, a.HOACost),
		st.LabelOtherCosts, MoneyString(lang, a.OtherCosts))
	fmt.Printf("  %s: %s | %s: %s\n",
		st.LabelNetCashFlow, MoneyString(lang, a.NetAnnualCashFlow()),
		st.LabelReinvestmentRate, PercentString(lang, a.ReinvestmentRate))
	fmt.Printf("  %s: %d\n", st.LabelHorizonYears, a.HorizonYears)
	fmt.Println()
}

// PrintProjectionTable prints the year-by-year table. Long horizons are
// trimmed to every 5th year plus the first and last unless details is set.
func PrintProjectionTable(outcomes []YearlyOutcome, lang string, details bool) {
	st := StringsFor(lang)

	fmt.Println(st.SectionProjection + ":")
	fmt.Printf("%-6s │ %18s │ %18s %18s %18s │ %18s\n",
		st.HeaderYear, st.HeaderSellValue,
		st.HeaderPropertyValue, st.HeaderCashValue, st.HeaderHoldNet,
		st.HeaderDelta)
	fmt.Println(strings.Repeat("─", 110))

	showAll := details || len(outcomes) <= 20

	for i, o := range outcomes {
		// Print every 5 years plus the first and last year
		isKeyYear := i == 0 || i == len(outcomes)-1 || o.Year%5 == 0

		if showAll || isKeyYear {
			fmt.Printf("%-6d │ %18s │ %18s %18s %18s │ %18s\n",
				o.Year,
				MoneyString(lang, o.SellStrategyValue),
				MoneyString(lang, o.HoldPropertyValue),
				MoneyString(lang, o.HoldCashValue),
				MoneyString(lang, o.HoldNetValue),
				MoneyString(lang, o.Delta))
		}
	}

	fmt.Println(strings.Repeat("─", 110))
	fmt.Println()
}

// PrintVerdict prints the final comparison plus break-even details
func PrintVerdict(a Assumptions, outcomes []YearlyOutcome, lang string) {
	st := StringsFor(lang)

	printBoxHeader(strings.ToUpper(st.SectionVerdict))
	fmt.Println()

	verdict := Classify(outcomes)
	fmt.Printf("  %s\n", st.VerdictString(verdict))
	fmt.Printf("  "+st.SummaryFinalDelta+"\n", MoneyString(lang, finalDelta(outcomes)))

	if year := BreakEvenYear(outcomes); year > 0 {
		fmt.Printf("  "+st.SummaryBreakEvenYear+"\n", year)
	} else {
		fmt.Printf("  %s\n", st.SummaryNoBreakEven)
	}

	if rate, ok := BreakEvenAppreciationRate(a); ok {
		fmt.Printf("  "+st.SummaryBreakEvenRate+"\n", PercentString(lang, rate))
	} else {
		fmt.Printf("  %s\n", st.SummaryNoBreakEvenRate)
	}

	fmt.Println()
}

// PrintSensitivityMatrix prints a compact verdict grid for the console. Cells
// use the first letter of the verdict key so the grid stays narrow; the
// legend below maps letters to the display language.
func PrintSensitivityMatrix(analysis *SensitivityAnalysis, lang string) {
	st := StringsFor(lang)

	printBoxHeader(strings.ToUpper(st.SectionSensitivity))
	fmt.Println()

	// Column headers: appreciation rates
	fmt.Printf("%18s │", st.SensitivityMarketAxis)
	for _, rate := range analysis.AppreciationRates {
		fmt.Printf(" %4.0f%%", rate*100)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("─", 20+len(analysis.AppreciationRates)*6))

	for mi, marketRate := range analysis.MarketReturnRates {
		fmt.Printf("%17.0f%% │", marketRate*100)
		for ai := range analysis.AppreciationRates {
			cell := analysis.Cells[mi][ai]
			letter := strings.ToUpper(cell.Verdict.Key()[:1])
			fmt.Printf(" %4s", letter)
		}
		fmt.Println()
	}

	fmt.Println()
	for _, v := range []Verdict{VerdictHoldWins, VerdictSellWins, VerdictTie} {
		fmt.Printf("  %s = %s\n", strings.ToUpper(v.Key()[:1]), st.VerdictString(v))
	}
	fmt.Println()
}

// PrintPresets lists the built-in market and appreciation presets
func PrintPresets(lang string) {
	st := StringsFor(lang)

	fmt.Println(st.PresetsMarketTitle + ":")
	fmt.Println(strings.Repeat("─", utf8.RuneCountInString(st.PresetsMarketTitle)+1))

	byRegion := GetMarketPresetsByRegion()
	for _, region := range presetRegionOrder {
		presets := byRegion[region]
		if len(presets) == 0 {
			continue
		}
		fmt.Printf("  %s:\n", region)
		for _, p := range presets {
			fmt.Printf("    %-14s %-28s %5.1f%%  %-6s  %s\n",
				p.ID, p.Name, p.AnnualReturn*100, p.Volatility, p.Description)
		}
	}

	fmt.Println()
	fmt.Println(st.PresetsAppreciationTitle + ":")
	fmt.Println(strings.Repeat("─", utf8.RuneCountInString(st.PresetsAppreciationTitle)+1))
	for _, p := range AppreciationPresets {
		fmt.Printf("    %-16s %-22s %5.1f%%  %s\n",
			p.ID, p.Name, p.AnnualRate*100, p.Description)
	}
	fmt.Println()
}
