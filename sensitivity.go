package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

// SensitivityCell holds the outcome of a single rate combination
type SensitivityCell struct {
	MarketReturn  float64
	Appreciation  float64
	Verdict       Verdict
	FinalDelta    float64
	BreakEvenYear int              // 0 when holding never pulls ahead
	Outcomes      []YearlyOutcome  // Full projection for this combination
	ReportDir     string           // Subdirectory for this combination's report
	ReportFile    string           // Path to report.html for this combination
}

// SensitivityAnalysis holds the complete analysis
type SensitivityAnalysis struct {
	Cells             [][]SensitivityCell // [marketIdx][appreciationIdx]
	MarketReturnRates []float64
	AppreciationRates []float64
	Base              Assumptions
	Timestamp         string
	OutputDir         string // Main output directory
}

// buildRateSteps generates a slice of rates from min to max with given step
func buildRateSteps(min, max, step float64) []float64 {
	var rates []float64
	for r := min; r <= max+0.0001; r += step { // small epsilon for float comparison
		rates = append(rates, math.Round(r*10000)/10000)
	}
	return rates
}

// RunSensitivityAnalysis runs projections across a range of market return and
// property appreciation rates
func RunSensitivityAnalysis(base Assumptions, cfg SensitivityConfig) *SensitivityAnalysis {
	marketMin := cfg.MarketReturnMin
	marketMax := cfg.MarketReturnMax
	apprMin := cfg.AppreciationMin
	apprMax := cfg.AppreciationMax
	step := cfg.StepSize

	// Set defaults if not configured
	if marketMin == 0 && marketMax == 0 {
		marketMin, marketMax = 0.03, 0.11
	}
	if apprMin == 0 && apprMax == 0 {
		apprMin, apprMax = 0.00, 0.06
	}
	if step == 0 {
		step = 0.01
	}

	marketRates := buildRateSteps(marketMin, marketMax, step)
	appreciationRates := buildRateSteps(apprMin, apprMax, step)
	timestamp := time.Now().Format("2006-01-02_1504")

	// Initialize results matrix
	cells := make([][]SensitivityCell, len(marketRates))
	for i := range cells {
		cells[i] = make([]SensitivityCell, len(appreciationRates))
	}

	// Run projections for each combination
	for mi, marketRate := range marketRates {
		for ai, apprRate := range appreciationRates {
			test := base
			test.MarketReturnRate = marketRate
			test.AppreciationRate = apprRate
			// The rental surplus compounds in the same market the sale
			// proceeds would go into.
			test.ReinvestmentRate = marketRate

			outcomes := RunProjection(test)

			// Generate subdirectory name for this combination
			// Use math.Round to avoid floating point precision issues
			reportDir := fmt.Sprintf("m%02d_a%02d", int(math.Round(marketRate*100)), int(math.Round(apprRate*100)))

			cells[mi][ai] = SensitivityCell{
				MarketReturn:  marketRate,
				Appreciation:  apprRate,
				Verdict:       Classify(outcomes),
				FinalDelta:    finalDelta(outcomes),
				BreakEvenYear: BreakEvenYear(outcomes),
				Outcomes:      outcomes,
				ReportDir:     reportDir,
				ReportFile:    filepath.Join(reportDir, "report.html"),
			}
		}
	}

	outputDir := fmt.Sprintf("sensitivity_%s", timestamp)

	return &SensitivityAnalysis{
		Cells:             cells,
		MarketReturnRates: marketRates,
		AppreciationRates: appreciationRates,
		Base:              base,
		Timestamp:         timestamp,
		OutputDir:         outputDir,
	}
}

// verdictColors maps each verdict to its heatmap cell color.
var verdictColors = map[Verdict]string{
	VerdictHoldWins: "#c8e6c9", // Light green
	VerdictSellWins: "#bbdefb", // Light blue
	VerdictTie:      "#fff9c4", // Light yellow
}

// GenerateSensitivityReport generates the HTML sensitivity analysis report
func GenerateSensitivityReport(analysis *SensitivityAnalysis, lang string) (string, error) {
	st := StringsFor(lang)

	// Create main output directory
	if err := os.MkdirAll(analysis.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	// Generate a full detailed report for each rate combination
	totalCombinations := len(analysis.MarketReturnRates) * len(analysis.AppreciationRates)

	for mi := range analysis.MarketReturnRates {
		for ai := range analysis.AppreciationRates {
			cell := &analysis.Cells[mi][ai]

			subDir := filepath.Join(analysis.OutputDir, cell.ReportDir)
			if err := os.MkdirAll(subDir, 0755); err != nil {
				return "", fmt.Errorf("failed to create report directory: %w", err)
			}

			// Recreate the assumptions for this combination
			test := analysis.Base
			test.MarketReturnRate = cell.MarketReturn
			test.AppreciationRate = cell.Appreciation
			test.ReinvestmentRate = cell.MarketReturn

			if err := GenerateHTMLReport(test, cell.Outcomes, lang, filepath.Join(subDir, "report.html")); err != nil {
				return "", err
			}
		}
	}
	fmt.Printf("  Generated %d reports in %s/\n", totalCombinations, analysis.OutputDir)

	// Generate the main sensitivity matrix page
	filename := filepath.Join(analysis.OutputDir, "index.html")

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Write HTML header
	fmt.Fprintf(f, `<!DOCTYPE html>
<html lang="%s">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s - %s</title>
    <style>
        * { box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            margin: 0; padding: 20px;
            background: #f5f5f5;
        }
        .container { max-width: 1400px; margin: 0 auto; }
        h1 { color: #1a237e; margin-bottom: 10px; }
        h2 { color: #303f9f; margin-top: 30px; }
        .subtitle { color: #666; margin-bottom: 30px; }

        .config-summary {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .config-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 15px;
        }
        .config-label { font-size: 12px; color: #666; }
        .config-value { font-size: 16px; font-weight: 600; color: #333; }

        .matrix-container {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            overflow-x: auto;
        }

        .matrix {
            border-collapse: collapse;
            margin: 0 auto;
        }
        .matrix th, .matrix td {
            padding: 8px 12px;
            text-align: center;
            border: 1px solid #ddd;
            min-width: 90px;
        }
        .matrix th {
            background: #1a237e;
            color: white;
            font-weight: 600;
        }
        .matrix .row-header {
            background: #303f9f;
            color: white;
            font-weight: 600;
        }
        .matrix td {
            font-size: 11px;
            cursor: pointer;
            transition: transform 0.1s;
        }
        .matrix td:hover {
            transform: scale(1.05);
            box-shadow: 0 2px 8px rgba(0,0,0,0.2);
            z-index: 10;
            position: relative;
        }
        .matrix .verdict-name { font-weight: 600; }
        .matrix .delta-info { color: #666; font-size: 10px; }

        .legend {
            display: flex;
            flex-wrap: wrap;
            gap: 15px;
            margin-bottom: 20px;
            padding: 15px;
            background: #fafafa;
            border-radius: 8px;
        }
        .legend-item {
            display: flex;
            align-items: center;
            gap: 8px;
        }
        .legend-color {
            width: 24px;
            height: 24px;
            border-radius: 4px;
            border: 1px solid #ddd;
        }
        .legend-label { font-size: 13px; }

        .insights {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .insight-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(300px, 1fr));
            gap: 20px;
        }
        .insight-card {
            padding: 15px;
            background: #f8f9fa;
            border-radius: 8px;
            border-left: 4px solid #1a237e;
        }
        .insight-title { font-weight: 600; margin-bottom: 8px; color: #1a237e; }
        .insight-value { font-size: 24px; font-weight: 700; color: #333; }
        .insight-detail { font-size: 13px; color: #666; margin-top: 5px; }

        .delta-matrix td { font-size: 12px; }
        .delta-good { background: #c8e6c9 !important; }
        .delta-medium { background: #fff9c4 !important; }
        .delta-bad { background: #ffcdd2 !important; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s - %s</h1>
        <p class="subtitle">%s</p>
`, lang, st.AppTitle, st.SectionSensitivity, st.AppTitle, st.SectionSensitivity, st.SensitivitySubtitle)

	// Base scenario summary
	fmt.Fprintf(f, `
        <div class="config-summary">
            <h3 style="margin-top:0">%s</h3>
            <div class="config-grid">
                <div class="config-item">
                    <div class="config-label">%s</div>
                    <div class="config-value">%s</div>
                </div>
                <div class="config-item">
                    <div class="config-label">%s</div>
                    <div class="config-value">%s</div>
                </div>
                <div class="config-item">
                    <div class="config-label">%s</div>
                    <div class="config-value">%s</div>
                </div>
                <div class="config-item">
                    <div class="config-label">%s</div>
                    <div class="config-value">%d</div>
                </div>
            </div>
        </div>
`,
		st.SectionAssumptions,
		st.LabelSaleProceeds, MoneyString(lang, analysis.Base.SaleProceeds),
		st.LabelPropertyValue, MoneyString(lang, analysis.Base.PropertyValue),
		st.LabelAnnualRent, MoneyString(lang, analysis.Base.AnnualRent),
		st.LabelHorizonYears, analysis.Base.HorizonYears)

	// Legend
	fmt.Fprintf(f, `
        <div class="matrix-container">
            <h2 style="margin-top:0">%s</h2>
            <div class="legend">
`, st.SensitivityMatrixTitle)
	for _, v := range []Verdict{VerdictHoldWins, VerdictSellWins, VerdictTie} {
		fmt.Fprintf(f, `                <div class="legend-item">
                    <div class="legend-color" style="background: %s"></div>
                    <span class="legend-label">%s</span>
                </div>
`, verdictColors[v], st.VerdictString(v))
	}
	fmt.Fprintf(f, `            </div>
`)

	// Main verdict matrix
	fmt.Fprintf(f, `
            <p style="font-size: 13px; color: #666; margin-bottom: 15px;">%s</p>
            <table class="matrix">
                <tr>
                    <th></th>
                    <th colspan="%d">%s</th>
                </tr>
                <tr>
                    <th>%s</th>
`, st.SensitivityClickHint, len(analysis.AppreciationRates), st.SensitivityAppreciationAxis, st.SensitivityMarketAxis)

	for _, rate := range analysis.AppreciationRates {
		fmt.Fprintf(f, "                    <th>%.0f%%</th>\n", rate*100)
	}
	fmt.Fprintf(f, "                </tr>\n")

	// Data rows
	for mi, marketRate := range analysis.MarketReturnRates {
		fmt.Fprintf(f, "                <tr>\n")
		fmt.Fprintf(f, "                    <td class=\"row-header\">%.0f%%</td>\n", marketRate*100)

		for ai := range analysis.AppreciationRates {
			cell := analysis.Cells[mi][ai]

			fmt.Fprintf(f, `                    <td style="background: %s" title="%s: %.0f%%, %s: %.0f%%" onclick="window.location='%s'">
                        <div class="verdict-name">%s</div>
                        <div class="delta-info">%s</div>
                    </td>
`, verdictColors[cell.Verdict],
				st.SensitivityMarketAxis, marketRate*100,
				st.SensitivityAppreciationAxis, cell.Appreciation*100,
				cell.ReportFile, st.VerdictString(cell.Verdict), FormatMoney(cell.FinalDelta))
		}
		fmt.Fprintf(f, "                </tr>\n")
	}

	fmt.Fprintf(f, `            </table>
        </div>
`)

	// Insights
	writeSensitivityInsights(f, analysis, st)

	// Final delta matrix
	writeDeltaMatrix(f, analysis, st)

	// Footer
	fmt.Fprintf(f, `
        <p style="text-align: center; color: #666; margin-top: 40px;">
            %s
        </p>
    </div>
</body>
</html>
`, fmt.Sprintf(st.ReportGeneratedAt, time.Now().Format("2 January 2006 15:04")))

	return filename, nil
}

func writeSensitivityInsights(f *os.File, analysis *SensitivityAnalysis, st StringTable) {
	// Count verdicts across the matrix
	verdictCounts := make(map[Verdict]int)
	for _, row := range analysis.Cells {
		for _, cell := range row {
			verdictCounts[cell.Verdict]++
		}
	}

	// Find the most common verdict
	mostCommon := VerdictTie
	mostCount := 0
	for verdict, count := range verdictCounts {
		if count > mostCount {
			mostCount = count
			mostCommon = verdict
		}
	}

	totalScenarios := len(analysis.MarketReturnRates) * len(analysis.AppreciationRates)

	fmt.Fprintf(f, `
        <div class="insights">
            <h2 style="margin-top:0">%s</h2>
            <div class="insight-grid">
                <div class="insight-card">
                    <div class="insight-title">%s</div>
                    <div class="insight-value">%s</div>
                    <div class="insight-detail">%s</div>
                </div>
`, st.SensitivityInsightsTitle, st.SensitivityMostCommon, st.VerdictString(mostCommon),
		fmt.Sprintf(st.SensitivityWinShare, mostCount, totalScenarios, float64(mostCount)/float64(totalScenarios)*100))

	fmt.Fprintf(f, `                <div class="insight-card">
                    <div class="insight-title">%s</div>
                    <div class="insight-value">%d / %d / %d</div>
                    <div class="insight-detail">%s / %s / %s</div>
                </div>
            </div>
        </div>
`, st.SectionVerdict,
		verdictCounts[VerdictHoldWins], verdictCounts[VerdictSellWins], verdictCounts[VerdictTie],
		st.VerdictHoldWins, st.VerdictSellWins, st.VerdictTie)
}

func writeDeltaMatrix(f *os.File, analysis *SensitivityAnalysis, st StringTable) {
	// Find min/max delta for color scaling
	minDelta := analysis.Cells[0][0].FinalDelta
	maxDelta := minDelta

	for _, row := range analysis.Cells {
		for _, cell := range row {
			if cell.FinalDelta < minDelta {
				minDelta = cell.FinalDelta
			}
			if cell.FinalDelta > maxDelta {
				maxDelta = cell.FinalDelta
			}
		}
	}

	fmt.Fprintf(f, `
        <div class="matrix-container">
            <h2 style="margin-top:0">%s</h2>
            <p>%s</p>

            <table class="matrix delta-matrix">
                <tr>
                    <th></th>
                    <th colspan="%d">%s</th>
                </tr>
                <tr>
                    <th>%s</th>
`, st.SensitivityDeltaTitle, st.SensitivityDeltaNote, len(analysis.AppreciationRates), st.SensitivityAppreciationAxis, st.SensitivityMarketAxis)

	for _, rate := range analysis.AppreciationRates {
		fmt.Fprintf(f, "                    <th>%.0f%%</th>\n", rate*100)
	}
	fmt.Fprintf(f, "                </tr>\n")

	deltaRange := maxDelta - minDelta
	if deltaRange == 0 {
		deltaRange = 1
	}

	for mi, marketRate := range analysis.MarketReturnRates {
		fmt.Fprintf(f, "                <tr>\n")
		fmt.Fprintf(f, "                    <td class=\"row-header\">%.0f%%</td>\n", marketRate*100)

		for ai := range analysis.AppreciationRates {
			cell := analysis.Cells[mi][ai]

			// Scale from red to green relative to the matrix extremes
			var cellClass string
			deltaRatio := (cell.FinalDelta - minDelta) / deltaRange
			if deltaRatio > 0.66 {
				cellClass = "delta-good"
			} else if deltaRatio > 0.33 {
				cellClass = "delta-medium"
			} else {
				cellClass = "delta-bad"
			}

			fmt.Fprintf(f, "                    <td class=\"%s\">%s</td>\n", cellClass, FormatMoney(cell.FinalDelta))
		}
		fmt.Fprintf(f, "                </tr>\n")
	}

	fmt.Fprintf(f, `            </table>
        </div>
`)
}
