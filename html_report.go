package main

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// GenerateHTMLReport writes a self-contained HTML report for a projection
func GenerateHTMLReport(a Assumptions, outcomes []YearlyOutcome, lang string, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	st := StringsFor(lang)
	verdict := Classify(outcomes)

	// Write HTML header
	fmt.Fprintf(f, `<!DOCTYPE html>
<html lang="%s">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        :root {
            --primary: #2563eb;
            --success: #16a34a;
            --warning: #ea580c;
            --danger: #dc2626;
            --bg: #f8fafc;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.6;
            padding: 2rem;
        }
        .container { max-width: 1100px; margin: 0 auto; }
        h1 {
            font-size: 1.75rem;
            margin-bottom: 0.5rem;
            color: var(--primary);
        }
        h2 {
            font-size: 1.25rem;
            margin: 1.5rem 0 1rem;
            padding-bottom: 0.5rem;
            border-bottom: 2px solid var(--primary);
        }
        .subtitle {
            color: var(--text-muted);
            margin-bottom: 1.5rem;
        }
        .card {
            background: var(--card-bg);
            border-radius: 8px;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        .grid { display: grid; gap: 1rem; }
        .grid-2 { grid-template-columns: repeat(2, 1fr); }
        .grid-3 { grid-template-columns: repeat(3, 1fr); }
        @media (max-width: 768px) {
            .grid-2, .grid-3 { grid-template-columns: 1fr; }
        }
        .metric {
            text-align: center;
            padding: 1rem;
            border-radius: 8px;
            background: var(--bg);
        }
        .metric-value {
            font-size: 1.5rem;
            font-weight: 700;
            color: var(--primary);
        }
        .metric-label {
            font-size: 0.875rem;
            color: var(--text-muted);
        }
        .verdict-banner {
            text-align: center;
            padding: 1rem;
            border-radius: 8px;
            font-size: 1.25rem;
            font-weight: 700;
            margin-bottom: 1rem;
        }
        .verdict-hold { background: #dcfce7; color: var(--success); }
        .verdict-sell { background: #dbeafe; color: var(--primary); }
        .verdict-tie { background: #f1f5f9; color: var(--text-muted); }
        table {
            width: 100%%;
            border-collapse: collapse;
            font-size: 0.875rem;
        }
        th, td {
            padding: 0.75rem 0.5rem;
            text-align: right;
            border-bottom: 1px solid var(--border);
        }
        th {
            background: var(--bg);
            font-weight: 600;
            position: sticky;
            top: 0;
        }
        th:first-child, td:first-child { text-align: left; }
        tr:hover { background: #f1f5f9; }
        .negative { color: var(--danger); }
        .positive { color: var(--success); }
        .final-row { background: var(--bg); font-weight: 600; }
        .chart-wrap { overflow-x: auto; }
        .footer {
            text-align: center;
            color: var(--text-muted);
            font-size: 0.75rem;
            margin-top: 2rem;
            padding-top: 1rem;
            border-top: 1px solid var(--border);
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p class="subtitle">%s</p>
`, lang, st.AppTitle, st.AppTitle, st.AppSubtitle)

	// Verdict card
	verdictClass := "verdict-tie"
	switch verdict {
	case VerdictHoldWins:
		verdictClass = "verdict-hold"
	case VerdictSellWins:
		verdictClass = "verdict-sell"
	}

	breakEvenText := st.SummaryNoBreakEven
	if year := BreakEvenYear(outcomes); year > 0 {
		breakEvenText = fmt.Sprintf(st.SummaryBreakEvenYear, year)
	}
	rateText := st.SummaryNoBreakEvenRate
	if rate, ok := BreakEvenAppreciationRate(a); ok {
		rateText = fmt.Sprintf(st.SummaryBreakEvenRate, PercentString(lang, rate))
	}

	fmt.Fprintf(f, `
        <div class="card">
            <h2>%s</h2>
            <div class="verdict-banner %s">%s</div>
            <div class="grid grid-3">
                <div class="metric">
                    <div class="metric-value">%s</div>
                    <div class="metric-label">%s</div>
                </div>
                <div class="metric">
                    <div class="metric-value">%s</div>
                    <div class="metric-label">%s</div>
                </div>
                <div class="metric">
                    <div class="metric-value">%d</div>
                    <div class="metric-label">%s</div>
                </div>
            </div>
            <p style="margin-top: 1rem; color: var(--text-muted);">%s &middot; %s</p>
        </div>
`, st.SectionVerdict, verdictClass, st.VerdictString(verdict),
		MoneyString(lang, finalDelta(outcomes)), st.HeaderDelta,
		MoneyString(lang, a.NetAnnualCashFlow()), st.LabelNetCashFlow,
		a.HorizonYears, st.LabelHorizonYears,
		breakEvenText, rateText)

	// Assumptions card
	fmt.Fprintf(f, `
        <div class="card">
            <h2>%s</h2>
            <div class="grid grid-2">
                <div>
                    <table>
                        <tr><td>%s</td><td>%s</td></tr>
                        <tr><td>%s</td><td>%s</td></tr>
                        <tr><td>%s</td><td>%s</td></tr>
                        <tr><td>%s</td><td>%s</td></tr>
                    </table>
                </div>
                <div>
                    <table>
                        <tr><td>%s</td><td>%s</td></tr>
                        <tr><td>%s</td><td>%s</td></tr>
                        <tr><td>%s</td><td>%s</td></tr>
                        <tr><td>%s</td><td>%s</td></tr>
                    </table>
                </div>
            </div>
        </div>
`, st.SectionAssumptions,
		st.LabelSaleProceeds, MoneyString(lang, a.SaleProceeds),
		st.LabelMarketReturnRate, PercentString(lang, a.MarketReturnRate),
		st.LabelPropertyValue, MoneyString(lang, a.PropertyValue),
		st.LabelAppreciationRate, PercentString(lang, a.AppreciationRate),
		st.LabelAnnualRent, MoneyString(lang, a.AnnualRent),
		st.LabelMaintenanceCost, MoneyString(lang, a.MaintenanceCost),
		st.LabelHOACost, MoneyString(lang, a.HOACost),
		st.LabelReinvestmentRate, PercentString(lang, a.ReinvestmentRate))

	// Chart card
	if svg := buildChartSVG(outcomes, st); svg != "" {
		fmt.Fprintf(f, `
        <div class="card">
            <h2>%s</h2>
            <div class="chart-wrap">
%s
            </div>
        </div>
`, st.SectionProjection, svg)
	}

	// Year-by-year table
	fmt.Fprintf(f, `
        <div class="card">
            <h2>%s</h2>
            <table>
                <tr><th>%s</th><th>%s</th><th>%s</th><th>%s</th><th>%s</th><th>%s</th></tr>
`, st.SectionProjection,
		st.HeaderYear, st.HeaderSellValue, st.HeaderPropertyValue,
		st.HeaderCashValue, st.HeaderHoldNet, st.HeaderDelta)

	for i, outcome := range outcomes {
		rowClass := ""
		if i == len(outcomes)-1 {
			rowClass = ` class="final-row"`
		}
		deltaClass := "positive"
		if outcome.Delta < 0 {
			deltaClass = "negative"
		}
		fmt.Fprintf(f, "                <tr%s><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td class=\"%s\">%s</td></tr>\n",
			rowClass, outcome.Year,
			MoneyString(lang, outcome.SellStrategyValue),
			MoneyString(lang, outcome.HoldPropertyValue),
			MoneyString(lang, outcome.HoldCashValue),
			MoneyString(lang, outcome.HoldNetValue),
			deltaClass, MoneyString(lang, outcome.Delta))
	}

	fmt.Fprintf(f, `            </table>
        </div>
`)

	// Footer
	generated := fmt.Sprintf(st.ReportGeneratedAt, time.Now().Format("2 January 2006 15:04"))
	fmt.Fprintf(f, `
        <div class="footer">
            %s<br>
            %s
        </div>
    </div>
</body>
</html>
`, generated, st.ReportDisclaimer)

	return nil
}

const (
	chartWidth   = 900.0
	chartHeight  = 360.0
	chartLeft    = 80.0
	chartRight   = 20.0
	chartTop     = 20.0
	chartBottom  = 40.0
	chartYLabels = 5
)

// buildChartSVG renders the sell and hold series as an inline SVG line chart.
// Reports have to stay self-contained, so the chart is drawn here rather than
// with a client-side library.
func buildChartSVG(outcomes []YearlyOutcome, st StringTable) string {
	if len(outcomes) == 0 {
		return ""
	}

	minV := outcomes[0].SellStrategyValue
	maxV := minV
	for _, o := range outcomes {
		for _, v := range []float64{o.SellStrategyValue, o.HoldNetValue} {
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	if maxV == minV {
		// Flat series still needs a visible band
		maxV = minV + 1
	}
	pad := (maxV - minV) * 0.05
	minV -= pad
	maxV += pad

	plotW := chartWidth - chartLeft - chartRight
	plotH := chartHeight - chartTop - chartBottom

	xAt := func(i int) float64 {
		if len(outcomes) == 1 {
			return chartLeft + plotW/2
		}
		return chartLeft + float64(i)/float64(len(outcomes)-1)*plotW
	}
	yAt := func(v float64) float64 {
		return chartTop + (maxV-v)/(maxV-minV)*plotH
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg viewBox="0 0 %.0f %.0f" width="100%%" height="%.0f" font-family="sans-serif">`,
		chartWidth, chartHeight, chartHeight)
	b.WriteString("\n")

	// Horizontal gridlines with money labels
	for i := 0; i <= chartYLabels; i++ {
		v := minV + (maxV-minV)*float64(i)/float64(chartYLabels)
		y := yAt(v)
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e2e8f0" stroke-width="1"/>`,
			chartLeft, y, chartWidth-chartRight, y)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="end" font-size="11" fill="#64748b">%s</text>`,
			chartLeft-6, y+4, FormatMoney(v))
		b.WriteString("\n")
	}

	// Year labels, thinned for long horizons
	labelStep := 1
	if len(outcomes) > 20 {
		labelStep = len(outcomes) / 10
	}
	for i, o := range outcomes {
		if i%labelStep != 0 && i != len(outcomes)-1 {
			continue
		}
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="11" fill="#64748b">%d</text>`,
			xAt(i), chartHeight-chartBottom+18, o.Year)
		b.WriteString("\n")
	}

	// Series polylines
	var sellPoints, holdPoints strings.Builder
	for i, o := range outcomes {
		fmt.Fprintf(&sellPoints, "%.1f,%.1f ", xAt(i), yAt(o.SellStrategyValue))
		fmt.Fprintf(&holdPoints, "%.1f,%.1f ", xAt(i), yAt(o.HoldNetValue))
	}
	fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#2563eb" stroke-width="2.5"/>`,
		strings.TrimSpace(sellPoints.String()))
	b.WriteString("\n")
	fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#16a34a" stroke-width="2.5"/>`,
		strings.TrimSpace(holdPoints.String()))
	b.WriteString("\n")

	// Legend
	fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="12" height="12" fill="#2563eb"/>`, chartLeft+10, chartTop)
	fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="12" fill="#1e293b">%s</text>`,
		chartLeft+28, chartTop+10, st.ChartSellSeries)
	b.WriteString("\n")
	fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="12" height="12" fill="#16a34a"/>`, chartLeft+10, chartTop+20)
	fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="12" fill="#1e293b">%s</text>`,
		chartLeft+28, chartTop+30, st.ChartHoldSeries)
	b.WriteString("\n")

	b.WriteString("</svg>")
	return b.String()
}
