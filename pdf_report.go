package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

const pdfDownloadFilename = "rent-or-sell-projection.pdf"

// exportPDFFilename builds a timestamped name for PDF reports saved to disk
func exportPDFFilename(now time.Time) string {
	return fmt.Sprintf("rent-or-sell-%s.pdf", now.Format("2006-01-02-150405"))
}

// ProjectionPDFReport generates a printable report for a projection
type ProjectionPDFReport struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	a        Assumptions
	outcomes []YearlyOutcome
	st       StringTable
	lang     string
}

// GenerateProjectionPDFReport creates a PDF report for a single projection
func GenerateProjectionPDFReport(a Assumptions, outcomes []YearlyOutcome, lang string) ([]byte, error) {
	report := &ProjectionPDFReport{
		pdf:      fpdf.New("P", "mm", "A4", ""),
		a:        a,
		outcomes: outcomes,
		st:       StringsFor(lang),
		lang:     lang,
	}

	// Standard PDF fonts are CP1252; the translator handles accented Spanish text
	report.tr = report.pdf.UnicodeTranslatorFromDescriptor("")

	report.pdf.SetMargins(marginLeft, marginTop, marginRight)
	report.pdf.SetAutoPageBreak(true, marginBottom)

	report.addTitlePage()
	report.addProjectionTable()

	var buf bytes.Buffer
	err := report.pdf.Output(&buf)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (r *ProjectionPDFReport) money(v float64) string {
	return r.tr(MoneyString(r.lang, v))
}

func (r *ProjectionPDFReport) percent(rate float64) string {
	return r.tr(PercentString(r.lang, rate))
}

func (r *ProjectionPDFReport) addTitlePage() {
	r.pdf.AddPage()

	// Title
	r.pdf.SetFont("Arial", "B", 28)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(40)
	r.pdf.CellFormat(contentWidth, 15, r.tr(r.st.AppTitle), "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "", 14)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.Ln(5)
	r.pdf.CellFormat(contentWidth, 10, r.tr(r.st.AppSubtitle), "", 1, "C", false, 0, "")

	// Generation date
	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.Ln(10)
	generated := fmt.Sprintf(r.st.ReportGeneratedAt, time.Now().Format("2 January 2006"))
	r.pdf.CellFormat(contentWidth, 8, r.tr(generated), "", 1, "C", false, 0, "")

	// Assumptions box
	r.pdf.Ln(15)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)

	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, r.tr(r.st.SectionAssumptions), "1", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)

	rows := []string{
		fmt.Sprintf("%s: %d", r.st.LabelHorizonYears, r.a.HorizonYears),
		fmt.Sprintf("%s: %s  |  %s: %s", r.st.LabelSaleProceeds, r.money(r.a.SaleProceeds),
			r.st.LabelMarketReturnRate, r.percent(r.a.MarketReturnRate)),
		fmt.Sprintf("%s: %s  |  %s: %s", r.st.LabelPropertyValue, r.money(r.a.PropertyValue),
			r.st.LabelAppreciationRate, r.percent(r.a.AppreciationRate)),
		fmt.Sprintf("%s: %s  |  %s: %s", r.st.LabelAnnualRent, r.money(r.a.AnnualRent),
			r.st.LabelMaintenanceCost, r.money(r.a.MaintenanceCost)),
		fmt.Sprintf("%s: %s  |  %s: %s", r.st.LabelHOACost, r.money(r.a.HOACost),
			r.st.LabelOtherCosts, r.money(r.a.OtherCosts)),
		fmt.Sprintf("%s: %s  |  %s: %s", r.st.LabelNetCashFlow, r.money(r.a.NetAnnualCashFlow()),
			r.st.LabelReinvestmentRate, r.percent(r.a.ReinvestmentRate)),
	}
	for i, row := range rows {
		border := "LR"
		if i == len(rows)-1 {
			border = "LRB"
		}
		r.pdf.CellFormat(contentWidth, 7, r.tr(row), border, 1, "C", true, 0, "")
	}

	// Verdict box
	r.pdf.Ln(10)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, r.tr(r.st.SectionVerdict), "1", 1, "C", true, 0, "")

	verdict := Classify(r.outcomes)
	r.pdf.SetFont("Arial", "B", 12)
	switch verdict {
	case VerdictHoldWins:
		r.pdf.SetTextColor(0, 128, 0)
	case VerdictSellWins:
		r.pdf.SetTextColor(0, 0, 180)
	default:
		r.pdf.SetTextColor(80, 80, 80)
	}
	r.pdf.CellFormat(contentWidth, 8, r.tr(r.st.VerdictString(verdict)), "LR", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	deltaText := fmt.Sprintf(r.st.SummaryFinalDelta, MoneyString(r.lang, finalDelta(r.outcomes)))
	r.pdf.CellFormat(contentWidth, 7, r.tr(deltaText), "LR", 1, "C", true, 0, "")

	breakEvenText := r.st.SummaryNoBreakEven
	if year := BreakEvenYear(r.outcomes); year > 0 {
		breakEvenText = fmt.Sprintf(r.st.SummaryBreakEvenYear, year)
	}
	r.pdf.CellFormat(contentWidth, 7, r.tr(breakEvenText), "LR", 1, "C", true, 0, "")

	rateText := r.st.SummaryNoBreakEvenRate
	if rate, ok := BreakEvenAppreciationRate(r.a); ok {
		rateText = fmt.Sprintf(r.st.SummaryBreakEvenRate, PercentString(r.lang, rate))
	}
	r.pdf.CellFormat(contentWidth, 7, r.tr(rateText), "LRB", 1, "C", true, 0, "")

	// Disclaimer
	r.pdf.Ln(15)
	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 4.5, r.tr(r.st.ReportDisclaimer), "", "C", false)
}

func (r *ProjectionPDFReport) addProjectionTable() {
	r.pdf.AddPage()
	r.drawSectionHeader(r.tr(r.st.SectionProjection))

	widths := []float64{20, 32, 32, 32, 32, 32}
	headers := []string{
		r.st.HeaderYear, r.st.HeaderSellValue, r.st.HeaderPropertyValue,
		r.st.HeaderCashValue, r.st.HeaderHoldNet, r.st.HeaderDelta,
	}

	r.drawTableHeader(headers, widths)

	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)

	for i, outcome := range r.outcomes {
		// Redraw the header after a page break so rows stay readable
		if r.pdf.GetY() > 270 {
			r.pdf.AddPage()
			r.drawTableHeader(headers, widths)
			r.pdf.SetFont("Arial", "", 9)
			r.pdf.SetTextColor(50, 50, 50)
		}

		isFinal := i == len(r.outcomes)-1
		r.drawTableRow([]string{
			fmt.Sprintf("%d", outcome.Year),
			r.money(outcome.SellStrategyValue),
			r.money(outcome.HoldPropertyValue),
			r.money(outcome.HoldCashValue),
			r.money(outcome.HoldNetValue),
			r.money(outcome.Delta),
		}, widths, isFinal)
	}
}

// Helper functions

func (r *ProjectionPDFReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *ProjectionPDFReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, r.tr(header), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *ProjectionPDFReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
