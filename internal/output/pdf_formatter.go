package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/hhforecast/household-forecast/internal/domain"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
	chartHeight  = 90.0
)

// PDFFormatter renders a printable report: summary, net-worth chart and yearly table.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

type pdfReport struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	report *domain.ForecastReport
}

func (p PDFFormatter) Format(report *domain.ForecastReport) ([]byte, error) {
	r := &pdfReport{pdf: fpdf.New("P", "mm", "A4", ""), report: report}
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetCreationDate(report.GeneratedAt)
	r.pdf.SetTitle("Household Forecast", true)
	cp1252 := r.pdf.UnicodeTranslatorFromDescriptor("")
	r.tr = func(s string) string { return cp1252(pdfSafe(s)) }

	r.addSummaryPage()
	r.addChart()
	r.addBreakdownTable()
	r.addYearlyTable()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// cp1252Extras are the runes Windows-1252 places in 0x80-0x9F.
const cp1252Extras = "€‚ƒ„…†‡ˆ‰Š‹ŒŽ‘’“”•–—˜™š›œžŸ"

// pdfSafe folds text into what the core fonts can draw. Full-width ASCII and the
// ideographic space become their ASCII forms; anything else outside Windows-1252,
// such as kana and kanji, becomes '?'.
func pdfSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x80, r >= 0xA0 && r <= 0xFF:
			return r
		case r >= 0xFF01 && r <= 0xFF5E:
			return r - 0xFEE0
		case r == 0x3000:
			return ' '
		case strings.ContainsRune(cp1252Extras, r):
			return r
		}
		return '?'
	}, s)
}

func (r *pdfReport) heading(text string) {
	r.pdf.Ln(4)
	r.pdf.SetFont("Arial", "B", 13)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, r.tr(text), "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *pdfReport) addSummaryPage() {
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, "Household Forecast", "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", r.report.GeneratedAt.Format("2 January 2006")), "", 1, "C", false, 0, "")

	r.heading("Core balance")
	r.pdf.MultiCell(contentWidth, 5, r.tr(coreBalanceLine(r.report)), "", "L", false)

	r.heading("Key assumptions")
	for _, a := range GenerateAssumptions(r.report.Settings) {
		r.pdf.MultiCell(contentWidth, 5, r.tr("- "+a), "", "L", false)
	}

	r.heading("Outcome")
	for _, sc := range namedProjections(r.report) {
		crash := "stays positive"
		if sc.Projection.Crashed() {
			crash = "negative from " + *sc.Projection.CrashMonth
		}
		line := fmt.Sprintf("%s: %s at %s, %s", sc.Name, FormatYen(sc.Projection.FinalNetWorth()),
			sc.Projection.Months[sc.Projection.Len()-1], crash)
		r.pdf.MultiCell(contentWidth, 5, r.tr(line), "", "L", false)
	}
}

func (r *pdfReport) addChart() {
	series := netWorthSeries(r.report)
	if len(series) == 0 {
		return
	}
	r.heading("Net worth")
	if r.pdf.GetY()+chartHeight > 270 {
		r.pdf.AddPage()
	}
	x0, y0 := marginLeft, r.pdf.GetY()+2
	lo, hi := seriesBounds(series)

	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.SetLineWidth(0.2)
	r.pdf.Rect(x0, y0, contentWidth, chartHeight, "D")
	_, zeroY := plotPoint(0, 1, 0, lo, hi, x0, y0, contentWidth, chartHeight)
	r.pdf.SetDashPattern([]float64{1, 1}, 0)
	r.pdf.Line(x0, zeroY, x0+contentWidth, zeroY)
	r.pdf.SetDashPattern([]float64{}, 0)

	r.pdf.SetLineWidth(0.5)
	for i, s := range series {
		c := paletteColor(i)
		r.pdf.SetDrawColor(c[0], c[1], c[2])
		for j := 1; j < len(s.Values); j++ {
			ax, ay := plotPoint(j-1, len(s.Values), s.Values[j-1], lo, hi, x0, y0, contentWidth, chartHeight)
			bx, by := plotPoint(j, len(s.Values), s.Values[j], lo, hi, x0, y0, contentWidth, chartHeight)
			r.pdf.Line(ax, ay, bx, by)
		}
	}

	r.pdf.SetY(y0 + chartHeight + 2)
	r.pdf.SetFont("Arial", "", 8)
	for i, s := range series {
		c := paletteColor(i)
		r.pdf.SetTextColor(c[0], c[1], c[2])
		r.pdf.CellFormat(contentWidth, 4, r.tr(s.Name), "", 1, "L", false, 0, "")
	}
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *pdfReport) addBreakdownTable() {
	r.heading("Spending breakdown")
	headers := []string{"Scenario", "Living", "Education", "Loans", "Recurring", "Events"}
	widths := []float64{40, 28, 28, 28, 28, 28}
	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetFillColor(245, 247, 250)
	for i, h := range headers {
		r.pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)
	r.pdf.SetFont("Arial", "", 9)
	for _, sc := range namedProjections(r.report) {
		b := sc.Projection.Breakdown
		cells := []string{sc.Name, FormatYen(b.Living), FormatYen(b.Education), FormatYen(b.Loan), FormatYen(b.Recurring), FormatYen(b.Event)}
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			r.pdf.CellFormat(widths[i], 6, r.tr(c), "1", 0, align, false, 0, "")
		}
		r.pdf.Ln(-1)
	}
}

func (r *pdfReport) addYearlyTable() {
	p := r.report.Baseline
	if p == nil || p.Len() == 0 {
		return
	}
	r.heading("Baseline by year")
	widths := []float64{30, 50, 50}
	r.pdf.SetFont("Arial", "B", 9)
	for i, h := range []string{"Month", "Net worth", "Investment"} {
		r.pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)
	r.pdf.SetFont("Arial", "", 9)
	for _, i := range yearlyIndexes(p) {
		r.pdf.CellFormat(widths[0], 5, p.Months[i], "1", 0, "L", false, 0, "")
		r.pdf.CellFormat(widths[1], 5, r.tr(FormatYen(p.NetWorth[i])), "1", 0, "R", false, 0, "")
		r.pdf.CellFormat(widths[2], 5, r.tr(FormatYen(p.InvestmentBalance[i])), "1", 1, "R", false, 0, "")
	}
}
