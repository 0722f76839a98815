package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/hhforecast/household-forecast/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with an inline SVG chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"yen":     FormatYen,
	"compact": FormatCompact,
}).Parse(htmlTemplateSource))

const (
	svgWidth  = 720.0
	svgHeight = 280.0
	svgPad    = 20.0
)

type htmlLine struct {
	Name   string
	Color  string
	Points string
}

type htmlScenario struct {
	Name      string
	Final     string
	Crash     string
	Breakdown domain.Breakdown
}

type htmlYear struct {
	Month      string
	NetWorth   string
	Investment string
}

func (h HTMLFormatter) Format(report *domain.ForecastReport) ([]byte, error) {
	var buf bytes.Buffer

	series := netWorthSeries(report)
	lo, hi := seriesBounds(series)
	lines := make([]htmlLine, 0, len(series))
	for i, s := range series {
		pts := make([]string, len(s.Values))
		for j, v := range s.Values {
			x, y := plotPoint(j, len(s.Values), v, lo, hi, svgPad, svgPad, svgWidth-2*svgPad, svgHeight-2*svgPad)
			pts[j] = fmt.Sprintf("%.1f,%.1f", x, y)
		}
		c := paletteColor(i)
		lines = append(lines, htmlLine{Name: s.Name, Color: fmt.Sprintf("rgb(%d,%d,%d)", c[0], c[1], c[2]), Points: strings.Join(pts, " ")})
	}
	_, zeroY := plotPoint(0, 1, 0, lo, hi, svgPad, svgPad, svgWidth-2*svgPad, svgHeight-2*svgPad)

	var scenarios []htmlScenario
	for _, sc := range namedProjections(report) {
		crash := "never"
		if sc.Projection.Crashed() {
			crash = *sc.Projection.CrashMonth
		}
		scenarios = append(scenarios, htmlScenario{
			Name:      sc.Name,
			Final:     FormatYen(sc.Projection.FinalNetWorth()),
			Crash:     crash,
			Breakdown: sc.Projection.Breakdown,
		})
	}

	var yearly []htmlYear
	if report.Baseline != nil {
		for _, i := range yearlyIndexes(report.Baseline) {
			yearly = append(yearly, htmlYear{
				Month:      report.Baseline.Months[i],
				NetWorth:   FormatYen(report.Baseline.NetWorth[i]),
				Investment: FormatYen(report.Baseline.InvestmentBalance[i]),
			})
		}
	}

	data := struct {
		Generated      string
		CoreBalance    string
		Assumptions    []string
		Scenarios      []htmlScenario
		Recommendation Recommendation
		Lines          []htmlLine
		Width, Height  float64
		ZeroY          float64
		Yearly         []htmlYear
	}{
		Generated:      report.GeneratedAt.Format("2006-01-02 15:04"),
		CoreBalance:    coreBalanceLine(report),
		Assumptions:    GenerateAssumptions(report.Settings),
		Scenarios:      scenarios,
		Recommendation: AnalyzeScenarios(report),
		Lines:          lines,
		Width:          svgWidth,
		Height:         svgHeight,
		ZeroY:          zeroY,
		Yearly:         yearly,
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
