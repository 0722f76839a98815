package output

import (
	"bytes"
	"fmt"

	"github.com/hhforecast/household-forecast/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.ForecastReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "HOUSEHOLD FORECAST SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintln(&buf, coreBalanceLine(report))
	fmt.Fprintln(&buf)
	if report.Baseline != nil {
		fmt.Fprintln(&buf, summaryLine("Baseline", report.Baseline))
	}
	for _, sc := range sortedComparisons(report) {
		fmt.Fprintln(&buf, summaryLine(sc.Name, sc.Projection))
	}
	rec := AnalyzeScenarios(report)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ %s / %s)\n", rec.ScenarioName, FormatYen(rec.NetWorthChange), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}

func coreBalanceLine(report *domain.ForecastReport) string {
	if report.CoreBalance == nil {
		return "Core balance: more data needed (record at least two monthly balances)"
	}
	return fmt.Sprintf("Core balance: %s / month", FormatYen(*report.CoreBalance))
}

func summaryLine(name string, p *domain.Projection) string {
	if p == nil || p.Len() == 0 {
		return fmt.Sprintf("%s: no projection", name)
	}
	crash := "never"
	if p.Crashed() {
		crash = *p.CrashMonth
	}
	return fmt.Sprintf("%s: Final=%s (%s) Investment=%s Negative=%s",
		name,
		FormatCompact(p.FinalNetWorth()),
		p.Months[p.Len()-1],
		FormatCompact(p.InvestmentBalance[len(p.InvestmentBalance)-1]),
		crash,
	)
}
