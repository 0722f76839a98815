package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.ForecastReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "HOUSEHOLD CASH-FLOW FORECAST")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(report.Settings) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "CORE BALANCE")
	fmt.Fprintln(&buf, "============")
	fmt.Fprintln(&buf, coreBalanceLine(report))
	fmt.Fprintln(&buf)

	if report.Baseline != nil {
		writeProjection(&buf, "BASELINE", report.Baseline, nil)
	}

	for i, sc := range report.Comparisons {
		title := fmt.Sprintf("SCENARIO %d: %s", i+1, sc.Name)
		writeProjection(&buf, title, sc.Projection, report.Baseline)
	}

	rec := AnalyzeScenarios(report)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		fmt.Fprintf(&buf, "Best scenario: %s\n", rec.ScenarioName)
		fmt.Fprintf(&buf, "Final net worth change vs baseline: %s (%s)\n", signedYen(rec.NetWorthChange), FormatPercentage(rec.PercentageChange))
	}

	return buf.Bytes(), nil
}

func writeProjection(buf *bytes.Buffer, title string, p, baseline *domain.Projection) {
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	if p == nil || p.Len() == 0 {
		fmt.Fprintln(buf, "  (no projection)")
		fmt.Fprintln(buf)
		return
	}

	fmt.Fprintf(buf, "  Start (%s):            %s\n", p.Months[0], FormatYen(p.NetWorth[0]))
	fmt.Fprintf(buf, "  Final (%s):            %s\n", p.Months[p.Len()-1], FormatYen(p.FinalNetWorth()))
	if baseline != nil {
		fmt.Fprintf(buf, "  Versus baseline:              %s\n", signedYen(p.FinalNetWorth().Sub(baseline.FinalNetWorth())))
	}
	if p.Crashed() {
		fmt.Fprintf(buf, "  Net worth turns negative:     %s\n", *p.CrashMonth)
	} else {
		fmt.Fprintln(buf, "  Net worth stays positive over the horizon")
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "SPENDING BREAKDOWN:")
	fmt.Fprintln(buf, "-------------------")
	b := p.Breakdown
	fmt.Fprintf(buf, "  Living:         %s\n", FormatYen(b.Living))
	fmt.Fprintf(buf, "  Education:      %s\n", FormatYen(b.Education))
	fmt.Fprintf(buf, "  Loans:          %s\n", FormatYen(b.Loan))
	fmt.Fprintf(buf, "  Recurring:      %s\n", FormatYen(b.Recurring))
	fmt.Fprintf(buf, "  Events:         %s\n", FormatYen(b.Event))
	fmt.Fprintf(buf, "  TOTAL SPENT:    %s\n", FormatYen(b.Total()))
	fmt.Fprintf(buf, "  Invested:       %s\n", FormatYen(b.Investment))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "YEARLY NET WORTH:")
	fmt.Fprintln(buf, "-----------------")
	fmt.Fprintf(buf, "  %-8s %5s %16s %16s\n", "Month", "Age", "Net worth", "Investment")
	for _, i := range yearlyIndexes(p) {
		age := "-"
		if i > 0 && i <= len(p.Details) {
			age = intToString(p.Details[i-1].HeadAge)
		}
		fmt.Fprintf(buf, "  %-8s %5s %16s %16s\n", p.Months[i], age, FormatYen(p.NetWorth[i]), FormatYen(p.InvestmentBalance[i]))
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf)
}

// yearlyIndexes picks every twelfth series point, always including the last one.
func yearlyIndexes(p *domain.Projection) []int {
	n := p.Len()
	var out []int
	for i := 0; i < n; i += 12 {
		out = append(out, i)
	}
	if n > 0 && out[len(out)-1] != n-1 {
		out = append(out, n-1)
	}
	return out
}

func signedYen(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatYen(d)
	}
	return FormatYen(d)
}
