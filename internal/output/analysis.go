package output

import (
	"sort"

	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName     string
	FinalNetWorth    decimal.Decimal
	NetWorthChange   decimal.Decimal
	PercentageChange decimal.Decimal
	CrashMonth       *string
}

// AnalyzeScenarios picks the saved scenario that ends with the highest net worth.
// Scenarios that never go negative rank ahead of any that do.
func AnalyzeScenarios(report *domain.ForecastReport) Recommendation {
	if report == nil || len(report.Comparisons) == 0 {
		return Recommendation{}
	}
	baseline := decimal.Zero
	if report.Baseline != nil {
		baseline = report.Baseline.FinalNetWorth()
	}

	ranks := make([]domain.ScenarioProjection, 0, len(report.Comparisons))
	for _, c := range report.Comparisons {
		if c.Projection != nil {
			ranks = append(ranks, c)
		}
	}
	if len(ranks) == 0 {
		return Recommendation{}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		a, b := ranks[i].Projection, ranks[j].Projection
		if a.Crashed() != b.Crashed() {
			return !a.Crashed()
		}
		return a.FinalNetWorth().GreaterThan(b.FinalNetWorth())
	})

	best := ranks[0]
	final := best.Projection.FinalNetWorth()
	delta := final.Sub(baseline)
	pct := decimal.Zero
	if !baseline.IsZero() {
		pct = delta.Div(baseline.Abs()).Mul(decimalHundred)
	}
	return Recommendation{
		ScenarioName:     best.Name,
		FinalNetWorth:    final,
		NetWorthChange:   delta,
		PercentageChange: pct,
		CrashMonth:       best.Projection.CrashMonth,
	}
}
