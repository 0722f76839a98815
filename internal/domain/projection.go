package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyCashFlow is the engine's working for a single simulated month.
type MonthlyCashFlow struct {
	Month      string `json:"month"`
	Index      int    `json:"index"`
	HeadAge    int    `json:"head_age"`
	Dependents int    `json:"dependents"`

	Income       decimal.Decimal `json:"income"`
	Severance    decimal.Decimal `json:"severance"`
	Living       decimal.Decimal `json:"living"`
	Education    decimal.Decimal `json:"education"`
	Recurring    decimal.Decimal `json:"recurring"`
	Loan         decimal.Decimal `json:"loan"`
	Event        decimal.Decimal `json:"event"`
	Contribution decimal.Decimal `json:"contribution"`
	Profit       decimal.Decimal `json:"profit"`

	NetWorth          decimal.Decimal `json:"net_worth"`
	InvestmentBalance decimal.Decimal `json:"investment_balance"`
}

// Outflow is everything the month spent, excluding the investment transfer.
func (m MonthlyCashFlow) Outflow() decimal.Decimal {
	return m.Living.Add(m.Education).Add(m.Recurring).Add(m.Loan).Add(m.Event)
}

// Breakdown totals spending by category over the whole horizon.
type Breakdown struct {
	Living     decimal.Decimal `json:"living"`
	Education  decimal.Decimal `json:"education"`
	Loan       decimal.Decimal `json:"loan"`
	Recurring  decimal.Decimal `json:"recurring"`
	Investment decimal.Decimal `json:"investment"`
	Event      decimal.Decimal `json:"event"`
}

// Total sums every category except investment, which is a transfer rather than spending.
func (b Breakdown) Total() decimal.Decimal {
	return b.Living.Add(b.Education).Add(b.Loan).Add(b.Recurring).Add(b.Event)
}

// Projection is a month-by-month forecast. Index 0 of each series is the seed month.
type Projection struct {
	Months            []string          `json:"months"`
	NetWorth          []decimal.Decimal `json:"net_worth"`
	InvestmentBalance []decimal.Decimal `json:"investment_balance"`
	Breakdown         Breakdown         `json:"breakdown"`
	CrashMonth        *string           `json:"crash_month"`
	Details           []MonthlyCashFlow `json:"details"`
}

// Len returns the number of points in each series.
func (p *Projection) Len() int {
	return len(p.Months)
}

// FinalNetWorth returns the last value of the net-worth series.
func (p *Projection) FinalNetWorth() decimal.Decimal {
	if len(p.NetWorth) == 0 {
		return decimal.Zero
	}
	return p.NetWorth[len(p.NetWorth)-1]
}

// Crashed reports whether net worth went negative at some point.
func (p *Projection) Crashed() bool {
	return p.CrashMonth != nil
}

// ScenarioProjection pairs a saved scenario with its forecast.
type ScenarioProjection struct {
	ScenarioID string      `json:"scenario_id"`
	Name       string      `json:"name"`
	Projection *Projection `json:"projection"`
}

// ForecastReport is everything presentation needs: the indicator, the baseline and comparisons.
type ForecastReport struct {
	GeneratedAt time.Time `json:"generated_at"`
	// Settings are the live assumptions the baseline ran with.
	Settings Settings `json:"settings"`
	// CoreBalance is nil when there are fewer than two historical balances.
	CoreBalance *decimal.Decimal     `json:"core_balance"`
	Baseline    *Projection          `json:"baseline"`
	Comparisons []ScenarioProjection `json:"comparisons"`
}
