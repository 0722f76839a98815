package calculation

import (
	"testing"
	"time"

	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(now time.Time) *CalculationEngine {
	ce := NewCalculationEngine()
	ce.Now = func() time.Time { return now }
	return ce
}

func bal(month string, total int64) domain.MonthlyBalance {
	return domain.MonthlyBalance{Month: month, Total: decimal.NewFromInt(total)}
}

func TestEstimateCoreBalanceTwoBalances(t *testing.T) {
	ce := newTestEngine(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	got, ok := ce.EstimateCoreBalance(CoreBalanceInput{
		Balances: []domain.MonthlyBalance{bal("2025-01", 1000000), bal("2025-02", 1100000)},
	})
	require.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromInt(100000)), "got %s", got)
}

func TestEstimateCoreBalanceInsufficientData(t *testing.T) {
	ce := newTestEngine(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	_, ok := ce.EstimateCoreBalance(CoreBalanceInput{})
	assert.False(t, ok)

	_, ok = ce.EstimateCoreBalance(CoreBalanceInput{Balances: []domain.MonthlyBalance{bal("2025-01", 1)}})
	assert.False(t, ok)
}

func TestEstimateCoreBalanceAddsBackKnownExpenses(t *testing.T) {
	ce := newTestEngine(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	families := []domain.FamilyMember{{ID: "head", Age: 45}, {ID: "kid", Age: 12}}

	in := CoreBalanceInput{
		// Unsorted on purpose.
		Balances: []domain.MonthlyBalance{
			bal("2025-03", 1050000),
			bal("2025-01", 1000000),
			bal("2025-02", 900000),
		},
		// Fires in 2025-02: drains 200000 that month.
		RecurringExpenses: []domain.RecurringExpense{
			{Amount: decimal.NewFromInt(200000), IntervalYears: 1, StartYM: "2024-02"},
		},
		// Active in 2025-02 and 2025-03.
		Loans: []domain.Loan{{Amount: decimal.NewFromInt(50000), StartYM: "2025-02", EndYM: "2030-12"}},
		FutureEvents: []domain.FutureEvent{
			// Kid is 12 in 2025, so age 12 resolves to 2025; March matches.
			{Name: "Junior high entry", Amount: decimal.NewFromInt(100000), FamilyID: "kid", TargetAge: 12, TargetMonth: 3},
			// Dangling reference: skipped.
			{Name: "Ghost", Amount: decimal.NewFromInt(999999), FamilyID: "nobody", TargetAge: 1, TargetMonth: 3},
		},
		Families: families,
	}

	got, ok := ce.EstimateCoreBalance(in)
	require.True(t, ok)
	// Feb: -100000 + 200000 + 50000 = 150000
	// Mar: 150000 + 50000 + 100000 = 300000
	assert.True(t, got.Equal(decimal.NewFromInt(225000)), "got %s", got)
}

func TestEstimateCoreBalanceRoundsToNearest(t *testing.T) {
	ce := newTestEngine(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	got, ok := ce.EstimateCoreBalance(CoreBalanceInput{
		Balances: []domain.MonthlyBalance{bal("2025-01", 0), bal("2025-02", 1), bal("2025-03", 2), bal("2025-04", 4)},
	})
	require.True(t, ok)
	// (1 + 1 + 2) / 3 = 1.333 -> 1
	assert.True(t, got.Equal(decimal.NewFromInt(1)), "got %s", got)

	got, ok = ce.EstimateCoreBalance(CoreBalanceInput{
		Balances: []domain.MonthlyBalance{bal("2025-01", 0), bal("2025-02", 1), bal("2025-03", 3)},
	})
	require.True(t, ok)
	// (1 + 2) / 2 = 1.5 -> 2
	assert.True(t, got.Equal(decimal.NewFromInt(2)), "got %s", got)
}

func TestEstimateCoreBalanceDoesNotMutateInput(t *testing.T) {
	ce := newTestEngine(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	balances := []domain.MonthlyBalance{bal("2025-02", 2), bal("2025-01", 1)}
	_, _ = ce.EstimateCoreBalance(CoreBalanceInput{Balances: balances})
	assert.Equal(t, "2025-02", balances[0].Month)
}
