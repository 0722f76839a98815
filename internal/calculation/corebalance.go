package calculation

import (
	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/hhforecast/household-forecast/pkg/dateutil"
	moneyfmt "github.com/hhforecast/household-forecast/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CoreBalanceInput is the history the estimator reads. None of it is modified.
type CoreBalanceInput struct {
	Balances          []domain.MonthlyBalance
	RecurringExpenses []domain.RecurringExpense
	Loans             []domain.Loan
	FutureEvents      []domain.FutureEvent
	Families          []domain.FamilyMember
}

// EstimateCoreBalance returns the average month-over-month surplus the household
// generated once known special expenses are added back. ok is false when fewer
// than two balances are available.
func (ce *CalculationEngine) EstimateCoreBalance(in CoreBalanceInput) (decimal.Decimal, bool) {
	balances := domain.SortedBalances(in.Balances)
	if len(balances) < 2 {
		return decimal.Zero, false
	}

	currentYear := ce.now().Year()
	sum := decimal.Zero
	for i := 1; i < len(balances); i++ {
		month := balances[i].Month
		actualChange := balances[i].Total.Sub(balances[i-1].Total)
		recurring := RecurringDueAmount(month, in.RecurringExpenses)
		loans := LoanDueAmount(month, in.Loans)
		events := ce.historicalEventAmount(month, currentYear, in.FutureEvents, in.Families)

		surplus := actualChange.Add(recurring).Add(loans).Add(events)
		if ce.Debug {
			ce.Logger.Debugf("core balance %s: change=%s recurring=%s loans=%s events=%s surplus=%s",
				month, actualChange, recurring, loans, events, surplus)
		}
		sum = sum.Add(surplus)
	}

	avg := sum.Div(decimal.NewFromInt(int64(len(balances) - 1)))
	return moneyfmt.RoundHalfUp(avg), true
}

// historicalEventAmount sums events whose birth-year-anchored date falls in month.
func (ce *CalculationEngine) historicalEventAmount(month string, currentYear int, events []domain.FutureEvent, families []domain.FamilyMember) decimal.Decimal {
	if !dateutil.IsValidYearMonth(month) {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, ev := range events {
		ref := domain.LookupMember(families, ev.FamilyID)
		if ref.Missing() {
			continue
		}
		if dateutil.YearMonthOf(ev.EventYear(currentYear, ref.Member.Age), ev.TargetMonth) == month {
			total = total.Add(ev.Amount)
		}
	}
	return total
}
