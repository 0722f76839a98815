package calculation

import (
	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/hhforecast/household-forecast/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// IsRecurringDue reports whether an expense fires in targetYM: same calendar month
// as its start, never before the start, every IntervalYears years.
func IsRecurringDue(expense domain.RecurringExpense, targetYM string) bool {
	if expense.IntervalYears <= 0 || expense.StartYM > targetYM {
		return false
	}
	gap, err := dateutil.DiffMonthsE(targetYM, expense.StartYM)
	if err != nil || gap%12 != 0 {
		return false
	}
	return (gap/12)%expense.IntervalYears == 0
}

// RecurringDueAmount sums every recurring expense firing in targetYM.
func RecurringDueAmount(targetYM string, expenses []domain.RecurringExpense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if IsRecurringDue(e, targetYM) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// LoanDueAmount sums the installments of loans active in ym.
func LoanDueAmount(ym string, loans []domain.Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		if l.ActiveIn(ym) {
			total = total.Add(l.Amount)
		}
	}
	return total
}
