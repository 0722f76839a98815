package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hhforecast/household-forecast/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// NewID returns a fresh identifier for a household record.
func NewID() string {
	return uuid.New().String()
}

// Account is a named place money is held; balances reference it by ID.
type Account struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// NewAccount creates an account with a generated ID.
func NewAccount(name string) Account {
	return Account{ID: NewID(), Name: name}
}

// FamilyMember is one person in the household. The first member of the roster is the head.
type FamilyMember struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Age        int    `yaml:"age" json:"age"`
	BirthMonth int    `yaml:"birth_month" json:"birth_month"`
}

// NewFamilyMember creates a member with a generated ID.
func NewFamilyMember(name string, age, birthMonth int) FamilyMember {
	return FamilyMember{ID: NewID(), Name: name, Age: age, BirthMonth: birthMonth}
}

// ExpenseCategory tags a recurring expense.
type ExpenseCategory string

const (
	CategoryVehicle   ExpenseCategory = "vehicle"
	CategoryHousing   ExpenseCategory = "housing"
	CategoryInsurance ExpenseCategory = "insurance"
	CategoryEducation ExpenseCategory = "education"
	CategoryOther     ExpenseCategory = "other"
)

// Valid reports whether c is one of the known categories. Empty means untagged and is valid.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case "", CategoryVehicle, CategoryHousing, CategoryInsurance, CategoryEducation, CategoryOther:
		return true
	}
	return false
}

// RecurringIntervals are the cadences offered when entering a recurring expense.
// The engine accepts any positive interval.
var RecurringIntervals = []int{1, 2, 3, 4, 5, 10}

// vehicleKeywords classify untagged legacy records by name. Older records filed
// car insurance without a tag, so insurance names count as vehicle-related.
var vehicleKeywords = []string{"車", "カー", "car", "vehicle", "automobile", "保険", "insurance"}

// RecurringExpense fires in the start month of every IntervalYears years from StartYM.
type RecurringExpense struct {
	ID            string          `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	Amount        decimal.Decimal `yaml:"amount" json:"amount"`
	IntervalYears int             `yaml:"interval_years" json:"interval_years"`
	StartYM       string          `yaml:"start_ym" json:"start_ym"`
	Category      ExpenseCategory `yaml:"category,omitempty" json:"category,omitempty"`
}

// NewRecurringExpense creates a recurring expense with a generated ID.
func NewRecurringExpense(name string, amount decimal.Decimal, intervalYears int, startYM string, category ExpenseCategory) RecurringExpense {
	return RecurringExpense{ID: NewID(), Name: name, Amount: amount, IntervalYears: intervalYears, StartYM: startYM, Category: category}
}

// EffectiveCategory returns the tag, defaulting untagged records to other.
func (r RecurringExpense) EffectiveCategory() ExpenseCategory {
	if r.Category == "" {
		return CategoryOther
	}
	return r.Category
}

// IsVehicleRelated classifies the expense for licence-return suppression.
// An explicit tag always wins; the name match only applies to untagged records.
func (r RecurringExpense) IsVehicleRelated() bool {
	if r.Category != "" {
		return r.Category == CategoryVehicle
	}
	name := strings.ToLower(r.Name)
	for _, kw := range vehicleKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// Loan is a fixed monthly payment over [StartYM, EndYM], inclusive on both ends.
type Loan struct {
	ID      string          `yaml:"id" json:"id"`
	Name    string          `yaml:"name" json:"name"`
	Amount  decimal.Decimal `yaml:"amount" json:"amount"`
	StartYM string          `yaml:"start_ym" json:"start_ym"`
	EndYM   string          `yaml:"end_ym" json:"end_ym"`
}

// NewLoan creates a loan with a generated ID.
func NewLoan(name string, amount decimal.Decimal, startYM, endYM string) Loan {
	return Loan{ID: NewID(), Name: name, Amount: amount, StartYM: startYM, EndYM: endYM}
}

// ActiveIn reports whether the loan is paid in month ym.
func (l Loan) ActiveIn(ym string) bool {
	return dateutil.InRange(ym, l.StartYM, l.EndYM)
}

// FutureEvent is a one-off expense due when a member reaches TargetAge, in TargetMonth.
type FutureEvent struct {
	ID          string          `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	FamilyID    string          `yaml:"family_id" json:"family_id"`
	TargetAge   int             `yaml:"target_age" json:"target_age"`
	TargetMonth int             `yaml:"target_month" json:"target_month"`
}

// NewFutureEvent creates an event with a generated ID.
func NewFutureEvent(name string, amount decimal.Decimal, familyID string, targetAge, targetMonth int) FutureEvent {
	return FutureEvent{ID: NewID(), Name: name, Amount: amount, FamilyID: familyID, TargetAge: targetAge, TargetMonth: targetMonth}
}

// EventYear anchors the event on the member's birth year: (currentYear - age) + targetAge.
func (e FutureEvent) EventYear(currentYear, memberAge int) int {
	return currentYear - memberAge + e.TargetAge
}

// MonthlyBalance is the observed household balance for one month.
type MonthlyBalance struct {
	Month    string                     `yaml:"month" json:"month"`
	Total    decimal.Decimal            `yaml:"total" json:"total"`
	Accounts map[string]decimal.Decimal `yaml:"accounts" json:"accounts"`
}

// AccountsSum totals the per-account balances.
func (b MonthlyBalance) AccountsSum() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range b.Accounts {
		sum = sum.Add(v)
	}
	return sum
}

// Clone deep copies the balance, including the accounts map.
func (b MonthlyBalance) Clone() MonthlyBalance {
	out := b
	if b.Accounts != nil {
		out.Accounts = make(map[string]decimal.Decimal, len(b.Accounts))
		for k, v := range b.Accounts {
			out.Accounts[k] = v
		}
	}
	return out
}
