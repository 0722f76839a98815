package domain

import (
	"errors"
	"sort"
	"time"

	"github.com/hhforecast/household-forecast/pkg/dateutil"
)

// ErrScenarioNotFound is returned when deleting or fetching an unknown scenario.
var ErrScenarioNotFound = errors.New("scenario not found")

// DataModel is the whole household record: what the store persists and the export mirrors.
type DataModel struct {
	Accounts          []Account          `yaml:"accounts" json:"accounts"`
	Families          []FamilyMember     `yaml:"families" json:"families"`
	RecurringExpenses []RecurringExpense `yaml:"recurring_expenses" json:"recurring_expenses"`
	Loans             []Loan             `yaml:"loans" json:"loans"`
	FutureEvents      []FutureEvent      `yaml:"future_events" json:"future_events"`
	MonthlyBalances   []MonthlyBalance   `yaml:"monthly_balances" json:"monthly_balances"`
	Settings          Settings           `yaml:"settings" json:"settings"`
	Scenarios         []Scenario         `yaml:"scenarios" json:"scenarios"`
}

// DefaultDataModel returns an empty household with default settings.
func DefaultDataModel() *DataModel {
	return &DataModel{
		Accounts:          []Account{},
		Families:          []FamilyMember{},
		RecurringExpenses: []RecurringExpense{},
		Loans:             []Loan{},
		FutureEvents:      []FutureEvent{},
		MonthlyBalances:   []MonthlyBalance{},
		Settings:          DefaultSettings(),
		Scenarios:         []Scenario{},
	}
}

// Clone returns a structurally independent copy.
func (m *DataModel) Clone() *DataModel {
	out := &DataModel{
		Accounts:          append([]Account{}, m.Accounts...),
		Families:          CloneFamilies(m.Families),
		RecurringExpenses: append([]RecurringExpense{}, m.RecurringExpenses...),
		Loans:             append([]Loan{}, m.Loans...),
		FutureEvents:      append([]FutureEvent{}, m.FutureEvents...),
		MonthlyBalances:   make([]MonthlyBalance, len(m.MonthlyBalances)),
		Settings:          m.Settings.Clone(),
		Scenarios:         make([]Scenario, len(m.Scenarios)),
	}
	for i, b := range m.MonthlyBalances {
		out.MonthlyBalances[i] = b.Clone()
	}
	for i, s := range m.Scenarios {
		out.Scenarios[i] = s.Clone()
	}
	return out
}

// CloneFamilies copies a roster so ages can be advanced without touching the original.
func CloneFamilies(families []FamilyMember) []FamilyMember {
	return append([]FamilyMember{}, families...)
}

// UpsertBalance stores b, replacing any record for the same month in place.
// The collection stays sorted ascending by month.
func (m *DataModel) UpsertBalance(b MonthlyBalance) {
	b = b.Clone()
	for i := range m.MonthlyBalances {
		if m.MonthlyBalances[i].Month == b.Month {
			m.MonthlyBalances[i] = b
			return
		}
	}
	m.MonthlyBalances = append(m.MonthlyBalances, b)
	sort.SliceStable(m.MonthlyBalances, func(i, j int) bool {
		return dateutil.CompareYearMonth(m.MonthlyBalances[i].Month, m.MonthlyBalances[j].Month) < 0
	})
}

// DeleteBalance removes the record for month. It reports whether one was removed.
func (m *DataModel) DeleteBalance(month string) bool {
	for i := range m.MonthlyBalances {
		if m.MonthlyBalances[i].Month == month {
			m.MonthlyBalances = append(m.MonthlyBalances[:i], m.MonthlyBalances[i+1:]...)
			return true
		}
	}
	return false
}

// SortedBalances returns a copy of the balances ordered by month.
func SortedBalances(balances []MonthlyBalance) []MonthlyBalance {
	out := make([]MonthlyBalance, len(balances))
	for i, b := range balances {
		out[i] = b.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool { return dateutil.CompareYearMonth(out[i].Month, out[j].Month) < 0 })
	return out
}

// DeleteAccount removes an account. Balance snapshots keep their historical per-account values.
func (m *DataModel) DeleteAccount(id string) bool {
	for i := range m.Accounts {
		if m.Accounts[i].ID == id {
			m.Accounts = append(m.Accounts[:i], m.Accounts[i+1:]...)
			return true
		}
	}
	return false
}

// MemberLookup is the result of resolving a family ID: either Found (with the
// member and its roster index) or Missing.
type MemberLookup struct {
	Member FamilyMember
	Index  int
	Found  bool
}

// Missing reports whether the reference did not resolve.
func (l MemberLookup) Missing() bool { return !l.Found }

// LookupMember resolves id against a roster.
func LookupMember(families []FamilyMember, id string) MemberLookup {
	for i, f := range families {
		if f.ID == id {
			return MemberLookup{Member: f, Index: i, Found: true}
		}
	}
	return MemberLookup{Index: -1}
}

// Head returns the household head (first member), if any.
func Head(families []FamilyMember) (FamilyMember, bool) {
	if len(families) == 0 {
		return FamilyMember{}, false
	}
	return families[0], true
}

// Scenario is a named, immutable snapshot of the inputs a what-if comparison varies.
type Scenario struct {
	ID                string             `yaml:"id" json:"id"`
	Name              string             `yaml:"name" json:"name"`
	CreatedAt         time.Time          `yaml:"created_at" json:"created_at"`
	Settings          Settings           `yaml:"settings" json:"settings"`
	Families          []FamilyMember     `yaml:"families" json:"families"`
	Loans             []Loan             `yaml:"loans" json:"loans"`
	RecurringExpenses []RecurringExpense `yaml:"recurring_expenses" json:"recurring_expenses"`
}

// Clone deep copies the snapshot.
func (s Scenario) Clone() Scenario {
	out := s
	out.Settings = s.Settings.Clone()
	out.Families = CloneFamilies(s.Families)
	out.Loans = append([]Loan{}, s.Loans...)
	out.RecurringExpenses = append([]RecurringExpense{}, s.RecurringExpenses...)
	return out
}

// SnapshotScenario captures the current settings, roster, loans and recurring
// expenses under name and appends the snapshot to the model.
func (m *DataModel) SnapshotScenario(name string, createdAt time.Time) Scenario {
	s := Scenario{
		ID:                NewID(),
		Name:              name,
		CreatedAt:         createdAt,
		Settings:          m.Settings.Clone(),
		Families:          CloneFamilies(m.Families),
		Loans:             append([]Loan{}, m.Loans...),
		RecurringExpenses: append([]RecurringExpense{}, m.RecurringExpenses...),
	}
	m.Scenarios = append(m.Scenarios, s)
	return s.Clone()
}

// Scenario fetches a snapshot by ID.
func (m *DataModel) Scenario(id string) (Scenario, error) {
	for _, s := range m.Scenarios {
		if s.ID == id {
			return s.Clone(), nil
		}
	}
	return Scenario{}, ErrScenarioNotFound
}

// DeleteScenario removes a snapshot by ID.
func (m *DataModel) DeleteScenario(id string) error {
	for i := range m.Scenarios {
		if m.Scenarios[i].ID == id {
			m.Scenarios = append(m.Scenarios[:i], m.Scenarios[i+1:]...)
			return nil
		}
	}
	return ErrScenarioNotFound
}
