package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/hhforecast/household-forecast/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxPredictionYears mirrors the engine's horizon cap.
const MaxPredictionYears = 50

// InputParser handles parsing of household data files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a data model from a YAML or JSON file. The extension picks the decoder.
func (ip *InputParser) LoadFromFile(filename string) (*domain.DataModel, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	m, err := ip.Parse(data, formatForPath(filename))
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateDataModel(m); err != nil {
		return nil, fmt.Errorf("data model validation failed: %w", err)
	}

	return m, nil
}

// Parse decodes data onto the default model, so absent sections keep their defaults.
// format is "json" or "yaml".
func (ip *InputParser) Parse(data []byte, format string) (*domain.DataModel, error) {
	m := domain.DefaultDataModel()
	switch format {
	case "json":
		if err := json.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	if m.Settings.IncomePlans == nil {
		m.Settings.IncomePlans = map[string]domain.IncomePlan{}
	}
	return m, nil
}

// WriteToFile writes m as YAML or JSON depending on the extension.
func (ip *InputParser) WriteToFile(filename string, m *domain.DataModel) error {
	var (
		data []byte
		err  error
	)
	if formatForPath(filename) == "json" {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = yaml.Marshal(m)
	}
	if err != nil {
		return fmt.Errorf("failed to encode data model: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

func formatForPath(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return "json"
	}
	return "yaml"
}

// ValidateDataModel rejects malformed input at the boundary. References between
// records (income plans or events naming unknown members) are left to the engine,
// which skips them.
func (ip *InputParser) ValidateDataModel(m *domain.DataModel) error {
	if m == nil {
		return fmt.Errorf("no data model provided")
	}

	if err := ip.validateSettings(&m.Settings); err != nil {
		return fmt.Errorf("settings validation failed: %w", err)
	}

	seen := make(map[string]bool, len(m.Families))
	for i, f := range m.Families {
		if err := ip.validateFamilyMember(f); err != nil {
			return fmt.Errorf("family member %d validation failed: %w", i, err)
		}
		if seen[f.ID] {
			return fmt.Errorf("family member %d validation failed: duplicate id %q", i, f.ID)
		}
		seen[f.ID] = true
	}

	for i, e := range m.RecurringExpenses {
		if err := ip.validateRecurringExpense(e); err != nil {
			return fmt.Errorf("recurring expense %d validation failed: %w", i, err)
		}
	}

	for i, l := range m.Loans {
		if err := ip.validateLoan(l); err != nil {
			return fmt.Errorf("loan %d validation failed: %w", i, err)
		}
	}

	for i, ev := range m.FutureEvents {
		if err := ip.validateFutureEvent(ev); err != nil {
			return fmt.Errorf("future event %d validation failed: %w", i, err)
		}
	}

	months := make(map[string]bool, len(m.MonthlyBalances))
	for i, b := range m.MonthlyBalances {
		if err := ip.validateMonthlyBalance(b); err != nil {
			return fmt.Errorf("monthly balance %d validation failed: %w", i, err)
		}
		if months[b.Month] {
			return fmt.Errorf("monthly balance %d validation failed: duplicate month %s", i, b.Month)
		}
		months[b.Month] = true
	}

	for i, s := range m.Scenarios {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("scenario %d validation failed: name is required", i)
		}
		if err := ip.validateSettings(&s.Settings); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
	}

	return nil
}

// validateSettings validates the economic assumptions
func (ip *InputParser) validateSettings(s *domain.Settings) error {
	if s.PredictionYears <= 0 || s.PredictionYears > MaxPredictionYears {
		return fmt.Errorf("prediction years must be between 1 and %d", MaxPredictionYears)
	}
	if s.CurrentLivingCost.IsNegative() {
		return fmt.Errorf("current living cost cannot be negative")
	}
	if s.InflationRate.LessThan(decimal.NewFromInt(-10)) {
		return fmt.Errorf("inflation rate cannot be less than -10%% (extreme deflation)")
	}
	if s.InflationRate.GreaterThan(decimal.NewFromInt(50)) {
		return fmt.Errorf("inflation rate cannot exceed 50%%")
	}
	if s.InvestmentMonthly.IsNegative() {
		return fmt.Errorf("monthly investment cannot be negative")
	}
	if s.InvestmentYield.LessThan(decimal.NewFromInt(-100)) || s.InvestmentYield.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("investment yield must be between -100%% and 100%%")
	}
	if s.CostReductionRate.IsNegative() || s.CostReductionRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("cost reduction rate must be between 0%% and 100%%")
	}
	if s.ChildIndependenceAge < 0 {
		return fmt.Errorf("child independence age cannot be negative")
	}
	if s.LicenseReturnAge < 0 {
		return fmt.Errorf("license return age cannot be negative")
	}
	if !s.EducationPlan.Valid() {
		return fmt.Errorf("unknown education plan %q", s.EducationPlan)
	}
	if !s.UniversityHousing.Valid() {
		return fmt.Errorf("unknown university housing %q", s.UniversityHousing)
	}
	if s.AwayAllowance.IsNegative() {
		return fmt.Errorf("away allowance cannot be negative")
	}
	if s.SalaryIncrease.IsNegative() {
		return fmt.Errorf("salary increase cannot be negative")
	}
	for _, id := range s.IncomePlanIDs() {
		if err := ip.validateIncomePlan(s.IncomePlans[id]); err != nil {
			return fmt.Errorf("income plan %s: %w", id, err)
		}
	}
	return nil
}

func (ip *InputParser) validateIncomePlan(p domain.IncomePlan) error {
	if p.MonthlyIncome.IsNegative() {
		return fmt.Errorf("monthly income cannot be negative")
	}
	if p.AnnualBonus.IsNegative() {
		return fmt.Errorf("annual bonus cannot be negative")
	}
	if p.Severance.IsNegative() {
		return fmt.Errorf("severance cannot be negative")
	}
	if p.Pension.IsNegative() {
		return fmt.Errorf("pension cannot be negative")
	}
	if p.RetirementAge < 0 {
		return fmt.Errorf("retirement age cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateFamilyMember(f domain.FamilyMember) error {
	if f.ID == "" {
		return fmt.Errorf("id is required")
	}
	if f.Age < 0 || f.Age > 120 {
		return fmt.Errorf("age must be between 0 and 120")
	}
	if f.BirthMonth != 0 && (f.BirthMonth < 1 || f.BirthMonth > 12) {
		return fmt.Errorf("birth month must be between 1 and 12")
	}
	return nil
}

func (ip *InputParser) validateRecurringExpense(e domain.RecurringExpense) error {
	if e.Amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	if e.IntervalYears <= 0 {
		return fmt.Errorf("interval must be a positive number of years")
	}
	if !dateutil.IsValidYearMonth(e.StartYM) {
		return fmt.Errorf("start month %q must be YYYY-MM", e.StartYM)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("unknown category %q", e.Category)
	}
	return nil
}

func (ip *InputParser) validateLoan(l domain.Loan) error {
	if l.Amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	if !dateutil.IsValidYearMonth(l.StartYM) {
		return fmt.Errorf("start month %q must be YYYY-MM", l.StartYM)
	}
	if !dateutil.IsValidYearMonth(l.EndYM) {
		return fmt.Errorf("end month %q must be YYYY-MM", l.EndYM)
	}
	if l.StartYM > l.EndYM {
		return fmt.Errorf("start month %s is after end month %s", l.StartYM, l.EndYM)
	}
	return nil
}

func (ip *InputParser) validateFutureEvent(ev domain.FutureEvent) error {
	if ev.Amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	if ev.TargetAge < 0 {
		return fmt.Errorf("target age cannot be negative")
	}
	if ev.TargetMonth < 1 || ev.TargetMonth > 12 {
		return fmt.Errorf("target month must be between 1 and 12")
	}
	return nil
}

func (ip *InputParser) validateMonthlyBalance(b domain.MonthlyBalance) error {
	if !dateutil.IsValidYearMonth(b.Month) {
		return fmt.Errorf("month %q must be YYYY-MM", b.Month)
	}
	if len(b.Accounts) > 0 && !b.AccountsSum().Equal(b.Total) {
		return fmt.Errorf("total %s does not match account sum %s", b.Total, b.AccountsSum())
	}
	return nil
}

// CreateExampleDataModel creates an example household for `init`
func (ip *InputParser) CreateExampleDataModel() *domain.DataModel {
	m := domain.DefaultDataModel()

	bank := domain.Account{ID: "bank", Name: "Main bank"}
	securities := domain.Account{ID: "securities", Name: "Securities"}
	m.Accounts = []domain.Account{bank, securities}

	m.Families = []domain.FamilyMember{
		{ID: "taro", Name: "Taro", Age: 42, BirthMonth: 5},
		{ID: "hanako", Name: "Hanako", Age: 40, BirthMonth: 9},
		{ID: "yui", Name: "Yui", Age: 10, BirthMonth: 7},
		{ID: "sota", Name: "Sota", Age: 6, BirthMonth: 2},
	}

	m.Settings.CurrentLivingCost = decimal.NewFromInt(320000)
	m.Settings.InvestmentMonthly = decimal.NewFromInt(30000)
	m.Settings.SalaryIncrease = decimal.NewFromInt(5000)
	m.Settings.IncomePlans = map[string]domain.IncomePlan{
		"taro": {
			MonthlyIncome: decimal.NewFromInt(420000),
			AnnualBonus:   decimal.NewFromInt(1200000),
			RetirementAge: 65,
			Severance:     decimal.NewFromInt(15000000),
			Pension:       decimal.NewFromInt(160000),
		},
		"hanako": {
			MonthlyIncome: decimal.NewFromInt(180000),
			AnnualBonus:   decimal.NewFromInt(300000),
			RetirementAge: 60,
			Pension:       decimal.NewFromInt(70000),
		},
	}

	m.RecurringExpenses = []domain.RecurringExpense{
		{ID: "shaken", Name: "車検", Amount: decimal.NewFromInt(120000), IntervalYears: 2, StartYM: "2025-11", Category: domain.CategoryVehicle},
		{ID: "car-insurance", Name: "Car insurance", Amount: decimal.NewFromInt(80000), IntervalYears: 1, StartYM: "2025-04", Category: domain.CategoryVehicle},
		{ID: "fire-insurance", Name: "Fire insurance", Amount: decimal.NewFromInt(60000), IntervalYears: 5, StartYM: "2026-03", Category: domain.CategoryInsurance},
		{ID: "exterior", Name: "Exterior repair", Amount: decimal.NewFromInt(1500000), IntervalYears: 10, StartYM: "2030-06", Category: domain.CategoryHousing},
	}

	m.Loans = []domain.Loan{
		{ID: "mortgage", Name: "Mortgage", Amount: decimal.NewFromInt(95000), StartYM: "2018-04", EndYM: "2053-03"},
	}

	m.FutureEvents = []domain.FutureEvent{
		{ID: "yui-university", Name: "University entrance", Amount: decimal.NewFromInt(800000), FamilyID: "yui", TargetAge: 18, TargetMonth: 4},
		{ID: "sota-university", Name: "University entrance", Amount: decimal.NewFromInt(800000), FamilyID: "sota", TargetAge: 18, TargetMonth: 4},
	}

	for _, b := range []struct {
		month      string
		bank, secs int64
	}{
		{"2025-01", 4200000, 1800000},
		{"2025-02", 4310000, 1830000},
		{"2025-03", 4180000, 1860000},
	} {
		m.UpsertBalance(domain.MonthlyBalance{
			Month: b.month,
			Total: decimal.NewFromInt(b.bank + b.secs),
			Accounts: map[string]decimal.Decimal{
				bank.ID:       decimal.NewFromInt(b.bank),
				securities.ID: decimal.NewFromInt(b.secs),
			},
		})
	}

	return m
}
