package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// EducationPlan selects which cost column the education table uses.
type EducationPlan string

const (
	EducationAllPublic  EducationPlan = "public"
	EducationAllPrivate EducationPlan = "private"
	// EducationPrivateUniversity is public schooling through high school, then a private university.
	EducationPrivateUniversity EducationPlan = "public_until_high"
)

// Valid reports whether p is a known plan.
func (p EducationPlan) Valid() bool {
	switch p {
	case EducationAllPublic, EducationAllPrivate, EducationPrivateUniversity:
		return true
	}
	return false
}

// HousingMode says whether a university student lives at home or away.
type HousingMode string

const (
	HousingHome HousingMode = "home"
	HousingAway HousingMode = "away"
)

// Valid reports whether m is a known mode.
func (m HousingMode) Valid() bool {
	return m == HousingHome || m == HousingAway
}

// IncomePlan is one member's earning and retirement profile. Amounts are monthly unless named otherwise.
type IncomePlan struct {
	MonthlyIncome decimal.Decimal `yaml:"monthly_income" json:"monthly_income"`
	AnnualBonus   decimal.Decimal `yaml:"annual_bonus" json:"annual_bonus"`
	RetirementAge int             `yaml:"retirement_age" json:"retirement_age"`
	Severance     decimal.Decimal `yaml:"severance" json:"severance"`
	Pension       decimal.Decimal `yaml:"pension" json:"pension"`
}

// Settings holds the economic assumptions and household policy knobs.
// Rates are percentages (2 means 2%).
type Settings struct {
	PredictionYears      int                   `yaml:"prediction_years" json:"prediction_years"`
	IncomePlans          map[string]IncomePlan `yaml:"income_plans" json:"income_plans"`
	CurrentLivingCost    decimal.Decimal       `yaml:"current_living_cost" json:"current_living_cost"`
	InflationRate        decimal.Decimal       `yaml:"inflation_rate" json:"inflation_rate"`
	InvestmentMonthly    decimal.Decimal       `yaml:"investment_monthly" json:"investment_monthly"`
	InvestmentYield      decimal.Decimal       `yaml:"investment_yield" json:"investment_yield"`
	EducationPlan        EducationPlan         `yaml:"education_plan" json:"education_plan"`
	ChildIndependenceAge int                   `yaml:"child_independence_age" json:"child_independence_age"`
	CostReductionRate    decimal.Decimal       `yaml:"cost_reduction_rate" json:"cost_reduction_rate"`
	LicenseReturnAge     int                   `yaml:"license_return_age" json:"license_return_age"`
	UniversityHousing    HousingMode           `yaml:"university_housing" json:"university_housing"`
	AwayAllowance        decimal.Decimal       `yaml:"away_allowance" json:"away_allowance"`
	// SalaryIncrease is added to the monthly base salary once per elapsed year.
	SalaryIncrease decimal.Decimal `yaml:"salary_increase" json:"salary_increase"`
}

// DefaultSettings returns the settings a fresh household starts with.
func DefaultSettings() Settings {
	return Settings{
		PredictionYears:      30,
		IncomePlans:          map[string]IncomePlan{},
		CurrentLivingCost:    decimal.NewFromInt(250000),
		InflationRate:        decimal.NewFromInt(1),
		InvestmentMonthly:    decimal.Zero,
		InvestmentYield:      decimal.NewFromInt(3),
		EducationPlan:        EducationAllPublic,
		ChildIndependenceAge: 22,
		CostReductionRate:    decimal.NewFromInt(20),
		LicenseReturnAge:     75,
		UniversityHousing:    HousingHome,
		AwayAllowance:        decimal.NewFromInt(80000),
		SalaryIncrease:       decimal.Zero,
	}
}

// Clone deep copies the settings, including the income plan map.
func (s Settings) Clone() Settings {
	out := s
	if s.IncomePlans != nil {
		out.IncomePlans = make(map[string]IncomePlan, len(s.IncomePlans))
		for k, v := range s.IncomePlans {
			out.IncomePlans[k] = v
		}
	}
	return out
}

// IncomePlanIDs returns the plan keys in a stable order.
func (s Settings) IncomePlanIDs() []string {
	ids := make([]string, 0, len(s.IncomePlans))
	for id := range s.IncomePlans {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
