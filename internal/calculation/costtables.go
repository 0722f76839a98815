package calculation

import (
	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/shopspring/decimal"
)

// educationBand is a monthly schooling cost for an inclusive age range.
type educationBand struct {
	Stage   string
	MinAge  int
	MaxAge  int
	Public  int64
	Private int64
}

// Monthly figures, averaged from annual household spending surveys per stage.
var educationBands = []educationBand{
	{Stage: "kindergarten", MinAge: 3, MaxAge: 5, Public: 14000, Private: 26000},
	{Stage: "elementary", MinAge: 6, MaxAge: 11, Public: 29000, Private: 139000},
	{Stage: "junior_high", MinAge: 12, MaxAge: 14, Public: 45000, Private: 120000},
	{Stage: "high_school", MinAge: 15, MaxAge: 17, Public: 43000, Private: 88000},
	{Stage: "university", MinAge: 18, MaxAge: 21, Public: 54000, Private: 110000},
}

// growthBand is the extra day-to-day spending of an older child (food, clothing, phone).
type growthBand struct {
	MinAge int
	MaxAge int
	Amount int64
}

var growthBands = []growthBand{
	{MinAge: 12, MaxAge: 14, Amount: 20000},
	{MinAge: 15, MaxAge: 17, Amount: 30000},
	{MinAge: 18, MaxAge: 22, Amount: 30000},
}

// universityMinAge and universityMaxAge bound the away-from-home allowance.
const (
	universityMinAge = 18
	universityMaxAge = 21
)

// EducationStage names the schooling stage for an age, or "" outside schooling.
func EducationStage(age int) string {
	for _, b := range educationBands {
		if age >= b.MinAge && age <= b.MaxAge {
			return b.Stage
		}
	}
	return ""
}

// EducationCost returns the monthly schooling cost for a child of the given age.
// The private-university plan uses the public column below university.
func EducationCost(age int, plan domain.EducationPlan) decimal.Decimal {
	stage := EducationStage(age)
	if stage == "" {
		return decimal.Zero
	}
	for _, b := range educationBands {
		if b.Stage != stage {
			continue
		}
		switch {
		case plan == domain.EducationAllPrivate:
			return decimal.NewFromInt(b.Private)
		case plan == domain.EducationPrivateUniversity && b.Stage == "university":
			return decimal.NewFromInt(b.Private)
		default:
			return decimal.NewFromInt(b.Public)
		}
	}
	return decimal.Zero
}

// GrowthExpense returns the un-inflated monthly growth expense for an age.
func GrowthExpense(age int) decimal.Decimal {
	for _, b := range growthBands {
		if age >= b.MinAge && age <= b.MaxAge {
			return decimal.NewFromInt(b.Amount)
		}
	}
	return decimal.Zero
}

// IsUniversityAge reports whether the away-from-home allowance can apply.
func IsUniversityAge(age int) bool {
	return age >= universityMinAge && age <= universityMaxAge
}
