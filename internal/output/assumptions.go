package output

import (
	"fmt"

	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// GenerateAssumptions lists the modelling assumptions behind a forecast, in the order
// they are rendered in detailed outputs.
func GenerateAssumptions(s domain.Settings) []string {
	lines := []string{
		fmt.Sprintf("Projection horizon: %d years", s.PredictionYears),
		fmt.Sprintf("Inflation: %s annually (living costs, pensions, severance)", FormatPercentage(s.InflationRate)),
		fmt.Sprintf("Monthly living cost today: %s", FormatYen(s.CurrentLivingCost)),
		fmt.Sprintf("Investment: %s monthly at %s annual yield", FormatYen(s.InvestmentMonthly), FormatPercentage(s.InvestmentYield)),
		fmt.Sprintf("Salary increase: %s per year", FormatYen(s.SalaryIncrease)),
		fmt.Sprintf("Education plan: %s", s.EducationPlan),
		fmt.Sprintf("Children independent after age %d; household costs fall %s once all are independent",
			s.ChildIndependenceAge, FormatPercentage(s.CostReductionRate)),
	}
	if s.UniversityHousing == domain.HousingAway {
		lines = append(lines, fmt.Sprintf("University students live away: %s monthly allowance", FormatYen(s.AwayAllowance)))
	} else {
		lines = append(lines, "University students live at home")
	}
	if s.LicenseReturnAge > 0 {
		lines = append(lines, fmt.Sprintf("Vehicle expenses stop when the head reaches %d", s.LicenseReturnAge))
	}
	return lines
}
