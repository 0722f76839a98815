package integration

import (
	"testing"
	"time"

	"github.com/hhforecast/household-forecast/internal/calculation"
	"github.com/hhforecast/household-forecast/internal/config"
	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../testdata/household.yaml"

func fixedEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.Now = func() time.Time { return time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC) }
	return engine
}

func loadFixture(t *testing.T) *domain.DataModel {
	t.Helper()
	m, err := config.NewInputParser().LoadFromFile(fixture)
	require.NoError(t, err)
	return m
}

func TestEndToEndForecast(t *testing.T) {
	m := loadFixture(t)
	assert.Len(t, m.Families, 3)

	report := fixedEngine().Forecast(m)

	// Surpluses of 150000 and 50000 with the loan and the March tax added back.
	require.NotNil(t, report.CoreBalance)
	assert.True(t, report.CoreBalance.Equal(decimal.NewFromInt(200000)), "core balance %s", report.CoreBalance)

	base := report.Baseline
	require.NotNil(t, base)
	assert.Equal(t, 121, base.Len())
	assert.Equal(t, "2025-03", base.Months[0])
	assert.Equal(t, "2035-03", base.Months[120])
	assert.True(t, base.NetWorth[0].Equal(decimal.NewFromInt(3200000)))
	assert.Len(t, base.Details, 120)

	assert.True(t, base.Breakdown.Loan.Equal(decimal.NewFromInt(69*50000)), "loan %s", base.Breakdown.Loan)
	assert.True(t, base.Breakdown.Recurring.Equal(decimal.NewFromInt(10*100000)), "recurring %s", base.Breakdown.Recurring)
	assert.True(t, base.Breakdown.Investment.Equal(decimal.NewFromInt(120*20000)))
	assert.True(t, base.Breakdown.Event.Equal(decimal.NewFromInt(300000)), "event %s", base.Breakdown.Event)

	for _, d := range base.Details {
		if d.Month == "2027-04" {
			assert.True(t, d.Event.Equal(decimal.NewFromInt(300000)))
		} else {
			assert.True(t, d.Event.IsZero(), "unexpected event in %s", d.Month)
		}
	}
}

func TestScenarioComparison(t *testing.T) {
	m := loadFixture(t)
	now := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	m.SnapshotScenario("As is", now)

	// A second car loan, then snapshot and restore the live household.
	m.Loans = append(m.Loans, domain.Loan{ID: "car", Name: "Car", Amount: decimal.NewFromInt(40000), StartYM: "2025-04", EndYM: "2029-03"})
	m.SnapshotScenario("New car", now)
	m.Loans = m.Loans[:1]

	report := fixedEngine().Forecast(m)
	require.Len(t, report.Comparisons, 2)

	asIs := report.Comparisons[0].Projection
	newCar := report.Comparisons[1].Projection
	assert.True(t, asIs.FinalNetWorth().Equal(report.Baseline.FinalNetWorth()))
	diff := asIs.FinalNetWorth().Sub(newCar.FinalNetWorth())
	assert.True(t, diff.Equal(decimal.NewFromInt(48*40000)), "difference %s", diff)
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()
	m := loadFixture(t)
	require.NoError(t, parser.ValidateDataModel(m))

	m.MonthlyBalances[0].Total = decimal.NewFromInt(1)
	assert.Error(t, parser.ValidateDataModel(m))
}
