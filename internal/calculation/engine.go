package calculation

import (
	"sync"
	"time"

	"github.com/hhforecast/household-forecast/internal/domain"
)

// CalculationEngine runs household projections. It holds no per-run state, so a
// single engine may project several scenarios at once.
type CalculationEngine struct {
	Debug  bool // Enable debug output for detailed calculations
	Logger Logger
	// Now supplies "today" for age-anchored events and for households without history.
	Now func() time.Time
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
		Now:    time.Now,
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) now() time.Time {
	if ce.Now == nil {
		return time.Now()
	}
	return ce.Now()
}

// InputFromModel builds a baseline projection input from the live data model.
func InputFromModel(m *domain.DataModel) ProjectionInput {
	return ProjectionInput{
		Settings:          m.Settings,
		Families:          m.Families,
		Loans:             m.Loans,
		RecurringExpenses: m.RecurringExpenses,
		FutureEvents:      m.FutureEvents,
		Balances:          m.MonthlyBalances,
	}
}

// InputFromScenario projects a saved snapshot against the live events and history.
func InputFromScenario(m *domain.DataModel, s domain.Scenario) ProjectionInput {
	return ProjectionInput{
		Settings:          s.Settings,
		Families:          s.Families,
		Loans:             s.Loans,
		RecurringExpenses: s.RecurringExpenses,
		FutureEvents:      m.FutureEvents,
		Balances:          m.MonthlyBalances,
	}
}

// CoreBalanceFromModel builds the estimator input from the live data model.
func CoreBalanceFromModel(m *domain.DataModel) CoreBalanceInput {
	return CoreBalanceInput{
		Balances:          m.MonthlyBalances,
		RecurringExpenses: m.RecurringExpenses,
		Loans:             m.Loans,
		FutureEvents:      m.FutureEvents,
		Families:          m.Families,
	}
}

// Forecast runs the baseline projection, every saved scenario, and the
// core-balance indicator.
func (ce *CalculationEngine) Forecast(m *domain.DataModel) *domain.ForecastReport {
	report := &domain.ForecastReport{GeneratedAt: ce.now(), Settings: m.Settings.Clone()}

	if cb, ok := ce.EstimateCoreBalance(CoreBalanceFromModel(m)); ok {
		report.CoreBalance = &cb
	} else {
		ce.Logger.Infof("core balance unavailable: at least two monthly balances are needed")
	}

	report.Baseline = ce.Project(InputFromModel(m))

	// Each scenario works on its own cloned roster inside Project, so runs are independent.
	report.Comparisons = make([]domain.ScenarioProjection, len(m.Scenarios))
	var wg sync.WaitGroup
	for i, sc := range m.Scenarios {
		wg.Add(1)
		go func(i int, sc domain.Scenario) {
			defer wg.Done()
			report.Comparisons[i] = domain.ScenarioProjection{
				ScenarioID: sc.ID,
				Name:       sc.Name,
				Projection: ce.Project(InputFromScenario(m, sc)),
			}
		}(i, sc)
	}
	wg.Wait()

	return report
}
