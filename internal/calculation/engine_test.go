package calculation

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingLogger) add(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.add("DEBUG", format, args...) }
func (r *recordingLogger) Infof(format string, args ...any)  { r.add("INFO", format, args...) }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.add("WARN", format, args...) }
func (r *recordingLogger) Errorf(format string, args ...any) { r.add("ERROR", format, args...) }

func (r *recordingLogger) contains(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func forecastModel() *domain.DataModel {
	m := domain.DefaultDataModel()
	m.Settings = quietSettings(5)
	m.Settings.CurrentLivingCost = d(250000)
	m.Settings.IncomePlans["head"] = domain.IncomePlan{MonthlyIncome: d(400000), RetirementAge: 65, Pension: d(150000)}
	m.Families = []domain.FamilyMember{{ID: "head", Name: "Taro", Age: 45}}
	m.UpsertBalance(bal("2025-01", 3000000))
	m.UpsertBalance(bal("2025-02", 3150000))
	return m
}

func TestSetLoggerNilFallsBackToNop(t *testing.T) {
	ce := NewCalculationEngine()
	ce.SetLogger(nil)
	_, ok := ce.Logger.(NopLogger)
	assert.True(t, ok)
}

func TestForecastBaselineAndCoreBalance(t *testing.T) {
	ce := newTestEngine(testNow)
	m := forecastModel()

	report := ce.Forecast(m)

	assert.Equal(t, testNow, report.GeneratedAt)
	require.NotNil(t, report.CoreBalance)
	assert.True(t, report.CoreBalance.Equal(d(150000)))
	require.NotNil(t, report.Baseline)
	assert.Equal(t, 61, report.Baseline.Len())
	assert.Equal(t, "2025-02", report.Baseline.Months[0])
	// 150000 surplus a month for 60 months on top of the seed.
	assert.True(t, report.Baseline.FinalNetWorth().Equal(d(3150000+150000*60)))
	assert.Empty(t, report.Comparisons)
}

func TestForecastWithoutEnoughHistoryLogsAndOmitsCoreBalance(t *testing.T) {
	ce := newTestEngine(testNow)
	rec := &recordingLogger{}
	ce.SetLogger(rec)
	m := forecastModel()
	m.MonthlyBalances = m.MonthlyBalances[:1]

	report := ce.Forecast(m)

	assert.Nil(t, report.CoreBalance)
	assert.True(t, rec.contains("core balance unavailable"))
}

func TestForecastComparesScenariosIndependently(t *testing.T) {
	ce := newTestEngine(testNow)
	m := forecastModel()
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	before := m.SnapshotScenario("Current plan", created)

	// The live plan changes after the snapshot: a new loan and earlier retirement.
	m.Loans = append(m.Loans, domain.Loan{ID: "car", Amount: d(50000), StartYM: "2025-03", EndYM: "2029-12"})
	after := m.SnapshotScenario("With car loan", created)

	families := domain.CloneFamilies(m.Families)
	report := ce.Forecast(m)

	require.Len(t, report.Comparisons, 2)
	assert.Equal(t, before.ID, report.Comparisons[0].ScenarioID)
	assert.Equal(t, "Current plan", report.Comparisons[0].Name)
	assert.Equal(t, after.ID, report.Comparisons[1].ScenarioID)

	base := report.Comparisons[0].Projection.FinalNetWorth()
	withLoan := report.Comparisons[1].Projection.FinalNetWorth()
	assert.True(t, base.Sub(withLoan).Equal(d(50000*58)), "loan runs 2025-03..2029-12 inside the horizon")
	assert.True(t, report.Baseline.FinalNetWorth().Equal(withLoan))

	// Concurrent runs never touch the live roster.
	assert.Equal(t, families, m.Families)
}

func TestForecastMatchesSequentialRuns(t *testing.T) {
	ce := newTestEngine(testNow)
	m := forecastModel()
	m.Families = append(m.Families, domain.FamilyMember{ID: "kid", Age: 4})
	for i := 0; i < 6; i++ {
		m.Settings.InflationRate = decimal.NewFromInt(int64(i))
		m.SnapshotScenario(fmt.Sprintf("inflation %d", i), testNow)
	}

	report := ce.Forecast(m)
	require.Len(t, report.Comparisons, 6)
	for i, sc := range m.Scenarios {
		want := ce.Project(InputFromScenario(m, sc))
		assert.Equal(t, want, report.Comparisons[i].Projection, sc.Name)
	}
}

func TestInputFromScenarioUsesLiveEventsAndHistory(t *testing.T) {
	m := forecastModel()
	sc := m.SnapshotScenario("snap", testNow)
	m.FutureEvents = append(m.FutureEvents, domain.FutureEvent{Name: "Trip", FamilyID: "head", TargetAge: 50, TargetMonth: 8, Amount: d(300000)})
	m.UpsertBalance(bal("2025-03", 3300000))

	in := InputFromScenario(m, sc)
	assert.Len(t, in.FutureEvents, 1)
	assert.Len(t, in.Balances, 3)
	assert.Empty(t, in.Loans)
}

func TestStdLoggerDropsDebugUnlessEnabled(t *testing.T) {
	var buf bytes.Buffer
	quiet := NewStdLogger(&buf, false)
	quiet.Debugf("hidden %d", 1)
	quiet.Warnf("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN shown 2")

	buf.Reset()
	loud := NewStdLogger(&buf, true)
	loud.Debugf("visible")
	assert.Contains(t, buf.String(), "DEBUG visible")
}

func TestDebugLogsDanglingReferences(t *testing.T) {
	ce := newTestEngine(testNow)
	ce.Debug = true
	rec := &recordingLogger{}
	ce.SetLogger(rec)

	s := quietSettings(1)
	s.IncomePlans["ghost"] = domain.IncomePlan{MonthlyIncome: d(1)}
	ce.Project(ProjectionInput{
		Settings:     s,
		FutureEvents: []domain.FutureEvent{{Name: "Lost", FamilyID: "nobody"}},
	})
	assert.True(t, rec.contains(`income plan for unknown family member "ghost"`))
	assert.True(t, rec.contains(`event "Lost" references unknown family member "nobody"`))
}
