package calculation

import (
	"time"

	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/hhforecast/household-forecast/pkg/dateutil"
	moneyfmt "github.com/hhforecast/household-forecast/pkg/decimal"
	"github.com/shopspring/decimal"
)

// MaxProjectionYears caps the horizon regardless of the configured prediction years.
const MaxProjectionYears = 50

// MaxProjectionMonths is MaxProjectionYears expressed in simulated months.
const MaxProjectionMonths = MaxProjectionYears * 12

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalTwelve  = decimal.NewFromInt(12)
	decimalHundred = decimal.NewFromInt(100)
)

// ProjectionInput is everything one projection reads. Project never modifies it.
type ProjectionInput struct {
	Settings          domain.Settings
	Families          []domain.FamilyMember
	Loans             []domain.Loan
	RecurringExpenses []domain.RecurringExpense
	FutureEvents      []domain.FutureEvent
	Balances          []domain.MonthlyBalance
}

// HorizonMonths converts configured years into simulated months, capped.
func HorizonMonths(predictionYears int) int {
	if predictionYears <= 0 {
		return 0
	}
	months := predictionYears * 12
	if months > MaxProjectionMonths {
		return MaxProjectionMonths
	}
	return months
}

// dependentCosts is what the household's dependents cost in one month.
type dependentCosts struct {
	education  decimal.Decimal
	growth     decimal.Decimal
	allowance  decimal.Decimal
	dependents int
}

// Project rolls the household forward month by month from the latest observed balance.
func (ce *CalculationEngine) Project(in ProjectionInput) *domain.Projection {
	s := in.Settings
	sim := domain.CloneFamilies(in.Families)
	balances := domain.SortedBalances(in.Balances)

	start := dateutil.BeginningOfMonth(ce.now())
	netWorth := decimal.Zero
	if n := len(balances); n > 0 {
		latest := balances[n-1]
		t, err := dateutil.ParseYearMonth(latest.Month)
		if err != nil {
			ce.Logger.Warnf("latest balance month %q is malformed, starting from today: %v", latest.Month, err)
		} else {
			start = t
		}
		netWorth = latest.Total
	}

	steps := HorizonMonths(s.PredictionYears)
	p := &domain.Projection{
		Months:            make([]string, 0, steps+1),
		NetWorth:          make([]decimal.Decimal, 0, steps+1),
		InvestmentBalance: make([]decimal.Decimal, 0, steps+1),
		Details:           make([]domain.MonthlyCashFlow, 0, steps),
	}
	p.Months = append(p.Months, dateutil.FormatYearMonth(start))
	p.NetWorth = append(p.NetWorth, moneyfmt.RoundHalfUp(netWorth))
	p.InvestmentBalance = append(p.InvestmentBalance, decimal.Zero)

	ce.logDanglingReferences(s, sim, in.FutureEvents)

	inflationStep := decimalOne.Add(s.InflationRate.Div(decimalHundred))
	monthlyYield := s.InvestmentYield.Div(decimalHundred).Div(decimalTwelve)
	reduction := decimalOne.Sub(s.CostReductionRate.Div(decimalHundred))
	adultBase := adultLivingBase(s, sim)

	investment := decimal.Zero
	var totals domain.Breakdown
	date := start

	for i := 0; i < steps; i++ {
		date = dateutil.AddMonth(date)
		ym := dateutil.FormatYearMonth(date)
		month := int(date.Month())
		yearsElapsed := i / 12

		// Ages advance before anything age-dependent is evaluated for the month.
		if i > 0 && month == int(time.January) {
			for j := range sim {
				sim[j].Age++
			}
		}

		inflation := inflationStep.Pow(decimal.NewFromInt(int64(yearsElapsed)))

		income, severance := ce.monthlyIncome(s, sim, month, yearsElapsed, inflation)

		living := adultBase.Mul(inflation)
		deps := monthlyDependentCosts(s, sim, inflation)
		if len(sim) > 1 && deps.dependents == 0 {
			living = living.Mul(reduction)
		}
		living = living.Add(deps.growth).Add(deps.allowance)

		recurring := recurringDueWithLicenseReturn(s, sim, in.RecurringExpenses, ym)
		loan := LoanDueAmount(ym, in.Loans)
		event := eventsDue(in.FutureEvents, sim, month)

		contribution := s.InvestmentMonthly
		profit := decimal.Zero
		if i == 0 {
			investment = investment.Add(contribution)
		} else {
			profit = investment.Mul(monthlyYield)
			investment = investment.Add(profit).Add(contribution)
		}

		// The contribution only moves money from cash into the investment account.
		cashFlow := income.Add(severance).Sub(living).Sub(deps.education).Sub(recurring).Sub(loan).Sub(event).Sub(contribution)
		netWorth = netWorth.Add(cashFlow).Add(contribution).Add(profit)

		if p.CrashMonth == nil && netWorth.IsNegative() {
			crash := ym
			p.CrashMonth = &crash
			ce.Logger.Infof("net worth turns negative in %s", ym)
		}

		totals.Living = totals.Living.Add(living)
		totals.Education = totals.Education.Add(deps.education)
		totals.Loan = totals.Loan.Add(loan)
		totals.Recurring = totals.Recurring.Add(recurring)
		totals.Investment = totals.Investment.Add(contribution)
		totals.Event = totals.Event.Add(event)

		headAge := 0
		if head, ok := domain.Head(sim); ok {
			headAge = head.Age
		}
		p.Months = append(p.Months, ym)
		p.NetWorth = append(p.NetWorth, moneyfmt.RoundHalfUp(netWorth))
		p.InvestmentBalance = append(p.InvestmentBalance, moneyfmt.RoundHalfUp(investment))
		p.Details = append(p.Details, domain.MonthlyCashFlow{
			Month:             ym,
			Index:             i + 1,
			HeadAge:           headAge,
			Dependents:        deps.dependents,
			Income:            income,
			Severance:         severance,
			Living:            living,
			Education:         deps.education,
			Recurring:         recurring,
			Loan:              loan,
			Event:             event,
			Contribution:      contribution,
			Profit:            profit,
			NetWorth:          netWorth,
			InvestmentBalance: investment,
		})

		if ce.Debug && month == int(time.January) {
			ce.Logger.Debugf("%s inflation=%s income=%s living=%s education=%s net=%s invest=%s",
				ym, inflation.StringFixed(4), income.StringFixed(0), living.StringFixed(0),
				deps.education.StringFixed(0), netWorth.StringFixed(0), investment.StringFixed(0))
		}
	}

	p.Breakdown = domain.Breakdown{
		Living:     moneyfmt.RoundHalfUp(totals.Living),
		Education:  moneyfmt.RoundHalfUp(totals.Education),
		Loan:       moneyfmt.RoundHalfUp(totals.Loan),
		Recurring:  moneyfmt.RoundHalfUp(totals.Recurring),
		Investment: moneyfmt.RoundHalfUp(totals.Investment),
		Event:      moneyfmt.RoundHalfUp(totals.Event),
	}
	return p
}

// adultLivingBase strips the growth expense of current dependents out of the
// configured living cost, so it is not counted twice once the tables add it back.
func adultLivingBase(s domain.Settings, families []domain.FamilyMember) decimal.Decimal {
	dependentGrowth := decimal.Zero
	for _, f := range families {
		if f.Age <= s.ChildIndependenceAge {
			dependentGrowth = dependentGrowth.Add(GrowthExpense(f.Age))
		}
	}
	base := s.CurrentLivingCost.Sub(dependentGrowth)
	if base.IsNegative() {
		return decimal.Zero
	}
	return base
}

// monthlyIncome returns the household's regular income and any severance paid this month.
func (ce *CalculationEngine) monthlyIncome(s domain.Settings, sim []domain.FamilyMember, month, yearsElapsed int, inflation decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	income := decimal.Zero
	severance := decimal.Zero
	for _, id := range s.IncomePlanIDs() {
		ref := domain.LookupMember(sim, id)
		if ref.Missing() {
			continue
		}
		plan := s.IncomePlans[id]
		age := ref.Member.Age

		if isRetired(plan, age) {
			income = income.Add(plan.Pension.Mul(inflation))
		} else {
			income = income.Add(activeIncome(plan, s.SalaryIncrease, yearsElapsed))
		}

		if plan.RetirementAge > 0 && age == plan.RetirementAge && month == int(time.January) {
			severance = severance.Add(plan.Severance.Mul(inflation))
		}
	}
	return income, severance
}

// isRetired compares the simulated age to the plan. A zero retirement age means never.
func isRetired(plan domain.IncomePlan, age int) bool {
	return plan.RetirementAge > 0 && age >= plan.RetirementAge
}

// activeIncome is salary plus a twelfth of the bonus. Salary is not inflated:
// it grows only by the flat yearly raise, base + raise × yearsElapsed, while
// pensions and costs carry the inflation factor. The bonus grows
// by the same ratio the flat raise applied to the base salary.
func activeIncome(plan domain.IncomePlan, raise decimal.Decimal, yearsElapsed int) decimal.Decimal {
	raised := plan.MonthlyIncome.Add(raise.Mul(decimal.NewFromInt(int64(yearsElapsed))))
	ratio := decimalOne
	if plan.MonthlyIncome.IsPositive() {
		ratio = raised.Div(plan.MonthlyIncome)
	}
	return raised.Add(plan.AnnualBonus.Mul(ratio).Div(decimalTwelve))
}

func monthlyDependentCosts(s domain.Settings, sim []domain.FamilyMember, inflation decimal.Decimal) dependentCosts {
	c := dependentCosts{education: decimal.Zero, growth: decimal.Zero, allowance: decimal.Zero}
	for _, f := range sim {
		if f.Age > s.ChildIndependenceAge {
			continue
		}
		c.education = c.education.Add(EducationCost(f.Age, s.EducationPlan))
		c.growth = c.growth.Add(GrowthExpense(f.Age).Mul(inflation))
		if IsUniversityAge(f.Age) && s.UniversityHousing == domain.HousingAway {
			c.allowance = c.allowance.Add(s.AwayAllowance.Mul(inflation))
		}
		c.dependents++
	}
	return c
}

// recurringDueWithLicenseReturn applies the recurring evaluator, dropping vehicle
// expenses once the household head has reached the licence-return age.
func recurringDueWithLicenseReturn(s domain.Settings, sim []domain.FamilyMember, expenses []domain.RecurringExpense, ym string) decimal.Decimal {
	licenseReturned := false
	if head, ok := domain.Head(sim); ok && s.LicenseReturnAge > 0 && head.Age >= s.LicenseReturnAge {
		licenseReturned = true
	}
	total := decimal.Zero
	for _, e := range expenses {
		if licenseReturned && e.IsVehicleRelated() {
			continue
		}
		if IsRecurringDue(e, ym) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// eventsDue sums events whose member reaches the target age in the target month.
func eventsDue(events []domain.FutureEvent, sim []domain.FamilyMember, month int) decimal.Decimal {
	total := decimal.Zero
	for _, ev := range events {
		ref := domain.LookupMember(sim, ev.FamilyID)
		if ref.Missing() {
			continue
		}
		if ref.Member.Age == ev.TargetAge && ev.TargetMonth == month {
			total = total.Add(ev.Amount)
		}
	}
	return total
}

// logDanglingReferences reports skipped income plans and events once per run.
func (ce *CalculationEngine) logDanglingReferences(s domain.Settings, sim []domain.FamilyMember, events []domain.FutureEvent) {
	for _, id := range s.IncomePlanIDs() {
		if domain.LookupMember(sim, id).Missing() {
			ce.Logger.Debugf("income plan for unknown family member %q skipped", id)
		}
	}
	for _, ev := range events {
		if domain.LookupMember(sim, ev.FamilyID).Missing() {
			ce.Logger.Debugf("event %q references unknown family member %q, skipped", ev.Name, ev.FamilyID)
		}
	}
}
