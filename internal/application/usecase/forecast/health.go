// Package forecast contains the paycheck allocation use cases.
package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// incomeSampleSize is how many leading periods feed the monthly-income
// approximation. The mean of a small sample is an estimate, not a true
// monthly total.
const incomeSampleSize = 3

// fixedObligationWarnRatio is the fixed-to-income share above which the
// score is penalized.
var fixedObligationWarnRatio = decimal.NewFromFloat(0.7)

// Approximate paychecks per month by frequency, used to normalize
// obligations onto a monthly basis.
var monthlyFactors = map[entity.Frequency]decimal.Decimal{
	entity.FrequencyDaily:       decimal.NewFromInt(30),
	entity.FrequencyWeekly:      decimal.NewFromFloat(4.33),
	entity.FrequencyBiWeekly:    decimal.NewFromFloat(2.17),
	entity.FrequencyMonthly:     decimal.NewFromInt(1),
	entity.FrequencyQuarterly:   decimal.NewFromFloat(1.0 / 3.0),
	entity.FrequencyYearly:      decimal.NewFromFloat(1.0 / 12.0),
	entity.FrequencySemiMonthly: decimal.NewFromInt(2),
}

var debtMonthlyFactors = map[entity.DebtFrequency]decimal.Decimal{
	entity.DebtFrequencyWeekly:   decimal.NewFromFloat(4.33),
	entity.DebtFrequencyBiWeekly: decimal.NewFromFloat(2.17),
	entity.DebtFrequencyMonthly:  decimal.NewFromInt(1),
	entity.DebtFrequencyAnnually: decimal.NewFromFloat(1.0 / 12.0),
	entity.DebtFrequencyOther:    decimal.NewFromInt(1),
}

// HealthInput represents the input for analyzing financial health.
type HealthInput struct {
	Periods        []entity.PaycheckPeriod
	RecurringItems []*entity.RecurringItem
	Debts          []*entity.Debt
	Budgets        []*entity.VariableExpense
	Goals          []*entity.FinancialGoal
	Now            time.Time
}

// HealthReport aggregates monthly income against monthly needs into a
// 0-100 score with qualitative issues and recommendations.
type HealthReport struct {
	MonthlyIncome        decimal.Decimal
	FixedMonthly         decimal.Decimal
	VariableMonthly      decimal.Decimal
	GoalMonthly          decimal.Decimal
	TotalMonthlyNeeds    decimal.Decimal
	IncomeSufficiencyPct decimal.Decimal
	Score                int
	Issues               []string
	Recommendations      []string
}

// HealthAnalyzer scores how well projected income covers projected needs.
type HealthAnalyzer struct{}

// NewHealthAnalyzer creates a new HealthAnalyzer instance.
func NewHealthAnalyzer() *HealthAnalyzer {
	return &HealthAnalyzer{}
}

// Analyze computes the health report for one computation pass.
func (a *HealthAnalyzer) Analyze(input HealthInput) *HealthReport {
	report := &HealthReport{
		MonthlyIncome:   a.monthlyIncome(input.Periods),
		FixedMonthly:    a.fixedMonthly(input.RecurringItems, input.Debts),
		VariableMonthly: a.variableMonthly(input.Budgets),
		GoalMonthly:     a.goalMonthly(input.Goals),
	}
	report.TotalMonthlyNeeds = report.FixedMonthly.Add(report.VariableMonthly).Add(report.GoalMonthly)

	if report.TotalMonthlyNeeds.IsPositive() {
		report.IncomeSufficiencyPct = report.MonthlyIncome.
			Div(report.TotalMonthlyNeeds).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	} else {
		report.IncomeSufficiencyPct = decimal.NewFromInt(100)
	}

	score := int(report.IncomeSufficiencyPct.IntPart())
	if score > 100 {
		score = 100
	}

	if report.MonthlyIncome.IsPositive() &&
		report.FixedMonthly.GreaterThan(report.MonthlyIncome.Mul(fixedObligationWarnRatio)) {
		score -= 20
		report.Issues = append(report.Issues, "fixed obligations exceed 70% of income")
		report.Recommendations = append(report.Recommendations,
			"Review fixed expenses and debts; they leave little room for variable spending.")
	}

	for _, g := range input.Goals {
		if g.IsUrgent(input.Now) {
			score -= 10
			report.Issues = append(report.Issues, "a goal deadline is within six months")
			report.Recommendations = append(report.Recommendations,
				"An upcoming goal deadline will claim part of each paycheck; consider adjusting its date or target.")
			break
		}
	}

	if report.IncomeSufficiencyPct.LessThan(decimal.NewFromInt(100)) {
		report.Recommendations = append(report.Recommendations,
			"Projected needs exceed projected income; expect deficit periods.")
	}

	if score < 0 {
		score = 0
	}
	report.Score = score
	return report
}

// monthlyIncome is the arithmetic mean of the first few periods' paycheck
// amounts.
func (a *HealthAnalyzer) monthlyIncome(periods []entity.PaycheckPeriod) decimal.Decimal {
	sample := len(periods)
	if sample > incomeSampleSize {
		sample = incomeSampleSize
	}
	if sample == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, p := range periods[:sample] {
		total = total.Add(p.PaycheckAmount)
	}
	return total.Div(decimal.NewFromInt(int64(sample))).Round(2)
}

func (a *HealthAnalyzer) fixedMonthly(items []*entity.RecurringItem, debts []*entity.Debt) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if !item.IsObligated() {
			continue
		}
		if factor, ok := monthlyFactors[item.Frequency]; ok {
			total = total.Add(item.Amount.Mul(factor))
		}
	}
	for _, debt := range debts {
		if factor, ok := debtMonthlyFactors[debt.PaymentFrequency]; ok {
			total = total.Add(debt.MinimumPayment.Mul(factor))
		}
	}
	return total.Round(2)
}

func (a *HealthAnalyzer) variableMonthly(budgets []*entity.VariableExpense) decimal.Decimal {
	total := decimal.Zero
	for _, b := range budgets {
		total = total.Add(b.MonthlyAmount)
	}
	return total
}

func (a *HealthAnalyzer) goalMonthly(goals []*entity.FinancialGoal) decimal.Decimal {
	total := decimal.Zero
	for _, g := range goals {
		total = total.Add(g.MonthlyTarget())
	}
	return total
}
