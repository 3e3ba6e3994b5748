package forecast

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/domain/entity"
)

func paycheckPeriods(amounts ...int64) []entity.PaycheckPeriod {
	periods := make([]entity.PaycheckPeriod, 0, len(amounts))
	for i, amount := range amounts {
		periods = append(periods, entity.PaycheckPeriod{
			ID:             i,
			PaycheckAmount: decimal.NewFromInt(amount),
			PaycheckDate:   date(2024, time.June, 1).AddDate(0, 0, i*14),
		})
	}
	return periods
}

func fixedExpense(name string, amount int64, frequency entity.Frequency) *entity.RecurringItem {
	return &entity.RecurringItem{
		ID:        uuid.New(),
		Name:      name,
		Kind:      entity.ItemKindFixedExpense,
		Amount:    decimal.NewFromInt(amount),
		Frequency: frequency,
	}
}

func TestHealthAnalyzer(t *testing.T) {
	analyzer := NewHealthAnalyzer()
	now := date(2024, time.June, 1)

	t.Run("should score 100 when income comfortably covers needs", func(t *testing.T) {
		report := analyzer.Analyze(HealthInput{
			Periods:        paycheckPeriods(2000, 2000, 2000),
			RecurringItems: []*entity.RecurringItem{fixedExpense("Rent", 1200, entity.FrequencyMonthly)},
			Budgets:        []*entity.VariableExpense{budget("Groceries", "food", 500)},
			Now:            now,
		})

		if report.Score != 100 {
			t.Errorf("expected score 100, got %d", report.Score)
		}
		if len(report.Issues) != 0 {
			t.Errorf("expected no issues, got %v", report.Issues)
		}
	})

	t.Run("should penalize fixed obligations above 70 percent of income", func(t *testing.T) {
		report := analyzer.Analyze(HealthInput{
			Periods:        paycheckPeriods(2000, 2000, 2000),
			RecurringItems: []*entity.RecurringItem{fixedExpense("Rent", 1500, entity.FrequencyMonthly)},
			Now:            now,
		})

		if report.Score != 80 {
			t.Errorf("expected score 80, got %d", report.Score)
		}
		if len(report.Issues) != 1 {
			t.Errorf("expected one issue, got %v", report.Issues)
		}
	})

	t.Run("should penalize an urgent goal deadline once", func(t *testing.T) {
		report := analyzer.Analyze(HealthInput{
			Periods: paycheckPeriods(5000, 5000, 5000),
			Goals: []*entity.FinancialGoal{
				goal("Car repair", 600, 0, date(2024, time.January, 1), date(2024, time.August, 1)),
				goal("Deposit", 900, 0, date(2024, time.January, 1), date(2024, time.September, 1)),
			},
			Now: now,
		})

		if report.Score != 90 {
			t.Errorf("expected a single 10-point penalty, got score %d", report.Score)
		}
	})

	t.Run("should normalize non-monthly frequencies onto a monthly basis", func(t *testing.T) {
		report := analyzer.Analyze(HealthInput{
			Periods:        paycheckPeriods(2000),
			RecurringItems: []*entity.RecurringItem{fixedExpense("Insurance", 1200, entity.FrequencyYearly)},
			Now:            now,
		})

		if !report.FixedMonthly.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected 1200/year as 100/month, got %s", report.FixedMonthly)
		}
	})

	t.Run("should include debt minimum payments in fixed needs", func(t *testing.T) {
		report := analyzer.Analyze(HealthInput{
			Periods: paycheckPeriods(2000),
			Debts: []*entity.Debt{
				{
					ID:               uuid.New(),
					Name:             "Card",
					MinimumPayment:   decimal.NewFromInt(75),
					PaymentFrequency: entity.DebtFrequencyMonthly,
				},
			},
			Now: now,
		})

		if !report.FixedMonthly.Equal(decimal.NewFromInt(75)) {
			t.Errorf("expected fixed 75, got %s", report.FixedMonthly)
		}
	})

	t.Run("should recommend bracing for deficits when needs exceed income", func(t *testing.T) {
		report := analyzer.Analyze(HealthInput{
			Periods:        paycheckPeriods(1000, 1000, 1000),
			RecurringItems: []*entity.RecurringItem{fixedExpense("Rent", 2000, entity.FrequencyMonthly)},
			Now:            now,
		})

		if report.Score >= 100 {
			t.Errorf("expected a reduced score, got %d", report.Score)
		}
		if len(report.Recommendations) == 0 {
			t.Error("expected at least one recommendation")
		}
	})

	t.Run("should average income over at most the first three periods", func(t *testing.T) {
		report := analyzer.Analyze(HealthInput{
			Periods: paycheckPeriods(2000, 1000, 3000, 9999),
			Now:     now,
		})

		if !report.MonthlyIncome.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("expected mean 2000 over the first three periods, got %s", report.MonthlyIncome)
		}
	})

	t.Run("should score 100 with no needs at all", func(t *testing.T) {
		report := analyzer.Analyze(HealthInput{Periods: paycheckPeriods(500), Now: now})

		if report.Score != 100 {
			t.Errorf("expected score 100, got %d", report.Score)
		}
	})
}
