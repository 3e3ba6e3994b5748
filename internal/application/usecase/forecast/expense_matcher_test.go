package forecast

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/application/usecase/schedule"
	"github.com/budget-engine/backend/internal/domain/entity"
)

func newMatcher() *ExpenseMatcher {
	return NewExpenseMatcher(schedule.NewRecurrenceExpander(), schedule.NewDebtOccurrenceExpander())
}

func januaryPeriod() entity.PaycheckPeriod {
	return entity.PaycheckPeriod{
		PaycheckDate:   date(2024, time.January, 1),
		PaycheckAmount: decimal.NewFromInt(3000),
		PeriodStart:    date(2024, time.January, 1),
		PeriodEnd:      date(2024, time.January, 31),
	}
}

func TestExpenseMatcher(t *testing.T) {
	matcher := newMatcher()

	t.Run("should collect fixed expenses, subscriptions and debts in due-date order", func(t *testing.T) {
		rentStart := date(2024, time.January, 1)
		renewal := date(2023, time.December, 15)
		dueDate := date(2024, time.January, 20)

		items := []*entity.RecurringItem{
			{
				ID:        uuid.New(),
				Name:      "Rent",
				Kind:      entity.ItemKindFixedExpense,
				Amount:    decimal.NewFromInt(1200),
				Frequency: entity.FrequencyMonthly,
				StartDate: &rentStart,
			},
			{
				ID:              uuid.New(),
				Name:            "Streaming",
				Kind:            entity.ItemKindSubscription,
				Amount:          decimal.NewFromFloat(15.99),
				Frequency:       entity.FrequencyMonthly,
				LastRenewalDate: &renewal,
			},
		}
		debts := []*entity.Debt{
			{
				ID:               uuid.New(),
				Name:             "Car loan",
				MinimumPayment:   decimal.NewFromInt(250),
				PaymentFrequency: entity.DebtFrequencyMonthly,
				NextDueDate:      &dueDate,
			},
		}

		lines, total, warnings := matcher.Match(januaryPeriod(), items, debts)

		if len(warnings) != 0 {
			t.Fatalf("expected no warnings, got %v", warnings)
		}
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}

		wantNames := []string{"Rent", "Streaming", "Car loan"}
		for i, name := range wantNames {
			if lines[i].Name != name {
				t.Errorf("line %d: expected %q, got %q", i, name, lines[i].Name)
			}
		}
		if lines[0].Kind != entity.LineKindFixed {
			t.Errorf("expected fixed kind, got %s", lines[0].Kind)
		}
		if lines[1].Kind != entity.LineKindSubscription {
			t.Errorf("expected subscription kind, got %s", lines[1].Kind)
		}
		if lines[2].Source != entity.ExpenseSourceDebt {
			t.Errorf("expected debt source, got %s", lines[2].Source)
		}

		want := decimal.NewFromFloat(1465.99)
		if !total.Equal(want) {
			t.Errorf("expected total %s, got %s", want, total)
		}
	})

	t.Run("should never treat income as an obligation", func(t *testing.T) {
		start := date(2024, time.January, 5)
		items := []*entity.RecurringItem{
			{
				ID:        uuid.New(),
				Name:      "Salary",
				Kind:      entity.ItemKindIncome,
				Amount:    decimal.NewFromInt(2000),
				Frequency: entity.FrequencyBiWeekly,
				StartDate: &start,
			},
		}

		lines, total, _ := matcher.Match(januaryPeriod(), items, nil)

		if len(lines) != 0 {
			t.Fatalf("expected no lines, got %d", len(lines))
		}
		if !total.IsZero() {
			t.Errorf("expected zero total, got %s", total)
		}
	})

	t.Run("should annotate and exclude a definition that fails to expand", func(t *testing.T) {
		start := date(2024, time.January, 1)
		items := []*entity.RecurringItem{
			{
				ID:        uuid.New(),
				Name:      "Gym",
				Kind:      entity.ItemKindFixedExpense,
				Amount:    decimal.NewFromInt(40),
				Frequency: entity.FrequencyMonthly,
				// no anchor at all
			},
			{
				ID:        uuid.New(),
				Name:      "Rent",
				Kind:      entity.ItemKindFixedExpense,
				Amount:    decimal.NewFromInt(1200),
				Frequency: entity.FrequencyMonthly,
				StartDate: &start,
			},
		}

		lines, total, warnings := matcher.Match(januaryPeriod(), items, nil)

		if len(warnings) != 1 {
			t.Fatalf("expected 1 warning, got %v", warnings)
		}
		if len(lines) != 1 || lines[0].Name != "Rent" {
			t.Fatalf("expected only the valid expense, got %+v", lines)
		}
		if !total.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("expected total 1200, got %s", total)
		}
	})

	t.Run("should emit one line per occurrence inside the period", func(t *testing.T) {
		start := date(2024, time.January, 1)
		items := []*entity.RecurringItem{
			{
				ID:        uuid.New(),
				Name:      "Cleaning",
				Kind:      entity.ItemKindFixedExpense,
				Amount:    decimal.NewFromInt(60),
				Frequency: entity.FrequencyWeekly,
				StartDate: &start,
			},
		}

		lines, total, _ := matcher.Match(januaryPeriod(), items, nil)

		// Jan 1, 8, 15, 22, 29.
		if len(lines) != 5 {
			t.Fatalf("expected 5 lines, got %d", len(lines))
		}
		if !total.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected total 300, got %s", total)
		}
	})
}
