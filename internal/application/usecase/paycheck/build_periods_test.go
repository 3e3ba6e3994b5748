package paycheck

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/application/usecase/schedule"
	"github.com/budget-engine/backend/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func event(d time.Time, amount int64, source string) entity.PaycheckEvent {
	return entity.PaycheckEvent{Date: d, Amount: decimal.NewFromInt(amount), Source: source}
}

func TestBuildPeriods(t *testing.T) {
	t.Run("periods are contiguous and non-overlapping", func(t *testing.T) {
		events := []entity.PaycheckEvent{
			event(date(2024, time.March, 1), 2000, "Employer A"),
			event(date(2024, time.March, 15), 2000, "Employer A"),
			event(date(2024, time.March, 29), 2000, "Employer A"),
		}

		periods := BuildPeriods(events)
		if len(periods) != 3 {
			t.Fatalf("expected 3 periods, got %d", len(periods))
		}

		for i, p := range periods {
			if p.PeriodEnd.Before(p.PeriodStart) {
				t.Errorf("period %d ends before it starts", i)
			}
			if i == 0 {
				continue
			}
			prev := periods[i-1]
			if !prev.PeriodEnd.AddDate(0, 0, 1).Equal(p.PeriodStart) {
				t.Errorf("gap or overlap between period %d and %d: %v -> %v",
					i-1, i, prev.PeriodEnd, p.PeriodStart)
			}
		}

		if !periods[0].PeriodEnd.Equal(date(2024, time.March, 14)) {
			t.Errorf("expected first period to end 2024-03-14, got %v", periods[0].PeriodEnd)
		}
	})

	t.Run("last period gets a one-month window", func(t *testing.T) {
		periods := BuildPeriods([]entity.PaycheckEvent{
			event(date(2024, time.March, 15), 2000, "Employer A"),
		})
		if len(periods) != 1 {
			t.Fatalf("expected 1 period, got %d", len(periods))
		}
		if !periods[0].PeriodEnd.Equal(date(2024, time.April, 14)) {
			t.Errorf("expected period end 2024-04-14, got %v", periods[0].PeriodEnd)
		}
		if periods[0].NextPaycheckDate != nil {
			t.Error("expected no next paycheck date on the last period")
		}
	})

	t.Run("same-day events merge into one economic event", func(t *testing.T) {
		periods := BuildPeriods([]entity.PaycheckEvent{
			event(date(2024, time.March, 1), 2000, "Employer A"),
			event(date(2024, time.March, 1), 500, "Side gig"),
			event(date(2024, time.March, 15), 2000, "Employer A"),
		})
		if len(periods) != 2 {
			t.Fatalf("expected 2 periods, got %d", len(periods))
		}
		if !periods[0].PaycheckAmount.Equal(decimal.NewFromInt(2500)) {
			t.Errorf("expected merged amount 2500, got %s", periods[0].PaycheckAmount)
		}
		if periods[0].SourceLabel != "Employer A + Side gig" {
			t.Errorf("unexpected merged source label %q", periods[0].SourceLabel)
		}
	})
}

func TestBuildPeriodsUseCase_Execute(t *testing.T) {
	generator := NewEventGenerator(schedule.NewRecurrenceExpander(), decimal.NewFromInt(2000), 6, 1)
	uc := NewBuildPeriodsUseCase(generator, 3, 14)

	t.Run("real income produces actual periods", func(t *testing.T) {
		start := date(2024, time.March, 1)
		salary := &entity.RecurringItem{
			ID:        uuid.New(),
			Name:      "Salary",
			Kind:      entity.ItemKindIncome,
			Amount:    decimal.NewFromInt(2500),
			Frequency: entity.FrequencyBiWeekly,
			StartDate: &start,
		}

		out, err := uc.Execute(context.Background(), BuildPeriodsInput{
			IncomeItems:   []*entity.RecurringItem{salary},
			ReferenceDate: date(2024, time.March, 20),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Periods) == 0 {
			t.Fatal("expected periods, got none")
		}
		for _, p := range out.Periods {
			if p.Source != entity.PeriodSourceActual {
				t.Errorf("expected actual period, got %s", p.Source)
			}
		}
	})

	t.Run("no income falls back to estimated series", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), BuildPeriodsInput{
			ReferenceDate: date(2024, time.March, 20),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// One look-back period plus six forward.
		if len(out.Periods) != 7 {
			t.Fatalf("expected 7 estimated periods, got %d", len(out.Periods))
		}
		if !out.Periods[0].PaycheckDate.Equal(date(2024, time.March, 6)) {
			t.Errorf("expected look-back period starting 2024-03-06, got %v", out.Periods[0].PaycheckDate)
		}
		for _, p := range out.Periods {
			if p.Source != entity.PeriodSourceEstimated {
				t.Errorf("expected estimated period, got %s", p.Source)
			}
			if !p.PaycheckAmount.Equal(decimal.NewFromInt(2000)) {
				t.Errorf("expected amount 2000, got %s", p.PaycheckAmount)
			}
		}
	})

	t.Run("missing reference date is rejected", func(t *testing.T) {
		if _, err := uc.Execute(context.Background(), BuildPeriodsInput{}); err == nil {
			t.Error("expected error for zero reference date")
		}
	})

	t.Run("failed income expansion surfaces as warning", func(t *testing.T) {
		broken := &entity.RecurringItem{
			ID:        uuid.New(),
			Name:      "Mystery income",
			Kind:      entity.ItemKindIncome,
			Amount:    decimal.NewFromInt(100),
			Frequency: entity.FrequencyMonthly,
		}

		out, err := uc.Execute(context.Background(), BuildPeriodsInput{
			IncomeItems:   []*entity.RecurringItem{broken},
			ReferenceDate: date(2024, time.March, 20),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Warnings) != 1 {
			t.Fatalf("expected 1 warning, got %d", len(out.Warnings))
		}
	})
}
