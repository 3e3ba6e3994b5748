package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDaysPerMonth(t *testing.T) {
	t.Run("should count days within a single month", func(t *testing.T) {
		segments := DaysPerMonth(date(2024, time.March, 1), date(2024, time.March, 14))

		if len(segments) != 1 {
			t.Fatalf("expected 1 segment, got %d", len(segments))
		}
		if segments[0].Days != 14 {
			t.Errorf("expected 14 days, got %d", segments[0].Days)
		}
		if segments[0].Month != time.March {
			t.Errorf("expected March, got %s", segments[0].Month)
		}
	})

	t.Run("should split a period spanning a month boundary", func(t *testing.T) {
		segments := DaysPerMonth(date(2024, time.March, 25), date(2024, time.April, 7))

		if len(segments) != 2 {
			t.Fatalf("expected 2 segments, got %d", len(segments))
		}
		if segments[0].Days != 7 {
			t.Errorf("expected 7 days in March, got %d", segments[0].Days)
		}
		if segments[1].Days != 7 {
			t.Errorf("expected 7 days in April, got %d", segments[1].Days)
		}
	})

	t.Run("should handle a single-day period", func(t *testing.T) {
		segments := DaysPerMonth(date(2024, time.June, 15), date(2024, time.June, 15))

		if len(segments) != 1 || segments[0].Days != 1 {
			t.Fatalf("expected one 1-day segment, got %+v", segments)
		}
	})

	t.Run("should return nothing for an inverted range", func(t *testing.T) {
		segments := DaysPerMonth(date(2024, time.June, 15), date(2024, time.June, 10))

		if len(segments) != 0 {
			t.Fatalf("expected no segments, got %+v", segments)
		}
	})
}

func TestProratedMonthlyAmount(t *testing.T) {
	t.Run("should prorate a fraction of a single month", func(t *testing.T) {
		// 15 of June's 30 days: exactly half the monthly figure.
		got := ProratedMonthlyAmount(
			decimal.NewFromInt(300),
			date(2024, time.June, 1),
			date(2024, time.June, 15),
		)

		if !got.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected 150, got %s", got)
		}
	})

	t.Run("should weight each month at its own daily rate", func(t *testing.T) {
		// 7 days of March (31 days) plus 7 days of April (30 days).
		got := ProratedMonthlyAmount(
			decimal.NewFromInt(310),
			date(2024, time.March, 25),
			date(2024, time.April, 7),
		)

		// 310/31*7 + 310/30*7 = 70 + 72.33
		want := decimal.NewFromFloat(142.33)
		if !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("should cover a full month exactly", func(t *testing.T) {
		got := ProratedMonthlyAmount(
			decimal.NewFromInt(500),
			date(2024, time.April, 1),
			date(2024, time.April, 30),
		)

		if !got.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected 500, got %s", got)
		}
	})

	t.Run("should return zero for an inverted range", func(t *testing.T) {
		got := ProratedMonthlyAmount(
			decimal.NewFromInt(500),
			date(2024, time.April, 10),
			date(2024, time.April, 1),
		)

		if !got.IsZero() {
			t.Errorf("expected zero, got %s", got)
		}
	})
}
