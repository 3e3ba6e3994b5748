// Package forecast contains the paycheck allocation use cases: expense
// matching, proration, the allocation engine, financial-health analysis,
// and the carryover fold that produces per-period breakdowns.
package forecast

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthSegment is the slice of a period falling inside one calendar month.
type MonthSegment struct {
	Year  int
	Month time.Month
	Days  int
}

// DaysPerMonth splits [periodStart, periodEnd] into calendar-month segments
// with inclusive day counts.
func DaysPerMonth(periodStart, periodEnd time.Time) []MonthSegment {
	start := dateOnly(periodStart)
	end := dateOnly(periodEnd)
	if end.Before(start) {
		return nil
	}

	var segments []MonthSegment
	for cursor := start; !cursor.After(end); {
		monthEnd := time.Date(cursor.Year(), cursor.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		segmentEnd := monthEnd
		if segmentEnd.After(end) {
			segmentEnd = end
		}

		segments = append(segments, MonthSegment{
			Year:  cursor.Year(),
			Month: cursor.Month(),
			Days:  int(segmentEnd.Sub(cursor).Hours()/24) + 1,
		})
		cursor = monthEnd.AddDate(0, 0, 1)
	}
	return segments
}

// ProratedMonthlyAmount weights a monthly figure by the days the period
// spends in each month: sum of (monthly / daysInMonth) * daysInPeriod. For a
// period inside a single month this is a plain fraction of the monthly
// amount; across a boundary each month contributes at its own daily rate.
func ProratedMonthlyAmount(monthly decimal.Decimal, periodStart, periodEnd time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, seg := range DaysPerMonth(periodStart, periodEnd) {
		daysInMonth := time.Date(seg.Year, seg.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
		total = total.Add(
			monthly.Div(decimal.NewFromInt(int64(daysInMonth))).
				Mul(decimal.NewFromInt(int64(seg.Days))),
		)
	}
	return total.Round(2)
}

// dateOnly truncates a time value to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
