// Package schedule contains the recurring-event expansion use cases: the
// business-day adjuster, the shared frequency step table, and the recurrence
// expanders for recurring items and debts.
package schedule

import "time"

// BusinessDayAdjuster rolls calendar dates backward to the nearest weekday
// that is not a recognized US federal holiday. Applied only to income-type
// occurrences; expenses and debts pass through unadjusted.
type BusinessDayAdjuster struct{}

// NewBusinessDayAdjuster creates a new BusinessDayAdjuster instance.
func NewBusinessDayAdjuster() *BusinessDayAdjuster {
	return &BusinessDayAdjuster{}
}

// Adjust rolls the date strictly backward, one day at a time, until it lands
// on a business day. Idempotent: Adjust(Adjust(d)) == Adjust(d).
func (a *BusinessDayAdjuster) Adjust(date time.Time) time.Time {
	d := dateOnly(date)
	for isWeekend(d) || isFederalHoliday(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// isFederalHoliday reports whether the date is one of the ten federal
// holidays, computed per year from fixed-date and nth-weekday rules.
func isFederalHoliday(d time.Time) bool {
	for _, h := range federalHolidays(d.Year()) {
		if d.Month() == h.Month() && d.Day() == h.Day() {
			return true
		}
	}
	return false
}

// federalHolidays returns the ten federal holidays for the given year.
func federalHolidays(year int) []time.Time {
	return []time.Time{
		time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),        // New Year's Day
		nthWeekday(year, time.January, time.Monday, 3),                // Martin Luther King Jr. Day
		nthWeekday(year, time.February, time.Monday, 3),               // Washington's Birthday
		lastWeekday(year, time.May, time.Monday),                      // Memorial Day
		time.Date(year, time.July, 4, 0, 0, 0, 0, time.UTC),           // Independence Day
		nthWeekday(year, time.September, time.Monday, 1),              // Labor Day
		nthWeekday(year, time.October, time.Monday, 2),                // Columbus Day
		time.Date(year, time.November, 11, 0, 0, 0, 0, time.UTC),      // Veterans Day
		nthWeekday(year, time.November, time.Thursday, 4),             // Thanksgiving Day
		time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC),      // Christmas Day
	}
}

// nthWeekday returns the nth given weekday of a month (n starting at 1).
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday returns the last given weekday of a month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	d := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC) // day 0 of next month
	offset := (int(d.Weekday()) - int(weekday) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// dateOnly truncates a time value to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
