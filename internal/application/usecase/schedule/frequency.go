// Package schedule contains the recurring-event expansion use cases.
package schedule

import (
	"time"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// stepFunc returns the nth occurrence counted from the anchor (n may be
// negative). Month-based frequencies clamp the anchor's day of month to the
// target month's length, so a Jan-31 monthly anchor lands on Feb-29/Mar-31,
// never skips a month.
type stepFunc func(anchor time.Time, n int) time.Time

// frequencySteps is the single strategy table shared by the recurring-item
// and debt expanders.
var frequencySteps = map[entity.Frequency]stepFunc{
	entity.FrequencyDaily:     func(a time.Time, n int) time.Time { return a.AddDate(0, 0, n) },
	entity.FrequencyWeekly:    func(a time.Time, n int) time.Time { return a.AddDate(0, 0, 7*n) },
	entity.FrequencyBiWeekly:  func(a time.Time, n int) time.Time { return a.AddDate(0, 0, 14*n) },
	entity.FrequencyMonthly:   func(a time.Time, n int) time.Time { return addMonthsClamped(a, n) },
	entity.FrequencyQuarterly: func(a time.Time, n int) time.Time { return addMonthsClamped(a, 3*n) },
	entity.FrequencyYearly:    func(a time.Time, n int) time.Time { return addMonthsClamped(a, 12*n) },
}

// debtFrequencySteps maps debt payment frequencies onto the shared step
// functions. Annually and other are handled as single-occurrence cases by
// the debt expander and deliberately have no entry here.
var debtFrequencySteps = map[entity.DebtFrequency]stepFunc{
	entity.DebtFrequencyWeekly:   frequencySteps[entity.FrequencyWeekly],
	entity.DebtFrequencyBiWeekly: frequencySteps[entity.FrequencyBiWeekly],
	entity.DebtFrequencyMonthly:  frequencySteps[entity.FrequencyMonthly],
}

// stepForFrequency looks up the step function for a recurring-item frequency.
func stepForFrequency(f entity.Frequency) (stepFunc, bool) {
	step, ok := frequencySteps[f]
	return step, ok
}

// stepForDebtFrequency looks up the step function for a debt frequency.
func stepForDebtFrequency(f entity.DebtFrequency) (stepFunc, bool) {
	step, ok := debtFrequencySteps[f]
	return step, ok
}

// addMonthsClamped adds months to the anchor, clamping the anchor's day of
// month to the last valid day of the target month.
func addMonthsClamped(anchor time.Time, months int) time.Time {
	firstOfTarget := time.Date(anchor.Year(), anchor.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	day := anchor.Day()
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
