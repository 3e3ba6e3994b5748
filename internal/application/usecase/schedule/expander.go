// Package schedule contains the recurring-event expansion use cases.
package schedule

import (
	"log/slog"
	"sort"
	"time"

	"github.com/budget-engine/backend/internal/domain/entity"
	domainerror "github.com/budget-engine/backend/internal/domain/error"
)

// maxExpansionIterations bounds a single expansion pass. A window large
// enough to hit it with a real frequency would span decades of daily
// occurrences; hitting it means bad data, not a bigger budget.
const maxExpansionIterations = 5000

// RecurrenceExpander expands one recurring-item definition into every
// occurrence date inside a window.
type RecurrenceExpander struct {
	adjuster *BusinessDayAdjuster
}

// NewRecurrenceExpander creates a new RecurrenceExpander instance.
func NewRecurrenceExpander() *RecurrenceExpander {
	return &RecurrenceExpander{
		adjuster: NewBusinessDayAdjuster(),
	}
}

// Expand returns the ordered occurrence dates of the item inside
// [windowStart, windowEnd]. Income-type results are rolled backward to
// business days; everything else passes through unchanged.
func (e *RecurrenceExpander) Expand(item *entity.RecurringItem, windowStart, windowEnd time.Time) ([]time.Time, error) {
	start, end := dateOnly(windowStart), dateOnly(windowEnd)
	if end.Before(start) {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidWindow,
			"occurrence window end precedes start",
			domainerror.ErrInvalidWindow,
		)
	}

	// An item that ended before the window opened expands to nothing.
	if item.EndDate != nil && dateOnly(*item.EndDate).Before(start) {
		return []time.Time{}, nil
	}

	var dates []time.Time
	var err error
	if item.Frequency == entity.FrequencySemiMonthly {
		dates, err = e.expandSemiMonthly(item, start, end)
	} else {
		dates, err = e.expandStepped(item, start, end)
	}
	if err != nil {
		return nil, err
	}

	if item.IsIncome() {
		dates = e.adjustAll(dates)
	}
	return dates, nil
}

// expandStepped handles every frequency with a uniform step: anchor, walk
// backward to the window start, then walk forward emitting dates.
func (e *RecurrenceExpander) expandStepped(item *entity.RecurringItem, start, end time.Time) ([]time.Time, error) {
	step, ok := stepForFrequency(item.Frequency)
	if !ok {
		// Bounded instead of looping forever; flagged as a data-integrity
		// warning per the error taxonomy.
		slog.Warn("unknown recurrence frequency, skipping expansion",
			"item_id", item.ID,
			"frequency", string(item.Frequency),
		)
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeUnknownFrequency,
			"unknown frequency "+string(item.Frequency),
			domainerror.ErrUnknownFrequency,
		)
	}

	anchor, err := resolveAnchor(item, step)
	if err != nil {
		return nil, err
	}

	n := 0
	iterations := 0
	for step(anchor, n).After(start) {
		n--
		if iterations++; iterations > maxExpansionIterations {
			break
		}
	}

	dates := make([]time.Time, 0, 4)
	for iterations = 0; iterations <= maxExpansionIterations; iterations++ {
		d := step(anchor, n)
		if d.After(end) {
			break
		}
		if item.EndDate != nil && d.After(dateOnly(*item.EndDate)) {
			break
		}
		if !d.Before(start) {
			dates = append(dates, d)
		}
		n++
	}
	return dates, nil
}

// expandSemiMonthly handles the two-anchor schedule per calendar month, each
// day clamped to the last real day of that month.
func (e *RecurrenceExpander) expandSemiMonthly(item *entity.RecurringItem, start, end time.Time) ([]time.Time, error) {
	if item.SemiMonthlyFirstDay == nil || item.SemiMonthlySecondDay == nil {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeSemiMonthlyAnchors,
			"semi-monthly item "+item.Name+" is missing an anchor day",
			domainerror.ErrSemiMonthlyAnchors,
		)
	}
	days := []int{*item.SemiMonthlyFirstDay, *item.SemiMonthlySecondDay}
	for _, day := range days {
		if day < 1 || day > 31 {
			return nil, domainerror.NewScheduleError(
				domainerror.ErrCodeInvalidAnchorDay,
				"semi-monthly anchor day out of range",
				domainerror.ErrInvalidAnchorDay,
			)
		}
	}

	var earliest *time.Time
	if item.StartDate != nil {
		d := dateOnly(*item.StartDate)
		earliest = &d
	}

	dates := make([]time.Time, 0, 8)
	for cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC); !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		last := daysInMonth(cursor.Year(), cursor.Month())
		for _, day := range days {
			if day > last {
				day = last
			}
			d := time.Date(cursor.Year(), cursor.Month(), day, 0, 0, 0, 0, time.UTC)
			if d.Before(start) || d.After(end) {
				continue
			}
			if earliest != nil && d.Before(*earliest) {
				continue
			}
			if item.EndDate != nil && d.After(dateOnly(*item.EndDate)) {
				continue
			}
			dates = append(dates, d)
		}
	}
	sortDates(dates)
	return dates, nil
}

// adjustAll maps occurrence dates through the business-day adjuster,
// collapsing duplicates created when two raw dates roll back to the same
// business day.
func (e *RecurrenceExpander) adjustAll(dates []time.Time) []time.Time {
	adjusted := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		a := e.adjuster.Adjust(d)
		if len(adjusted) > 0 && adjusted[len(adjusted)-1].Equal(a) {
			continue
		}
		adjusted = append(adjusted, a)
	}
	return adjusted
}

// resolveAnchor determines the expansion anchor for a stepped item:
// subscriptions advance one step past their last renewal; otherwise the
// start date, then the stored (unadjusted) next occurrence.
func resolveAnchor(item *entity.RecurringItem, step stepFunc) (time.Time, error) {
	switch {
	case item.Kind == entity.ItemKindSubscription && item.LastRenewalDate != nil:
		return step(dateOnly(*item.LastRenewalDate), 1), nil
	case item.StartDate != nil:
		return dateOnly(*item.StartDate), nil
	case item.NextOccurrence != nil:
		return dateOnly(*item.NextOccurrence), nil
	default:
		return time.Time{}, domainerror.NewScheduleError(
			domainerror.ErrCodeMissingAnchor,
			"recurring item "+item.Name+" has no anchor date",
			domainerror.ErrMissingAnchor,
		)
	}
}

// sortDates sorts a date slice ascending.
func sortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}
