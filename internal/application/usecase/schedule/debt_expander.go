// Package schedule contains the recurring-event expansion use cases.
package schedule

import (
	"log/slog"
	"time"

	"github.com/budget-engine/backend/internal/domain/entity"
	domainerror "github.com/budget-engine/backend/internal/domain/error"
)

// DebtOccurrenceExpander expands a debt's payment schedule into occurrence
// dates inside a window. Debts anchor on their next due date, independent of
// any start or end date, and never receive business-day adjustment.
type DebtOccurrenceExpander struct{}

// NewDebtOccurrenceExpander creates a new DebtOccurrenceExpander instance.
func NewDebtOccurrenceExpander() *DebtOccurrenceExpander {
	return &DebtOccurrenceExpander{}
}

// Expand returns the ordered payment dates of the debt inside
// [windowStart, windowEnd]. Annual and "other" cadences emit at most the
// single next due date.
func (e *DebtOccurrenceExpander) Expand(debt *entity.Debt, windowStart, windowEnd time.Time) ([]time.Time, error) {
	start, end := dateOnly(windowStart), dateOnly(windowEnd)
	if end.Before(start) {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidWindow,
			"occurrence window end precedes start",
			domainerror.ErrInvalidWindow,
		)
	}

	anchor, err := resolveDebtAnchor(debt, start)
	if err != nil {
		return nil, err
	}

	switch debt.PaymentFrequency {
	case entity.DebtFrequencyAnnually, entity.DebtFrequencyOther:
		if anchor.Before(start) || anchor.After(end) {
			return []time.Time{}, nil
		}
		return []time.Time{anchor}, nil
	}

	step, ok := stepForDebtFrequency(debt.PaymentFrequency)
	if !ok {
		slog.Warn("unknown debt payment frequency, skipping expansion",
			"debt_id", debt.ID,
			"frequency", string(debt.PaymentFrequency),
		)
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeUnknownFrequency,
			"unknown debt frequency "+string(debt.PaymentFrequency),
			domainerror.ErrUnknownFrequency,
		)
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
		if !d.Before(start) {
			dates = append(dates, d)
		}
		n++
	}
	return dates, nil
}

// resolveDebtAnchor picks the debt's expansion anchor: the next due date
// when present, otherwise the payment day of month placed in the window's
// opening month. A debt with neither fails fast instead of guessing a day.
func resolveDebtAnchor(debt *entity.Debt, windowStart time.Time) (time.Time, error) {
	if debt.NextDueDate != nil {
		return dateOnly(*debt.NextDueDate), nil
	}
	if debt.PaymentDayOfMonth != nil {
		day := *debt.PaymentDayOfMonth
		if day < 1 || day > 31 {
			return time.Time{}, domainerror.NewScheduleError(
				domainerror.ErrCodeInvalidAnchorDay,
				"debt payment day out of range",
				domainerror.ErrInvalidAnchorDay,
			)
		}
		if last := daysInMonth(windowStart.Year(), windowStart.Month()); day > last {
			day = last
		}
		return time.Date(windowStart.Year(), windowStart.Month(), day, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, domainerror.NewScheduleError(
		domainerror.ErrCodeDebtMissingDueReference,
		"debt "+debt.Name+" has neither next due date nor payment day",
		domainerror.ErrDebtMissingDueReference,
	)
}
