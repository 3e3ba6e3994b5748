// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodSource indicates whether a paycheck period comes from real income
// definitions or from the synthetic estimated fallback series.
type PeriodSource string

const (
	PeriodSourceActual    PeriodSource = "actual"
	PeriodSourceEstimated PeriodSource = "estimated"
)

// PaycheckEvent is one concrete paycheck landing on a date. Ephemeral:
// produced by the event generator and consumed by the period builder.
type PaycheckEvent struct {
	Date      time.Time
	Amount    decimal.Decimal
	Source    string
	Estimated bool
}

// PaycheckPeriod is the span between one paycheck and the day before the
// next. Periods are strictly chronological and non-overlapping; PeriodEnd is
// always NextPaycheckDate - 1 day, or a synthetic one-month window when no
// next paycheck is known.
type PaycheckPeriod struct {
	ID               int
	PaycheckDate     time.Time
	PaycheckAmount   decimal.Decimal
	SourceLabel      string
	NextPaycheckDate *time.Time
	PeriodStart      time.Time
	PeriodEnd        time.Time
	Source           PeriodSource
}

// Contains reports whether the given date falls inside the period
// (both bounds inclusive).
func (p *PaycheckPeriod) Contains(date time.Time) bool {
	return !date.Before(p.PeriodStart) && !date.After(p.PeriodEnd)
}

// OverlapsMonth reports whether any day of the period falls inside the
// calendar month containing the given reference date. Actual-spend history
// is only applied to periods overlapping the current month.
func (p *PaycheckPeriod) OverlapsMonth(reference time.Time) bool {
	monthStart := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)
	return !p.PeriodStart.After(monthEnd) && !p.PeriodEnd.Before(monthStart)
}
