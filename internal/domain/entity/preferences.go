// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationMode selects how a period's surplus is distributed.
type AllocationMode string

const (
	AllocationModeAuto   AllocationMode = "auto"
	AllocationModeManual AllocationMode = "manual"
)

// MaxManualPlans is the number of independently configured manual plans a
// user may hold at once.
const MaxManualPlans = 3

// OverrideKey identifies one allocation line inside a manual plan.
type OverrideKey struct {
	Kind   LineKind
	ItemID uuid.UUID
}

// ManualPlan is one manually configured allocation plan scoped to a date
// range. Override amounts arrive pre-resolved from the orchestration layer;
// the allocation engine itself never sees plans.
type ManualPlan struct {
	PlanID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Overrides map[OverrideKey]decimal.Decimal
}

// Covers reports whether the plan's date range fully contains the period.
func (p *ManualPlan) Covers(periodStart, periodEnd time.Time) bool {
	return !periodStart.Before(p.StartDate) && !periodEnd.After(p.EndDate)
}

// ForecastPreferences carries the user's allocation-mode selection and any
// manual plans.
type ForecastPreferences struct {
	UserID      uuid.UUID
	Mode        AllocationMode
	ManualPlans []ManualPlan
}

// DefaultPreferences returns auto-mode preferences for the given user.
func DefaultPreferences(userID uuid.UUID) *ForecastPreferences {
	return &ForecastPreferences{
		UserID: userID,
		Mode:   AllocationModeAuto,
	}
}

// PlanFor returns the first manual plan covering the given period, or nil.
// Only meaningful when Mode is manual.
func (p *ForecastPreferences) PlanFor(periodStart, periodEnd time.Time) *ManualPlan {
	if p == nil || p.Mode != AllocationModeManual {
		return nil
	}
	for i := range p.ManualPlans {
		if p.ManualPlans[i].Covers(periodStart, periodEnd) {
			return &p.ManualPlans[i]
		}
	}
	return nil
}
