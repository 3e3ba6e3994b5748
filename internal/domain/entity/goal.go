// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// urgentGoalHorizonMonths is the deadline window within which a goal is
// prioritized ahead of non-essential budgets.
const urgentGoalHorizonMonths = 6

// FinancialGoal represents a savings goal with a target amount and deadline.
type FinancialGoal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewFinancialGoal creates a new FinancialGoal entity.
func NewFinancialGoal(
	userID uuid.UUID,
	name string,
	targetAmount decimal.Decimal,
	currentAmount decimal.Decimal,
	targetDate time.Time,
) *FinancialGoal {
	now := time.Now().UTC()

	return &FinancialGoal{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		TargetDate:    targetDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// MonthlyTarget returns the monthly contribution needed to reach the goal:
// max(0, (target - current) / monthsRemaining). Months remaining are counted
// from the goal's creation date, so the figure is stable across repeated
// evaluations within the same computation pass. Never persisted.
func (g *FinancialGoal) MonthlyTarget() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.Sign() <= 0 {
		return decimal.Zero
	}

	months := monthsBetween(g.CreatedAt, g.TargetDate)
	if months < 1 {
		months = 1
	}

	return remaining.Div(decimal.NewFromInt(int64(months))).Round(2)
}

// IsUrgent reports whether the goal's deadline falls within six months of
// the given reference date.
func (g *FinancialGoal) IsUrgent(now time.Time) bool {
	return !g.TargetDate.After(now.AddDate(0, urgentGoalHorizonMonths, 0))
}

// monthsBetween returns the number of whole months from a to b, at least 0.
func monthsBetween(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
