// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SinkingFund represents money set aside gradually for a known future
// expense. Funds are the lowest-priority allocation line: they receive
// surplus only after every budget and goal has been funded.
type SinkingFund struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Name                string
	TargetAmount        decimal.Decimal
	CurrentAmount       decimal.Decimal
	TargetDate          *time.Time
	MonthlyContribution *decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time // Soft-delete support
}

// NewSinkingFund creates a new SinkingFund entity.
func NewSinkingFund(
	userID uuid.UUID,
	name string,
	targetAmount decimal.Decimal,
	targetDate *time.Time,
) *SinkingFund {
	now := time.Now().UTC()

	return &SinkingFund{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		TargetAmount: targetAmount,
		TargetDate:   targetDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// MonthlyFigure returns the fund's planned monthly contribution. An explicit
// contribution wins; otherwise it is derived from the remaining amount and
// the months left until the target date, like a goal.
func (f *SinkingFund) MonthlyFigure() decimal.Decimal {
	if f.MonthlyContribution != nil {
		return *f.MonthlyContribution
	}

	remaining := f.TargetAmount.Sub(f.CurrentAmount)
	if remaining.Sign() <= 0 || f.TargetDate == nil {
		return decimal.Zero
	}

	months := monthsBetween(f.CreatedAt, *f.TargetDate)
	if months < 1 {
		months = 1
	}

	return remaining.Div(decimal.NewFromInt(int64(months))).Round(2)
}
