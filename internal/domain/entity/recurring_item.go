// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frequency represents how often a recurring item repeats.
type Frequency string

const (
	FrequencyDaily       Frequency = "daily"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyBiWeekly    Frequency = "bi-weekly"
	FrequencyMonthly     Frequency = "monthly"
	FrequencyQuarterly   Frequency = "quarterly"
	FrequencyYearly      Frequency = "yearly"
	FrequencySemiMonthly Frequency = "semi-monthly"
)

// ItemKind represents the display kind of a recurring item.
type ItemKind string

const (
	ItemKindIncome       ItemKind = "income"
	ItemKindFixedExpense ItemKind = "fixed-expense"
	ItemKindSubscription ItemKind = "subscription"
)

// RecurringItem represents a recurring income, fixed expense, or subscription.
//
// Anchor rules: subscriptions anchor on LastRenewalDate (the next occurrence
// is one step after it); everything else anchors on StartDate. NextOccurrence
// is a fallback anchor carrying the natural, pre-business-day-adjustment date;
// adjustment is applied only when occurrences are emitted, never persisted.
// Semi-monthly items carry exactly two day-of-month anchors instead.
type RecurringItem struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Name                 string
	Kind                 ItemKind
	Amount               decimal.Decimal
	Frequency            Frequency
	StartDate            *time.Time
	LastRenewalDate      *time.Time
	NextOccurrence       *time.Time
	SemiMonthlyFirstDay  *int
	SemiMonthlySecondDay *int
	EndDate              *time.Time
	CategoryID           *uuid.UUID
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time // Soft-delete support
}

// NewRecurringItem creates a new RecurringItem entity.
func NewRecurringItem(
	userID uuid.UUID,
	name string,
	kind ItemKind,
	amount decimal.Decimal,
	frequency Frequency,
	startDate *time.Time,
) *RecurringItem {
	now := time.Now().UTC()

	return &RecurringItem{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Kind:      kind,
		Amount:    amount,
		Frequency: frequency,
		StartDate: startDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsIncome reports whether this item produces paychecks.
func (i *RecurringItem) IsIncome() bool {
	return i.Kind == ItemKindIncome
}

// IsObligated reports whether this item is an obligated expense
// (fixed expenses and subscriptions; income is never obligated).
func (i *RecurringItem) IsObligated() bool {
	return i.Kind == ItemKindFixedExpense || i.Kind == ItemKindSubscription
}
