// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtFrequency represents the payment cadence of a debt obligation.
// Debts carry their own recurrence model, anchored on the next due date
// rather than a start date.
type DebtFrequency string

const (
	DebtFrequencyWeekly   DebtFrequency = "weekly"
	DebtFrequencyBiWeekly DebtFrequency = "bi-weekly"
	DebtFrequencyMonthly  DebtFrequency = "monthly"
	DebtFrequencyAnnually DebtFrequency = "annually"
	DebtFrequencyOther    DebtFrequency = "other"
)

// Debt represents a debt obligation with a minimum recurring payment.
type Debt struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Name              string
	MinimumPayment    decimal.Decimal
	PaymentFrequency  DebtFrequency
	PaymentDayOfMonth *int // 1-31, nullable
	NextDueDate       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time // Soft-delete support
}

// NewDebt creates a new Debt entity.
func NewDebt(
	userID uuid.UUID,
	name string,
	minimumPayment decimal.Decimal,
	paymentFrequency DebtFrequency,
	nextDueDate *time.Time,
) *Debt {
	now := time.Now().UTC()

	return &Debt{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             name,
		MinimumPayment:   minimumPayment,
		PaymentFrequency: paymentFrequency,
		NextDueDate:      nextDueDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
