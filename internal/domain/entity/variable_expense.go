// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// essentialCategories are the variable-expense categories allocated before
// all others when funds are scarce.
var essentialCategories = map[string]bool{
	"housing":        true,
	"utilities":      true,
	"food":           true,
	"transportation": true,
}

// VariableExpense represents a monthly budget for a variable spending category.
type VariableExpense struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Category      string
	MonthlyAmount decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewVariableExpense creates a new VariableExpense entity.
func NewVariableExpense(
	userID uuid.UUID,
	name string,
	category string,
	monthlyAmount decimal.Decimal,
) *VariableExpense {
	now := time.Now().UTC()

	return &VariableExpense{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Category:      category,
		MonthlyAmount: monthlyAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsEssential reports whether this budget belongs to an essential category
// (housing, utilities, food, transportation).
func (v *VariableExpense) IsEssential() bool {
	return essentialCategories[strings.ToLower(v.Category)]
}

// ActualSpend pairs a variable-expense budget with the amount already spent
// in the current calendar month. Supplied externally and matched by
// CategoryID == VariableExpense.ID.
type ActualSpend struct {
	CategoryID     uuid.UUID
	SpentThisMonth decimal.Decimal
}
