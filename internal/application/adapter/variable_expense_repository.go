// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// VariableExpenseRepository defines the interface for variable-expense budget
// persistence operations.
type VariableExpenseRepository interface {
	// Create creates a new variable-expense budget in the database.
	Create(ctx context.Context, budget *entity.VariableExpense) error

	// FindByUserID retrieves all variable-expense budgets for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.VariableExpense, error)

	// Delete removes a variable-expense budget from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActualSpendRepository defines the interface for reading per-budget spending
// history.
type ActualSpendRepository interface {
	// RecordSpend upserts the amount spent against a budget within a month.
	RecordSpend(ctx context.Context, userID, budgetID uuid.UUID, month time.Time, amount decimal.Decimal) error

	// FindByUserAndMonth retrieves the spend recorded per budget for the
	// calendar month containing the given date.
	FindByUserAndMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]entity.ActualSpend, error)
}
