// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// GoalRepository defines the interface for financial-goal persistence operations.
type GoalRepository interface {
	// Create creates a new financial goal in the database.
	Create(ctx context.Context, goal *entity.FinancialGoal) error

	// FindByUserID retrieves all financial goals for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.FinancialGoal, error)

	// Delete removes a financial goal from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
