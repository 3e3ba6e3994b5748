// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// DebtRepository defines the interface for debt persistence operations.
type DebtRepository interface {
	// Create creates a new debt in the database.
	Create(ctx context.Context, debt *entity.Debt) error

	// FindByUserID retrieves all debts for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Debt, error)

	// Delete removes a debt from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
