// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// RecurringItemRepository defines the interface for recurring-item persistence operations.
type RecurringItemRepository interface {
	// Create creates a new recurring item in the database.
	Create(ctx context.Context, item *entity.RecurringItem) error

	// FindByUserID retrieves all recurring items for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringItem, error)

	// Delete removes a recurring item from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
