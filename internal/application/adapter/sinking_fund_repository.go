// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// SinkingFundRepository defines the interface for sinking-fund persistence operations.
type SinkingFundRepository interface {
	// Create creates a new sinking fund in the database.
	Create(ctx context.Context, fund *entity.SinkingFund) error

	// FindByUserID retrieves all sinking funds for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.SinkingFund, error)

	// Delete removes a sinking fund from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
