// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// BreakdownCache defines the interface for caching computed breakdown lists
// per user and reference date. A cache miss returns (nil, nil).
type BreakdownCache interface {
	// Get retrieves a cached breakdown list.
	Get(ctx context.Context, userID uuid.UUID, referenceDate time.Time) ([]entity.PaycheckBreakdown, error)

	// Set stores a breakdown list with the cache's TTL.
	Set(ctx context.Context, userID uuid.UUID, referenceDate time.Time, breakdowns []entity.PaycheckBreakdown) error

	// Invalidate drops every cached list for a user.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
