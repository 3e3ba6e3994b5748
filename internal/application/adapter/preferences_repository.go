// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// PreferencesRepository defines the interface for forecast-preferences
// persistence operations. Every user has at most one preferences row.
type PreferencesRepository interface {
	// Save creates or replaces the preferences for a user.
	Save(ctx context.Context, prefs *entity.ForecastPreferences) error

	// FindByUserID retrieves a user's preferences. Users without a stored
	// row get the auto-mode defaults.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ForecastPreferences, error)
}
