// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/budget-engine/backend/internal/application/adapter"
	"github.com/budget-engine/backend/internal/domain/entity"
	"github.com/budget-engine/backend/internal/integration/persistence/model"
)

// preferencesRepository implements the adapter.PreferencesRepository interface.
type preferencesRepository struct {
	db *gorm.DB
}

// NewPreferencesRepository creates a new preferences repository instance.
func NewPreferencesRepository(db *gorm.DB) adapter.PreferencesRepository {
	return &preferencesRepository{
		db: db,
	}
}

// Save creates or replaces the preferences for a user.
func (r *preferencesRepository) Save(ctx context.Context, prefs *entity.ForecastPreferences) error {
	prefsModel, err := model.PreferencesFromEntity(prefs)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	prefsModel.CreatedAt = now
	prefsModel.UpdatedAt = now

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"mode", "manual_plans", "updated_at"}),
	}).Create(prefsModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUserID retrieves a user's preferences. Users without a stored row
// get the auto-mode defaults.
func (r *preferencesRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ForecastPreferences, error) {
	var prefsModel model.PreferencesModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefsModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return entity.DefaultPreferences(userID), nil
		}
		return nil, result.Error
	}
	return prefsModel.ToEntity()
}
