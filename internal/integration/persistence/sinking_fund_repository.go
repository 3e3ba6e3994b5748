// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-engine/backend/internal/application/adapter"
	"github.com/budget-engine/backend/internal/domain/entity"
	"github.com/budget-engine/backend/internal/integration/persistence/model"
)

// sinkingFundRepository implements the adapter.SinkingFundRepository interface.
type sinkingFundRepository struct {
	db *gorm.DB
}

// NewSinkingFundRepository creates a new sinking-fund repository instance.
func NewSinkingFundRepository(db *gorm.DB) adapter.SinkingFundRepository {
	return &sinkingFundRepository{
		db: db,
	}
}

// Create creates a new sinking fund in the database.
func (r *sinkingFundRepository) Create(ctx context.Context, fund *entity.SinkingFund) error {
	fundModel := model.SinkingFundFromEntity(fund)
	result := r.db.WithContext(ctx).Create(fundModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUserID retrieves all sinking funds for a given user.
func (r *sinkingFundRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.SinkingFund, error) {
	var fundModels []model.SinkingFundModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&fundModels)
	if result.Error != nil {
		return nil, result.Error
	}

	funds := make([]*entity.SinkingFund, len(fundModels))
	for i, fm := range fundModels {
		funds[i] = fm.ToEntity()
	}
	return funds, nil
}

// Delete removes a sinking fund from the database (soft delete).
func (r *sinkingFundRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.SinkingFundModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
