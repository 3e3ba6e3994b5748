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

// recurringItemRepository implements the adapter.RecurringItemRepository interface.
type recurringItemRepository struct {
	db *gorm.DB
}

// NewRecurringItemRepository creates a new recurring-item repository instance.
func NewRecurringItemRepository(db *gorm.DB) adapter.RecurringItemRepository {
	return &recurringItemRepository{
		db: db,
	}
}

// Create creates a new recurring item in the database.
func (r *recurringItemRepository) Create(ctx context.Context, item *entity.RecurringItem) error {
	itemModel := model.RecurringItemFromEntity(item)
	result := r.db.WithContext(ctx).Create(itemModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUserID retrieves all recurring items for a given user.
func (r *recurringItemRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringItem, error) {
	var itemModels []model.RecurringItemModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&itemModels)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*entity.RecurringItem, len(itemModels))
	for i, im := range itemModels {
		items[i] = im.ToEntity()
	}
	return items, nil
}

// Delete removes a recurring item from the database (soft delete).
func (r *recurringItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.RecurringItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
