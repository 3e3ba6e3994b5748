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

// variableExpenseRepository implements the adapter.VariableExpenseRepository interface.
type variableExpenseRepository struct {
	db *gorm.DB
}

// NewVariableExpenseRepository creates a new variable-expense repository instance.
func NewVariableExpenseRepository(db *gorm.DB) adapter.VariableExpenseRepository {
	return &variableExpenseRepository{
		db: db,
	}
}

// Create creates a new variable-expense budget in the database.
func (r *variableExpenseRepository) Create(ctx context.Context, budget *entity.VariableExpense) error {
	budgetModel := model.VariableExpenseFromEntity(budget)
	result := r.db.WithContext(ctx).Create(budgetModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUserID retrieves all variable-expense budgets for a given user.
func (r *variableExpenseRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.VariableExpense, error) {
	var budgetModels []model.VariableExpenseModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*entity.VariableExpense, len(budgetModels))
	for i, bm := range budgetModels {
		budgets[i] = bm.ToEntity()
	}
	return budgets, nil
}

// Delete removes a variable-expense budget from the database (soft delete).
func (r *variableExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.VariableExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
