// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/budget-engine/backend/internal/application/adapter"
	"github.com/budget-engine/backend/internal/domain/entity"
	"github.com/budget-engine/backend/internal/integration/persistence/model"
)

// actualSpendRepository implements the adapter.ActualSpendRepository interface.
type actualSpendRepository struct {
	db *gorm.DB
}

// NewActualSpendRepository creates a new actual-spend repository instance.
func NewActualSpendRepository(db *gorm.DB) adapter.ActualSpendRepository {
	return &actualSpendRepository{
		db: db,
	}
}

// RecordSpend upserts the amount spent against a budget within a month.
func (r *actualSpendRepository) RecordSpend(ctx context.Context, userID, budgetID uuid.UUID, month time.Time, amount decimal.Decimal) error {
	now := time.Now().UTC()
	spendModel := &model.ActualSpendModel{
		ID:             uuid.New(),
		UserID:         userID,
		BudgetID:       budgetID,
		Month:          monthStart(month),
		SpentThisMonth: amount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "budget_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"spent_this_month", "updated_at"}),
	}).Create(spendModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUserAndMonth retrieves the spend recorded per budget for the
// calendar month containing the given date.
func (r *actualSpendRepository) FindByUserAndMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]entity.ActualSpend, error) {
	var spendModels []model.ActualSpendModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, monthStart(month)).
		Find(&spendModels)
	if result.Error != nil {
		return nil, result.Error
	}

	spend := make([]entity.ActualSpend, len(spendModels))
	for i, sm := range spendModels {
		spend[i] = sm.ToEntity()
	}
	return spend, nil
}

// monthStart normalizes any date to the first day of its calendar month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
