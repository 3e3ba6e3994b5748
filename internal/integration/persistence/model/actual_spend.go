// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// ActualSpendModel represents the actual_spend table in the database: one
// row per budget per calendar month, keyed on the month's first day.
type ActualSpendModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_actual_spend_budget_month"`
	BudgetID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_actual_spend_budget_month"`
	Month          time.Time       `gorm:"type:date;not null;uniqueIndex:uq_actual_spend_budget_month"`
	SpentThisMonth decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ActualSpendModel.
func (ActualSpendModel) TableName() string {
	return "actual_spend"
}

// ToEntity converts an ActualSpendModel to a domain ActualSpend value.
func (m *ActualSpendModel) ToEntity() entity.ActualSpend {
	return entity.ActualSpend{
		CategoryID:     m.BudgetID,
		SpentThisMonth: m.SpentThisMonth,
	}
}
