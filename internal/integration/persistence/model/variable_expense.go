// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// VariableExpenseModel represents the variable_expenses table in the database.
type VariableExpenseModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(255);not null"`
	Category      string          `gorm:"type:varchar(50);not null"`
	MonthlyAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the VariableExpenseModel.
func (VariableExpenseModel) TableName() string {
	return "variable_expenses"
}

// ToEntity converts a VariableExpenseModel to a domain VariableExpense entity.
func (m *VariableExpenseModel) ToEntity() *entity.VariableExpense {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.VariableExpense{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		Category:      m.Category,
		MonthlyAmount: m.MonthlyAmount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}

// VariableExpenseFromEntity creates a VariableExpenseModel from a domain
// VariableExpense entity.
func VariableExpenseFromEntity(budget *entity.VariableExpense) *VariableExpenseModel {
	var deletedAt gorm.DeletedAt
	if budget.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *budget.DeletedAt, Valid: true}
	}

	return &VariableExpenseModel{
		ID:            budget.ID,
		UserID:        budget.UserID,
		Name:          budget.Name,
		Category:      budget.Category,
		MonthlyAmount: budget.MonthlyAmount,
		CreatedAt:     budget.CreatedAt,
		UpdatedAt:     budget.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}
