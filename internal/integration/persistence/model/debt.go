// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// DebtModel represents the debts table in the database.
type DebtModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name              string          `gorm:"type:varchar(255);not null"`
	MinimumPayment    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentFrequency  string          `gorm:"type:varchar(20);not null"`
	PaymentDayOfMonth *int            `gorm:"type:smallint"`
	NextDueDate       *time.Time      `gorm:"type:date"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
	DeletedAt         gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the DebtModel.
func (DebtModel) TableName() string {
	return "debts"
}

// ToEntity converts a DebtModel to a domain Debt entity.
func (m *DebtModel) ToEntity() *entity.Debt {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Debt{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              m.Name,
		MinimumPayment:    m.MinimumPayment,
		PaymentFrequency:  entity.DebtFrequency(m.PaymentFrequency),
		PaymentDayOfMonth: m.PaymentDayOfMonth,
		NextDueDate:       m.NextDueDate,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}

// DebtFromEntity creates a DebtModel from a domain Debt entity.
func DebtFromEntity(debt *entity.Debt) *DebtModel {
	var deletedAt gorm.DeletedAt
	if debt.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *debt.DeletedAt, Valid: true}
	}

	return &DebtModel{
		ID:                debt.ID,
		UserID:            debt.UserID,
		Name:              debt.Name,
		MinimumPayment:    debt.MinimumPayment,
		PaymentFrequency:  string(debt.PaymentFrequency),
		PaymentDayOfMonth: debt.PaymentDayOfMonth,
		NextDueDate:       debt.NextDueDate,
		CreatedAt:         debt.CreatedAt,
		UpdatedAt:         debt.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}
