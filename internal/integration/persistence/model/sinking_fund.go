// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// SinkingFundModel represents the sinking_funds table in the database.
type SinkingFundModel struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name                string           `gorm:"type:varchar(255);not null"`
	TargetAmount        decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	CurrentAmount       decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	TargetDate          *time.Time       `gorm:"type:date"`
	MonthlyContribution *decimal.Decimal `gorm:"type:decimal(15,2)"`
	CreatedAt           time.Time        `gorm:"not null"`
	UpdatedAt           time.Time        `gorm:"not null"`
	DeletedAt           gorm.DeletedAt   `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the SinkingFundModel.
func (SinkingFundModel) TableName() string {
	return "sinking_funds"
}

// ToEntity converts a SinkingFundModel to a domain SinkingFund entity.
func (m *SinkingFundModel) ToEntity() *entity.SinkingFund {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.SinkingFund{
		ID:                  m.ID,
		UserID:              m.UserID,
		Name:                m.Name,
		TargetAmount:        m.TargetAmount,
		CurrentAmount:       m.CurrentAmount,
		TargetDate:          m.TargetDate,
		MonthlyContribution: m.MonthlyContribution,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}

// SinkingFundFromEntity creates a SinkingFundModel from a domain SinkingFund
// entity.
func SinkingFundFromEntity(fund *entity.SinkingFund) *SinkingFundModel {
	var deletedAt gorm.DeletedAt
	if fund.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *fund.DeletedAt, Valid: true}
	}

	return &SinkingFundModel{
		ID:                  fund.ID,
		UserID:              fund.UserID,
		Name:                fund.Name,
		TargetAmount:        fund.TargetAmount,
		CurrentAmount:       fund.CurrentAmount,
		TargetDate:          fund.TargetDate,
		MonthlyContribution: fund.MonthlyContribution,
		CreatedAt:           fund.CreatedAt,
		UpdatedAt:           fund.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}
