// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// RecurringItemModel represents the recurring_items table in the database.
// Semi-monthly items store their pair of day-of-month anchors in a single
// array column.
type RecurringItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Kind            string          `gorm:"type:varchar(20);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Frequency       string          `gorm:"type:varchar(20);not null"`
	StartDate       *time.Time      `gorm:"type:date"`
	LastRenewalDate *time.Time      `gorm:"type:date"`
	NextOccurrence  *time.Time      `gorm:"type:date"`
	SemiMonthlyDays pq.Int64Array   `gorm:"type:integer[]"`
	EndDate         *time.Time      `gorm:"type:date"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
	DeletedAt       gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the RecurringItemModel.
func (RecurringItemModel) TableName() string {
	return "recurring_items"
}

// ToEntity converts a RecurringItemModel to a domain RecurringItem entity.
func (m *RecurringItemModel) ToEntity() *entity.RecurringItem {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	item := &entity.RecurringItem{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Kind:            entity.ItemKind(m.Kind),
		Amount:          m.Amount,
		Frequency:       entity.Frequency(m.Frequency),
		StartDate:       m.StartDate,
		LastRenewalDate: m.LastRenewalDate,
		NextOccurrence:  m.NextOccurrence,
		EndDate:         m.EndDate,
		CategoryID:      m.CategoryID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       deletedAt,
	}

	if len(m.SemiMonthlyDays) == 2 {
		first := int(m.SemiMonthlyDays[0])
		second := int(m.SemiMonthlyDays[1])
		item.SemiMonthlyFirstDay = &first
		item.SemiMonthlySecondDay = &second
	}
	return item
}

// RecurringItemFromEntity creates a RecurringItemModel from a domain
// RecurringItem entity.
func RecurringItemFromEntity(item *entity.RecurringItem) *RecurringItemModel {
	var deletedAt gorm.DeletedAt
	if item.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *item.DeletedAt, Valid: true}
	}

	model := &RecurringItemModel{
		ID:              item.ID,
		UserID:          item.UserID,
		Name:            item.Name,
		Kind:            string(item.Kind),
		Amount:          item.Amount,
		Frequency:       string(item.Frequency),
		StartDate:       item.StartDate,
		LastRenewalDate: item.LastRenewalDate,
		NextOccurrence:  item.NextOccurrence,
		EndDate:         item.EndDate,
		CategoryID:      item.CategoryID,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
		DeletedAt:       deletedAt,
	}

	if item.SemiMonthlyFirstDay != nil && item.SemiMonthlySecondDay != nil {
		model.SemiMonthlyDays = pq.Int64Array{
			int64(*item.SemiMonthlyFirstDay),
			int64(*item.SemiMonthlySecondDay),
		}
	}
	return model
}
