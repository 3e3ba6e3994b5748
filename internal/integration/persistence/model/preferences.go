// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// PreferencesModel represents the forecast_preferences table in the
// database. Manual plans are stored as a JSON document; they are small,
// bounded in number, and only ever read back whole.
type PreferencesModel struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Mode        string    `gorm:"type:varchar(10);not null"`
	ManualPlans string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the PreferencesModel.
func (PreferencesModel) TableName() string {
	return "forecast_preferences"
}

// planDocument is the JSON shape of one manual plan. Override map keys are
// structs, so overrides serialize as a flat list instead.
type planDocument struct {
	PlanID    uuid.UUID          `json:"plan_id"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Overrides []overrideDocument `json:"overrides"`
}

type overrideDocument struct {
	Kind   string          `json:"kind"`
	ItemID uuid.UUID       `json:"item_id"`
	Amount decimal.Decimal `json:"amount"`
}

// ToEntity converts a PreferencesModel to a domain ForecastPreferences
// entity.
func (m *PreferencesModel) ToEntity() (*entity.ForecastPreferences, error) {
	prefs := &entity.ForecastPreferences{
		UserID: m.UserID,
		Mode:   entity.AllocationMode(m.Mode),
	}

	if m.ManualPlans == "" {
		return prefs, nil
	}

	var docs []planDocument
	if err := json.Unmarshal([]byte(m.ManualPlans), &docs); err != nil {
		return nil, err
	}

	for _, doc := range docs {
		plan := entity.ManualPlan{
			PlanID:    doc.PlanID,
			StartDate: doc.StartDate,
			EndDate:   doc.EndDate,
			Overrides: make(map[entity.OverrideKey]decimal.Decimal, len(doc.Overrides)),
		}
		for _, o := range doc.Overrides {
			key := entity.OverrideKey{Kind: entity.LineKind(o.Kind), ItemID: o.ItemID}
			plan.Overrides[key] = o.Amount
		}
		prefs.ManualPlans = append(prefs.ManualPlans, plan)
	}
	return prefs, nil
}

// PreferencesFromEntity creates a PreferencesModel from a domain
// ForecastPreferences entity.
func PreferencesFromEntity(prefs *entity.ForecastPreferences) (*PreferencesModel, error) {
	model := &PreferencesModel{
		UserID: prefs.UserID,
		Mode:   string(prefs.Mode),
	}

	if len(prefs.ManualPlans) == 0 {
		return model, nil
	}

	docs := make([]planDocument, 0, len(prefs.ManualPlans))
	for _, plan := range prefs.ManualPlans {
		doc := planDocument{
			PlanID:    plan.PlanID,
			StartDate: plan.StartDate,
			EndDate:   plan.EndDate,
			Overrides: make([]overrideDocument, 0, len(plan.Overrides)),
		}
		for key, amount := range plan.Overrides {
			doc.Overrides = append(doc.Overrides, overrideDocument{
				Kind:   string(key.Kind),
				ItemID: key.ItemID,
				Amount: amount,
			})
		}
		docs = append(docs, doc)
	}

	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, err
	}
	model.ManualPlans = string(raw)
	return model, nil
}
