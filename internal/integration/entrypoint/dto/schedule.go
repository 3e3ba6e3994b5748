// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/domain/entity"
)

// RecurringItemPayload represents one recurring-item definition on the wire.
type RecurringItemPayload struct {
	ID                   *string         `json:"id,omitempty"`
	Name                 string          `json:"name" binding:"required"`
	Kind                 string          `json:"kind" binding:"required,oneof=income fixed-expense subscription"`
	Amount               decimal.Decimal `json:"amount" binding:"required"`
	Frequency            string          `json:"frequency" binding:"required"`
	StartDate            *string         `json:"start_date,omitempty"`
	LastRenewalDate      *string         `json:"last_renewal_date,omitempty"`
	NextOccurrence       *string         `json:"next_occurrence,omitempty"`
	SemiMonthlyFirstDay  *int            `json:"semi_monthly_first_day,omitempty"`
	SemiMonthlySecondDay *int            `json:"semi_monthly_second_day,omitempty"`
	EndDate              *string         `json:"end_date,omitempty"`
}

// ToEntity converts a RecurringItemPayload to a domain RecurringItem entity.
func (p *RecurringItemPayload) ToEntity() (*entity.RecurringItem, error) {
	id, err := parseOptionalID(p.ID)
	if err != nil {
		return nil, err
	}
	startDate, err := ParseOptionalDate("start_date", p.StartDate)
	if err != nil {
		return nil, err
	}
	lastRenewal, err := ParseOptionalDate("last_renewal_date", p.LastRenewalDate)
	if err != nil {
		return nil, err
	}
	nextOccurrence, err := ParseOptionalDate("next_occurrence", p.NextOccurrence)
	if err != nil {
		return nil, err
	}
	endDate, err := ParseOptionalDate("end_date", p.EndDate)
	if err != nil {
		return nil, err
	}

	return &entity.RecurringItem{
		ID:                   id,
		Name:                 p.Name,
		Kind:                 entity.ItemKind(p.Kind),
		Amount:               p.Amount,
		Frequency:            entity.Frequency(p.Frequency),
		StartDate:            startDate,
		LastRenewalDate:      lastRenewal,
		NextOccurrence:       nextOccurrence,
		SemiMonthlyFirstDay:  p.SemiMonthlyFirstDay,
		SemiMonthlySecondDay: p.SemiMonthlySecondDay,
		EndDate:              endDate,
	}, nil
}

// DebtPayload represents one debt definition on the wire.
type DebtPayload struct {
	ID                *string         `json:"id,omitempty"`
	Name              string          `json:"name" binding:"required"`
	MinimumPayment    decimal.Decimal `json:"minimum_payment" binding:"required"`
	PaymentFrequency  string          `json:"payment_frequency" binding:"required,oneof=weekly bi-weekly monthly annually other"`
	PaymentDayOfMonth *int            `json:"payment_day_of_month,omitempty"`
	NextDueDate       *string         `json:"next_due_date,omitempty"`
}

// ToEntity converts a DebtPayload to a domain Debt entity.
func (p *DebtPayload) ToEntity() (*entity.Debt, error) {
	id, err := parseOptionalID(p.ID)
	if err != nil {
		return nil, err
	}
	nextDueDate, err := ParseOptionalDate("next_due_date", p.NextDueDate)
	if err != nil {
		return nil, err
	}

	return &entity.Debt{
		ID:                id,
		Name:              p.Name,
		MinimumPayment:    p.MinimumPayment,
		PaymentFrequency:  entity.DebtFrequency(p.PaymentFrequency),
		PaymentDayOfMonth: p.PaymentDayOfMonth,
		NextDueDate:       nextDueDate,
	}, nil
}

// ExpandOccurrencesRequest represents the request body for occurrence
// expansion. Exactly one of item or debt must be set.
type ExpandOccurrencesRequest struct {
	WindowStart string                `json:"window_start" binding:"required"`
	WindowEnd   string                `json:"window_end" binding:"required"`
	Item        *RecurringItemPayload `json:"item,omitempty"`
	Debt        *DebtPayload          `json:"debt,omitempty"`
}

// Validate checks the item/debt exclusivity rule.
func (r *ExpandOccurrencesRequest) Validate() error {
	if (r.Item == nil) == (r.Debt == nil) {
		return errors.New("exactly one of item or debt is required")
	}
	return nil
}

// ExpandOccurrencesResponse represents the occurrence expansion response.
type ExpandOccurrencesResponse struct {
	Dates []string `json:"dates"`
}

// ToExpandOccurrencesResponse builds the response from occurrence dates.
func ToExpandOccurrencesResponse(dates []time.Time) ExpandOccurrencesResponse {
	out := ExpandOccurrencesResponse{Dates: make([]string, 0, len(dates))}
	for _, d := range dates {
		out.Dates = append(out.Dates, d.Format(dateLayout))
	}
	return out
}

// parseOptionalID parses an optional UUID, minting a fresh one when absent
// so snapshot payloads can cross-reference lines without persisting anything.
func parseOptionalID(value *string) (uuid.UUID, error) {
	if value == nil || *value == "" {
		return uuid.New(), nil
	}
	return uuid.Parse(*value)
}
