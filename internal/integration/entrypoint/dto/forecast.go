// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/application/usecase/forecast"
	"github.com/budget-engine/backend/internal/domain/entity"
	domainerror "github.com/budget-engine/backend/internal/domain/error"
)

// BudgetPayload represents one variable-expense budget on the wire.
type BudgetPayload struct {
	ID            *string         `json:"id,omitempty"`
	Name          string          `json:"name" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount" binding:"required"`
}

// ToEntity converts a BudgetPayload to a domain VariableExpense entity.
func (p *BudgetPayload) ToEntity() (*entity.VariableExpense, error) {
	id, err := parseOptionalID(p.ID)
	if err != nil {
		return nil, err
	}
	return &entity.VariableExpense{
		ID:            id,
		Name:          p.Name,
		Category:      p.Category,
		MonthlyAmount: p.MonthlyAmount,
	}, nil
}

// ActualSpendPayload represents current-month spend against one budget.
type ActualSpendPayload struct {
	BudgetID       string          `json:"budget_id" binding:"required,uuid"`
	SpentThisMonth decimal.Decimal `json:"spent_this_month"`
}

// GoalPayload represents one financial goal on the wire.
type GoalPayload struct {
	ID            *string         `json:"id,omitempty"`
	Name          string          `json:"name" binding:"required"`
	TargetAmount  decimal.Decimal `json:"target_amount" binding:"required"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    string          `json:"target_date" binding:"required"`
	CreatedAt     *string         `json:"created_at,omitempty"`
}

// ToEntity converts a GoalPayload to a domain FinancialGoal entity. Goals
// arriving without a creation date in a snapshot are treated as created on
// the reference date.
func (p *GoalPayload) ToEntity(referenceDate string) (*entity.FinancialGoal, error) {
	id, err := parseOptionalID(p.ID)
	if err != nil {
		return nil, err
	}
	targetDate, err := ParseDate("target_date", p.TargetDate)
	if err != nil {
		return nil, err
	}

	createdRaw := referenceDate
	if p.CreatedAt != nil && *p.CreatedAt != "" {
		createdRaw = *p.CreatedAt
	}
	createdAt, err := ParseDate("created_at", createdRaw)
	if err != nil {
		return nil, err
	}

	return &entity.FinancialGoal{
		ID:            id,
		Name:          p.Name,
		TargetAmount:  p.TargetAmount,
		CurrentAmount: p.CurrentAmount,
		TargetDate:    targetDate,
		CreatedAt:     createdAt,
	}, nil
}

// SinkingFundPayload represents one sinking fund on the wire.
type SinkingFundPayload struct {
	ID                  *string          `json:"id,omitempty"`
	Name                string           `json:"name" binding:"required"`
	TargetAmount        decimal.Decimal  `json:"target_amount"`
	CurrentAmount       decimal.Decimal  `json:"current_amount"`
	TargetDate          *string          `json:"target_date,omitempty"`
	MonthlyContribution *decimal.Decimal `json:"monthly_contribution,omitempty"`
	CreatedAt           *string          `json:"created_at,omitempty"`
}

// ToEntity converts a SinkingFundPayload to a domain SinkingFund entity.
func (p *SinkingFundPayload) ToEntity(referenceDate string) (*entity.SinkingFund, error) {
	id, err := parseOptionalID(p.ID)
	if err != nil {
		return nil, err
	}
	targetDate, err := ParseOptionalDate("target_date", p.TargetDate)
	if err != nil {
		return nil, err
	}

	createdRaw := referenceDate
	if p.CreatedAt != nil && *p.CreatedAt != "" {
		createdRaw = *p.CreatedAt
	}
	createdAt, err := ParseDate("created_at", createdRaw)
	if err != nil {
		return nil, err
	}

	return &entity.SinkingFund{
		ID:                  id,
		Name:                p.Name,
		TargetAmount:        p.TargetAmount,
		CurrentAmount:       p.CurrentAmount,
		TargetDate:          targetDate,
		MonthlyContribution: p.MonthlyContribution,
		CreatedAt:           createdAt,
	}, nil
}

// ManualOverridePayload represents one override line inside a manual plan.
type ManualOverridePayload struct {
	Kind   string          `json:"kind" binding:"required,oneof=fixed subscription variable debt goal sinking-fund"`
	ItemID string          `json:"item_id" binding:"required,uuid"`
	Amount decimal.Decimal `json:"amount"`
}

// ManualPlanPayload represents one manual allocation plan on the wire.
type ManualPlanPayload struct {
	ID        *string                 `json:"id,omitempty"`
	StartDate string                  `json:"start_date" binding:"required"`
	EndDate   string                  `json:"end_date" binding:"required"`
	Overrides []ManualOverridePayload `json:"overrides"`
}

// PreferencesPayload represents forecast preferences on the wire.
type PreferencesPayload struct {
	Mode        string              `json:"mode" binding:"required,oneof=auto manual"`
	ManualPlans []ManualPlanPayload `json:"manual_plans"`
}

// ToEntity converts a PreferencesPayload to a domain ForecastPreferences
// entity. Snapshot preferences carry no user identity.
func (p *PreferencesPayload) ToEntity() (*entity.ForecastPreferences, error) {
	prefs := &entity.ForecastPreferences{
		Mode: entity.AllocationMode(p.Mode),
	}
	if len(p.ManualPlans) > entity.MaxManualPlans {
		return nil, domainerror.NewForecastError(
			domainerror.ErrCodeTooManyManualPlans,
			fmt.Sprintf("at most %d manual plans are allowed", entity.MaxManualPlans),
			domainerror.ErrTooManyManualPlans,
		)
	}
	for i := range p.ManualPlans {
		plan, err := p.ManualPlans[i].toEntity()
		if err != nil {
			return nil, err
		}
		prefs.ManualPlans = append(prefs.ManualPlans, *plan)
	}
	return prefs, nil
}

func (p *ManualPlanPayload) toEntity() (*entity.ManualPlan, error) {
	id, err := parseOptionalID(p.ID)
	if err != nil {
		return nil, err
	}
	start, err := ParseDate("start_date", p.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate("end_date", p.EndDate)
	if err != nil {
		return nil, err
	}
	plan := &entity.ManualPlan{
		PlanID:    id,
		StartDate: start,
		EndDate:   end,
		Overrides: make(map[entity.OverrideKey]decimal.Decimal, len(p.Overrides)),
	}
	for _, o := range p.Overrides {
		itemID, err := uuid.Parse(o.ItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid override item_id %q: %w", o.ItemID, err)
		}
		plan.Overrides[entity.OverrideKey{Kind: entity.LineKind(o.Kind), ItemID: itemID}] = o.Amount
	}
	return plan, nil
}

// BuildPaycheckPeriodsRequest represents the request body for period building.
type BuildPaycheckPeriodsRequest struct {
	ReferenceDate string                 `json:"reference_date" binding:"required"`
	IncomeItems   []RecurringItemPayload `json:"income_items"`
}

// ComputeBreakdownsRequest represents the request body for a full snapshot
// computation: every definition arrives inline, nothing is persisted.
type ComputeBreakdownsRequest struct {
	ReferenceDate  string                 `json:"reference_date" binding:"required"`
	RecurringItems []RecurringItemPayload `json:"recurring_items"`
	Debts          []DebtPayload          `json:"debts"`
	Budgets        []BudgetPayload        `json:"budgets"`
	ActualSpend    []ActualSpendPayload   `json:"actual_spend"`
	Goals          []GoalPayload          `json:"goals"`
	SinkingFunds   []SinkingFundPayload   `json:"sinking_funds"`
	Preferences    *PreferencesPayload    `json:"preferences,omitempty"`
}

// PaycheckPeriodResponse represents one paycheck period in API responses.
type PaycheckPeriodResponse struct {
	ID               int             `json:"id"`
	PaycheckDate     string          `json:"paycheck_date"`
	PaycheckAmount   decimal.Decimal `json:"paycheck_amount"`
	SourceLabel      string          `json:"source_label"`
	NextPaycheckDate *string         `json:"next_paycheck_date,omitempty"`
	PeriodStart      string          `json:"period_start"`
	PeriodEnd        string          `json:"period_end"`
	Source           string          `json:"source"`
}

// BuildPaycheckPeriodsResponse represents the period-building response.
type BuildPaycheckPeriodsResponse struct {
	Periods  []PaycheckPeriodResponse `json:"periods"`
	Warnings []string                 `json:"warnings,omitempty"`
}

// ToPaycheckPeriodResponse converts a domain period to its API shape.
func ToPaycheckPeriodResponse(p entity.PaycheckPeriod) PaycheckPeriodResponse {
	return PaycheckPeriodResponse{
		ID:               p.ID,
		PaycheckDate:     FormatDate(p.PaycheckDate),
		PaycheckAmount:   p.PaycheckAmount,
		SourceLabel:      p.SourceLabel,
		NextPaycheckDate: FormatOptionalDate(p.NextPaycheckDate),
		PeriodStart:      FormatDate(p.PeriodStart),
		PeriodEnd:        FormatDate(p.PeriodEnd),
		Source:           string(p.Source),
	}
}

// ToBuildPaycheckPeriodsResponse converts domain periods to the API response.
func ToBuildPaycheckPeriodsResponse(periods []entity.PaycheckPeriod, warnings []string) BuildPaycheckPeriodsResponse {
	out := BuildPaycheckPeriodsResponse{
		Periods:  make([]PaycheckPeriodResponse, 0, len(periods)),
		Warnings: warnings,
	}
	for _, p := range periods {
		out.Periods = append(out.Periods, ToPaycheckPeriodResponse(p))
	}
	return out
}

// ObligatedExpenseResponse represents one obligated expense line.
type ObligatedExpenseResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"due_date"`
	Kind    string          `json:"kind"`
	Source  string          `json:"source"`
}

// VariableAllocationResponse represents one variable-budget allocation line.
type VariableAllocationResponse struct {
	BudgetID        string          `json:"budget_id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	SuggestedAmount decimal.Decimal `json:"suggested_amount"`
	ProratedAmount  decimal.Decimal `json:"prorated_amount"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	ActualSpent     decimal.Decimal `json:"actual_spent"`
	IsProportional  bool            `json:"is_proportional"`
}

// GoalAllocationResponse represents one goal allocation line.
type GoalAllocationResponse struct {
	GoalID          string          `json:"goal_id"`
	Name            string          `json:"name"`
	SuggestedAmount decimal.Decimal `json:"suggested_amount"`
	MonthlyTarget   decimal.Decimal `json:"monthly_target"`
	Urgent          bool            `json:"urgent"`
}

// SinkingFundAllocationResponse represents one sinking-fund allocation line.
type SinkingFundAllocationResponse struct {
	FundID          string          `json:"fund_id"`
	Name            string          `json:"name"`
	SuggestedAmount decimal.Decimal `json:"suggested_amount"`
	MonthlyFigure   decimal.Decimal `json:"monthly_figure"`
}

// CarryoverResponse represents the carryover rolling out of a period.
type CarryoverResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason,omitempty"`
}

// AllocationResponse represents a period's full allocation.
type AllocationResponse struct {
	VariableLines    []VariableAllocationResponse    `json:"variable_lines"`
	GoalLines        []GoalAllocationResponse        `json:"goal_lines"`
	SinkingFundLines []SinkingFundAllocationResponse `json:"sinking_fund_lines"`
	Carryover        CarryoverResponse               `json:"carryover"`
}

// BreakdownResponse represents one per-period breakdown.
type BreakdownResponse struct {
	Period                  PaycheckPeriodResponse     `json:"period"`
	ObligatedExpenses       []ObligatedExpenseResponse `json:"obligated_expenses"`
	ObligatedTotal          decimal.Decimal            `json:"obligated_total"`
	TotalAvailable          decimal.Decimal            `json:"total_available"`
	RemainingAfterObligated decimal.Decimal            `json:"remaining_after_obligated"`
	Allocation              AllocationResponse         `json:"allocation"`
	IsDeficit               bool                       `json:"is_deficit"`
	DeficitAmount           decimal.Decimal            `json:"deficit_amount"`
	DeficitSeverity         string                     `json:"deficit_severity,omitempty"`
	Guidance                string                     `json:"guidance,omitempty"`
	Warnings                []string                   `json:"warnings,omitempty"`
	HealthScore             int                        `json:"health_score"`
	Insights                []string                   `json:"insights,omitempty"`
}

// ForecastResponse represents the full forecast response.
type ForecastResponse struct {
	Breakdowns []BreakdownResponse `json:"breakdowns"`
	Warnings   []string            `json:"warnings,omitempty"`
	FromCache  bool                `json:"from_cache"`
}

// ToBreakdownResponse converts a domain breakdown to its API shape.
func ToBreakdownResponse(b entity.PaycheckBreakdown) BreakdownResponse {
	out := BreakdownResponse{
		Period:                  ToPaycheckPeriodResponse(b.Period),
		ObligatedExpenses:       make([]ObligatedExpenseResponse, 0, len(b.ObligatedExpenses)),
		ObligatedTotal:          b.ObligatedTotal,
		TotalAvailable:          b.TotalAvailable,
		RemainingAfterObligated: b.RemainingAfterObligated,
		Allocation:              toAllocationResponse(b.Allocation),
		IsDeficit:               b.IsDeficit,
		DeficitAmount:           b.DeficitAmount,
		DeficitSeverity:         string(b.DeficitSeverity),
		Guidance:                b.Guidance,
		Warnings:                b.Warnings,
		HealthScore:             b.HealthScore,
		Insights:                b.Insights,
	}
	for _, e := range b.ObligatedExpenses {
		out.ObligatedExpenses = append(out.ObligatedExpenses, ObligatedExpenseResponse{
			ID:      e.ID.String(),
			Name:    e.Name,
			Amount:  e.Amount,
			DueDate: FormatDate(e.DueDate),
			Kind:    string(e.Kind),
			Source:  string(e.Source),
		})
	}
	return out
}

// ToForecastResponse converts computed breakdowns to the API response.
func ToForecastResponse(breakdowns []entity.PaycheckBreakdown, warnings []string, fromCache bool) ForecastResponse {
	out := ForecastResponse{
		Breakdowns: make([]BreakdownResponse, 0, len(breakdowns)),
		Warnings:   warnings,
		FromCache:  fromCache,
	}
	for _, b := range breakdowns {
		out.Breakdowns = append(out.Breakdowns, ToBreakdownResponse(b))
	}
	return out
}

func toAllocationResponse(a entity.AllocationResult) AllocationResponse {
	out := AllocationResponse{
		VariableLines:    make([]VariableAllocationResponse, 0, len(a.VariableLines)),
		GoalLines:        make([]GoalAllocationResponse, 0, len(a.GoalLines)),
		SinkingFundLines: make([]SinkingFundAllocationResponse, 0, len(a.SinkingFundLines)),
		Carryover: CarryoverResponse{
			Amount: a.Carryover.Amount,
			Reason: a.Carryover.Reason,
		},
	}
	for _, l := range a.VariableLines {
		out.VariableLines = append(out.VariableLines, VariableAllocationResponse{
			BudgetID:        l.BudgetID.String(),
			Name:            l.Name,
			Category:        l.Category,
			SuggestedAmount: l.SuggestedAmount,
			ProratedAmount:  l.ProratedAmount,
			RemainingBudget: l.RemainingBudget,
			ActualSpent:     l.ActualSpent,
			IsProportional:  l.IsProportional,
		})
	}
	for _, l := range a.GoalLines {
		out.GoalLines = append(out.GoalLines, GoalAllocationResponse{
			GoalID:          l.GoalID.String(),
			Name:            l.Name,
			SuggestedAmount: l.SuggestedAmount,
			MonthlyTarget:   l.MonthlyTarget,
			Urgent:          l.Urgent,
		})
	}
	for _, l := range a.SinkingFundLines {
		out.SinkingFundLines = append(out.SinkingFundLines, SinkingFundAllocationResponse{
			FundID:          l.FundID.String(),
			Name:            l.Name,
			SuggestedAmount: l.SuggestedAmount,
			MonthlyFigure:   l.MonthlyFigure,
		})
	}
	return out
}

// ToComputeInput assembles the engine input from a snapshot request. Periods
// are not part of the snapshot; the caller builds them from the income items
// among the converted recurring definitions.
func (r *ComputeBreakdownsRequest) ToComputeInput() (forecast.ComputeBreakdownsInput, error) {
	input := forecast.ComputeBreakdownsInput{}

	now, err := ParseDate("reference_date", r.ReferenceDate)
	if err != nil {
		return input, err
	}
	input.Now = now

	for i := range r.RecurringItems {
		item, err := r.RecurringItems[i].ToEntity()
		if err != nil {
			return input, err
		}
		input.RecurringItems = append(input.RecurringItems, item)
	}
	for i := range r.Debts {
		debt, err := r.Debts[i].ToEntity()
		if err != nil {
			return input, err
		}
		input.Debts = append(input.Debts, debt)
	}
	for i := range r.Budgets {
		budget, err := r.Budgets[i].ToEntity()
		if err != nil {
			return input, err
		}
		input.Budgets = append(input.Budgets, budget)
	}
	for i := range r.ActualSpend {
		budgetID, err := uuid.Parse(r.ActualSpend[i].BudgetID)
		if err != nil {
			return input, fmt.Errorf("invalid actual_spend budget_id %q: %w", r.ActualSpend[i].BudgetID, err)
		}
		input.ActualSpend = append(input.ActualSpend, entity.ActualSpend{
			CategoryID:     budgetID,
			SpentThisMonth: r.ActualSpend[i].SpentThisMonth,
		})
	}
	for i := range r.Goals {
		goal, err := r.Goals[i].ToEntity(r.ReferenceDate)
		if err != nil {
			return input, err
		}
		input.Goals = append(input.Goals, goal)
	}
	for i := range r.SinkingFunds {
		fund, err := r.SinkingFunds[i].ToEntity(r.ReferenceDate)
		if err != nil {
			return input, err
		}
		input.SinkingFunds = append(input.SinkingFunds, fund)
	}
	if r.Preferences != nil {
		prefs, err := r.Preferences.ToEntity()
		if err != nil {
			return input, err
		}
		input.Preferences = prefs
	}
	return input, nil
}
