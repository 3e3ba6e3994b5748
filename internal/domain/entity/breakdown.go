// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineKind is the closed set of line-item kinds that appear in breakdowns
// and manual override maps. Every consumer switches exhaustively on it.
type LineKind string

const (
	LineKindFixed        LineKind = "fixed"
	LineKindSubscription LineKind = "subscription"
	LineKindVariable     LineKind = "variable"
	LineKindDebt         LineKind = "debt"
	LineKindGoal         LineKind = "goal"
	LineKindSinkingFund  LineKind = "sinking-fund"
)

// ExpenseSource distinguishes obligated lines expanded from recurring
// definitions from those expanded from debts.
type ExpenseSource string

const (
	ExpenseSourceRecurring ExpenseSource = "recurring"
	ExpenseSourceDebt      ExpenseSource = "debt"
)

// DeficitSeverity buckets a period's shortfall for guidance text.
type DeficitSeverity string

const (
	DeficitSeverityNone     DeficitSeverity = ""
	DeficitSeverityMinor    DeficitSeverity = "minor"    // under $100
	DeficitSeverityModerate DeficitSeverity = "moderate" // under $500
	DeficitSeveritySevere   DeficitSeverity = "severe"
)

// ObligatedExpense is one fixed-expense, subscription, or debt-minimum
// payment due within a period. Ephemeral, scoped to one period.
type ObligatedExpense struct {
	ID      uuid.UUID
	Name    string
	Amount  decimal.Decimal
	DueDate time.Time
	Kind    LineKind
	Source  ExpenseSource
}

// VariableAllocation is the allocation line for one variable-expense budget.
type VariableAllocation struct {
	BudgetID        uuid.UUID
	Name            string
	Category        string
	SuggestedAmount decimal.Decimal
	ProratedAmount  decimal.Decimal
	RemainingBudget decimal.Decimal
	ActualSpent     decimal.Decimal
	IsProportional  bool // true when the line received less than its full target
}

// GoalAllocation is the allocation line for one savings goal.
type GoalAllocation struct {
	GoalID          uuid.UUID
	Name            string
	SuggestedAmount decimal.Decimal
	MonthlyTarget   decimal.Decimal
	Urgent          bool
}

// SinkingFundAllocation is the allocation line for one sinking fund.
type SinkingFundAllocation struct {
	FundID          uuid.UUID
	Name            string
	SuggestedAmount decimal.Decimal
	MonthlyFigure   decimal.Decimal
}

// Carryover is the amount rolling forward out of a period's allocation,
// with a human-readable reason.
type Carryover struct {
	Amount decimal.Decimal
	Reason string
}

// AllocationResult is the outcome of allocating a period's surplus across
// budgets, goals and sinking funds.
type AllocationResult struct {
	VariableLines    []VariableAllocation
	GoalLines        []GoalAllocation
	SinkingFundLines []SinkingFundAllocation
	Carryover        Carryover
}

// AllocatedTotal returns the sum of every suggested amount across all lines.
func (r *AllocationResult) AllocatedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.VariableLines {
		total = total.Add(l.SuggestedAmount)
	}
	for _, l := range r.GoalLines {
		total = total.Add(l.SuggestedAmount)
	}
	for _, l := range r.SinkingFundLines {
		total = total.Add(l.SuggestedAmount)
	}
	return total
}

// PaycheckBreakdown is the top-level per-period output handed to the
// presentation layer.
type PaycheckBreakdown struct {
	Period                  PaycheckPeriod
	ObligatedExpenses       []ObligatedExpense
	ObligatedTotal          decimal.Decimal
	TotalAvailable          decimal.Decimal
	RemainingAfterObligated decimal.Decimal
	Allocation              AllocationResult
	IsDeficit               bool
	DeficitAmount           decimal.Decimal
	DeficitSeverity         DeficitSeverity
	Guidance                string
	Warnings                []string
	HealthScore             int
	Insights                []string
}
