// Package forecast contains the paycheck allocation use cases.
package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/domain/entity"
	domainerror "github.com/budget-engine/backend/internal/domain/error"
)

// Carryover reason fragments.
const (
	reasonReserved    = "reserved for upcoming deficits"
	reasonUnallocated = "unallocated, choose how to use it"
)

// AllocationInput represents the input for allocating one period's surplus.
type AllocationInput struct {
	// Available is the pool left after obligated expenses. Never negative;
	// deficit periods are routed to a separate branch by the caller.
	Available decimal.Decimal
	// Reserved is subtracted from the pool up front and rolled forward for
	// known future shortfalls.
	Reserved     decimal.Decimal
	Budgets      []*entity.VariableExpense
	ActualSpend  []entity.ActualSpend
	Goals        []*entity.FinancialGoal
	SinkingFunds []*entity.SinkingFund
	PeriodStart  time.Time
	PeriodEnd    time.Time
	// Now anchors "current month" for actual-spend matching and goal urgency.
	Now time.Time
}

// AllocationEngine distributes a single depleting pool across variable
// budgets, goals, and sinking funds in strict priority order: essential
// budgets, urgent goals, remaining budgets, remaining goals, sinking funds.
type AllocationEngine struct{}

// NewAllocationEngine creates a new AllocationEngine instance.
func NewAllocationEngine() *AllocationEngine {
	return &AllocationEngine{}
}

// Allocate produces the period's allocation. Conservation invariant: the sum
// of every suggested amount plus the carryover equals Available exactly.
func (e *AllocationEngine) Allocate(input AllocationInput) (*entity.AllocationResult, error) {
	if input.Available.IsNegative() {
		return nil, domainerror.NewForecastError(
			domainerror.ErrCodeNegativeAvailable,
			"allocation requires a non-negative pool",
			domainerror.ErrNegativeAvailable,
		)
	}
	if input.Reserved.GreaterThan(input.Available) {
		return nil, domainerror.NewForecastError(
			domainerror.ErrCodeReservedExceedsAvailable,
			"reserved amount exceeds available pool",
			domainerror.ErrReservedExceedsAvailable,
		)
	}

	result := &entity.AllocationResult{
		VariableLines:    e.variableSkeleton(input),
		GoalLines:        e.goalSkeleton(input),
		SinkingFundLines: e.fundSkeleton(input),
	}

	pool := input.Available.Sub(input.Reserved)
	if pool.Sign() <= 0 {
		result.Carryover = entity.Carryover{Amount: input.Reserved, Reason: reasonReserved}
		return result, nil
	}

	// Pass (a): essential budgets with remaining room.
	for i := range result.VariableLines {
		line := &result.VariableLines[i]
		if !essential(input.Budgets[i]) || !line.RemainingBudget.IsPositive() {
			continue
		}
		pool = fundVariable(line, pool)
	}

	// Pass (b): goals due within six months.
	for i := range result.GoalLines {
		if !result.GoalLines[i].Urgent {
			continue
		}
		pool = fundGoal(&result.GoalLines[i], input.PeriodStart, input.PeriodEnd, pool)
	}

	// Pass (c): remaining budgets with remaining room.
	for i := range result.VariableLines {
		line := &result.VariableLines[i]
		if essential(input.Budgets[i]) || !line.RemainingBudget.IsPositive() {
			continue
		}
		pool = fundVariable(line, pool)
	}

	// Pass (d): remaining goals.
	for i := range result.GoalLines {
		if result.GoalLines[i].Urgent {
			continue
		}
		pool = fundGoal(&result.GoalLines[i], input.PeriodStart, input.PeriodEnd, pool)
	}

	// Pass (e): sinking funds.
	for i := range result.SinkingFundLines {
		pool = fundSinkingFund(&result.SinkingFundLines[i], input.PeriodStart, input.PeriodEnd, pool)
	}

	result.Carryover = carryoverFor(input.Reserved, pool)
	return result, nil
}

// variableSkeleton builds zero-allocation lines with remaining budget and
// prorated targets resolved. Actual spend is applied only when the period
// overlaps the current calendar month; history never projects onto future
// months.
func (e *AllocationEngine) variableSkeleton(input AllocationInput) []entity.VariableAllocation {
	period := entity.PaycheckPeriod{PeriodStart: input.PeriodStart, PeriodEnd: input.PeriodEnd}
	currentMonth := period.OverlapsMonth(input.Now)

	spent := make(map[string]decimal.Decimal, len(input.ActualSpend))
	for _, s := range input.ActualSpend {
		spent[s.CategoryID.String()] = s.SpentThisMonth
	}

	lines := make([]entity.VariableAllocation, 0, len(input.Budgets))
	for _, b := range input.Budgets {
		actual := decimal.Zero
		if currentMonth {
			if amt, ok := spent[b.ID.String()]; ok {
				actual = amt
			}
		}

		remaining := b.MonthlyAmount.Sub(actual)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		lines = append(lines, entity.VariableAllocation{
			BudgetID:        b.ID,
			Name:            b.Name,
			Category:        b.Category,
			SuggestedAmount: decimal.Zero,
			ProratedAmount:  ProratedMonthlyAmount(b.MonthlyAmount, input.PeriodStart, input.PeriodEnd),
			RemainingBudget: remaining,
			ActualSpent:     actual,
		})
	}
	return lines
}

func (e *AllocationEngine) goalSkeleton(input AllocationInput) []entity.GoalAllocation {
	lines := make([]entity.GoalAllocation, 0, len(input.Goals))
	for _, g := range input.Goals {
		lines = append(lines, entity.GoalAllocation{
			GoalID:          g.ID,
			Name:            g.Name,
			SuggestedAmount: decimal.Zero,
			MonthlyTarget:   g.MonthlyTarget(),
			Urgent:          g.IsUrgent(input.Now),
		})
	}
	return lines
}

func (e *AllocationEngine) fundSkeleton(input AllocationInput) []entity.SinkingFundAllocation {
	lines := make([]entity.SinkingFundAllocation, 0, len(input.SinkingFunds))
	for _, f := range input.SinkingFunds {
		lines = append(lines, entity.SinkingFundAllocation{
			FundID:          f.ID,
			Name:            f.Name,
			SuggestedAmount: decimal.Zero,
			MonthlyFigure:   f.MonthlyFigure(),
		})
	}
	return lines
}

// fundVariable caps the line at min(remaining budget, prorated target,
// pool) and returns the depleted pool.
func fundVariable(line *entity.VariableAllocation, pool decimal.Decimal) decimal.Decimal {
	target := decimal.Min(line.RemainingBudget, line.ProratedAmount)
	amount := decimal.Min(target, pool)
	if amount.Sign() <= 0 {
		return pool
	}
	line.SuggestedAmount = amount
	line.IsProportional = amount.LessThan(target)
	return pool.Sub(amount)
}

// fundGoal caps the line at min(prorated monthly target, pool).
func fundGoal(line *entity.GoalAllocation, periodStart, periodEnd time.Time, pool decimal.Decimal) decimal.Decimal {
	target := ProratedMonthlyAmount(line.MonthlyTarget, periodStart, periodEnd)
	amount := decimal.Min(target, pool)
	if amount.Sign() <= 0 {
		return pool
	}
	line.SuggestedAmount = amount
	return pool.Sub(amount)
}

func fundSinkingFund(line *entity.SinkingFundAllocation, periodStart, periodEnd time.Time, pool decimal.Decimal) decimal.Decimal {
	target := ProratedMonthlyAmount(line.MonthlyFigure, periodStart, periodEnd)
	amount := decimal.Min(target, pool)
	if amount.Sign() <= 0 {
		return pool
	}
	line.SuggestedAmount = amount
	return pool.Sub(amount)
}

func essential(b *entity.VariableExpense) bool {
	return b.IsEssential()
}

// carryoverFor combines the up-front reservation and any leftover pool into
// a single carryover with a descriptive reason.
func carryoverFor(reserved, leftover decimal.Decimal) entity.Carryover {
	amount := reserved.Add(leftover)
	switch {
	case reserved.IsPositive() && leftover.IsPositive():
		return entity.Carryover{Amount: amount, Reason: reasonReserved + "; " + reasonUnallocated}
	case reserved.IsPositive():
		return entity.Carryover{Amount: amount, Reason: reasonReserved}
	case leftover.IsPositive():
		return entity.Carryover{Amount: amount, Reason: reasonUnallocated}
	default:
		return entity.Carryover{Amount: amount}
	}
}
