// Package forecast contains the paycheck allocation use cases.
package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/domain/entity"
	domainerror "github.com/budget-engine/backend/internal/domain/error"
)

// Deficit severity thresholds.
var (
	minorDeficitLimit    = decimal.NewFromInt(100)
	moderateDeficitLimit = decimal.NewFromInt(500)
)

// ComputeBreakdownsInput represents the input for one computation pass.
// Each pass is a pure function of this snapshot plus Now; nothing is
// mutated in place.
type ComputeBreakdownsInput struct {
	Periods        []entity.PaycheckPeriod
	RecurringItems []*entity.RecurringItem
	Debts          []*entity.Debt
	Budgets        []*entity.VariableExpense
	ActualSpend    []entity.ActualSpend
	Goals          []*entity.FinancialGoal
	SinkingFunds   []*entity.SinkingFund
	Preferences    *entity.ForecastPreferences
	Now            time.Time
}

// ComputeBreakdownsOutput represents the output of one computation pass.
type ComputeBreakdownsOutput struct {
	Breakdowns []entity.PaycheckBreakdown
	Health     *HealthReport
}

// periodFacts caches a period's expanded obligations so the look-ahead scan
// and the propagation fold read the same numbers.
type periodFacts struct {
	lines    []entity.ObligatedExpense
	total    decimal.Decimal
	warnings []string
}

// carryState is the value threaded through the propagation fold.
type carryState struct {
	balance decimal.Decimal
}

// ComputeBreakdownsUseCase walks periods in chronological order, threading a
// carryover balance from each period's allocation into the next period's
// available funds, with a look-ahead deficit scan reserving part of current
// surpluses for known future shortfalls.
type ComputeBreakdownsUseCase struct {
	matcher          *ExpenseMatcher
	engine           *AllocationEngine
	analyzer         *HealthAnalyzer
	lookAheadPeriods int
}

// NewComputeBreakdownsUseCase creates a new ComputeBreakdownsUseCase instance.
func NewComputeBreakdownsUseCase(
	matcher *ExpenseMatcher,
	engine *AllocationEngine,
	analyzer *HealthAnalyzer,
	lookAheadPeriods int,
) *ComputeBreakdownsUseCase {
	return &ComputeBreakdownsUseCase{
		matcher:          matcher,
		engine:           engine,
		analyzer:         analyzer,
		lookAheadPeriods: lookAheadPeriods,
	}
}

// Execute produces one PaycheckBreakdown per period.
func (uc *ComputeBreakdownsUseCase) Execute(
	ctx context.Context,
	input ComputeBreakdownsInput,
) (*ComputeBreakdownsOutput, error) {
	if input.Now.IsZero() {
		return nil, domainerror.NewForecastError(
			domainerror.ErrCodeMissingReferenceDate,
			"now is required",
			domainerror.ErrMissingReferenceDate,
		)
	}

	periods := make([]entity.PaycheckPeriod, len(input.Periods))
	copy(periods, input.Periods)
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].PaycheckDate.Before(periods[j].PaycheckDate)
	})

	facts := make([]periodFacts, len(periods))
	for i, p := range periods {
		lines, total, warnings := uc.matcher.Match(p, input.RecurringItems, input.Debts)
		facts[i] = periodFacts{lines: lines, total: total, warnings: warnings}
	}

	deficits := scanDeficits(periods, facts)

	health := uc.analyzer.Analyze(HealthInput{
		Periods:        periods,
		RecurringItems: input.RecurringItems,
		Debts:          input.Debts,
		Budgets:        input.Budgets,
		Goals:          input.Goals,
		Now:            input.Now,
	})

	state := carryState{balance: decimal.Zero}
	breakdowns := make([]entity.PaycheckBreakdown, 0, len(periods))
	for i := range periods {
		var breakdown entity.PaycheckBreakdown
		state, breakdown = uc.propagateStep(state, periods[i], facts[i], i, deficits, input, health)
		breakdowns = append(breakdowns, breakdown)
	}

	return &ComputeBreakdownsOutput{Breakdowns: breakdowns, Health: health}, nil
}

// propagateStep is one step of the propagation fold:
// (state, period) -> (state, breakdown).
func (uc *ComputeBreakdownsUseCase) propagateStep(
	state carryState,
	period entity.PaycheckPeriod,
	facts periodFacts,
	index int,
	deficits map[int]decimal.Decimal,
	input ComputeBreakdownsInput,
	health *HealthReport,
) (carryState, entity.PaycheckBreakdown) {
	totalAvailable := period.PaycheckAmount.Add(state.balance)
	remaining := totalAvailable.Sub(facts.total)

	breakdown := entity.PaycheckBreakdown{
		Period:                  period,
		ObligatedExpenses:       facts.lines,
		ObligatedTotal:          facts.total,
		TotalAvailable:          totalAvailable,
		RemainingAfterObligated: remaining,
		Warnings:                append([]string{}, facts.warnings...),
		HealthScore:             health.Score,
		Insights:                health.Recommendations,
	}

	// The scan and the fold compute deficit state independently; a sign
	// disagreement is an internal inconsistency worth surfacing.
	_, scanDeficit := deficits[index]
	if scanDeficit != remaining.IsNegative() {
		slog.Error("deficit scan disagrees with propagation loop",
			"period_index", index,
			"scan_deficit", scanDeficit,
			"remaining", remaining.String(),
		)
		breakdown.Warnings = append(breakdown.Warnings,
			"internal: look-ahead deficit scan disagreed with propagation; allocations remain valid")
	}

	if remaining.IsNegative() {
		// Deficits are a first-class output, not an error, and propagate
		// forward in full.
		breakdown.IsDeficit = true
		breakdown.DeficitAmount = remaining.Neg()
		breakdown.DeficitSeverity, breakdown.Guidance = deficitGuidance(breakdown.DeficitAmount)
		breakdown.Allocation = entity.AllocationResult{}
		return carryState{balance: remaining}, breakdown
	}

	reserved := upcomingDeficits(index, uc.lookAheadPeriods, deficits)
	if reserved.GreaterThan(remaining) {
		reserved = remaining
	}

	if plan := input.Preferences.PlanFor(period.PeriodStart, period.PeriodEnd); plan != nil {
		breakdown.Allocation = uc.applyManualPlan(plan, remaining, reserved, input)
	} else {
		alloc, err := uc.engine.Allocate(AllocationInput{
			Available:    remaining,
			Reserved:     reserved,
			Budgets:      input.Budgets,
			ActualSpend:  input.ActualSpend,
			Goals:        input.Goals,
			SinkingFunds: input.SinkingFunds,
			PeriodStart:  period.PeriodStart,
			PeriodEnd:    period.PeriodEnd,
			Now:          input.Now,
		})
		if err != nil {
			// Deficit gating above makes this unreachable for valid input;
			// degrade to a full carryover rather than dropping the period.
			breakdown.Warnings = append(breakdown.Warnings, fmt.Sprintf("allocation failed: %v", err))
			breakdown.Allocation = entity.AllocationResult{
				Carryover: entity.Carryover{Amount: remaining, Reason: reasonUnallocated},
			}
			return carryState{balance: remaining}, breakdown
		}
		breakdown.Allocation = *alloc
	}

	// Only reserved or unallocated money rolls forward, never money that
	// was suggested for spending.
	return carryState{balance: breakdown.Allocation.Carryover.Amount}, breakdown
}

// applyManualPlan builds the allocation from orchestrator-resolved override
// amounts instead of the priority engine. Overrides deplete the same single
// pool and are capped by what is left of it.
func (uc *ComputeBreakdownsUseCase) applyManualPlan(
	plan *entity.ManualPlan,
	available decimal.Decimal,
	reserved decimal.Decimal,
	input ComputeBreakdownsInput,
) entity.AllocationResult {
	result := entity.AllocationResult{}
	pool := available.Sub(reserved)

	for _, b := range input.Budgets {
		amount := decimal.Zero
		if override, ok := plan.Overrides[entity.OverrideKey{Kind: entity.LineKindVariable, ItemID: b.ID}]; ok {
			amount = decimal.Min(override, pool)
			pool = pool.Sub(amount)
		}
		result.VariableLines = append(result.VariableLines, entity.VariableAllocation{
			BudgetID:        b.ID,
			Name:            b.Name,
			Category:        b.Category,
			SuggestedAmount: amount,
		})
	}
	for _, g := range input.Goals {
		amount := decimal.Zero
		if override, ok := plan.Overrides[entity.OverrideKey{Kind: entity.LineKindGoal, ItemID: g.ID}]; ok {
			amount = decimal.Min(override, pool)
			pool = pool.Sub(amount)
		}
		result.GoalLines = append(result.GoalLines, entity.GoalAllocation{
			GoalID:          g.ID,
			Name:            g.Name,
			SuggestedAmount: amount,
			MonthlyTarget:   g.MonthlyTarget(),
		})
	}
	for _, f := range input.SinkingFunds {
		amount := decimal.Zero
		if override, ok := plan.Overrides[entity.OverrideKey{Kind: entity.LineKindSinkingFund, ItemID: f.ID}]; ok {
			amount = decimal.Min(override, pool)
			pool = pool.Sub(amount)
		}
		result.SinkingFundLines = append(result.SinkingFundLines, entity.SinkingFundAllocation{
			FundID:          f.ID,
			Name:            f.Name,
			SuggestedAmount: amount,
			MonthlyFigure:   f.MonthlyFigure(),
		})
	}

	result.Carryover = carryoverFor(reserved, pool)
	return result
}

// scanDeficits walks all periods once, accumulating paycheck minus
// obligations, and records the shortfall magnitude at every index where the
// running balance goes negative.
func scanDeficits(periods []entity.PaycheckPeriod, facts []periodFacts) map[int]decimal.Decimal {
	deficits := make(map[int]decimal.Decimal)
	running := decimal.Zero
	for i := range periods {
		running = running.Add(periods[i].PaycheckAmount).Sub(facts[i].total)
		if running.IsNegative() {
			deficits[i] = running.Neg()
		}
	}
	return deficits
}

// upcomingDeficits sums the recorded shortfalls of the next lookAhead
// periods after index.
func upcomingDeficits(index, lookAhead int, deficits map[int]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for i := index + 1; i <= index+lookAhead; i++ {
		if d, ok := deficits[i]; ok {
			total = total.Add(d)
		}
	}
	return total
}

// deficitGuidance scales guidance text to the shortfall size.
func deficitGuidance(amount decimal.Decimal) (entity.DeficitSeverity, string) {
	switch {
	case amount.LessThan(minorDeficitLimit):
		return entity.DeficitSeverityMinor,
			"This period comes up slightly short. Trimming one or two variable purchases should cover it."
	case amount.LessThan(moderateDeficitLimit):
		return entity.DeficitSeverityModerate,
			"Obligations exceed available funds this period. Consider deferring non-essential spending or moving a due date."
	default:
		return entity.DeficitSeveritySevere,
			"This period has a severe shortfall. Review which obligations can be reduced, split, or rescheduled."
	}
}
