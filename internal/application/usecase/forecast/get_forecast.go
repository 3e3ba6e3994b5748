// Package forecast contains the paycheck allocation use cases.
package forecast

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budget-engine/backend/internal/application/adapter"
	"github.com/budget-engine/backend/internal/application/usecase/paycheck"
	"github.com/budget-engine/backend/internal/domain/entity"
	domainerror "github.com/budget-engine/backend/internal/domain/error"
)

// GetForecastInput represents the input for retrieving a user's forecast.
type GetForecastInput struct {
	UserID        uuid.UUID
	ReferenceDate time.Time
}

// GetForecastOutput represents the output of retrieving a user's forecast.
type GetForecastOutput struct {
	Breakdowns []entity.PaycheckBreakdown
	Warnings   []string
	FromCache  bool
}

// GetForecastUseCase loads a user's persisted definitions, builds their
// paycheck periods, and computes per-period breakdowns, consulting the
// breakdown cache first. Cache failures degrade to a fresh computation.
type GetForecastUseCase struct {
	items        adapter.RecurringItemRepository
	debts        adapter.DebtRepository
	budgets      adapter.VariableExpenseRepository
	actualSpend  adapter.ActualSpendRepository
	goals        adapter.GoalRepository
	sinkingFunds adapter.SinkingFundRepository
	preferences  adapter.PreferencesRepository
	cache        adapter.BreakdownCache
	buildPeriods *paycheck.BuildPeriodsUseCase
	compute      *ComputeBreakdownsUseCase
}

// NewGetForecastUseCase creates a new GetForecastUseCase instance.
func NewGetForecastUseCase(
	items adapter.RecurringItemRepository,
	debts adapter.DebtRepository,
	budgets adapter.VariableExpenseRepository,
	actualSpend adapter.ActualSpendRepository,
	goals adapter.GoalRepository,
	sinkingFunds adapter.SinkingFundRepository,
	preferences adapter.PreferencesRepository,
	cache adapter.BreakdownCache,
	buildPeriods *paycheck.BuildPeriodsUseCase,
	compute *ComputeBreakdownsUseCase,
) *GetForecastUseCase {
	return &GetForecastUseCase{
		items:        items,
		debts:        debts,
		budgets:      budgets,
		actualSpend:  actualSpend,
		goals:        goals,
		sinkingFunds: sinkingFunds,
		preferences:  preferences,
		cache:        cache,
		buildPeriods: buildPeriods,
		compute:      compute,
	}
}

// Execute retrieves the forecast for one user.
func (uc *GetForecastUseCase) Execute(ctx context.Context, input GetForecastInput) (*GetForecastOutput, error) {
	if input.ReferenceDate.IsZero() {
		return nil, domainerror.NewForecastError(
			domainerror.ErrCodeMissingReferenceDate,
			"reference_date is required",
			domainerror.ErrMissingReferenceDate,
		)
	}

	if cached, err := uc.cache.Get(ctx, input.UserID, input.ReferenceDate); err != nil {
		slog.Warn("breakdown cache read failed, computing fresh",
			"user_id", input.UserID,
			"error", err,
		)
	} else if cached != nil {
		return &GetForecastOutput{Breakdowns: cached, FromCache: true}, nil
	}

	items, err := uc.items.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	debts, err := uc.debts.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	budgets, err := uc.budgets.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	spend, err := uc.actualSpend.FindByUserAndMonth(ctx, input.UserID, input.ReferenceDate)
	if err != nil {
		return nil, err
	}
	goals, err := uc.goals.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	funds, err := uc.sinkingFunds.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	prefs, err := uc.preferences.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	periods, err := uc.buildPeriods.Execute(ctx, paycheck.BuildPeriodsInput{
		IncomeItems:   items,
		ReferenceDate: input.ReferenceDate,
	})
	if err != nil {
		return nil, err
	}

	computed, err := uc.compute.Execute(ctx, ComputeBreakdownsInput{
		Periods:        periods.Periods,
		RecurringItems: items,
		Debts:          debts,
		Budgets:        budgets,
		ActualSpend:    spend,
		Goals:          goals,
		SinkingFunds:   funds,
		Preferences:    prefs,
		Now:            input.ReferenceDate,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, input.UserID, input.ReferenceDate, computed.Breakdowns); err != nil {
		slog.Warn("breakdown cache write failed",
			"user_id", input.UserID,
			"error", err,
		)
	}

	return &GetForecastOutput{
		Breakdowns: computed.Breakdowns,
		Warnings:   periods.Warnings,
	}, nil
}
