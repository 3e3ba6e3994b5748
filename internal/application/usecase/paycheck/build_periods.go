// Package paycheck contains paycheck event generation and period building
// use cases.
package paycheck

import (
	"context"
	"time"

	"github.com/budget-engine/backend/internal/domain/entity"
	domainerror "github.com/budget-engine/backend/internal/domain/error"
)

// BuildPeriodsInput represents the input for building paycheck periods.
type BuildPeriodsInput struct {
	IncomeItems   []*entity.RecurringItem
	ReferenceDate time.Time
}

// BuildPeriodsOutput represents the output of building paycheck periods.
type BuildPeriodsOutput struct {
	Periods  []entity.PaycheckPeriod
	Warnings []string
}

// BuildPeriodsUseCase projects income items into a chronological,
// non-overlapping list of paycheck periods over the configured horizon.
type BuildPeriodsUseCase struct {
	generator     *EventGenerator
	horizonMonths int
	lookBackDays  int
}

// NewBuildPeriodsUseCase creates a new BuildPeriodsUseCase instance.
func NewBuildPeriodsUseCase(generator *EventGenerator, horizonMonths, lookBackDays int) *BuildPeriodsUseCase {
	return &BuildPeriodsUseCase{
		generator:     generator,
		horizonMonths: horizonMonths,
		lookBackDays:  lookBackDays,
	}
}

// Execute generates paycheck events over the projection window and partitions
// them into periods.
func (uc *BuildPeriodsUseCase) Execute(ctx context.Context, input BuildPeriodsInput) (*BuildPeriodsOutput, error) {
	if input.ReferenceDate.IsZero() {
		return nil, domainerror.NewForecastError(
			domainerror.ErrCodeMissingReferenceDate,
			"reference_date is required",
			domainerror.ErrMissingReferenceDate,
		)
	}

	windowStart := input.ReferenceDate.AddDate(0, 0, -uc.lookBackDays)
	windowEnd := input.ReferenceDate.AddDate(0, uc.horizonMonths, 0)

	events, warnings := uc.generator.Generate(input.IncomeItems, input.ReferenceDate, windowStart, windowEnd)

	return &BuildPeriodsOutput{
		Periods:  BuildPeriods(events),
		Warnings: warnings,
	}, nil
}

// BuildPeriods merges same-day events and partitions the timeline into
// periods, each running from one paycheck to the day before the next. The
// last period gets a synthetic one-month window. The result is strictly
// chronological, non-overlapping, and gapless.
func BuildPeriods(events []entity.PaycheckEvent) []entity.PaycheckPeriod {
	merged := mergeSameDay(events)

	periods := make([]entity.PaycheckPeriod, 0, len(merged))
	for i, ev := range merged {
		period := entity.PaycheckPeriod{
			ID:             i,
			PaycheckDate:   ev.Date,
			PaycheckAmount: ev.Amount,
			SourceLabel:    ev.Source,
			PeriodStart:    ev.Date,
			Source:         entity.PeriodSourceActual,
		}
		if ev.Estimated {
			period.Source = entity.PeriodSourceEstimated
		}

		if i+1 < len(merged) {
			next := merged[i+1].Date
			period.NextPaycheckDate = &next
			period.PeriodEnd = next.AddDate(0, 0, -1)
		} else {
			period.PeriodEnd = ev.Date.AddDate(0, 1, -1)
		}

		periods = append(periods, period)
	}
	return periods
}

// mergeSameDay collapses events sharing a calendar date into one combined
// event: amounts summed, source labels concatenated. Multiple paychecks
// landing the same day are one economic event.
func mergeSameDay(events []entity.PaycheckEvent) []entity.PaycheckEvent {
	merged := make([]entity.PaycheckEvent, 0, len(events))
	for _, ev := range events {
		if n := len(merged); n > 0 && merged[n-1].Date.Equal(ev.Date) {
			prev := &merged[n-1]
			prev.Amount = prev.Amount.Add(ev.Amount)
			prev.Source = prev.Source + " + " + ev.Source
			prev.Estimated = prev.Estimated && ev.Estimated
			continue
		}
		merged = append(merged, ev)
	}
	return merged
}
