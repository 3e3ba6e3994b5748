// Package paycheck contains paycheck event generation and period building
// use cases.
package paycheck

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/application/usecase/schedule"
	"github.com/budget-engine/backend/internal/domain/entity"
)

// estimatedSourceLabel marks paycheck events from the synthetic fallback
// series.
const estimatedSourceLabel = "Estimated paycheck"

// estimatedCadenceDays is the cadence of the synthetic series (bi-weekly).
const estimatedCadenceDays = 14

// EventGenerator produces a flat, time-ordered list of paycheck events from
// the user's income items. When no income items exist it falls back to a
// synthetic estimated bi-weekly series so callers always have periods to
// plan against.
type EventGenerator struct {
	expander        *schedule.RecurrenceExpander
	estimatedAmount decimal.Decimal
	periodsForward  int
	periodsBack     int
}

// NewEventGenerator creates a new EventGenerator instance.
func NewEventGenerator(
	expander *schedule.RecurrenceExpander,
	estimatedAmount decimal.Decimal,
	periodsForward int,
	periodsBack int,
) *EventGenerator {
	return &EventGenerator{
		expander:        expander,
		estimatedAmount: estimatedAmount,
		periodsForward:  periodsForward,
		periodsBack:     periodsBack,
	}
}

// Generate expands every income item over [windowStart, windowEnd] and
// returns the merged, date-sorted event list. A single item's expansion
// failure is reported as a warning and excluded; it never aborts the run.
func (g *EventGenerator) Generate(
	items []*entity.RecurringItem,
	referenceDate time.Time,
	windowStart time.Time,
	windowEnd time.Time,
) ([]entity.PaycheckEvent, []string) {
	var warnings []string
	var events []entity.PaycheckEvent

	incomeCount := 0
	for _, item := range items {
		if !item.IsIncome() {
			continue
		}
		incomeCount++

		dates, err := g.expander.Expand(item, windowStart, windowEnd)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("income %q excluded: %v", item.Name, err))
			continue
		}
		for _, d := range dates {
			events = append(events, entity.PaycheckEvent{
				Date:   d,
				Amount: item.Amount,
				Source: item.Name,
			})
		}
	}

	if incomeCount == 0 {
		events = g.estimatedSeries(referenceDate)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].Source < events[j].Source
	})
	return events, warnings
}

// estimatedSeries builds the synthetic bi-weekly series: a small look-back
// window plus N periods forward from the reference date.
func (g *EventGenerator) estimatedSeries(referenceDate time.Time) []entity.PaycheckEvent {
	start := referenceDate.AddDate(0, 0, -g.periodsBack*estimatedCadenceDays)
	count := g.periodsBack + g.periodsForward

	events := make([]entity.PaycheckEvent, 0, count)
	for i := 0; i < count; i++ {
		events = append(events, entity.PaycheckEvent{
			Date:      start.AddDate(0, 0, i*estimatedCadenceDays),
			Amount:    g.estimatedAmount,
			Source:    estimatedSourceLabel,
			Estimated: true,
		})
	}
	return events
}
