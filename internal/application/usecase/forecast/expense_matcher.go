// Package forecast contains the paycheck allocation use cases.
package forecast

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/application/usecase/schedule"
	"github.com/budget-engine/backend/internal/domain/entity"
)

// ExpenseMatcher expands every obligated definition (fixed expenses,
// subscriptions, debt minimum payments) against a single period's date range.
type ExpenseMatcher struct {
	recurring *schedule.RecurrenceExpander
	debts     *schedule.DebtOccurrenceExpander
}

// NewExpenseMatcher creates a new ExpenseMatcher instance.
func NewExpenseMatcher(recurring *schedule.RecurrenceExpander, debts *schedule.DebtOccurrenceExpander) *ExpenseMatcher {
	return &ExpenseMatcher{
		recurring: recurring,
		debts:     debts,
	}
}

// Match returns the period's obligated expense lines, their total, and any
// per-item warnings. A single definition's expansion failure is annotated
// and excluded rather than aborting the period.
func (m *ExpenseMatcher) Match(
	period entity.PaycheckPeriod,
	items []*entity.RecurringItem,
	debts []*entity.Debt,
) ([]entity.ObligatedExpense, decimal.Decimal, []string) {
	var lines []entity.ObligatedExpense
	var warnings []string

	for _, item := range items {
		if !item.IsObligated() {
			continue
		}

		dates, err := m.recurring.Expand(item, period.PeriodStart, period.PeriodEnd)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("expense %q excluded: %v", item.Name, err))
			continue
		}

		kind := entity.LineKindFixed
		if item.Kind == entity.ItemKindSubscription {
			kind = entity.LineKindSubscription
		}
		for _, d := range dates {
			lines = append(lines, entity.ObligatedExpense{
				ID:      item.ID,
				Name:    item.Name,
				Amount:  item.Amount,
				DueDate: d,
				Kind:    kind,
				Source:  entity.ExpenseSourceRecurring,
			})
		}
	}

	for _, debt := range debts {
		dates, err := m.debts.Expand(debt, period.PeriodStart, period.PeriodEnd)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("debt %q excluded: %v", debt.Name, err))
			continue
		}
		for _, d := range dates {
			lines = append(lines, entity.ObligatedExpense{
				ID:      debt.ID,
				Name:    debt.Name,
				Amount:  debt.MinimumPayment,
				DueDate: d,
				Kind:    entity.LineKindDebt,
				Source:  entity.ExpenseSourceDebt,
			})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].DueDate.Equal(lines[j].DueDate) {
			return lines[i].DueDate.Before(lines[j].DueDate)
		}
		return lines[i].Name < lines[j].Name
	})

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return lines, total, warnings
}
