package calculation

import (
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// scenarioState is what balance conditions are allowed to see
type scenarioState struct {
	balance    decimal.Decimal
	fired      map[string]bool
	lastAmount map[string]decimal.Decimal // income fired under a name in the latest period it earned any
}

func newScenarioState(balance decimal.Decimal) *scenarioState {
	return &scenarioState{
		balance:    balance,
		fired:      make(map[string]bool),
		lastAmount: make(map[string]decimal.Decimal),
	}
}

// with returns a copy of s with a batch of same-period firings applied on top
func (s *scenarioState) with(events []domain.FiredEvent) *scenarioState {
	next := &scenarioState{
		balance:    s.balance,
		fired:      make(map[string]bool, len(s.fired)+len(events)),
		lastAmount: make(map[string]decimal.Decimal, len(s.lastAmount)+len(events)),
	}
	for k, v := range s.fired {
		next.fired[k] = v
	}
	for k, v := range s.lastAmount {
		next.lastAmount[k] = v
	}
	next.apply(events)
	return next
}

// apply records one period worth of firings
func (s *scenarioState) apply(events []domain.FiredEvent) {
	totals := make(map[string]decimal.Decimal)
	for _, e := range events {
		s.balance = s.balance.Add(e.Amount)
		s.fired[e.Name] = true
		// same-named incomes in one period add up; expenses never count as income
		if e.Amount.IsPositive() {
			totals[e.Name] = totals[e.Name].Add(e.Amount)
		}
	}
	for name, total := range totals {
		s.lastAmount[name] = total
	}
}

// conditionHolds evaluates one condition for the month starting at month.
// Balance conditions read state; cashflow conditions only read the calendar.
func conditionHolds(c domain.Condition, month dateutil.LocalDate, state *scenarioState) bool {
	switch c := c.(type) {
	case domain.DateIs:
		return !c.Date.IsZero() && c.Date.MonthIndex() == month.MonthIndex()
	case domain.DateInRange:
		return c.Contains(month)
	case domain.NetWorthAbove:
		return state.balance.GreaterThanOrEqual(c.Amount)
	case domain.EventHappened:
		return state.fired[c.EventName]
	case domain.IncomeAbove:
		amount, ok := state.lastAmount[c.EventName]
		return ok && amount.GreaterThanOrEqual(c.Amount)
	default:
		return false
	}
}

// allHold reports whether every condition of e holds; an event without conditions always fires
func allHold(e domain.ScenarioEvent, month dateutil.LocalDate, state *scenarioState) bool {
	for _, c := range e.UnlockedBy {
		if !conditionHolds(c, month, state) {
			return false
		}
	}
	return true
}
