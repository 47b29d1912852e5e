package domain

import (
	"fmt"
	"strings"

	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// EventType says whether an event adds to or takes from the balance
type EventType string

const (
	Income  EventType = "income"
	Expense EventType = "expense"
)

// Sign returns +1 for income and -1 for expense
func (t EventType) Sign() int64 {
	if t == Expense {
		return -1
	}
	return 1
}

// Valid reports whether t is a known event type
func (t EventType) Valid() bool { return t == Income || t == Expense }

// ParseEventType resolves a case-insensitive event type name
func ParseEventType(s string) (EventType, error) {
	switch EventType(strings.ToLower(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEventType, s)
	}
}

// Frequency is the repetition step of a recurring event
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// Months returns the step in months, or 0 for an unknown frequency
func (f Frequency) Months() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencyYearly:
		return 12
	default:
		return 0
	}
}

// ParseFrequency resolves a frequency name ("annual" is accepted for yearly)
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month":
		return FrequencyMonthly, nil
	case "quarterly", "quarter":
		return FrequencyQuarterly, nil
	case "yearly", "year", "annual", "annually":
		return FrequencyYearly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFrequency, s)
	}
}

// RecurrenceKind tags a Recurrence
type RecurrenceKind string

const (
	Once      RecurrenceKind = "once"
	Recurring RecurrenceKind = "recurring"
)

// Recurrence describes when an event is scheduled.
// Once uses Date; Recurring uses StartDate, EndDate (inclusive, nil means open) and Frequency.
type Recurrence struct {
	Kind      RecurrenceKind      `json:"kind"`
	Date      dateutil.LocalDate  `json:"date,omitempty"`
	StartDate dateutil.LocalDate  `json:"start_date,omitempty"`
	EndDate   *dateutil.LocalDate `json:"end_date,omitempty"`
	Frequency Frequency           `json:"frequency,omitempty"`
}

// ScenarioEvent is a named income or expense, optionally gated by conditions.
// All conditions in UnlockedBy must hold for the event to fire.
type ScenarioEvent struct {
	Name       string          `json:"name"`
	Type       EventType       `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Recurrence Recurrence      `json:"recurrence"`
	UnlockedBy []Condition     `json:"-"`
}

// SignedAmount returns Amount with the sign of the event type
func (e ScenarioEvent) SignedAmount() decimal.Decimal {
	return e.Amount.Mul(decimal.NewFromInt(e.Type.Sign()))
}

// IsConditional reports whether any condition must be evaluated against scenario state
func (e ScenarioEvent) IsConditional() bool {
	for _, c := range e.UnlockedBy {
		if c.Tag() == BalanceTag {
			return true
		}
	}
	return false
}

// Scenario is an ordered collection of events
type Scenario struct {
	Name   string          `json:"name"`
	Events []ScenarioEvent `json:"events"`
}

// FiredEvent records one event occurrence in a period
type FiredEvent struct {
	Name   string          `json:"name"`
	Type   EventType       `json:"type"`
	Amount decimal.Decimal `json:"amount"` // signed
}

// PeriodCashflow is the net cash flow of a period and the events that produced it
type PeriodCashflow struct {
	Amount decimal.Decimal `json:"amount"`
	Events []FiredEvent    `json:"events"`
}

// Income returns the sum of positive fired amounts
func (c PeriodCashflow) Income() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Events {
		if e.Amount.IsPositive() {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// Expenses returns the magnitude of negative fired amounts
func (c PeriodCashflow) Expenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Events {
		if e.Amount.IsNegative() {
			total = total.Sub(e.Amount)
		}
	}
	return total
}

// ScenarioResult holds the running balance and cash flow of every period, keyed by PeriodKey.
// Periods keeps the chronological order of the keys.
type ScenarioResult struct {
	Scale    dateutil.Granularity                   `json:"-"`
	Periods  []dateutil.PeriodKey                   `json:"periods"`
	Balance  map[dateutil.PeriodKey]decimal.Decimal `json:"balance"`
	Cashflow map[dateutil.PeriodKey]PeriodCashflow  `json:"cashflow"`
}

// NewScenarioResult returns an empty result with initialized maps
func NewScenarioResult(scale dateutil.Granularity) ScenarioResult {
	return ScenarioResult{
		Scale:    scale,
		Balance:  make(map[dateutil.PeriodKey]decimal.Decimal),
		Cashflow: make(map[dateutil.PeriodKey]PeriodCashflow),
	}
}

// Len returns the number of periods
func (r ScenarioResult) Len() int { return len(r.Periods) }

// Period returns the key, balance and cash flow of the i-th period
func (r ScenarioResult) Period(i int) (dateutil.PeriodKey, decimal.Decimal, PeriodCashflow) {
	k := r.Periods[i]
	return k, r.Balance[k], r.Cashflow[k]
}

// FinalBalance returns the balance of the last period, or fallback when there are none
func (r ScenarioResult) FinalBalance(fallback decimal.Decimal) decimal.Decimal {
	if len(r.Periods) == 0 {
		return fallback
	}
	return r.Balance[r.Periods[len(r.Periods)-1]]
}
