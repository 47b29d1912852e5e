package domain

import (
	"fmt"

	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ConditionTag classifies what a condition depends on.
// Cashflow conditions only look at the calendar; balance conditions look at scenario state.
type ConditionTag string

const (
	CashflowTag ConditionTag = "cashflow"
	BalanceTag  ConditionTag = "balance"
)

// Condition gates a ScenarioEvent. The set of variants is closed:
// DateIs, DateInRange, NetWorthAbove, EventHappened and IncomeAbove.
type Condition interface {
	Tag() ConditionTag
	String() string
	condition()
}

// DateIs holds when the period contains Date
type DateIs struct {
	Date dateutil.LocalDate
}

// DateInRange holds when the period overlaps [Start, End]. A nil bound is open.
type DateInRange struct {
	Start *dateutil.LocalDate
	End   *dateutil.LocalDate
}

// NetWorthAbove holds when the visible balance is at least Amount
type NetWorthAbove struct {
	Amount decimal.Decimal
}

// EventHappened holds when an event named EventName has fired
type EventHappened struct {
	EventName string
}

// IncomeAbove holds when the income fired under EventName in the latest period it earned any is at least Amount
type IncomeAbove struct {
	EventName string
	Amount    decimal.Decimal
}

func (DateIs) Tag() ConditionTag        { return CashflowTag }
func (DateInRange) Tag() ConditionTag   { return CashflowTag }
func (NetWorthAbove) Tag() ConditionTag { return BalanceTag }
func (EventHappened) Tag() ConditionTag { return BalanceTag }
func (IncomeAbove) Tag() ConditionTag   { return BalanceTag }

func (DateIs) condition()        {}
func (DateInRange) condition()   {}
func (NetWorthAbove) condition() {}
func (EventHappened) condition() {}
func (IncomeAbove) condition()   {}

func (c DateIs) String() string { return "date-is " + c.Date.String() }

func (c DateInRange) String() string {
	bound := func(d *dateutil.LocalDate) string {
		if d == nil {
			return "*"
		}
		return d.String()
	}
	return fmt.Sprintf("date-in-range %s..%s", bound(c.Start), bound(c.End))
}

func (c NetWorthAbove) String() string { return "networth-is-above " + c.Amount.String() }
func (c EventHappened) String() string { return fmt.Sprintf("event-happened %q", c.EventName) }

func (c IncomeAbove) String() string {
	return fmt.Sprintf("income-is-above %q %s", c.EventName, c.Amount.String())
}

// Contains reports whether the month starting at monthStart overlaps the range
func (c DateInRange) Contains(monthStart dateutil.LocalDate) bool {
	monthEnd := monthStart.EndOfMonth()
	if c.Start != nil && monthEnd.Before(*c.Start) {
		return false
	}
	if c.End != nil && monthStart.After(*c.End) {
		return false
	}
	return true
}
