package domain

import (
	"fmt"

	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// OneOffParams are the inputs of MakeOneOff
type OneOffParams struct {
	Name       string
	Type       EventType
	Amount     decimal.Decimal
	Date       dateutil.LocalDate
	UnlockedBy []Condition
}

// RecurringParams are the inputs of MakeRecurring
type RecurringParams struct {
	Name       string
	Type       EventType
	Amount     decimal.Decimal
	StartDate  dateutil.LocalDate
	EndDate    *dateutil.LocalDate
	Frequency  Frequency
	UnlockedBy []Condition
}

// MakeOneOff builds an event that happens once
func MakeOneOff(p OneOffParams) (ScenarioEvent, error) {
	e := ScenarioEvent{
		Name:       p.Name,
		Type:       p.Type,
		Amount:     p.Amount,
		Recurrence: Recurrence{Kind: Once, Date: p.Date},
		UnlockedBy: append([]Condition(nil), p.UnlockedBy...),
	}
	if err := e.Validate(); err != nil {
		return ScenarioEvent{}, err
	}
	return e, nil
}

// MakeRecurring builds an event repeated at a monthly, quarterly or yearly step
func MakeRecurring(p RecurringParams) (ScenarioEvent, error) {
	var end *dateutil.LocalDate
	if p.EndDate != nil {
		d := *p.EndDate
		end = &d
	}
	e := ScenarioEvent{
		Name:   p.Name,
		Type:   p.Type,
		Amount: p.Amount,
		Recurrence: Recurrence{
			Kind:      Recurring,
			StartDate: p.StartDate,
			EndDate:   end,
			Frequency: p.Frequency,
		},
		UnlockedBy: append([]Condition(nil), p.UnlockedBy...),
	}
	if err := e.Validate(); err != nil {
		return ScenarioEvent{}, err
	}
	return e, nil
}

// NewCategoryAssumption builds a validated category
func NewCategoryAssumption(id, name string, currentValue, expectedReturn, variance decimal.Decimal) (CategoryAssumption, error) {
	c := CategoryAssumption{
		CategoryID:           id,
		CategoryName:         name,
		CurrentValue:         currentValue,
		ExpectedAnnualReturn: expectedReturn,
		Variance:             variance,
	}
	if err := c.Validate(); err != nil {
		return CategoryAssumption{}, fmt.Errorf("new category: %w", err)
	}
	return c, nil
}
