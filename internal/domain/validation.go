package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNegativeVariance  = errors.New("variance cannot be negative")
	ErrReinvestmentRate  = errors.New("reinvestment rate must be between 0 and 1")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrUnknownFrequency  = errors.New("unknown frequency")
	ErrUnknownEventType  = errors.New("unknown event type")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidSale       = errors.New("invalid planned sale")
	ErrInvalidEventName  = errors.New("event name is required")
	ErrInvalidCondition  = errors.New("invalid condition")
	ErrInvalidTimeWindow = errors.New("invalid projection window")
)

var one = decimal.NewFromInt(1)

// Validate checks a category assumption on its own
func (c CategoryAssumption) Validate() error {
	if c.CategoryID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidCategory)
	}
	if c.CurrentValue.IsNegative() {
		return fmt.Errorf("category %s: %w: current value %s cannot be negative", c.CategoryID, ErrInvalidAmount, c.CurrentValue)
	}
	if c.Variance.IsNegative() {
		return fmt.Errorf("category %s: %w", c.CategoryID, ErrNegativeVariance)
	}
	if c.ExpectedAnnualReturn.LessThanOrEqual(one.Neg()) {
		return fmt.Errorf("category %s: %w: expected return must be greater than -100%%", c.CategoryID, ErrInvalidCategory)
	}
	return nil
}

// Validate checks an estimate on its own
func (e Estimate) Validate(what string) error {
	if e.Mean.IsNegative() {
		return fmt.Errorf("%s: %w: mean %s cannot be negative", what, ErrInvalidAmount, e.Mean)
	}
	if e.Variance.IsNegative() {
		return fmt.Errorf("%s: %w", what, ErrNegativeVariance)
	}
	return nil
}

// Validate checks the income/expense block. Category references are resolved by PlanInputs.Validate.
func (ie IncomeExpenseAssumption) Validate() error {
	var errs []error
	if err := ie.AnnualIncome.Validate("annual income"); err != nil {
		errs = append(errs, err)
	}
	if err := ie.AnnualExpenses.Validate("annual expenses"); err != nil {
		errs = append(errs, err)
	}
	if ie.ReinvestmentRate.IsNegative() || ie.ReinvestmentRate.GreaterThan(one) {
		errs = append(errs, fmt.Errorf("%w: got %s", ErrReinvestmentRate, ie.ReinvestmentRate))
	}
	for _, a := range ie.ReinvestmentAllocation {
		if a.Percentage.IsNegative() {
			errs = append(errs, fmt.Errorf("allocation %s: %w: percentage cannot be negative", a.CategoryID, ErrInvalidAmount))
		}
	}
	return errors.Join(errs...)
}

// Validate checks a planned sale on its own
func (s PlannedSale) Validate() error {
	name := s.ID
	if name == "" {
		name = s.Description
	}
	switch {
	case s.CategoryID == "":
		return fmt.Errorf("sale %s: %w: category is required", name, ErrInvalidSale)
	case s.Date.IsZero():
		return fmt.Errorf("sale %s: %w: date is required", name, ErrInvalidSale)
	case s.Amount.IsZero() == s.Fraction.IsZero():
		return fmt.Errorf("sale %s: %w: exactly one of amount or fraction must be set", name, ErrInvalidSale)
	case s.Amount.IsNegative():
		return fmt.Errorf("sale %s: %w: amount must be positive", name, ErrInvalidSale)
	case s.Fraction.IsNegative() || s.Fraction.GreaterThan(one):
		return fmt.Errorf("sale %s: %w: fraction must be in (0, 1]", name, ErrInvalidSale)
	case s.CostBasis.IsNegative():
		return fmt.Errorf("sale %s: %w: cost basis cannot be negative", name, ErrInvalidSale)
	case s.CapitalGainsRate.IsNegative() || s.CapitalGainsRate.GreaterThan(one):
		return fmt.Errorf("sale %s: %w: capital gains rate must be between 0 and 1", name, ErrInvalidSale)
	}
	return nil
}

// Validate checks a recurring event on its own
func (e RecurringEvent) Validate() error {
	if e.StartDate.IsZero() {
		return fmt.Errorf("recurring event %s: %w: start date is required", e.Label(), ErrInvalidDateRange)
	}
	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("recurring event %s: %w: end %s before start %s", e.Label(), ErrInvalidDateRange, e.EndDate, e.StartDate)
	}
	if e.Frequency.Months() == 0 {
		return fmt.Errorf("recurring event %s: %w: %q", e.Label(), ErrUnknownFrequency, e.Frequency)
	}
	return nil
}

// Validate checks a one-time event on its own
func (e OneTimeEvent) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("one-time event %s: %w: date is required", e.Label(), ErrInvalidDateRange)
	}
	return nil
}

// Validate checks every part of the plan and reports all problems at once.
// A non-positive horizon is not an error; it projects to an empty result.
func (p PlanInputs) Validate() error {
	var errs []error
	if p.StartDate.IsZero() {
		errs = append(errs, fmt.Errorf("%w: start date is required", ErrInvalidTimeWindow))
	}

	ids := make(map[string]bool, len(p.CategoryAssumptions))
	for _, c := range p.CategoryAssumptions {
		if err := c.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if ids[c.CategoryID] {
			errs = append(errs, fmt.Errorf("category %s: %w: duplicate id", c.CategoryID, ErrInvalidCategory))
		}
		ids[c.CategoryID] = true
	}

	if err := p.IncomeExpense.Validate(); err != nil {
		errs = append(errs, err)
	}
	if id := p.IncomeExpense.RemainderCategoryID; id != "" && !ids[id] {
		errs = append(errs, fmt.Errorf("remainder category %s: %w: not defined", id, ErrInvalidCategory))
	}
	for _, e := range p.OneTimeEvents {
		if err := e.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, e := range p.RecurringEvents {
		if err := e.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, s := range p.PlannedSales {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if !ids[s.CategoryID] {
			errs = append(errs, fmt.Errorf("sale %s: %w: category %s not defined", s.Label(), ErrInvalidCategory, s.CategoryID))
		}
	}
	return errors.Join(errs...)
}

// Validate checks a scenario event the same way the builders do
func (e ScenarioEvent) Validate() error {
	if e.Name == "" {
		return ErrInvalidEventName
	}
	if !e.Type.Valid() {
		return fmt.Errorf("event %s: %w: %q", e.Name, ErrUnknownEventType, e.Type)
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("event %s: %w: amount must be positive, got %s", e.Name, ErrInvalidAmount, e.Amount)
	}
	switch e.Recurrence.Kind {
	case Once:
		if e.Recurrence.Date.IsZero() {
			return fmt.Errorf("event %s: %w: date is required", e.Name, ErrInvalidDateRange)
		}
	case Recurring:
		r := e.Recurrence
		if r.StartDate.IsZero() {
			return fmt.Errorf("event %s: %w: start date is required", e.Name, ErrInvalidDateRange)
		}
		if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
			return fmt.Errorf("event %s: %w: end %s before start %s", e.Name, ErrInvalidDateRange, r.EndDate, r.StartDate)
		}
		if r.Frequency.Months() == 0 {
			return fmt.Errorf("event %s: %w: %q", e.Name, ErrUnknownFrequency, r.Frequency)
		}
	default:
		return fmt.Errorf("event %s: unknown recurrence kind %q", e.Name, e.Recurrence.Kind)
	}
	for _, c := range e.UnlockedBy {
		if err := validateCondition(c); err != nil {
			return fmt.Errorf("event %s: %w", e.Name, err)
		}
	}
	return nil
}

func validateCondition(c Condition) error {
	switch c := c.(type) {
	case nil:
		return fmt.Errorf("%w: nil condition", ErrInvalidCondition)
	case DateIs:
		if c.Date.IsZero() {
			return fmt.Errorf("%w: date-is needs a date", ErrInvalidCondition)
		}
	case DateInRange:
		if c.Start != nil && c.End != nil && c.End.Before(*c.Start) {
			return fmt.Errorf("%w: %w: %s", ErrInvalidCondition, ErrInvalidDateRange, c)
		}
	case EventHappened:
		if c.EventName == "" {
			return fmt.Errorf("%w: event-happened needs an event name", ErrInvalidCondition)
		}
	case IncomeAbove:
		if c.EventName == "" {
			return fmt.Errorf("%w: income-is-above needs an event name", ErrInvalidCondition)
		}
	}
	return nil
}
