package domain

import (
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// CategoryAssumption describes one asset category of the portfolio
type CategoryAssumption struct {
	CategoryID           string          `yaml:"id" json:"id"`
	CategoryName         string          `yaml:"name" json:"name"`
	CurrentValue         decimal.Decimal `yaml:"current_value" json:"current_value"`
	ExpectedAnnualReturn decimal.Decimal `yaml:"expected_annual_return" json:"expected_annual_return"` // 0.07 = 7%
	Variance             decimal.Decimal `yaml:"variance" json:"variance"`                             // annual return variance
	ReturnSeries         string          `yaml:"return_series,omitempty" json:"return_series,omitempty"`
}

// Estimate is an annual amount with its variance
type Estimate struct {
	Mean     decimal.Decimal `yaml:"mean" json:"mean"`
	Variance decimal.Decimal `yaml:"variance" json:"variance"`
}

// Allocation is the share of reinvested surplus routed to a category
type Allocation struct {
	CategoryID string          `yaml:"category_id" json:"category_id"`
	Percentage decimal.Decimal `yaml:"percentage" json:"percentage"` // 0.6 = 60%
}

// IncomeExpenseAssumption describes the household cash flow and what happens to a surplus
type IncomeExpenseAssumption struct {
	AnnualIncome           Estimate        `yaml:"annual_income" json:"annual_income"`
	AnnualExpenses         Estimate        `yaml:"annual_expenses" json:"annual_expenses"`
	ReinvestmentRate       decimal.Decimal `yaml:"reinvestment_rate" json:"reinvestment_rate"`
	ReinvestmentAllocation []Allocation    `yaml:"reinvestment_allocation" json:"reinvestment_allocation"`
	RemainderCategoryID    string          `yaml:"remainder_category_id,omitempty" json:"remainder_category_id,omitempty"`
}

// OneTimeEvent is a single signed cash flow on a date
type OneTimeEvent struct {
	ID          string             `yaml:"id" json:"id"`
	Date        dateutil.LocalDate `yaml:"date" json:"date"`
	Amount      decimal.Decimal    `yaml:"amount" json:"amount"`
	Description string             `yaml:"description" json:"description"`
	Emoji       string             `yaml:"emoji,omitempty" json:"emoji,omitempty"`
	Enabled     *bool              `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// IsEnabled treats a missing flag as enabled
func (e OneTimeEvent) IsEnabled() bool { return isEnabled(e.Enabled) }

// Label is the text shown for the event in reports
func (e OneTimeEvent) Label() string { return label(e.Emoji, e.Description, e.ID) }

// RecurringEvent is a signed cash flow repeated at a frequency
type RecurringEvent struct {
	ID          string              `yaml:"id" json:"id"`
	StartDate   dateutil.LocalDate  `yaml:"start_date" json:"start_date"`
	EndDate     *dateutil.LocalDate `yaml:"end_date,omitempty" json:"end_date,omitempty"`
	Amount      decimal.Decimal     `yaml:"amount" json:"amount"`
	Frequency   Frequency           `yaml:"frequency" json:"frequency"`
	Description string              `yaml:"description" json:"description"`
	Emoji       string              `yaml:"emoji,omitempty" json:"emoji,omitempty"`
	Enabled     *bool               `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// IsEnabled treats a missing flag as enabled
func (e RecurringEvent) IsEnabled() bool { return isEnabled(e.Enabled) }

// Label is the text shown for the event in reports
func (e RecurringEvent) Label() string { return label(e.Emoji, e.Description, e.ID) }

// Recurrence returns the schedule of the event
func (e RecurringEvent) Recurrence() Recurrence {
	return Recurrence{Kind: Recurring, StartDate: e.StartDate, EndDate: e.EndDate, Frequency: e.Frequency}
}

// PlannedSale liquidates part of a category on a date.
// Exactly one of Amount (value to sell) or Fraction (share of the holding) is set.
type PlannedSale struct {
	ID               string             `yaml:"id" json:"id"`
	CategoryID       string             `yaml:"category_id" json:"category_id"`
	Date             dateutil.LocalDate `yaml:"date" json:"date"`
	Amount           decimal.Decimal    `yaml:"amount,omitempty" json:"amount,omitempty"`
	Fraction         decimal.Decimal    `yaml:"fraction,omitempty" json:"fraction,omitempty"`
	CostBasis        decimal.Decimal    `yaml:"cost_basis,omitempty" json:"cost_basis,omitempty"`
	CapitalGainsRate decimal.Decimal    `yaml:"capital_gains_rate,omitempty" json:"capital_gains_rate,omitempty"`
	Description      string             `yaml:"description" json:"description"`
	Enabled          *bool              `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// IsEnabled treats a missing flag as enabled
func (s PlannedSale) IsEnabled() bool { return isEnabled(s.Enabled) }

// Label is the text shown for the sale in reports
func (s PlannedSale) Label() string { return label("", s.Description, s.ID) }

// PlanInputs is everything the net-worth projection needs
type PlanInputs struct {
	StartDate           dateutil.LocalDate      `yaml:"start_date" json:"start_date"`
	TimeHorizonYears    int                     `yaml:"time_horizon_years" json:"time_horizon_years"`
	CategoryAssumptions []CategoryAssumption    `yaml:"categories" json:"categories"`
	IncomeExpense       IncomeExpenseAssumption `yaml:"income_expense" json:"income_expense"`
	OneTimeEvents       []OneTimeEvent          `yaml:"one_time_events,omitempty" json:"one_time_events,omitempty"`
	RecurringEvents     []RecurringEvent        `yaml:"recurring_events,omitempty" json:"recurring_events,omitempty"`
	PlannedSales        []PlannedSale           `yaml:"planned_sales,omitempty" json:"planned_sales,omitempty"`
}

// EndDate is the last day covered by the projection
func (p PlanInputs) EndDate() dateutil.LocalDate {
	return p.StartDate.AddYears(p.TimeHorizonYears)
}

// InitialNetWorth is the sum of current category values
func (p PlanInputs) InitialNetWorth() decimal.Decimal {
	total := decimal.Zero
	for _, c := range p.CategoryAssumptions {
		total = total.Add(c.CurrentValue)
	}
	return total
}

// Category looks up a category by id
func (p PlanInputs) Category(id string) (CategoryAssumption, bool) {
	for _, c := range p.CategoryAssumptions {
		if c.CategoryID == id {
			return c, true
		}
	}
	return CategoryAssumption{}, false
}

// Bool returns a pointer to b, for the Enabled fields
func Bool(b bool) *bool { return &b }

func isEnabled(flag *bool) bool { return flag == nil || *flag }

func label(emoji, description, id string) string {
	text := description
	if text == "" {
		text = id
	}
	if emoji != "" {
		return emoji + " " + text
	}
	return text
}
