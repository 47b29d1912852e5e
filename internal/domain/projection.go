package domain

import (
	"fmt"
	"strings"

	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ProjectionMode selects how returns, income and expenses are drawn
type ProjectionMode string

const (
	ModeExpected   ProjectionMode = "expected"
	ModeSampled    ProjectionMode = "sampled"
	ModeMonteCarlo ProjectionMode = "monte-carlo"
)

// ParseProjectionMode resolves a mode name, e.g. "mc" or "monte_carlo"
func ParseProjectionMode(s string) (ProjectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "expected", "deterministic":
		return ModeExpected, nil
	case "sampled", "sample", "stochastic":
		return ModeSampled, nil
	case "monte-carlo", "monte_carlo", "montecarlo", "mc":
		return ModeMonteCarlo, nil
	default:
		return "", fmt.Errorf("unknown projection mode %q", s)
	}
}

// CategoryValue is the value of one category at a point in time
type CategoryValue struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Value        decimal.Decimal `json:"value"`
}

// ProjectionPoint is the portfolio snapshot at the end of a period along with the
// flows that happened during it
type ProjectionPoint struct {
	Period          dateutil.PeriodKey `json:"period"`
	Date            dateutil.LocalDate `json:"date"`
	Categories      []CategoryValue    `json:"categories"`
	NetWorth        decimal.Decimal    `json:"net_worth"`
	CashBuffer      decimal.Decimal    `json:"cash_buffer"`
	Income          decimal.Decimal    `json:"income"`
	Expenses        decimal.Decimal    `json:"expenses"`
	EventsAmount    decimal.Decimal    `json:"events_amount"`
	SalesProceeds   decimal.Decimal    `json:"sales_proceeds"`
	CapitalGainsTax decimal.Decimal    `json:"capital_gains_tax"`
	NetCashflow     decimal.Decimal    `json:"net_cashflow"`
	Reinvested      decimal.Decimal    `json:"reinvested"`
	Events          []string           `json:"events,omitempty"`
}

// CategoryValueOf returns the value of a category in this point (zero when absent)
func (p ProjectionPoint) CategoryValueOf(id string) decimal.Decimal {
	for _, c := range p.Categories {
		if c.CategoryID == id {
			return c.Value
		}
	}
	return decimal.Zero
}

// Distribution summarizes many trial outcomes
type Distribution struct {
	Mean   decimal.Decimal `json:"mean"`
	StdDev decimal.Decimal `json:"std_dev"`
	P10    decimal.Decimal `json:"p10"`
	P25    decimal.Decimal `json:"p25"`
	P50    decimal.Decimal `json:"p50"`
	P75    decimal.Decimal `json:"p75"`
	P90    decimal.Decimal `json:"p90"`
}

// ProjectionResult is the output of a net-worth projection.
// Bands is only set in Monte Carlo mode and is aligned with Points.
type ProjectionResult struct {
	Mode              ProjectionMode       `json:"mode"`
	Scale             dateutil.Granularity `json:"-"`
	Seed              int64                `json:"seed,omitempty"`
	Trials            int                  `json:"trials,omitempty"`
	Points            []ProjectionPoint    `json:"points"`
	Bands             []Distribution       `json:"bands,omitempty"`
	FinalDistribution *Distribution        `json:"final_distribution,omitempty"`
}

// Final returns the last point, or false when the projection is empty
func (r *ProjectionResult) Final() (ProjectionPoint, bool) {
	if r == nil || len(r.Points) == 0 {
		return ProjectionPoint{}, false
	}
	return r.Points[len(r.Points)-1], true
}

// CategoryBreakdown compares a category's opening and closing values
type CategoryBreakdown struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Initial      decimal.Decimal `json:"initial"`
	Final        decimal.Decimal `json:"final"`
	Growth       decimal.Decimal `json:"growth"`
	Share        decimal.Decimal `json:"share"` // of final net worth
}

// AnalyticsSummary holds summary statistics of a projection
type AnalyticsSummary struct {
	InitialNetWorth         decimal.Decimal     `json:"initial_net_worth"`
	FinalNetWorth           decimal.Decimal     `json:"final_net_worth"`
	NetChange               decimal.Decimal     `json:"net_change"`
	NetChangePercent        decimal.Decimal     `json:"net_change_percent"`
	NetChangePercentDefined bool                `json:"net_change_percent_defined"`
	LowestNetWorth          decimal.Decimal     `json:"lowest_net_worth"`
	LowestPeriod            dateutil.PeriodKey  `json:"lowest_period"`
	DipsBelowInitial        bool                `json:"dips_below_initial"`
	HighestNetWorth         decimal.Decimal     `json:"highest_net_worth"`
	HighestPeriod           dateutil.PeriodKey  `json:"highest_period"`
	AverageChange           decimal.Decimal     `json:"average_change"`
	OneTimeEventCount       int                 `json:"one_time_event_count"`
	OneTimeEventTotal       decimal.Decimal     `json:"one_time_event_total"`
	RecurringEventCount     int                 `json:"recurring_event_count"`
	RecurringEventTotal     decimal.Decimal     `json:"recurring_event_total"`
	Categories              []CategoryBreakdown `json:"categories,omitempty"`
}

// ScenarioSummary holds summary statistics of a scenario run
type ScenarioSummary struct {
	InitialBalance          decimal.Decimal    `json:"initial_balance"`
	FinalBalance            decimal.Decimal    `json:"final_balance"`
	NetChange               decimal.Decimal    `json:"net_change"`
	NetChangePercent        decimal.Decimal    `json:"net_change_percent"`
	NetChangePercentDefined bool               `json:"net_change_percent_defined"`
	LowestBalance           decimal.Decimal    `json:"lowest_balance"`
	LowestPeriod            dateutil.PeriodKey `json:"lowest_period"`
	DipsBelowInitial        bool               `json:"dips_below_initial"`
	AverageChange           decimal.Decimal    `json:"average_change"`
	TotalIncome             decimal.Decimal    `json:"total_income"`
	TotalExpenses           decimal.Decimal    `json:"total_expenses"`
	FiredEventCount         int                `json:"fired_event_count"`
}
