package calculation

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// valuePlaces is the precision category values are kept at between months
const valuePlaces = 6

const (
	DefaultTrials      = 500
	DefaultConcurrency = 8
)

// ProjectionOptions configure the stochastic modes
type ProjectionOptions struct {
	Trials      int
	Seed        int64 // 0 draws a seed from seedFunc
	Concurrency int
	History     *ReturnHistory
}

// ProjectionEngine compounds a multi-category portfolio month by month
type ProjectionEngine struct {
	Options ProjectionOptions
	Logger  Logger
	Debug   bool
}

// NewProjectionEngine creates a projection engine with a no-op logger
func NewProjectionEngine(opts ProjectionOptions) *ProjectionEngine {
	return &ProjectionEngine{Options: opts, Logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	pe.Logger = orNop(l)
}

// ProjectNetWorth projects a plan with default options
func ProjectNetWorth(inputs domain.PlanInputs, mode domain.ProjectionMode) (*domain.ProjectionResult, error) {
	return NewProjectionEngine(ProjectionOptions{}).ProjectNetWorth(context.Background(), inputs, mode)
}

// ProjectNetWorth validates the plan and projects it over [StartDate, StartDate+TimeHorizonYears].
// A non-positive horizon yields an empty result.
func (pe *ProjectionEngine) ProjectNetWorth(ctx context.Context, inputs domain.PlanInputs, mode domain.ProjectionMode) (*domain.ProjectionResult, error) {
	if err := inputs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	switch mode {
	case "":
		mode = domain.ModeExpected
	case domain.ModeExpected, domain.ModeSampled, domain.ModeMonteCarlo:
	default:
		return nil, fmt.Errorf("unsupported projection mode %q", mode)
	}
	result := &domain.ProjectionResult{Mode: mode, Scale: dateutil.Monthly}
	if inputs.TimeHorizonYears <= 0 {
		return result, nil
	}

	logger := pe.logger()
	models := pe.categoryModels(inputs)

	switch mode {
	case domain.ModeExpected:
		logger.Infof("projecting %d categories over %d years (expected)", len(inputs.CategoryAssumptions), inputs.TimeHorizonYears)
		result.Points = pe.simulate(inputs, models, newPathSampler(nil, nil, nil))
	case domain.ModeSampled:
		seed := resolveSeed(pe.Options.Seed)
		logger.Infof("projecting %d categories over %d years (sampled, seed %d)", len(inputs.CategoryAssumptions), inputs.TimeHorizonYears, seed)
		result.Seed = seed
		result.Trials = 1
		result.Points = pe.simulate(inputs, models, pe.sampler(seed, models))
	case domain.ModeMonteCarlo:
		return pe.runMonteCarlo(ctx, inputs, models, result)
	default:
		return nil, fmt.Errorf("unsupported projection mode %q", mode)
	}

	if final, ok := result.Final(); ok {
		logger.Infof("projection finished: final net worth %s", final.NetWorth.StringFixed(2))
	}
	return result, nil
}

func (pe *ProjectionEngine) logger() Logger {
	if pe == nil {
		return NopLogger{}
	}
	return orNop(pe.Logger)
}

// categoryModels fits the growth model of every category and resolves return series
func (pe *ProjectionEngine) categoryModels(inputs domain.PlanInputs) []categoryModel {
	models := make([]categoryModel, len(inputs.CategoryAssumptions))
	for i, c := range inputs.CategoryAssumptions {
		models[i] = newCategoryModel(c)
		if c.ReturnSeries == "" {
			continue
		}
		if s, ok := pe.Options.History.Get(c.ReturnSeries); ok {
			models[i].series = s
		} else {
			pe.logger().Warnf("category %s: return series %q not loaded, using lognormal returns", c.CategoryID, c.ReturnSeries)
		}
	}
	return models
}

// sampler returns a seeded sampler for one path
func (pe *ProjectionEngine) sampler(seed int64, models []categoryModel) *pathSampler {
	var names []string
	for _, m := range models {
		if m.series != nil {
			names = append(names, m.series.Name)
		}
	}
	return newPathSampler(rand.New(rand.NewSource(seed)), pe.Options.History, pe.Options.History.Years(names...))
}

// simulate walks one path. The first month is the opening month: its flows apply but
// no growth does; every later month grows first.
func (pe *ProjectionEngine) simulate(inputs domain.PlanInputs, models []categoryModel, ps *pathSampler) []domain.ProjectionPoint {
	logger := pe.logger()
	ie := inputs.IncomeExpense
	months := dateutil.MonthsBetween(inputs.StartDate, inputs.EndDate())

	values := make([]decimal.Decimal, len(inputs.CategoryAssumptions))
	index := make(map[string]int, len(values))
	for i, c := range inputs.CategoryAssumptions {
		values[i] = c.CurrentValue
		index[c.CategoryID] = i
	}
	weights := allocationWeights(ie.ReinvestmentAllocation)

	cash := decimal.Zero
	points := make([]domain.ProjectionPoint, 0, len(months))
	for n, month := range months {
		if n > 0 {
			for i := range values {
				factor := decimal.NewFromFloat(ps.growthFactor(models[i], month))
				values[i] = values[i].Mul(factor).Round(valuePlaces)
			}
		}

		p := domain.ProjectionPoint{
			Period:   dateutil.Key(month, dateutil.Monthly),
			Date:     month,
			Income:   ps.monthly(ie.AnnualIncome),
			Expenses: ps.monthly(ie.AnnualExpenses),
		}

		for _, e := range inputs.OneTimeEvents {
			if e.IsEnabled() && IsScheduled(onceAt(e.Date), month) {
				p.EventsAmount = p.EventsAmount.Add(e.Amount)
				p.Events = append(p.Events, e.Label())
			}
		}
		for _, e := range inputs.RecurringEvents {
			if e.IsEnabled() && IsScheduled(e.Recurrence(), month) {
				p.EventsAmount = p.EventsAmount.Add(e.Amount)
				p.Events = append(p.Events, e.Label())
			}
		}

		for _, s := range inputs.PlannedSales {
			if !s.IsEnabled() || s.Date.MonthIndex() != month.MonthIndex() {
				continue
			}
			i, ok := index[s.CategoryID]
			if !ok {
				logger.Warnf("sale %s: unknown category %s, skipped", s.Label(), s.CategoryID)
				continue
			}
			sold, tax := saleProceeds(s, values[i])
			values[i] = values[i].Sub(sold)
			p.SalesProceeds = p.SalesProceeds.Add(sold)
			p.CapitalGainsTax = p.CapitalGainsTax.Add(tax)
			p.Events = append(p.Events, s.Label())
		}

		p.NetCashflow = p.Income.Sub(p.Expenses).Add(p.EventsAmount).Add(p.SalesProceeds).Sub(p.CapitalGainsTax)
		if p.NetCashflow.IsPositive() {
			toInvest := p.NetCashflow.Mul(ie.ReinvestmentRate)
			for _, w := range weights {
				i, ok := index[w.CategoryID]
				if !ok {
					continue
				}
				share := toInvest.Mul(w.Percentage)
				values[i] = values[i].Add(share)
				p.Reinvested = p.Reinvested.Add(share)
			}
			remainder := p.NetCashflow.Sub(p.Reinvested)
			if i, ok := index[ie.RemainderCategoryID]; ok && ie.RemainderCategoryID != "" {
				values[i] = values[i].Add(remainder)
			} else {
				cash = cash.Add(remainder)
			}
		} else {
			cash = cash.Add(p.NetCashflow)
		}

		p.Categories = make([]domain.CategoryValue, len(values))
		p.NetWorth = decimal.Zero
		for i, c := range inputs.CategoryAssumptions {
			p.Categories[i] = domain.CategoryValue{CategoryID: c.CategoryID, CategoryName: c.CategoryName, Value: values[i]}
			p.NetWorth = p.NetWorth.Add(values[i])
		}
		p.CashBuffer = cash
		points = append(points, p)

		if pe.Debug {
			logger.Debugf("%s: net worth %s, cash flow %s, reinvested %s", p.Period, p.NetWorth.StringFixed(2), p.NetCashflow.StringFixed(2), p.Reinvested.StringFixed(2))
		}
	}
	return points
}

// allocationWeights drops non-positive shares and scales the rest down when they sum above 1
func allocationWeights(allocs []domain.Allocation) []domain.Allocation {
	total := decimal.Zero
	weights := make([]domain.Allocation, 0, len(allocs))
	for _, a := range allocs {
		if a.Percentage.IsPositive() {
			weights = append(weights, a)
			total = total.Add(a.Percentage)
		}
	}
	if total.GreaterThan(one) {
		for i := range weights {
			weights[i].Percentage = weights[i].Percentage.Div(total)
		}
	}
	return weights
}

// saleProceeds returns the value sold (capped at the holding) and the capital gains tax due.
// A zero cost basis treats the whole sale as gain.
func saleProceeds(s domain.PlannedSale, holding decimal.Decimal) (sold, tax decimal.Decimal) {
	sold = s.Amount
	if !s.Fraction.IsZero() {
		sold = holding.Mul(s.Fraction)
	}
	if sold.GreaterThan(holding) {
		sold = holding
	}
	if sold.IsNegative() {
		sold = decimal.Zero
	}
	gain := sold.Sub(s.CostBasis)
	if gain.IsPositive() {
		tax = gain.Mul(s.CapitalGainsRate)
	}
	return sold, tax
}

var one = decimal.NewFromInt(1)
