package calculation

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// runMonteCarlo runs independent sampled paths on a bounded worker pool. Trial i is seeded
// with seed+i and owns its random source, so the result only depends on the seed.
func (pe *ProjectionEngine) runMonteCarlo(ctx context.Context, inputs domain.PlanInputs, models []categoryModel, result *domain.ProjectionResult) (*domain.ProjectionResult, error) {
	trials := pe.Options.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}
	workers := pe.Options.Concurrency
	if workers <= 0 {
		workers = DefaultConcurrency
	}
	seed := resolveSeed(pe.Options.Seed)
	logger := pe.logger()
	logger.Infof("projecting %d categories over %d years (monte carlo, %d trials, seed %d, %d workers)",
		len(inputs.CategoryAssumptions), inputs.TimeHorizonYears, trials, seed, workers)

	paths := make([][]domain.ProjectionPoint, trials)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < trials; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			paths[i] = pe.simulate(inputs, models, pe.sampler(trialSeed(seed, i), models))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("monte carlo projection: %w", err)
	}

	result.Seed = seed
	result.Trials = trials
	result.Points = meanPath(paths)
	result.Bands = make([]domain.Distribution, len(result.Points))
	netWorth := make([]decimal.Decimal, trials)
	for p := range result.Points {
		for t := range paths {
			netWorth[t] = paths[t][p].NetWorth
		}
		result.Bands[p] = CalculateDistribution(netWorth)
	}
	if n := len(result.Bands); n > 0 {
		final := result.Bands[n-1]
		result.FinalDistribution = &final
		logger.Infof("monte carlo finished: median final net worth %s (P10 %s, P90 %s)",
			final.P50.StringFixed(2), final.P10.StringFixed(2), final.P90.StringFixed(2))
	}
	return result, nil
}

// meanPath averages the numeric fields of every period across trials.
// Scheduled events do not depend on the draw, so labels come from the first trial.
func meanPath(paths [][]domain.ProjectionPoint) []domain.ProjectionPoint {
	if len(paths) == 0 {
		return nil
	}
	n := decimal.NewFromInt(int64(len(paths)))
	mean := func(field func(domain.ProjectionPoint) decimal.Decimal, p int) decimal.Decimal {
		sum := decimal.Zero
		for _, path := range paths {
			sum = sum.Add(field(path[p]))
		}
		return sum.Div(n)
	}

	out := make([]domain.ProjectionPoint, len(paths[0]))
	for p, first := range paths[0] {
		point := domain.ProjectionPoint{
			Period:          first.Period,
			Date:            first.Date,
			Events:          first.Events,
			EventsAmount:    first.EventsAmount,
			NetWorth:        mean(func(x domain.ProjectionPoint) decimal.Decimal { return x.NetWorth }, p),
			CashBuffer:      mean(func(x domain.ProjectionPoint) decimal.Decimal { return x.CashBuffer }, p),
			Income:          mean(func(x domain.ProjectionPoint) decimal.Decimal { return x.Income }, p),
			Expenses:        mean(func(x domain.ProjectionPoint) decimal.Decimal { return x.Expenses }, p),
			SalesProceeds:   mean(func(x domain.ProjectionPoint) decimal.Decimal { return x.SalesProceeds }, p),
			CapitalGainsTax: mean(func(x domain.ProjectionPoint) decimal.Decimal { return x.CapitalGainsTax }, p),
			NetCashflow:     mean(func(x domain.ProjectionPoint) decimal.Decimal { return x.NetCashflow }, p),
			Reinvested:      mean(func(x domain.ProjectionPoint) decimal.Decimal { return x.Reinvested }, p),
		}
		point.Categories = make([]domain.CategoryValue, len(first.Categories))
		for c, cv := range first.Categories {
			point.Categories[c] = domain.CategoryValue{
				CategoryID:   cv.CategoryID,
				CategoryName: cv.CategoryName,
				Value:        mean(func(x domain.ProjectionPoint) decimal.Decimal { return x.Categories[c].Value }, p),
			}
		}
		out[p] = point
	}
	return out
}

// CalculateDistribution summarizes a set of outcomes with mean, standard deviation and
// the P10/P25/P50/P75/P90 percentiles
func CalculateDistribution(values []decimal.Decimal) domain.Distribution {
	if len(values) == 0 {
		return domain.Distribution{}
	}
	sorted := append([]decimal.Decimal(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	n := len(sorted)
	count := decimal.NewFromInt(int64(n))
	sum := decimal.Zero
	for _, v := range sorted {
		sum = sum.Add(v)
	}
	mean := sum.Div(count)

	varianceSum := decimal.Zero
	for _, v := range sorted {
		diff := v.Sub(mean)
		varianceSum = varianceSum.Add(diff.Mul(diff))
	}
	varianceFloat, _ := varianceSum.Div(count).Float64()

	return domain.Distribution{
		Mean:   mean,
		StdDev: decimal.NewFromFloat(math.Sqrt(varianceFloat)),
		P10:    sorted[n/10],
		P25:    sorted[n/4],
		P50:    sorted[n/2],
		P75:    sorted[3*n/4],
		P90:    sorted[9*n/10],
	}
}
