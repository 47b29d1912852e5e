package calculation

import (
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Aggregate resamples a monthly scenario result. A bucket's balance is the balance of its
// last month, its cash flow is the sum of its months and its events are concatenated.
func Aggregate(result domain.ScenarioResult, scale dateutil.Granularity) domain.ScenarioResult {
	out := domain.NewScenarioResult(scale)
	for _, k := range result.Periods {
		bucket := dateutil.Coarsen(k, scale)
		flow, seen := out.Cashflow[bucket]
		if !seen {
			out.Periods = append(out.Periods, bucket)
			flow.Amount = decimal.Zero
		}
		month := result.Cashflow[k]
		flow.Amount = flow.Amount.Add(month.Amount)
		flow.Events = append(flow.Events, month.Events...)
		out.Cashflow[bucket] = flow
		out.Balance[bucket] = result.Balance[k]
	}
	return out
}

// AggregateProjection resamples a monthly projection. Snapshots (categories, net worth,
// cash buffer, bands) take the bucket's last month; flows are summed and labels concatenated.
func AggregateProjection(result *domain.ProjectionResult, scale dateutil.Granularity) *domain.ProjectionResult {
	if result == nil {
		return nil
	}
	out := &domain.ProjectionResult{
		Mode:              result.Mode,
		Scale:             scale,
		Seed:              result.Seed,
		Trials:            result.Trials,
		FinalDistribution: result.FinalDistribution,
	}
	for i, p := range result.Points {
		bucket := dateutil.Coarsen(p.Period, scale)
		n := len(out.Points)
		if n == 0 || out.Points[n-1].Period != bucket {
			out.Points = append(out.Points, domain.ProjectionPoint{Period: bucket})
			if result.Bands != nil {
				out.Bands = append(out.Bands, domain.Distribution{})
			}
			n++
		}
		agg := &out.Points[n-1]
		agg.Date = p.Date
		agg.Categories = p.Categories
		agg.NetWorth = p.NetWorth
		agg.CashBuffer = p.CashBuffer
		agg.Income = agg.Income.Add(p.Income)
		agg.Expenses = agg.Expenses.Add(p.Expenses)
		agg.EventsAmount = agg.EventsAmount.Add(p.EventsAmount)
		agg.SalesProceeds = agg.SalesProceeds.Add(p.SalesProceeds)
		agg.CapitalGainsTax = agg.CapitalGainsTax.Add(p.CapitalGainsTax)
		agg.NetCashflow = agg.NetCashflow.Add(p.NetCashflow)
		agg.Reinvested = agg.Reinvested.Add(p.Reinvested)
		agg.Events = append(agg.Events, p.Events...)
		if result.Bands != nil && i < len(result.Bands) {
			out.Bands[n-1] = result.Bands[i]
		}
	}
	return out
}
