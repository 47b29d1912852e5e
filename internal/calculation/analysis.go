package calculation

import (
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// GenerateProjectionAnalytics derives presentation statistics from a projection.
// When the initial net worth is zero the percentage change is left undefined (zero with
// NetChangePercentDefined false) rather than divided by zero.
func GenerateProjectionAnalytics(projection *domain.ProjectionResult, oneTimeEvents []domain.OneTimeEvent, recurringEvents []domain.RecurringEvent, categories []domain.CategoryAssumption) domain.AnalyticsSummary {
	initial := decimal.Zero
	for _, c := range categories {
		initial = initial.Add(c.CurrentValue)
	}

	summary := domain.AnalyticsSummary{
		InitialNetWorth:     initial,
		FinalNetWorth:       initial,
		LowestNetWorth:      initial,
		HighestNetWorth:     initial,
		OneTimeEventTotal:   decimal.Zero,
		RecurringEventTotal: decimal.Zero,
	}

	var points []domain.ProjectionPoint
	if projection != nil {
		points = projection.Points
	}
	if len(points) > 0 {
		summary.LowestNetWorth = points[0].NetWorth
		summary.LowestPeriod = points[0].Period
		summary.HighestNetWorth = points[0].NetWorth
		summary.HighestPeriod = points[0].Period
		for _, p := range points[1:] {
			if p.NetWorth.LessThan(summary.LowestNetWorth) {
				summary.LowestNetWorth = p.NetWorth
				summary.LowestPeriod = p.Period
			}
			if p.NetWorth.GreaterThan(summary.HighestNetWorth) {
				summary.HighestNetWorth = p.NetWorth
				summary.HighestPeriod = p.Period
			}
		}
		summary.FinalNetWorth = points[len(points)-1].NetWorth
	}

	summary.NetChange = summary.FinalNetWorth.Sub(initial)
	summary.NetChangePercent, summary.NetChangePercentDefined = percentChange(summary.NetChange, initial)
	summary.DipsBelowInitial = summary.LowestNetWorth.LessThan(initial)
	summary.AverageChange = averageChange(summary.NetChange, len(points))

	if len(points) > 0 {
		from := horizonStart(points[0])
		to := points[len(points)-1].Date
		for _, e := range oneTimeEvents {
			if !e.IsEnabled() || e.Date.MonthIndex() < from.MonthIndex() || e.Date.MonthIndex() > to.MonthIndex() {
				continue
			}
			summary.OneTimeEventCount++
			summary.OneTimeEventTotal = summary.OneTimeEventTotal.Add(e.Amount)
		}
		for _, e := range recurringEvents {
			if !e.IsEnabled() {
				continue
			}
			n := Occurrences(e.Recurrence(), from, to)
			if n == 0 {
				continue
			}
			summary.RecurringEventCount++
			summary.RecurringEventTotal = summary.RecurringEventTotal.Add(e.Amount.Mul(decimal.NewFromInt(int64(n))))
		}

		last := points[len(points)-1]
		for _, c := range categories {
			final := last.CategoryValueOf(c.CategoryID)
			b := domain.CategoryBreakdown{
				CategoryID:   c.CategoryID,
				CategoryName: c.CategoryName,
				Initial:      c.CurrentValue,
				Final:        final,
				Growth:       final.Sub(c.CurrentValue),
				Share:        decimal.Zero,
			}
			if !last.NetWorth.IsZero() {
				b.Share = final.Div(last.NetWorth).Round(4)
			}
			summary.Categories = append(summary.Categories, b)
		}
	}
	return summary
}

// SummarizeScenario derives the same statistics over a scenario balance series
func SummarizeScenario(result domain.ScenarioResult, initialBalance decimal.Decimal) domain.ScenarioSummary {
	summary := domain.ScenarioSummary{
		InitialBalance: initialBalance,
		FinalBalance:   result.FinalBalance(initialBalance),
		LowestBalance:  initialBalance,
		TotalIncome:    decimal.Zero,
		TotalExpenses:  decimal.Zero,
	}
	for i, k := range result.Periods {
		b := result.Balance[k]
		if i == 0 || b.LessThan(summary.LowestBalance) {
			summary.LowestBalance = b
			summary.LowestPeriod = k
		}
		flow := result.Cashflow[k]
		summary.TotalIncome = summary.TotalIncome.Add(flow.Income())
		summary.TotalExpenses = summary.TotalExpenses.Add(flow.Expenses())
		summary.FiredEventCount += len(flow.Events)
	}
	summary.NetChange = summary.FinalBalance.Sub(initialBalance)
	summary.NetChangePercent, summary.NetChangePercentDefined = percentChange(summary.NetChange, initialBalance)
	summary.DipsBelowInitial = summary.LowestBalance.LessThan(initialBalance)
	summary.AverageChange = averageChange(summary.NetChange, len(result.Periods))
	return summary
}

// percentChange returns change/base in percent, or (0, false) when base is zero
func percentChange(change, base decimal.Decimal) (decimal.Decimal, bool) {
	if base.IsZero() {
		return decimal.Zero, false
	}
	return change.Div(base.Abs()).Mul(hundred).Round(2), true
}

func averageChange(change decimal.Decimal, periods int) decimal.Decimal {
	if periods == 0 {
		return decimal.Zero
	}
	return change.Div(decimal.NewFromInt(int64(periods)))
}

// horizonStart returns the first month covered by a point, which for an aggregated
// point is the first month of its bucket
func horizonStart(p domain.ProjectionPoint) dateutil.LocalDate {
	if start, _, err := dateutil.ParsePeriodKey(p.Period); err == nil {
		return start
	}
	return p.Date.StartOfMonth()
}
