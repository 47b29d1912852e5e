package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(period string, a, b int64) domain.ProjectionPoint {
	start, _, _ := dateutil.ParsePeriodKey(dateutil.PeriodKey(period))
	return domain.ProjectionPoint{
		Period: dateutil.PeriodKey(period),
		Date:   start,
		Categories: []domain.CategoryValue{
			{CategoryID: "a", CategoryName: "A", Value: dec(a)},
			{CategoryID: "b", CategoryName: "B", Value: dec(b)},
		},
		NetWorth: dec(a + b),
	}
}

func TestGenerateProjectionAnalytics(t *testing.T) {
	projection := &domain.ProjectionResult{Points: []domain.ProjectionPoint{
		point("2025-01", 600, 400),
		point("2025-02", 500, 300),
		point("2025-03", 900, 600),
	}}
	categories := []domain.CategoryAssumption{category("a", 600, "0", "0"), category("b", 400, "0", "0")}
	oneTime := []domain.OneTimeEvent{
		{ID: "gift", Date: ymd(2025, time.February, 9), Amount: dec(5000)},
		{ID: "off", Date: ymd(2025, time.February, 9), Amount: dec(7), Enabled: domain.Bool(false)},
		{ID: "later", Date: ymd(2026, time.February, 9), Amount: dec(7)},
	}
	recurring := []domain.RecurringEvent{
		{ID: "gym", StartDate: ymd(2025, time.February, 1), Amount: dec(-100), Frequency: domain.FrequencyMonthly},
		{ID: "future", StartDate: ymd(2027, time.January, 1), Amount: dec(-100), Frequency: domain.FrequencyMonthly},
	}

	s := GenerateProjectionAnalytics(projection, oneTime, recurring, categories)

	assertDecimalEqual(t, dec(1000), s.InitialNetWorth)
	assertDecimalEqual(t, dec(1500), s.FinalNetWorth)
	assertDecimalEqual(t, dec(500), s.NetChange)
	assert.True(t, s.NetChangePercentDefined)
	assertDecimalEqual(t, dec(50), s.NetChangePercent)
	assertDecimalEqual(t, dec(800), s.LowestNetWorth)
	assert.Equal(t, dateutil.PeriodKey("2025-02"), s.LowestPeriod)
	assert.True(t, s.DipsBelowInitial)
	assertDecimalEqual(t, dec(1500), s.HighestNetWorth)
	assert.Equal(t, dateutil.PeriodKey("2025-03"), s.HighestPeriod)
	assertDecimalEqual(t, dec(500).Div(dec(3)), s.AverageChange)

	assert.Equal(t, 1, s.OneTimeEventCount)
	assertDecimalEqual(t, dec(5000), s.OneTimeEventTotal)
	assert.Equal(t, 1, s.RecurringEventCount)
	assertDecimalEqual(t, dec(-200), s.RecurringEventTotal)

	require.Len(t, s.Categories, 2)
	a := s.Categories[0]
	assert.Equal(t, "a", a.CategoryID)
	assertDecimalEqual(t, dec(900), a.Final)
	assertDecimalEqual(t, dec(300), a.Growth)
	assertDecimalEqual(t, decimal.RequireFromString("0.6"), a.Share)
}

func TestGenerateProjectionAnalyticsZeroInitial(t *testing.T) {
	categories := []domain.CategoryAssumption{category("a", 0, "0", "0")}
	projection := &domain.ProjectionResult{Points: []domain.ProjectionPoint{
		{Period: "2025", Date: ymd(2025, time.December, 1), NetWorth: dec(1200)},
	}}

	s := GenerateProjectionAnalytics(projection, nil, nil, categories)
	assert.False(t, s.NetChangePercentDefined)
	assertDecimalEqual(t, decimal.Zero, s.NetChangePercent)
	assertDecimalEqual(t, dec(1200), s.NetChange)
	assertDecimalEqual(t, dec(1200), s.AverageChange)
	assert.False(t, s.DipsBelowInitial)
}

func TestGenerateProjectionAnalyticsEmpty(t *testing.T) {
	categories := []domain.CategoryAssumption{category("a", 250, "0", "0")}
	for _, projection := range []*domain.ProjectionResult{nil, {}} {
		s := GenerateProjectionAnalytics(projection, nil, nil, categories)
		assertDecimalEqual(t, dec(250), s.FinalNetWorth)
		assertDecimalEqual(t, decimal.Zero, s.NetChange)
		assertDecimalEqual(t, decimal.Zero, s.AverageChange)
		assert.Empty(t, s.Categories)
	}
}

func TestGenerateProjectionAnalyticsOnAggregatedResult(t *testing.T) {
	inputs := cashflowPlan()
	inputs.OneTimeEvents = []domain.OneTimeEvent{{ID: "january", Date: ymd(2025, time.January, 20), Amount: dec(100)}}

	monthly, err := ProjectNetWorth(inputs, domain.ModeExpected)
	require.NoError(t, err)
	yearly := AggregateProjection(monthly, dateutil.Yearly)
	require.Len(t, yearly.Points, 2)

	s := GenerateProjectionAnalytics(yearly, inputs.OneTimeEvents, nil, inputs.CategoryAssumptions)
	assert.Equal(t, 1, s.OneTimeEventCount, "the first bucket starts in January")
}

func TestPercentChange(t *testing.T) {
	pct, ok := percentChange(dec(-50), dec(-200))
	assert.True(t, ok)
	assertDecimalEqual(t, dec(-25), pct)

	pct, ok = percentChange(dec(1), dec(3))
	assert.True(t, ok)
	assertDecimalEqual(t, decimal.RequireFromString("33.33"), pct)

	_, ok = percentChange(dec(10), decimal.Zero)
	assert.False(t, ok)
}

func TestAggregateProjectionYearly(t *testing.T) {
	inputs := cashflowPlan()
	inputs.TimeHorizonYears = 2
	monthly, err := ProjectNetWorth(inputs, domain.ModeExpected)
	require.NoError(t, err)

	yearly := AggregateProjection(monthly, dateutil.Yearly)
	assert.Equal(t, dateutil.Yearly, yearly.Scale)
	require.Len(t, yearly.Points, 3)
	assert.Equal(t, []dateutil.PeriodKey{"2025", "2026", "2027"}, []dateutil.PeriodKey{yearly.Points[0].Period, yearly.Points[1].Period, yearly.Points[2].Period})

	assertDecimalEqual(t, dec(12000), yearly.Points[0].Income)
	assertDecimalEqual(t, dec(6000), yearly.Points[0].Reinvested)
	assertDecimalEqual(t, monthly.Points[11].NetWorth, yearly.Points[0].NetWorth)
	assertDecimalEqual(t, dec(1000), yearly.Points[2].Income, "the closing month is alone in its year")
	assertDecimalEqual(t, monthly.Points[24].NetWorth, yearly.Points[2].NetWorth)
	assert.Nil(t, yearly.Bands)

	assert.Nil(t, AggregateProjection(nil, dateutil.Yearly))
}

func TestAggregateProjectionKeepsBands(t *testing.T) {
	inputs := volatilePlan()
	inputs.TimeHorizonYears = 1
	monthly, err := NewProjectionEngine(ProjectionOptions{Trials: 10, Seed: 3}).ProjectNetWorth(context.Background(), inputs, domain.ModeMonteCarlo)
	require.NoError(t, err)

	quarterly := AggregateProjection(monthly, dateutil.Quarterly)
	require.Len(t, quarterly.Points, 5)
	require.Len(t, quarterly.Bands, 5)
	assert.Equal(t, monthly.Bands[2], quarterly.Bands[0])
	assert.Equal(t, monthly.Bands[12], quarterly.Bands[4])
	assert.Equal(t, monthly.FinalDistribution, quarterly.FinalDistribution)
}
