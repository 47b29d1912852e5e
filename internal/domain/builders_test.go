package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeOneOff(t *testing.T) {
	date := dateutil.New(2025, time.March, 10)
	tests := []struct {
		name    string
		params  OneOffParams
		wantErr error
	}{
		{
			name:   "valid income",
			params: OneOffParams{Name: "bonus", Type: Income, Amount: decimal.NewFromInt(500), Date: date},
		},
		{
			name:    "empty name",
			params:  OneOffParams{Type: Income, Amount: decimal.NewFromInt(500), Date: date},
			wantErr: ErrInvalidEventName,
		},
		{
			name:    "unknown type",
			params:  OneOffParams{Name: "x", Type: "gift", Amount: decimal.NewFromInt(500), Date: date},
			wantErr: ErrUnknownEventType,
		},
		{
			name:    "zero amount",
			params:  OneOffParams{Name: "x", Type: Expense, Amount: decimal.Zero, Date: date},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			params:  OneOffParams{Name: "x", Type: Expense, Amount: decimal.NewFromInt(-3), Date: date},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "missing date",
			params:  OneOffParams{Name: "x", Type: Expense, Amount: decimal.NewFromInt(3)},
			wantErr: ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := MakeOneOff(tt.params)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Once, e.Recurrence.Kind)
			assert.Equal(t, date, e.Recurrence.Date)
			assert.True(t, e.SignedAmount().Equal(decimal.NewFromInt(500)))
		})
	}
}

func TestMakeRecurring(t *testing.T) {
	start := dateutil.New(2025, time.January, 1)
	before := dateutil.New(2024, time.December, 31)
	end := dateutil.New(2025, time.December, 31)

	e, err := MakeRecurring(RecurringParams{
		Name: "rent", Type: Expense, Amount: decimal.NewFromInt(1200),
		StartDate: start, EndDate: &end, Frequency: FrequencyMonthly,
	})
	require.NoError(t, err)
	assert.Equal(t, Recurring, e.Recurrence.Kind)
	assert.True(t, e.SignedAmount().Equal(decimal.NewFromInt(-1200)))

	// the builder owns a copy of the end date
	end = end.AddYears(5)
	assert.Equal(t, dateutil.New(2025, time.December, 31), *e.Recurrence.EndDate)

	_, err = MakeRecurring(RecurringParams{
		Name: "rent", Type: Expense, Amount: decimal.NewFromInt(1200),
		StartDate: start, EndDate: &before, Frequency: FrequencyMonthly,
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = MakeRecurring(RecurringParams{
		Name: "rent", Type: Expense, Amount: decimal.NewFromInt(1200),
		StartDate: start, Frequency: "weekly",
	})
	assert.ErrorIs(t, err, ErrUnknownFrequency)

	_, err = MakeRecurring(RecurringParams{
		Name: "rent", Type: Expense, Amount: decimal.NewFromInt(1200), Frequency: FrequencyYearly,
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestMakeRecurringRejectsBadCondition(t *testing.T) {
	_, err := MakeRecurring(RecurringParams{
		Name: "raise", Type: Income, Amount: decimal.NewFromInt(10),
		StartDate: dateutil.New(2025, time.January, 1), Frequency: FrequencyMonthly,
		UnlockedBy: []Condition{EventHappened{}},
	})
	assert.ErrorIs(t, err, ErrInvalidCondition)
}

func TestNewCategoryAssumption(t *testing.T) {
	_, err := NewCategoryAssumption("stocks", "Stocks", decimal.NewFromInt(1000), decimal.NewFromFloat(0.07), decimal.NewFromFloat(0.02))
	require.NoError(t, err)

	_, err = NewCategoryAssumption("", "Stocks", decimal.NewFromInt(1000), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = NewCategoryAssumption("s", "Stocks", decimal.NewFromInt(-1), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewCategoryAssumption("s", "Stocks", decimal.NewFromInt(1), decimal.Zero, decimal.NewFromFloat(-0.1))
	assert.ErrorIs(t, err, ErrNegativeVariance)

	_, err = NewCategoryAssumption("s", "Stocks", decimal.NewFromInt(1), decimal.NewFromInt(-1), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestParseEnums(t *testing.T) {
	f, err := ParseFrequency("Annual")
	require.NoError(t, err)
	assert.Equal(t, FrequencyYearly, f)
	assert.Equal(t, 12, f.Months())
	assert.Equal(t, 3, FrequencyQuarterly.Months())
	assert.Equal(t, 0, Frequency("weekly").Months())

	typ, err := ParseEventType(" Expense ")
	require.NoError(t, err)
	assert.Equal(t, Expense, typ)
	_, err = ParseEventType("transfer")
	assert.ErrorIs(t, err, ErrUnknownEventType)

	m, err := ParseProjectionMode("mc")
	require.NoError(t, err)
	assert.Equal(t, ModeMonteCarlo, m)
	_, err = ParseProjectionMode("wild-guess")
	assert.Error(t, err)
}

func TestConditionTags(t *testing.T) {
	start := dateutil.New(2025, time.January, 1)
	tests := []struct {
		cond Condition
		tag  ConditionTag
	}{
		{DateIs{Date: start}, CashflowTag},
		{DateInRange{Start: &start}, CashflowTag},
		{NetWorthAbove{Amount: decimal.NewFromInt(1)}, BalanceTag},
		{EventHappened{EventName: "a"}, BalanceTag},
		{IncomeAbove{EventName: "a", Amount: decimal.NewFromInt(1)}, BalanceTag},
	}
	for _, tt := range tests {
		t.Run(tt.cond.String(), func(t *testing.T) {
			assert.Equal(t, tt.tag, tt.cond.Tag())
		})
	}
}

func TestDateInRangeContains(t *testing.T) {
	start := dateutil.New(2025, time.March, 15)
	end := dateutil.New(2025, time.June, 10)
	r := DateInRange{Start: &start, End: &end}

	assert.False(t, r.Contains(dateutil.New(2025, time.February, 1)))
	assert.True(t, r.Contains(dateutil.New(2025, time.March, 1)))
	assert.True(t, r.Contains(dateutil.New(2025, time.June, 1)))
	assert.False(t, r.Contains(dateutil.New(2025, time.July, 1)))
	assert.True(t, DateInRange{}.Contains(dateutil.New(1990, time.July, 1)))
}

func TestPeriodCashflowTotals(t *testing.T) {
	c := PeriodCashflow{Events: []FiredEvent{
		{Name: "salary", Type: Income, Amount: decimal.NewFromInt(3000)},
		{Name: "rent", Type: Expense, Amount: decimal.NewFromInt(-1200)},
		{Name: "food", Type: Expense, Amount: decimal.NewFromInt(-300)},
	}}
	assert.True(t, c.Income().Equal(decimal.NewFromInt(3000)))
	assert.True(t, c.Expenses().Equal(decimal.NewFromInt(1500)))
}
