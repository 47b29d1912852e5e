package calculation

import (
	"testing"
	"time"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func ymd(y int, m time.Month, day int) dateutil.LocalDate { return dateutil.New(y, m, day) }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func assertDecimalEqual(t *testing.T, want, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	if !want.Equal(got) {
		require.Failf(t, "decimals differ", "want %s, got %s %v", want, got, msgAndArgs)
	}
}

func assertDecimalNear(t *testing.T, want, got decimal.Decimal, tolerance float64, msgAndArgs ...interface{}) {
	t.Helper()
	if got.Sub(want).Abs().GreaterThan(decimal.NewFromFloat(tolerance)) {
		require.Failf(t, "decimals not within tolerance", "want %s, got %s (tolerance %v) %v", want, got, tolerance, msgAndArgs)
	}
}

func monthlyIncome(t *testing.T, name string, amount int64, start dateutil.LocalDate, conds ...domain.Condition) domain.ScenarioEvent {
	t.Helper()
	e, err := domain.MakeRecurring(domain.RecurringParams{
		Name: name, Type: domain.Income, Amount: dec(amount),
		StartDate: start, Frequency: domain.FrequencyMonthly, UnlockedBy: conds,
	})
	require.NoError(t, err)
	return e
}
