package dateutil

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    LocalDate
		wantErr bool
	}{
		{name: "iso", input: "2025-03-15", want: New(2025, time.March, 15)},
		{name: "lenient single digits", input: "2025-7-1", want: New(2025, time.July, 1)},
		{name: "month only", input: "2025-11", want: New(2025, time.November, 1)},
		{name: "garbage", input: "March 3rd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewNormalizes(t *testing.T) {
	assert.Equal(t, New(2026, time.January, 1), New(2025, 13, 1))
	assert.Equal(t, New(2025, time.March, 1), New(2025, time.February, 29))
}

func TestAddMonthsClampsDay(t *testing.T) {
	assert.Equal(t, New(2025, time.February, 28), New(2025, time.January, 31).AddMonths(1))
	assert.Equal(t, New(2024, time.February, 29), New(2024, time.January, 31).AddMonths(1))
	assert.Equal(t, New(2024, time.December, 15), New(2025, time.January, 15).AddMonths(-1))
	assert.Equal(t, New(2027, time.February, 28), New(2024, time.February, 29).AddYears(3))
}

func TestCompare(t *testing.T) {
	a := New(2025, time.January, 31)
	b := New(2025, time.February, 1)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(New(2025, time.January, 31)))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, Earliest(a, b), a)
	assert.Equal(t, Latest(a, b), b)
}

func TestMonthIndexRoundTrip(t *testing.T) {
	d := New(2025, time.December, 20)
	assert.Equal(t, New(2025, time.December, 1), FromMonthIndex(d.MonthIndex()))
	assert.Equal(t, New(2026, time.January, 1), FromMonthIndex(d.MonthIndex()+1))
	assert.Equal(t, 14, MonthsUntil(New(2024, time.November, 30), New(2026, time.January, 1)))
}

func TestKey(t *testing.T) {
	d := New(2025, time.August, 9)
	assert.Equal(t, PeriodKey("2025-08"), Key(d, Monthly))
	assert.Equal(t, PeriodKey("2025-Q3"), Key(d, Quarterly))
	assert.Equal(t, PeriodKey("2025"), Key(d, Yearly))
	assert.Equal(t, PeriodKey("2025-Q1"), Key(New(2025, time.March, 31), Quarterly))
	assert.Equal(t, PeriodKey("2025-Q2"), Key(New(2025, time.April, 1), Quarterly))
}

func TestPeriodsBetween(t *testing.T) {
	start := New(2024, time.November, 15)
	end := New(2025, time.April, 2)

	assert.Equal(t, []PeriodKey{"2024-11", "2024-12", "2025-01", "2025-02", "2025-03", "2025-04"}, PeriodsBetween(start, end, Monthly))
	assert.Equal(t, []PeriodKey{"2024-Q4", "2025-Q1", "2025-Q2"}, PeriodsBetween(start, end, Quarterly))
	assert.Equal(t, []PeriodKey{"2024", "2025"}, PeriodsBetween(start, end, Yearly))
}

func TestPeriodsBetweenReversedIsEmpty(t *testing.T) {
	assert.Empty(t, PeriodsBetween(New(2025, time.May, 1), New(2025, time.April, 30), Monthly))
	assert.Empty(t, MonthsBetween(New(2025, time.May, 1), New(2025, time.April, 30)))
}

func TestPeriodsBetweenSameDay(t *testing.T) {
	d := New(2025, time.May, 20)
	assert.Equal(t, []PeriodKey{"2025-05"}, PeriodsBetween(d, d, Monthly))
}

func TestPeriodsBetweenSortedIsChronological(t *testing.T) {
	keys := PeriodsBetween(New(2019, time.June, 1), New(2031, time.February, 1), Monthly)
	sorted := append([]PeriodKey(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	assert.Equal(t, keys, sorted)
	assert.Len(t, keys, 141)
}

func TestPeriodsBetweenIsRestartable(t *testing.T) {
	start, end := New(2025, time.January, 1), New(2025, time.December, 31)
	assert.Equal(t, PeriodsBetween(start, end, Quarterly), PeriodsBetween(start, end, Quarterly))
}

func TestParsePeriodKey(t *testing.T) {
	d, g, err := ParsePeriodKey("2025-Q3")
	require.NoError(t, err)
	assert.Equal(t, Quarterly, g)
	assert.Equal(t, New(2025, time.July, 1), d)

	d, g, err = ParsePeriodKey("2025")
	require.NoError(t, err)
	assert.Equal(t, Yearly, g)
	assert.Equal(t, New(2025, time.January, 1), d)

	d, g, err = ParsePeriodKey("2025-02")
	require.NoError(t, err)
	assert.Equal(t, Monthly, g)
	assert.Equal(t, New(2025, time.February, 1), d)

	_, _, err = ParsePeriodKey("2025-Q5")
	assert.Error(t, err)
	_, _, err = ParsePeriodKey("bogus")
	assert.Error(t, err)
}

func TestCoarsen(t *testing.T) {
	assert.Equal(t, PeriodKey("2025-Q4"), Coarsen("2025-11", Quarterly))
	assert.Equal(t, PeriodKey("2025"), Coarsen("2025-11", Yearly))
	assert.Equal(t, PeriodKey("junk"), Coarsen("junk", Yearly))
}

func TestParseGranularity(t *testing.T) {
	for in, want := range map[string]Granularity{"month": Monthly, "Quarterly": Quarterly, "annual": Yearly, "": Monthly} {
		got, err := ParseGranularity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseGranularity("fortnightly")
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	type wrapper struct {
		On  LocalDate  `json:"on"`
		End *LocalDate `json:"end"`
	}
	in := wrapper{On: New(2025, time.March, 4)}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"on":"2025-03-04","end":null}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestYAMLAcceptsUnquotedDates(t *testing.T) {
	var out struct {
		Start LocalDate  `yaml:"start"`
		Month LocalDate  `yaml:"month"`
		End   *LocalDate `yaml:"end"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("start: 2025-01-15\nmonth: \"2025-06\"\nend: 2026-12-31\n"), &out))
	assert.Equal(t, New(2025, time.January, 15), out.Start)
	assert.Equal(t, New(2025, time.June, 1), out.Month)
	require.NotNil(t, out.End)
	assert.Equal(t, New(2026, time.December, 31), *out.End)

	data, err := yaml.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2025-01-15")
	assert.Contains(t, string(data), "2026-12-31")
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 31, DaysInMonth(2025, time.December))
	assert.True(t, IsLeapYear(2000))
	assert.False(t, IsLeapYear(1900))
	assert.Equal(t, 366, DaysInYear(2024))
}
