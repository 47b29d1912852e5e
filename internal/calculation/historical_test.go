package calculation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeries(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestParseReturnSeries(t *testing.T) {
	csv := "year,return\n2003,0.25\n2001, -0.10\nnot-a-year,0.5\n2002,bad\n2004,0.05\n"
	series, err := ParseReturnSeries("stocks", strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, "stocks", series.Name)
	require.Len(t, series.DataPoints, 3)
	assert.Equal(t, 2001, series.DataPoints[0].Year, "points are sorted by year")
	assert.Equal(t, 2001, series.MinYear)
	assert.Equal(t, 2004, series.MaxYear)

	v, ok := series.Return(2003)
	require.True(t, ok)
	assertDecimalEqual(t, decimal.RequireFromString("0.25"), v)
	_, ok = series.Return(2002)
	assert.False(t, ok, "unparseable rows are skipped")

	stats := series.Statistics
	assert.Equal(t, 3, stats.Count)
	assertDecimalEqual(t, decimal.RequireFromString("0.0666666666666667"), stats.Mean)
	assertDecimalEqual(t, decimal.RequireFromString("0.05"), stats.Median)
	assertDecimalEqual(t, decimal.RequireFromString("-0.10"), stats.Min)
	assertDecimalEqual(t, decimal.RequireFromString("0.25"), stats.Max)
	assert.Equal(t, []int{2002}, stats.MissingYears)
}

func TestParseReturnSeriesErrors(t *testing.T) {
	_, err := ParseReturnSeries("empty", strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseReturnSeries("narrow", strings.NewReader("year\n2001\n"))
	assert.Error(t, err)

	_, err = ParseReturnSeries("no-data", strings.NewReader("year,return\nx,y\n"))
	assert.Error(t, err)
}

func TestCalculateStatisticsEvenMedian(t *testing.T) {
	stats := calculateStatistics([]HistoricalDataPoint{
		{Year: 2000, Data: decimal.RequireFromString("0.1")},
		{Year: 2001, Data: decimal.RequireFromString("0.3")},
		{Year: 2002, Data: decimal.RequireFromString("-0.2")},
		{Year: 2003, Data: decimal.RequireFromString("0.2")},
	})
	assertDecimalEqual(t, decimal.RequireFromString("0.15"), stats.Median)
	assertDecimalEqual(t, decimal.RequireFromString("0.1"), stats.Mean)
	assertDecimalEqual(t, decimal.RequireFromString("0.035"), stats.Variance)
	assert.Empty(t, stats.MissingYears)
}

func TestLoadReturnHistory(t *testing.T) {
	dir := t.TempDir()
	writeSeries(t, dir, "stocks.csv", "year,return\n2000,0.1\n2001,0.2\n")
	writeSeries(t, dir, "bonds.csv", "year,return\n2001,0.03\n2002,0.04\n")
	writeSeries(t, dir, "notes.txt", "ignored")

	history, err := LoadReturnHistory(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, history.DataPath)
	assert.Len(t, history.Series, 2)

	_, ok := history.Get("stocks")
	assert.True(t, ok)
	_, ok = history.Get("notes")
	assert.False(t, ok)

	assert.Equal(t, []int{2000, 2001, 2002}, history.Years())
	assert.Equal(t, []int{2001, 2002}, history.Years("bonds", "unknown"))
	assert.Empty(t, history.ValidateDataQuality())
}

func TestLoadReturnHistoryErrors(t *testing.T) {
	_, err := LoadReturnHistory(t.TempDir())
	assert.Error(t, err, "an empty directory has no series")

	dir := t.TempDir()
	writeSeries(t, dir, "broken.csv", "year,return\n")
	_, err = LoadReturnHistory(dir)
	assert.Error(t, err)
}

func TestReturnHistoryNilSafe(t *testing.T) {
	var h *ReturnHistory
	_, ok := h.Get("anything")
	assert.False(t, ok)
	assert.Nil(t, h.Years())
}

func TestValidateDataQuality(t *testing.T) {
	h := NewReturnHistory()
	h.Add(NewReturnSeries("percent", []HistoricalDataPoint{
		{Year: 2000, Data: decimal.NewFromInt(12)},
		{Year: 2002, Data: decimal.NewFromInt(-1)},
	}))

	issues := h.ValidateDataQuality()
	require.Len(t, issues, 3)
	assert.Contains(t, issues[0], "Missing years in percent: [2001]")
	assert.Contains(t, issues[1], "Extreme positive return")
	assert.Contains(t, issues[2], "-100%")
}

func TestHistoricalYearIsSharedAcrossCategories(t *testing.T) {
	h := NewReturnHistory()
	h.Add(NewReturnSeries("a", []HistoricalDataPoint{{Year: 1990, Data: decimal.RequireFromString("0.1")}, {Year: 1991, Data: decimal.RequireFromString("0.2")}}))

	pe := NewProjectionEngine(ProjectionOptions{History: h})
	models := []categoryModel{{series: h.Series["a"]}, {series: h.Series["a"]}}
	ps := pe.sampler(42, models)
	for year := 2025; year < 2035; year++ {
		month := ymd(year, 6, 1)
		first := ps.growthFactor(models[0], month)
		assert.Equal(t, first, ps.growthFactor(models[1], month), "year %d", year)
		assert.Equal(t, first, ps.growthFactor(models[0], ymd(year, 11, 1)), "year %d", year)
		assert.Contains(t, []int{1990, 1991}, ps.drawn[year])
	}
}
