package calculation

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// HistoricalDataPoint represents a single year's historical return
type HistoricalDataPoint struct {
	Year int             `json:"year"`
	Data decimal.Decimal `json:"data"`
}

// HistoricalStatistics provides statistical summary of a series
type HistoricalStatistics struct {
	Mean         decimal.Decimal `json:"mean"`
	Median       decimal.Decimal `json:"median"`
	StdDev       decimal.Decimal `json:"std_dev"`
	Variance     decimal.Decimal `json:"variance"`
	Min          decimal.Decimal `json:"min"`
	Max          decimal.Decimal `json:"max"`
	Count        int             `json:"count"`
	MissingYears []int           `json:"missing_years"`
}

// ReturnSeries is a named table of annual returns (0.12 = 12%)
type ReturnSeries struct {
	Name       string                `json:"name"`
	DataPoints []HistoricalDataPoint `json:"data_points"`
	MinYear    int                   `json:"min_year"`
	MaxYear    int                   `json:"max_year"`
	Statistics HistoricalStatistics  `json:"statistics"`

	byYear map[int]decimal.Decimal
}

// Return returns the series value for a year
func (rs *ReturnSeries) Return(year int) (decimal.Decimal, bool) {
	v, ok := rs.byYear[year]
	return v, ok
}

// ReturnHistory holds every loaded return series by name
type ReturnHistory struct {
	Series   map[string]*ReturnSeries `json:"series"`
	DataPath string                   `json:"data_path"`
}

// NewReturnHistory creates an empty history
func NewReturnHistory() *ReturnHistory {
	return &ReturnHistory{Series: make(map[string]*ReturnSeries)}
}

// LoadReturnHistory loads every *.csv file of dir; the series name is the file name without extension
func LoadReturnHistory(dir string) (*ReturnHistory, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no return series found in %s", dir)
	}
	sort.Strings(files)

	h := NewReturnHistory()
	h.DataPath = dir
	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := h.loadFile(path, name); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *ReturnHistory) loadFile(path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	series, err := ParseReturnSeries(name, file)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	h.Add(series)
	return nil
}

// Add registers a series, replacing any series with the same name
func (h *ReturnHistory) Add(series *ReturnSeries) {
	if h.Series == nil {
		h.Series = make(map[string]*ReturnSeries)
	}
	h.Series[series.Name] = series
}

// Get looks up a series by name
func (h *ReturnHistory) Get(name string) (*ReturnSeries, bool) {
	if h == nil {
		return nil, false
	}
	s, ok := h.Series[name]
	return s, ok
}

// Years returns the sorted union of the years covered by the named series
// (every series when names is empty)
func (h *ReturnHistory) Years(names ...string) []int {
	if h == nil {
		return nil
	}
	if len(names) == 0 {
		for name := range h.Series {
			names = append(names, name)
		}
	}
	seen := make(map[int]bool)
	for _, name := range names {
		if s, ok := h.Series[name]; ok {
			for _, dp := range s.DataPoints {
				seen[dp.Year] = true
			}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// ParseReturnSeries reads a "year,return" CSV with a header row.
// Rows with an invalid year or value are skipped.
func ParseReturnSeries(name string, r io.Reader) (*ReturnSeries, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	var dataPoints []HistoricalDataPoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}
		value, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			continue
		}
		dataPoints = append(dataPoints, HistoricalDataPoint{Year: year, Data: value})
	}

	if len(dataPoints) == 0 {
		return nil, fmt.Errorf("no valid data points found for series %s", name)
	}
	return NewReturnSeries(name, dataPoints), nil
}

// NewReturnSeries builds a series from data points, sorting them by year
func NewReturnSeries(name string, points []HistoricalDataPoint) *ReturnSeries {
	sorted := append([]HistoricalDataPoint(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	rs := &ReturnSeries{
		Name:       name,
		DataPoints: sorted,
		byYear:     make(map[int]decimal.Decimal, len(sorted)),
	}
	for _, dp := range sorted {
		rs.byYear[dp.Year] = dp.Data
	}
	if len(sorted) > 0 {
		rs.MinYear = sorted[0].Year
		rs.MaxYear = sorted[len(sorted)-1].Year
	}
	rs.Statistics = calculateStatistics(sorted)
	return rs
}

// calculateStatistics calculates statistical measures for year-sorted points
func calculateStatistics(dataPoints []HistoricalDataPoint) HistoricalStatistics {
	if len(dataPoints) == 0 {
		return HistoricalStatistics{}
	}

	values := make([]decimal.Decimal, len(dataPoints))
	for i, dp := range dataPoints {
		values[i] = dp.Data
	}
	n := decimal.NewFromInt(int64(len(values)))

	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	mean := sum.Div(n)

	varianceSum := decimal.Zero
	for _, v := range values {
		diff := v.Sub(mean)
		varianceSum = varianceSum.Add(diff.Mul(diff))
	}
	variance := varianceSum.Div(n)
	varianceFloat, _ := variance.Float64()
	stdDev := decimal.NewFromFloat(math.Sqrt(varianceFloat))

	sorted := append([]decimal.Decimal(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	median := sorted[len(sorted)/2]
	if len(sorted)%2 == 0 {
		median = sorted[len(sorted)/2-1].Add(sorted[len(sorted)/2]).Div(decimal.NewFromInt(2))
	}

	var missingYears []int
	first, last := dataPoints[0].Year, dataPoints[len(dataPoints)-1].Year
	if len(dataPoints) < last-first+1 {
		present := make(map[int]bool, len(dataPoints))
		for _, dp := range dataPoints {
			present[dp.Year] = true
		}
		for year := first; year <= last; year++ {
			if !present[year] {
				missingYears = append(missingYears, year)
			}
		}
	}

	return HistoricalStatistics{
		Mean:         mean,
		Median:       median,
		StdDev:       stdDev,
		Variance:     variance,
		Min:          sorted[0],
		Max:          sorted[len(sorted)-1],
		Count:        len(values),
		MissingYears: missingYears,
	}
}

// ValidateDataQuality performs quality checks on the loaded series
func (h *ReturnHistory) ValidateDataQuality() []string {
	var issues []string
	names := make([]string, 0, len(h.Series))
	for name := range h.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := h.Series[name]
		if len(s.Statistics.MissingYears) > 0 {
			issues = append(issues, fmt.Sprintf("Missing years in %s: %v", name, s.Statistics.MissingYears))
		}
		for _, dp := range s.DataPoints {
			// returns > 100% or <= -100% are almost certainly entered as percentages
			if dp.Data.GreaterThan(decimal.NewFromInt(1)) {
				issues = append(issues, fmt.Sprintf("Extreme positive return in %s for year %d: %s", name, dp.Year, dp.Data.String()))
			}
			if dp.Data.LessThanOrEqual(decimal.NewFromInt(-1)) {
				issues = append(issues, fmt.Sprintf("Return of -100%% or worse in %s for year %d: %s", name, dp.Year, dp.Data.String()))
			}
		}
	}
	return issues
}
