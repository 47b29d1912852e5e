package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
)

// ErrNoDistribution is returned when a report has no Monte Carlo bands to export
var ErrNoDistribution = errors.New("report has no monte carlo distribution")

// MonteCarloCSVFormatter exports the per-period net worth distribution of a Monte Carlo
// projection, followed by the summary statistics of the final period.
type MonteCarloCSVFormatter struct{}

func (m MonteCarloCSVFormatter) Name() string      { return "montecarlo-csv" }
func (m MonteCarloCSVFormatter) Extension() string { return "csv" }

func (m MonteCarloCSVFormatter) Format(r *Report) ([]byte, error) {
	if r.Projection == nil || r.Projection.Result == nil || len(r.Projection.Result.Bands) == 0 {
		return nil, ErrNoDistribution
	}
	res := r.Projection.Result
	if len(res.Bands) != len(res.Points) {
		return nil, fmt.Errorf("distribution has %d bands for %d points", len(res.Bands), len(res.Points))
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	// Write header
	if err := writer.Write([]string{"Period", "Mean", "StdDev", "P10", "P25", "P50", "P75", "P90"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, b := range res.Bands {
		row := []string{
			res.Points[i].Period.String(),
			b.Mean.StringFixed(2),
			b.StdDev.StringFixed(2),
			b.P10.StringFixed(2),
			b.P25.StringFixed(2),
			b.P50.StringFixed(2),
			b.P75.StringFixed(2),
			b.P90.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write data row: %w", err)
		}
	}

	if d := res.FinalDistribution; d != nil {
		writer.Flush()
		buf.WriteString("\n")
		summaryData := [][]string{
			{"Metric", "Value", "Description"},
			{"Trials", intToString(res.Trials), "Number of simulated paths"},
			{"Seed", fmt.Sprintf("%d", res.Seed), "Base seed; trial i uses seed+i"},
			{"Final Mean", d.Mean.StringFixed(2), "Mean final net worth across trials"},
			{"Final StdDev", d.StdDev.StringFixed(2), "Standard deviation of final net worth"},
			{"Final P10", d.P10.StringFixed(2), "10th percentile of final net worth"},
			{"Final P50", d.P50.StringFixed(2), "Median final net worth"},
			{"Final P90", d.P90.StringFixed(2), "90th percentile of final net worth"},
		}
		for _, row := range summaryData {
			if err := writer.Write(row); err != nil {
				return nil, fmt.Errorf("failed to write data row: %w", err)
			}
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}
