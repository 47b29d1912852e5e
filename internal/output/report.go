package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
)

// Report is the formatter input: a scenario run, a projection run, or both
type Report struct {
	Title       string                     `json:"title"`
	Currency    string                     `json:"currency"`
	Scale       string                     `json:"scale"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Scenario    *calculation.ScenarioRun   `json:"scenario,omitempty"`
	Projection  *calculation.ProjectionRun `json:"projection,omitempty"`
	Assumptions []string                   `json:"assumptions,omitempty"`
}

// NewScenarioReport wraps a scenario run for formatting
func NewScenarioReport(run *calculation.ScenarioRun, currency string, scale dateutil.Granularity) *Report {
	title := "Scenario"
	if run.Name != "" {
		title = "Scenario: " + run.Name
	}
	return &Report{
		Title:       title,
		Currency:    currency,
		Scale:       scale.String(),
		GeneratedAt: run.GeneratedAt,
		Scenario:    run,
	}
}

// NewProjectionReport wraps a projection run for formatting. The plan, when given,
// is summarized into the report's assumptions.
func NewProjectionReport(run *calculation.ProjectionRun, plan *domain.PlanInputs, currency string, scale dateutil.Granularity) *Report {
	r := &Report{
		Title:       fmt.Sprintf("Net Worth Projection (%s)", run.Result.Mode),
		Currency:    currency,
		Scale:       scale.String(),
		GeneratedAt: run.GeneratedAt,
		Projection:  run,
	}
	if plan != nil {
		r.Assumptions = GenerateAssumptions(plan, currency)
	}
	return r
}

// GenerateReport writes the report with the named formatter into dir and returns the file path
func GenerateReport(report *Report, format, dir string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return "", fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	return WriteFormatted(f, report, dir)
}
