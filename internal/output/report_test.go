package output_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	stddec "github.com/shopspring/decimal"

	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/internal/output"
	"github.com/rpgo/networth-planner/pkg/dateutil"
)

func TestFormatters(t *testing.T) {
	if got := output.FormatCurrency(stddec.NewFromFloat(123.45), "USD"); got != "$123.45" {
		t.Fatalf("FormatCurrency = %q", got)
	}
	if got := output.FormatPercentage(stddec.NewFromFloat(12.34)); got != "12.34%" {
		t.Fatalf("FormatPercentage = %q", got)
	}
}

func runScenario(t *testing.T) *calculation.ScenarioRun {
	t.Helper()
	start := dateutil.New(2025, time.January, 1)
	config := &domain.Configuration{
		Currency: "USD",
		Scenario: &domain.ScenarioSpec{
			Name:      "Baseline",
			StartDate: start,
			EndDate:   dateutil.New(2025, time.March, 31),
			Events: []domain.EventSpec{
				{Name: "salary", Type: "income", Amount: stddec.NewFromInt(1000), StartDate: start, Frequency: "monthly"},
			},
		},
	}
	run, err := calculation.NewCalculationEngine().RunScenario(context.Background(), config, calculation.RunOptions{})
	if err != nil {
		t.Fatalf("RunScenario error: %v", err)
	}
	return run
}

func TestGenerateReport_AllFormats(t *testing.T) {
	report := output.NewScenarioReport(runScenario(t), "USD", dateutil.Monthly)
	report.GeneratedAt = time.Date(2025, time.April, 1, 8, 30, 0, 0, time.UTC)

	dir := t.TempDir()
	for format, ext := range map[string]string{"console": "txt", "json": "json", "csv": "csv", "xlsx": "xlsx"} {
		path, err := output.GenerateReport(report, format, dir)
		if err != nil {
			t.Fatalf("GenerateReport %s error: %v", format, err)
		}
		if want := filepath.Join(dir, "networth_report_20250401_083000."+ext); path != want {
			t.Fatalf("GenerateReport %s wrote %s, want %s", format, path, want)
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Fatalf("GenerateReport %s produced no file: %v", format, err)
		}
	}
}

func TestGenerateReport_UnsupportedFormat(t *testing.T) {
	report := output.NewScenarioReport(runScenario(t), "USD", dateutil.Monthly)
	_, err := output.GenerateReport(report, "pdf", t.TempDir())
	if !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "console, csv, json") || !strings.Contains(err.Error(), "excel") {
		t.Fatalf("error should list formats and aliases: %v", err)
	}
}

func TestGenerateReport_MonteCarloCSVNeedsBands(t *testing.T) {
	report := output.NewScenarioReport(runScenario(t), "USD", dateutil.Monthly)
	if _, err := output.GenerateReport(report, "montecarlo-csv", t.TempDir()); !errors.Is(err, output.ErrNoDistribution) {
		t.Fatalf("expected ErrNoDistribution, got %v", err)
	}
}
