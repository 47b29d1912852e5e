package calculation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ErrNoScenario and ErrNoPlan are returned when a configuration lacks the requested section
var (
	ErrNoScenario = errors.New("configuration has no scenario")
	ErrNoPlan     = errors.New("configuration has no plan")
)

// RunOptions are the per-run overrides of a configuration.
// Zero values keep what the configuration says.
type RunOptions struct {
	Scale       dateutil.Granularity
	Mode        domain.ProjectionMode
	Trials      int
	Seed        int64
	Concurrency int
	Visibility  ConditionVisibility
}

// ScenarioRun bundles a scenario result at the monthly and the requested scale
type ScenarioRun struct {
	Name           string                 `json:"name"`
	InitialBalance decimal.Decimal        `json:"initial_balance"`
	Monthly        domain.ScenarioResult  `json:"-"`
	Result         domain.ScenarioResult  `json:"result"`
	Summary        domain.ScenarioSummary `json:"summary"`
	GeneratedAt    time.Time              `json:"generated_at"`
}

// ProjectionRun bundles a projection result at the monthly and the requested scale
type ProjectionRun struct {
	Monthly     *domain.ProjectionResult `json:"-"`
	Result      *domain.ProjectionResult `json:"result"`
	Analytics   domain.AnalyticsSummary  `json:"analytics"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// CalculationEngine orchestrates scenario and projection runs for a configuration
type CalculationEngine struct {
	Debug  bool // Enable debug output for per-period calculations
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	ce.Logger = orNop(l)
}

func (ce *CalculationEngine) logger() Logger {
	return orNop(ce.Logger)
}

// RunScenario runs the configuration's scenario and resamples it to opts.Scale
func (ce *CalculationEngine) RunScenario(ctx context.Context, config *domain.Configuration, opts RunOptions) (*ScenarioRun, error) {
	if config.Scenario == nil {
		return nil, ErrNoScenario
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	def := config.Scenario
	scenario, err := def.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scenario: %w", err)
	}

	se := NewScenarioEngine()
	se.SetLogger(ce.Logger)
	se.Debug = ce.Debug
	monthly := se.RunScenario(scenario, def.InitialBalance, def.StartDate, def.EndDate, ScenarioOptions{Visibility: opts.Visibility})

	return &ScenarioRun{
		Name:           scenario.Name,
		InitialBalance: def.InitialBalance,
		Monthly:        monthly,
		Result:         Aggregate(monthly, opts.Scale),
		Summary:        SummarizeScenario(monthly, def.InitialBalance),
		GeneratedAt:    nowFunc(),
	}, nil
}

// RunProjection projects the configuration's plan. Return history is loaded from the
// simulation's history_dir when one is configured.
func (ce *CalculationEngine) RunProjection(ctx context.Context, config *domain.Configuration, opts RunOptions) (*ProjectionRun, error) {
	if config.Plan == nil {
		return nil, ErrNoPlan
	}
	sim := config.Simulation

	mode := opts.Mode
	if mode == "" {
		parsed, err := domain.ParseProjectionMode(sim.Mode)
		if err != nil {
			return nil, err
		}
		mode = parsed
	}
	popts := ProjectionOptions{
		Trials:      firstPositive(opts.Trials, sim.Trials),
		Seed:        opts.Seed,
		Concurrency: firstPositive(opts.Concurrency, sim.Concurrency),
	}
	if popts.Seed == 0 {
		popts.Seed = sim.Seed
	}
	if sim.HistoryDir != "" && mode != domain.ModeExpected {
		history, err := LoadReturnHistory(sim.HistoryDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load return history: %w", err)
		}
		for _, issue := range history.ValidateDataQuality() {
			ce.logger().Warnf("return history: %s", issue)
		}
		popts.History = history
	}

	pe := NewProjectionEngine(popts)
	pe.SetLogger(ce.Logger)
	pe.Debug = ce.Debug
	monthly, err := pe.ProjectNetWorth(ctx, *config.Plan, mode)
	if err != nil {
		return nil, err
	}

	plan := config.Plan
	return &ProjectionRun{
		Monthly:     monthly,
		Result:      AggregateProjection(monthly, opts.Scale),
		Analytics:   GenerateProjectionAnalytics(monthly, plan.OneTimeEvents, plan.RecurringEvents, plan.CategoryAssumptions),
		GeneratedAt: nowFunc(),
	}, nil
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
