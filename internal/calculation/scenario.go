package calculation

import (
	"fmt"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ConditionVisibility selects what state balance conditions observe in a period
type ConditionVisibility int

const (
	// SettledState evaluates balance-gated events after the unconditional events of the same
	// period have settled: they see the carried balance plus this period's unconditional cash
	// flow and firings. Balance-gated events never see each other within a period.
	SettledState ConditionVisibility = iota
	// PriorPeriod evaluates balance-gated events strictly against the end of the previous period.
	PriorPeriod
)

func (v ConditionVisibility) String() string {
	switch v {
	case SettledState:
		return "settled-state"
	case PriorPeriod:
		return "prior-period"
	default:
		return fmt.Sprintf("visibility(%d)", int(v))
	}
}

// ParseConditionVisibility resolves a visibility name
func ParseConditionVisibility(s string) (ConditionVisibility, error) {
	switch s {
	case "", "settled", "settled-state":
		return SettledState, nil
	case "prior", "prior-period":
		return PriorPeriod, nil
	default:
		return SettledState, fmt.Errorf("unknown condition visibility %q", s)
	}
}

// ScenarioOptions tune a scenario run
type ScenarioOptions struct {
	Visibility ConditionVisibility
}

// ScenarioEngine walks a scenario month by month
type ScenarioEngine struct {
	Logger Logger
	Debug  bool
}

// NewScenarioEngine creates a scenario engine with a no-op logger
func NewScenarioEngine() *ScenarioEngine {
	return &ScenarioEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (se *ScenarioEngine) SetLogger(l Logger) {
	se.Logger = orNop(l)
}

// RunScenario runs a scenario over [startDate, endDate] with the default options
func RunScenario(scenario domain.Scenario, initialBalance decimal.Decimal, startDate, endDate dateutil.LocalDate) domain.ScenarioResult {
	return NewScenarioEngine().RunScenario(scenario, initialBalance, startDate, endDate, ScenarioOptions{})
}

// RunScenario produces one monthly period per calendar month in [startDate, endDate].
// Balance[k] is the previous balance (or initialBalance) plus Cashflow[k].Amount.
// An empty or reversed range yields an empty result.
func (se *ScenarioEngine) RunScenario(scenario domain.Scenario, initialBalance decimal.Decimal, startDate, endDate dateutil.LocalDate, opts ScenarioOptions) domain.ScenarioResult {
	logger := se.logger()
	result := domain.NewScenarioResult(dateutil.Monthly)
	months := dateutil.MonthsBetween(startDate, endDate)
	logger.Infof("running scenario %q: %d events over %d months (%s)", scenario.Name, len(scenario.Events), len(months), opts.Visibility)

	state := newScenarioState(initialBalance)
	fired := make([]bool, len(scenario.Events))

	for _, month := range months {
		key := dateutil.Key(month, dateutil.Monthly)
		for i := range fired {
			fired[i] = false
		}

		// unconditional events (or gated only by the calendar)
		var settled []domain.FiredEvent
		var gated []int
		for i, e := range scenario.Events {
			if !IsScheduled(e.Recurrence, month) {
				continue
			}
			if e.IsConditional() {
				gated = append(gated, i)
				continue
			}
			if allHold(e, month, state) {
				fired[i] = true
				settled = append(settled, firedEvent(e))
			}
		}

		visible := state
		if opts.Visibility == SettledState {
			visible = state.with(settled)
		}
		for _, i := range gated {
			if allHold(scenario.Events[i], month, visible) {
				fired[i] = true
			}
		}

		var flow domain.PeriodCashflow
		flow.Amount = decimal.Zero
		for i, e := range scenario.Events {
			if !fired[i] {
				continue
			}
			fe := firedEvent(e)
			flow.Events = append(flow.Events, fe)
			flow.Amount = flow.Amount.Add(fe.Amount)
		}
		state.apply(flow.Events)

		result.Periods = append(result.Periods, key)
		result.Balance[key] = state.balance
		result.Cashflow[key] = flow

		if se.Debug {
			logger.Debugf("%s: %d fired, cashflow %s, balance %s", key, len(flow.Events), flow.Amount.StringFixed(2), state.balance.StringFixed(2))
		}
	}

	logger.Infof("scenario %q finished: final balance %s", scenario.Name, result.FinalBalance(initialBalance).StringFixed(2))
	return result
}

func (se *ScenarioEngine) logger() Logger {
	if se == nil {
		return NopLogger{}
	}
	return orNop(se.Logger)
}

func firedEvent(e domain.ScenarioEvent) domain.FiredEvent {
	return domain.FiredEvent{Name: e.Name, Type: e.Type, Amount: e.SignedAmount()}
}
