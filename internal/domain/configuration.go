package domain

import (
	"fmt"
	"strings"

	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Configuration is the top-level structure of a plan file
type Configuration struct {
	Currency   string             `yaml:"currency" json:"currency"`
	Scenario   *ScenarioSpec      `yaml:"scenario,omitempty" json:"scenario,omitempty"`
	Plan       *PlanInputs        `yaml:"plan,omitempty" json:"plan,omitempty"`
	Simulation SimulationSettings `yaml:"simulation" json:"simulation"`
}

// SimulationSettings configure stochastic projection modes
type SimulationSettings struct {
	Mode        string `yaml:"mode" json:"mode"`
	Trials      int    `yaml:"trials" json:"trials"`
	Seed        int64  `yaml:"seed" json:"seed"`
	Concurrency int    `yaml:"concurrency" json:"concurrency"`
	HistoryDir  string `yaml:"history_dir,omitempty" json:"history_dir,omitempty"`
}

// ScenarioSpec is the file form of a scenario with its running window
type ScenarioSpec struct {
	Name           string             `yaml:"name" json:"name"`
	InitialBalance decimal.Decimal    `yaml:"initial_balance" json:"initial_balance"`
	StartDate      dateutil.LocalDate `yaml:"start_date" json:"start_date"`
	EndDate        dateutil.LocalDate `yaml:"end_date" json:"end_date"`
	Events         []EventSpec        `yaml:"events" json:"events"`
}

// EventSpec is the file form of a ScenarioEvent.
// A one-off event sets Date; a recurring one sets StartDate and Frequency.
type EventSpec struct {
	Name       string              `yaml:"name" json:"name"`
	Type       string              `yaml:"type" json:"type"`
	Amount     decimal.Decimal     `yaml:"amount" json:"amount"`
	Date       dateutil.LocalDate  `yaml:"date,omitempty" json:"date,omitempty"`
	StartDate  dateutil.LocalDate  `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate    *dateutil.LocalDate `yaml:"end_date,omitempty" json:"end_date,omitempty"`
	Frequency  string              `yaml:"frequency,omitempty" json:"frequency,omitempty"`
	UnlockedBy []ConditionSpec     `yaml:"unlocked_by,omitempty" json:"unlocked_by,omitempty"`
}

// ConditionSpec is the file form of a Condition, discriminated by Type:
// date-is, date-in-range, networth-is-above, event-happened, income-is-above.
type ConditionSpec struct {
	Type   string              `yaml:"type" json:"type"`
	Date   dateutil.LocalDate  `yaml:"date,omitempty" json:"date,omitempty"`
	Start  *dateutil.LocalDate `yaml:"start,omitempty" json:"start,omitempty"`
	End    *dateutil.LocalDate `yaml:"end,omitempty" json:"end,omitempty"`
	Amount decimal.Decimal     `yaml:"amount,omitempty" json:"amount,omitempty"`
	Event  string              `yaml:"event,omitempty" json:"event,omitempty"`
}

// Build converts the file form to a Condition
func (s ConditionSpec) Build() (Condition, error) {
	switch strings.ToLower(strings.TrimSpace(s.Type)) {
	case "date-is":
		return DateIs{Date: s.Date}, nil
	case "date-in-range":
		return DateInRange{Start: s.Start, End: s.End}, nil
	case "networth-is-above":
		return NetWorthAbove{Amount: s.Amount}, nil
	case "event-happened":
		return EventHappened{EventName: s.Event}, nil
	case "income-is-above":
		return IncomeAbove{EventName: s.Event, Amount: s.Amount}, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidCondition, s.Type)
	}
}

// SpecFromCondition is the inverse of ConditionSpec.Build
func SpecFromCondition(c Condition) ConditionSpec {
	switch c := c.(type) {
	case DateIs:
		return ConditionSpec{Type: "date-is", Date: c.Date}
	case DateInRange:
		return ConditionSpec{Type: "date-in-range", Start: c.Start, End: c.End}
	case NetWorthAbove:
		return ConditionSpec{Type: "networth-is-above", Amount: c.Amount}
	case EventHappened:
		return ConditionSpec{Type: "event-happened", Event: c.EventName}
	case IncomeAbove:
		return ConditionSpec{Type: "income-is-above", Event: c.EventName, Amount: c.Amount}
	default:
		return ConditionSpec{}
	}
}

// Build converts the file form to a validated ScenarioEvent
func (s EventSpec) Build() (ScenarioEvent, error) {
	typ, err := ParseEventType(s.Type)
	if err != nil {
		return ScenarioEvent{}, fmt.Errorf("event %s: %w", s.Name, err)
	}
	conds := make([]Condition, 0, len(s.UnlockedBy))
	for i, cs := range s.UnlockedBy {
		c, err := cs.Build()
		if err != nil {
			return ScenarioEvent{}, fmt.Errorf("event %s condition %d: %w", s.Name, i, err)
		}
		conds = append(conds, c)
	}

	if s.Frequency == "" {
		return MakeOneOff(OneOffParams{Name: s.Name, Type: typ, Amount: s.Amount, Date: s.Date, UnlockedBy: conds})
	}
	freq, err := ParseFrequency(s.Frequency)
	if err != nil {
		return ScenarioEvent{}, fmt.Errorf("event %s: %w", s.Name, err)
	}
	return MakeRecurring(RecurringParams{
		Name:       s.Name,
		Type:       typ,
		Amount:     s.Amount,
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		Frequency:  freq,
		UnlockedBy: conds,
	})
}

// SpecFromEvent is the inverse of EventSpec.Build
func SpecFromEvent(e ScenarioEvent) EventSpec {
	s := EventSpec{Name: e.Name, Type: string(e.Type), Amount: e.Amount}
	switch e.Recurrence.Kind {
	case Once:
		s.Date = e.Recurrence.Date
	case Recurring:
		s.StartDate = e.Recurrence.StartDate
		s.EndDate = e.Recurrence.EndDate
		s.Frequency = string(e.Recurrence.Frequency)
	}
	for _, c := range e.UnlockedBy {
		s.UnlockedBy = append(s.UnlockedBy, SpecFromCondition(c))
	}
	return s
}

// Build converts the file form to a Scenario
func (s ScenarioSpec) Build() (Scenario, error) {
	if !s.StartDate.IsZero() && !s.EndDate.IsZero() && s.EndDate.Before(s.StartDate) {
		return Scenario{}, fmt.Errorf("scenario %s: %w: end %s before start %s", s.Name, ErrInvalidDateRange, s.EndDate, s.StartDate)
	}
	sc := Scenario{Name: s.Name, Events: make([]ScenarioEvent, 0, len(s.Events))}
	for _, es := range s.Events {
		e, err := es.Build()
		if err != nil {
			return Scenario{}, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		sc.Events = append(sc.Events, e)
	}
	return sc, nil
}
