package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultCurrency is used when a configuration does not name one
const DefaultCurrency = money.USD

// ErrEmptyConfiguration is returned when a file has neither a scenario nor a plan
var ErrEmptyConfiguration = errors.New("configuration has neither a scenario nor a plan")

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a configuration document, fills defaults and validates it
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// applyDefaults normalizes the currency and gives plan items without an id a UUID
func (ip *InputParser) applyDefaults(config *domain.Configuration) {
	config.Currency = strings.ToUpper(strings.TrimSpace(config.Currency))
	if config.Currency == "" {
		config.Currency = DefaultCurrency
	}
	if config.Plan == nil {
		return
	}
	for i := range config.Plan.OneTimeEvents {
		if config.Plan.OneTimeEvents[i].ID == "" {
			config.Plan.OneTimeEvents[i].ID = uuid.NewString()
		}
	}
	for i := range config.Plan.RecurringEvents {
		if config.Plan.RecurringEvents[i].ID == "" {
			config.Plan.RecurringEvents[i].ID = uuid.NewString()
		}
	}
	for i := range config.Plan.PlannedSales {
		if config.Plan.PlannedSales[i].ID == "" {
			config.Plan.PlannedSales[i].ID = uuid.NewString()
		}
	}
}

// ValidateConfiguration validates the loaded configuration and reports every problem found
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.Scenario == nil && config.Plan == nil {
		return ErrEmptyConfiguration
	}

	var errs []error
	if money.GetCurrency(config.Currency) == nil {
		errs = append(errs, fmt.Errorf("unknown currency %q", config.Currency))
	}

	if config.Scenario != nil {
		if err := ip.validateScenario(config.Scenario); err != nil {
			errs = append(errs, fmt.Errorf("scenario validation failed: %w", err))
		}
	}

	if config.Plan != nil {
		if err := config.Plan.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("plan validation failed: %w", err))
		}
	}

	if err := ip.validateSimulation(&config.Simulation); err != nil {
		errs = append(errs, fmt.Errorf("simulation settings validation failed: %w", err))
	}

	return errors.Join(errs...)
}

// validateScenario checks the running window and builds every event
func (ip *InputParser) validateScenario(def *domain.ScenarioSpec) error {
	if def.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if def.EndDate.IsZero() {
		return fmt.Errorf("end date is required")
	}
	if _, err := def.Build(); err != nil {
		return err
	}
	return nil
}

func (ip *InputParser) validateSimulation(sim *domain.SimulationSettings) error {
	if _, err := domain.ParseProjectionMode(sim.Mode); err != nil {
		return err
	}
	if sim.Trials < 0 {
		return fmt.Errorf("trials cannot be negative")
	}
	if sim.Concurrency < 0 {
		return fmt.Errorf("concurrency cannot be negative")
	}
	if sim.HistoryDir != "" {
		if info, err := os.Stat(sim.HistoryDir); err != nil || !info.IsDir() {
			return fmt.Errorf("history directory %s does not exist", sim.HistoryDir)
		}
	}
	return nil
}

// SaveConfiguration writes a configuration as YAML
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	start := dateutil.MustParse("2025-01-01")
	rentEnd := dateutil.MustParse("2026-06-30")
	carLoanEnd := dateutil.MustParse("2027-12-31")

	return &domain.Configuration{
		Currency: DefaultCurrency,
		Scenario: &domain.ScenarioSpec{
			Name:           "First Year Budget",
			InitialBalance: decimal.NewFromInt(2000),
			StartDate:      start,
			EndDate:        dateutil.MustParse("2025-12-31"),
			Events: []domain.EventSpec{
				{Name: "Salary", Type: "income", Amount: decimal.NewFromInt(4200), StartDate: start, Frequency: "monthly"},
				{Name: "Rent", Type: "expense", Amount: decimal.NewFromInt(1650), StartDate: start, EndDate: &rentEnd, Frequency: "monthly"},
				{Name: "Car Insurance", Type: "expense", Amount: decimal.NewFromInt(540), StartDate: dateutil.MustParse("2025-02-01"), Frequency: "quarterly"},
				{Name: "Tax Refund", Type: "income", Amount: decimal.NewFromInt(1800), Date: dateutil.MustParse("2025-04-15")},
				{
					Name: "Brokerage Deposit", Type: "expense", Amount: decimal.NewFromInt(1000),
					StartDate: start, Frequency: "monthly",
					UnlockedBy: []domain.ConditionSpec{{Type: "networth-is-above", Amount: decimal.NewFromInt(10000)}},
				},
				{
					Name: "Vacation", Type: "expense", Amount: decimal.NewFromInt(3000),
					Date:       dateutil.MustParse("2025-08-01"),
					UnlockedBy: []domain.ConditionSpec{{Type: "event-happened", Event: "Tax Refund"}},
				},
			},
		},
		Plan: &domain.PlanInputs{
			StartDate:        start,
			TimeHorizonYears: 20,
			CategoryAssumptions: []domain.CategoryAssumption{
				{CategoryID: "stocks", CategoryName: "Index Funds", CurrentValue: decimal.NewFromInt(85000), ExpectedAnnualReturn: decimal.NewFromFloat(0.07), Variance: decimal.NewFromFloat(0.0289)},
				{CategoryID: "bonds", CategoryName: "Bond Funds", CurrentValue: decimal.NewFromInt(30000), ExpectedAnnualReturn: decimal.NewFromFloat(0.035), Variance: decimal.NewFromFloat(0.0036)},
				{CategoryID: "home", CategoryName: "Home Equity", CurrentValue: decimal.NewFromInt(120000), ExpectedAnnualReturn: decimal.NewFromFloat(0.03), Variance: decimal.NewFromFloat(0.0025)},
				{CategoryID: "cash", CategoryName: "Savings", CurrentValue: decimal.NewFromInt(15000), ExpectedAnnualReturn: decimal.NewFromFloat(0.02)},
			},
			IncomeExpense: domain.IncomeExpenseAssumption{
				AnnualIncome:     domain.Estimate{Mean: decimal.NewFromInt(95000), Variance: decimal.NewFromInt(25000000)},
				AnnualExpenses:   domain.Estimate{Mean: decimal.NewFromInt(68000), Variance: decimal.NewFromInt(9000000)},
				ReinvestmentRate: decimal.NewFromFloat(0.8),
				ReinvestmentAllocation: []domain.Allocation{
					{CategoryID: "stocks", Percentage: decimal.NewFromFloat(0.7)},
					{CategoryID: "bonds", Percentage: decimal.NewFromFloat(0.3)},
				},
				RemainderCategoryID: "cash",
			},
			OneTimeEvents: []domain.OneTimeEvent{
				{ID: "wedding", Date: dateutil.MustParse("2026-09-12"), Amount: decimal.NewFromInt(-25000), Description: "Wedding", Emoji: "💍"},
				{ID: "inheritance", Date: dateutil.MustParse("2031-03-01"), Amount: decimal.NewFromInt(40000), Description: "Inheritance"},
			},
			RecurringEvents: []domain.RecurringEvent{
				{ID: "car-loan", StartDate: start, EndDate: &carLoanEnd, Amount: decimal.NewFromInt(-450), Frequency: domain.FrequencyMonthly, Description: "Car Loan", Emoji: "🚗"},
				{ID: "bonus", StartDate: dateutil.MustParse("2025-12-01"), Amount: decimal.NewFromInt(6000), Frequency: domain.FrequencyYearly, Description: "Annual Bonus"},
			},
			PlannedSales: []domain.PlannedSale{
				{
					ID: "downsize", CategoryID: "home", Date: dateutil.MustParse("2040-06-01"),
					Fraction: decimal.NewFromFloat(0.4), CostBasis: decimal.NewFromInt(40000),
					CapitalGainsRate: decimal.NewFromFloat(0.15), Description: "Downsize Home",
				},
			},
		},
		Simulation: domain.SimulationSettings{
			Mode:        string(domain.ModeExpected),
			Trials:      500,
			Seed:        42,
			Concurrency: 8,
		},
	}
}
