package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/pension-tracker/internal/domain"
)

// InputParser handles parsing of pension plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a plan document. Omitted assumptions keep their defaults.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	config := domain.NewConfiguration()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ValidateConfiguration validates the structure of a plan. Age ordering and income
// checks belong to the projection engine, which reports them as normal outcomes.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateAssumptions(&config.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}

	if err := ip.validateContributions(&config.Contributions); err != nil {
		return fmt.Errorf("inputs validation failed: %w", err)
	}

	seen := make(map[int]bool, len(config.ExistingPots))
	for i, pot := range config.ExistingPots {
		if err := ip.validatePot(&pot); err != nil {
			return fmt.Errorf("existing pot %d validation failed: %w", i, err)
		}
		if seen[pot.ID] {
			return fmt.Errorf("existing pot %d: duplicate id %d", i, pot.ID)
		}
		seen[pot.ID] = true
	}

	return nil
}

func (ip *InputParser) validateAssumptions(a *domain.Assumptions) error {
	if a.AnnualInterestRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("annual interest rate must be greater than -100%%")
	}
	if a.LifeExpectancy <= 0 || a.LifeExpectancy > domain.MaxLifeExpectancy {
		return fmt.Errorf("life expectancy must be between 1 and %d", domain.MaxLifeExpectancy)
	}
	return nil
}

func (ip *InputParser) validateContributions(c *domain.Contributions) error {
	if c.CurrentAge < 0 {
		return fmt.Errorf("current age cannot be negative")
	}
	if c.RetirementAge < 0 {
		return fmt.Errorf("retirement age cannot be negative")
	}
	return nil
}

func (ip *InputParser) validatePot(pot *domain.ExistingPot) error {
	if pot.ID <= 0 {
		return fmt.Errorf("id must be positive")
	}
	if pot.Amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	return nil
}

// SaveConfiguration writes a plan as YAML
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := ip.Marshal(config)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// Marshal encodes a plan as YAML
func (ip *InputParser) Marshal(config *domain.Configuration) ([]byte, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return data, nil
}

// CreateExampleConfiguration creates the default plan shown on first launch
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	config := domain.NewConfiguration()
	config.Name = "Example Pension Plan"
	config.Contributions = domain.Contributions{
		DesiredAnnualIncome:         decimal.NewFromInt(16000),
		EmployerMonthlyContribution: decimal.NewFromInt(200),
		PersonalMonthlyContribution: decimal.NewFromInt(150),
		CurrentAge:                  25,
		RetirementAge:               65,
	}
	config.ExistingPots = []domain.ExistingPot{
		{ID: 1, Name: "Main Pension", Amount: decimal.NewFromInt(10000)},
	}
	return config
}
