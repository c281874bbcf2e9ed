package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Fixed assumptions used when a plan does not override them
var (
	DefaultAnnualInterestRate = decimal.NewFromFloat(0.049)
	DefaultLifeExpectancy     = 81
)

// MaxLifeExpectancy bounds the projection horizon; ages run from 0 up to it.
const MaxLifeExpectancy = 130

// Assumptions are the fixed economic and demographic parameters of a plan
type Assumptions struct {
	AnnualInterestRate decimal.Decimal `yaml:"annual_interest_rate" json:"annual_interest_rate"`
	LifeExpectancy     int             `yaml:"life_expectancy" json:"life_expectancy"`
}

// DefaultAssumptions returns 4.9% growth and a life expectancy of 81
func DefaultAssumptions() Assumptions {
	return Assumptions{
		AnnualInterestRate: DefaultAnnualInterestRate,
		LifeExpectancy:     DefaultLifeExpectancy,
	}
}

// GenerateAssumptions creates a readable assumptions list from the plan values
func (a Assumptions) GenerateAssumptions() []string {
	return []string{
		fmt.Sprintf("Fixed annual interest rate: %s%%", a.AnnualInterestRate.Mul(decimal.NewFromInt(100)).String()),
		fmt.Sprintf("Assumed life expectancy: %d years", a.LifeExpectancy),
		"Interest is applied to the opening balance before the year's contributions are added",
		"Retirement income is withdrawn at the end of each drawdown year",
		"No tax, inflation or charges are modelled",
	}
}

// Contributions are the user's form inputs
type Contributions struct {
	DesiredAnnualIncome         decimal.Decimal `yaml:"desired_annual_income" json:"desired_annual_income"`
	EmployerMonthlyContribution decimal.Decimal `yaml:"employer_monthly_contribution" json:"employer_monthly_contribution"`
	PersonalMonthlyContribution decimal.Decimal `yaml:"personal_monthly_contribution" json:"personal_monthly_contribution"`
	CurrentAge                  int             `yaml:"current_age" json:"current_age"`
	RetirementAge               int             `yaml:"retirement_age" json:"retirement_age"`
}

// Configuration represents a complete pension plan file.
// Decode into NewConfiguration() so that omitted assumptions keep their defaults.
type Configuration struct {
	Name          string        `yaml:"name,omitempty" json:"name,omitempty"`
	Assumptions   Assumptions   `yaml:"assumptions" json:"assumptions"`
	Contributions Contributions `yaml:"inputs" json:"inputs"`
	ExistingPots  []ExistingPot `yaml:"existing_pots" json:"existing_pots"`
}

// NewConfiguration returns an empty plan carrying the default assumptions
func NewConfiguration() *Configuration {
	return &Configuration{Assumptions: DefaultAssumptions()}
}

// StartingPotValue sums the existing pots
func (c *Configuration) StartingPotValue() decimal.Decimal {
	return NewPotList(c.ExistingPots...).Total()
}

// ProjectionInput reduces the plan to the engine's input record
func (c *Configuration) ProjectionInput() ProjectionInput {
	return BuildProjectionInput(c.Contributions, c.Assumptions, c.StartingPotValue())
}

// BuildProjectionInput combines form inputs, assumptions and the pot total
func BuildProjectionInput(in Contributions, a Assumptions, startingPot decimal.Decimal) ProjectionInput {
	return ProjectionInput{
		DesiredAnnualIncome:         in.DesiredAnnualIncome,
		EmployerMonthlyContribution: in.EmployerMonthlyContribution,
		PersonalMonthlyContribution: in.PersonalMonthlyContribution,
		CurrentAge:                  in.CurrentAge,
		RetirementAge:               in.RetirementAge,
		LifeExpectancy:              a.LifeExpectancy,
		AnnualInterestRate:          a.AnnualInterestRate,
		StartingPotValue:            startingPot,
	}
}
