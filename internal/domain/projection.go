package domain

import (
	"github.com/shopspring/decimal"
)

// ProjectionInput is the immutable input record for a single projection run
type ProjectionInput struct {
	DesiredAnnualIncome         decimal.Decimal `yaml:"desired_annual_income" json:"desired_annual_income"`
	EmployerMonthlyContribution decimal.Decimal `yaml:"employer_monthly_contribution" json:"employer_monthly_contribution"`
	PersonalMonthlyContribution decimal.Decimal `yaml:"personal_monthly_contribution" json:"personal_monthly_contribution"`
	CurrentAge                  int             `yaml:"current_age" json:"current_age"`
	RetirementAge               int             `yaml:"retirement_age" json:"retirement_age"`
	LifeExpectancy              int             `yaml:"life_expectancy" json:"life_expectancy"`
	AnnualInterestRate          decimal.Decimal `yaml:"annual_interest_rate" json:"annual_interest_rate"`
	StartingPotValue            decimal.Decimal `yaml:"starting_pot_value" json:"starting_pot_value"`
}

// TotalMonthlyContribution returns employer plus personal monthly contributions
func (pi ProjectionInput) TotalMonthlyContribution() decimal.Decimal {
	return pi.EmployerMonthlyContribution.Add(pi.PersonalMonthlyContribution)
}

// YearsInRetirement is the number of drawdown years between retirement and life expectancy
func (pi ProjectionInput) YearsInRetirement() int {
	return pi.LifeExpectancy - pi.RetirementAge
}

// ProjectionSample is the projected pot value at a single age
type ProjectionSample struct {
	Age          int             `json:"age"`
	ProjectedPot decimal.Decimal `json:"projected_pot"`
	// Only set on the retirement-age sample.
	DesiredPotAtRetirement *decimal.Decimal `json:"desired_pot_at_retirement,omitempty"`
}

// IsRetirementPoint reports whether the sample carries the desired lump sum
func (ps ProjectionSample) IsRetirementPoint() bool {
	return ps.DesiredPotAtRetirement != nil
}

// ProjectionResult is the ordered age series plus the lump sum required at retirement
type ProjectionResult struct {
	Samples         []ProjectionSample `json:"samples"`
	RequiredLumpSum decimal.Decimal    `json:"required_lump_sum"`
}

// EmptyResult is returned for rejected input: no samples and a zero lump sum
func EmptyResult() ProjectionResult {
	return ProjectionResult{Samples: []ProjectionSample{}, RequiredLumpSum: decimal.Zero}
}

// IsEmpty reports whether there is anything to present
func (pr ProjectionResult) IsEmpty() bool {
	return len(pr.Samples) == 0
}

// SampleAt returns the sample for age, if present
func (pr ProjectionResult) SampleAt(age int) (ProjectionSample, bool) {
	if len(pr.Samples) == 0 {
		return ProjectionSample{}, false
	}
	idx := age - pr.Samples[0].Age
	if idx < 0 || idx >= len(pr.Samples) {
		return ProjectionSample{}, false
	}
	return pr.Samples[idx], true
}

// ProjectionSummary holds headline figures derived from a result
type ProjectionSummary struct {
	PotAtRetirement decimal.Decimal `json:"pot_at_retirement"`
	RequiredLumpSum decimal.Decimal `json:"required_lump_sum"`
	// Shortfall is RequiredLumpSum minus PotAtRetirement; negative means a surplus.
	Shortfall decimal.Decimal `json:"shortfall"`
	OnTrack   bool            `json:"on_track"`
	// DepletionAge is the first drawdown age with an empty pot, 0 if the pot lasts.
	DepletionAge int             `json:"depletion_age,omitempty"`
	FinalPot     decimal.Decimal `json:"final_pot"`
	PeakPot      decimal.Decimal `json:"peak_pot"`
	PeakAge      int             `json:"peak_age"`
}
