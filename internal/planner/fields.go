package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rpgo/pension-tracker/internal/domain"
	pdec "github.com/rpgo/pension-tracker/pkg/decimal"
)

// ErrUnknownField is returned by SetField for names outside the form
var ErrUnknownField = errors.New("unknown input field")

// Form field names
const (
	FieldDesiredAnnualIncome         = "desired_annual_income"
	FieldEmployerMonthlyContribution = "employer_monthly_contribution"
	FieldPersonalMonthlyContribution = "personal_monthly_contribution"
	FieldCurrentAge                  = "current_age"
	FieldRetirementAge               = "retirement_age"
)

// Field describes one input on the plan form
type Field struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Money       bool   `json:"money"`
}

// Fields lists the form inputs in display order
var Fields = []Field{
	{Name: FieldDesiredAnnualIncome, Label: "Desired Annual Income in Retirement (£)", Placeholder: "e.g., 16000", Money: true},
	{Name: FieldEmployerMonthlyContribution, Label: "Employer Monthly Contribution (£)", Placeholder: "e.g., 200", Money: true},
	{Name: FieldPersonalMonthlyContribution, Label: "Personal Monthly Contribution (£)", Placeholder: "e.g., 150", Money: true},
	{Name: FieldCurrentAge, Label: "Current Age", Placeholder: "e.g., 30"},
	{Name: FieldRetirementAge, Label: "Age at which you would like to retire", Placeholder: "e.g., 65"},
}

// LookupField finds a field by name
func LookupField(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ParseAge reads the leading integer of raw text; anything else yields 0.
// "65" and "65 years" both give 65, "abc" gives 0.
func ParseAge(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// applyField writes raw form text into the contributions
func applyField(c *domain.Contributions, name, raw string) error {
	switch name {
	case FieldDesiredAnnualIncome:
		c.DesiredAnnualIncome = pdec.ParseMoneyOrZero(raw).Decimal
	case FieldEmployerMonthlyContribution:
		c.EmployerMonthlyContribution = pdec.ParseMoneyOrZero(raw).Decimal
	case FieldPersonalMonthlyContribution:
		c.PersonalMonthlyContribution = pdec.ParseMoneyOrZero(raw).Decimal
	case FieldCurrentAge:
		c.CurrentAge = ParseAge(raw)
	case FieldRetirementAge:
		c.RetirementAge = ParseAge(raw)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// FieldValue renders the current value of a form field
func FieldValue(c domain.Contributions, name string) (string, error) {
	switch name {
	case FieldDesiredAnnualIncome:
		return c.DesiredAnnualIncome.String(), nil
	case FieldEmployerMonthlyContribution:
		return c.EmployerMonthlyContribution.String(), nil
	case FieldPersonalMonthlyContribution:
		return c.PersonalMonthlyContribution.String(), nil
	case FieldCurrentAge:
		return strconv.Itoa(c.CurrentAge), nil
	case FieldRetirementAge:
		return strconv.Itoa(c.RetirementAge), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// Form bounds on the retirement age input
const (
	MinRetirementAge = 26
	MaxRetirementAge = 80
)

// FieldIssue is an advisory message shown next to a form input.
// Issues do not block a projection; the engine applies its own validation.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CheckForm returns advisory messages for the current form values
func CheckForm(c domain.Contributions) []FieldIssue {
	var issues []FieldIssue
	if !c.DesiredAnnualIncome.GreaterThan(decimal.Zero) {
		issues = append(issues, FieldIssue{FieldDesiredAnnualIncome, "Desired income must be a positive number"})
	}
	if c.EmployerMonthlyContribution.IsNegative() {
		issues = append(issues, FieldIssue{FieldEmployerMonthlyContribution, "Employer contribution cannot be negative"})
	}
	if c.PersonalMonthlyContribution.IsNegative() {
		issues = append(issues, FieldIssue{FieldPersonalMonthlyContribution, "Personal contribution cannot be negative"})
	}
	if c.RetirementAge < MinRetirementAge {
		issues = append(issues, FieldIssue{FieldRetirementAge, fmt.Sprintf("Retirement age must be at least %d", MinRetirementAge)})
	} else if c.RetirementAge > MaxRetirementAge {
		issues = append(issues, FieldIssue{FieldRetirementAge, fmt.Sprintf("Retirement age cannot exceed %d", MaxRetirementAge)})
	}
	return issues
}
