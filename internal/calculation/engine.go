package calculation

import (
	"github.com/rpgo/pension-tracker/internal/domain"
	pdec "github.com/rpgo/pension-tracker/pkg/decimal"
)

// ProjectionEngine turns a ProjectionInput into a yearly pot series.
// It holds no per-run state; Project is safe to call repeatedly and concurrently.
type ProjectionEngine struct {
	Debug  bool // Log every yearly balance
	Logger Logger
}

// NewProjectionEngine creates a new projection engine
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the projection engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// Validate checks the input before any computation. Ages are bounded to
// 0..domain.MaxLifeExpectancy so the sample count is known to be small.
func Validate(in domain.ProjectionInput) error {
	if in.CurrentAge < 0 {
		return ageRangeError("current_age", "current age cannot be negative, got %d", in.CurrentAge)
	}
	if in.LifeExpectancy > domain.MaxLifeExpectancy {
		return ageRangeError("life_expectancy", "life expectancy %d exceeds %d", in.LifeExpectancy, domain.MaxLifeExpectancy)
	}
	if in.RetirementAge <= in.CurrentAge {
		return ageRangeError("retirement_age", "retirement age %d must be greater than current age %d", in.RetirementAge, in.CurrentAge)
	}
	if in.LifeExpectancy <= in.RetirementAge {
		return ageRangeError("life_expectancy", "life expectancy %d must be greater than retirement age %d", in.LifeExpectancy, in.RetirementAge)
	}
	if !in.DesiredAnnualIncome.IsPositive() {
		return financialError("desired_annual_income", "desired annual income must be positive, got %s", in.DesiredAnnualIncome)
	}
	if in.EmployerMonthlyContribution.IsNegative() {
		return financialError("employer_monthly_contribution", "contribution cannot be negative, got %s", in.EmployerMonthlyContribution)
	}
	if in.PersonalMonthlyContribution.IsNegative() {
		return financialError("personal_monthly_contribution", "contribution cannot be negative, got %s", in.PersonalMonthlyContribution)
	}
	return nil
}

// Project runs the accumulation, retirement-point and drawdown phases.
// Rejected input yields domain.EmptyResult() together with a *ValidationError.
func (pe *ProjectionEngine) Project(in domain.ProjectionInput) (domain.ProjectionResult, error) {
	if err := Validate(in); err != nil {
		pe.logger().Debugf("projection rejected: %v", err)
		return domain.EmptyResult(), err
	}

	rate := in.AnnualInterestRate
	annualContribution := pdec.NewMoneyFromDecimal(in.TotalMonthlyContribution()).Annual()
	income := pdec.NewMoneyFromDecimal(in.DesiredAnnualIncome)

	samples := make([]domain.ProjectionSample, 0, in.LifeExpectancy-in.CurrentAge+1)
	pot := pdec.NewMoneyFromDecimal(in.StartingPotValue)

	// Interest accrues on the opening balance; the year's contributions earn nothing until next year.
	for age := in.CurrentAge; age < in.RetirementAge; age++ {
		pot = pot.Grow(rate).Add(annualContribution)
		samples = append(samples, pe.sample(age, pot))
	}

	// The retirement sample repeats the closing accumulation balance without another year of interest.
	lumpSum := PresentValueOfAnnuity(income.Decimal, rate, in.YearsInRetirement())
	retirement := pe.sample(in.RetirementAge, pot)
	retirement.DesiredPotAtRetirement = &lumpSum
	samples = append(samples, retirement)

	// The running balance is left unclamped; only emitted samples are floored at zero.
	for age := in.RetirementAge + 1; age <= in.LifeExpectancy; age++ {
		pot = pot.Grow(rate).Sub(income)
		samples = append(samples, pe.sample(age, pot))
	}

	pe.logger().Infof("projected ages %d-%d: pot at retirement %s, required lump sum %s",
		in.CurrentAge, in.LifeExpectancy, retirement.ProjectedPot.StringFixed(2), lumpSum.StringFixed(2))

	return domain.ProjectionResult{Samples: samples, RequiredLumpSum: lumpSum}, nil
}

func (pe *ProjectionEngine) sample(age int, pot pdec.Money) domain.ProjectionSample {
	if pe.Debug {
		pe.logger().Debugf("age %d: running pot %s", age, pot.String())
	}
	return domain.ProjectionSample{Age: age, ProjectedPot: pot.ClampZero().Decimal}
}

func (pe *ProjectionEngine) logger() Logger {
	if pe.Logger == nil {
		return NopLogger{}
	}
	return pe.Logger
}

// Project runs a projection with a default engine
func Project(in domain.ProjectionInput) (domain.ProjectionResult, error) {
	return NewProjectionEngine().Project(in)
}

// ProjectConfiguration reduces a plan to its input and projects it
func (pe *ProjectionEngine) ProjectConfiguration(cfg *domain.Configuration) (domain.ProjectionInput, domain.ProjectionResult, error) {
	in := cfg.ProjectionInput()
	res, err := pe.Project(in)
	return in, res, err
}
