package calculation

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/pension-tracker/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// scenarioA is the default plan: 25 to 65, life expectancy 81, £350 a month, £10k starting pot.
func scenarioA() domain.ProjectionInput {
	return domain.ProjectionInput{
		DesiredAnnualIncome:         decimal.NewFromInt(16000),
		EmployerMonthlyContribution: decimal.NewFromInt(200),
		PersonalMonthlyContribution: decimal.NewFromInt(150),
		CurrentAge:                  25,
		RetirementAge:               65,
		LifeExpectancy:              81,
		AnnualInterestRate:          d("0.049"),
		StartingPotValue:            decimal.NewFromInt(10000),
	}
}

func TestProject_ScenarioA(t *testing.T) {
	res, err := NewProjectionEngine().Project(scenarioA())
	require.NoError(t, err)

	require.Len(t, res.Samples, 57)
	assert.Equal(t, 25, res.Samples[0].Age)
	assert.Equal(t, 81, res.Samples[56].Age)

	// First two accumulation years: 10000*1.049+4200, then 14690*1.049+4200.
	assert.True(t, res.Samples[0].ProjectedPot.Equal(d("14690")), "age 25: %s", res.Samples[0].ProjectedPot)
	assert.True(t, res.Samples[1].ProjectedPot.Equal(d("19609.81")), "age 26: %s", res.Samples[1].ProjectedPot)

	// 16000 * (1 - 1.049^-16) / 0.049
	assert.InDelta(t, 174645.19, res.RequiredLumpSum.InexactFloat64(), 0.005)

	retirement, ok := res.SampleAt(65)
	require.True(t, ok)
	require.NotNil(t, retirement.DesiredPotAtRetirement)
	assert.True(t, retirement.DesiredPotAtRetirement.Equal(res.RequiredLumpSum))
	assert.InDelta(t, 562914.61, retirement.ProjectedPot.InexactFloat64(), 0.01)

	final, ok := res.SampleAt(81)
	require.True(t, ok)
	assert.InDelta(t, 834720.34, final.ProjectedPot.InexactFloat64(), 0.01)
}

func TestProject_RetirementSampleIsNotRecompounded(t *testing.T) {
	res, err := Project(scenarioA())
	require.NoError(t, err)

	lastAccumulation, _ := res.SampleAt(64)
	retirement, _ := res.SampleAt(65)
	firstDrawdown, _ := res.SampleAt(66)

	assert.True(t, retirement.ProjectedPot.Equal(lastAccumulation.ProjectedPot),
		"retirement sample %s should repeat the age-64 balance %s", retirement.ProjectedPot, lastAccumulation.ProjectedPot)

	expected := lastAccumulation.ProjectedPot.Mul(d("1.049")).Round(8).Sub(decimal.NewFromInt(16000))
	assert.True(t, firstDrawdown.ProjectedPot.Equal(expected), "age 66: got %s want %s", firstDrawdown.ProjectedPot, expected)
}

func TestProject_ScenarioB_EmptyPotClampsAtZero(t *testing.T) {
	in := domain.ProjectionInput{
		DesiredAnnualIncome:         decimal.NewFromInt(16000),
		EmployerMonthlyContribution: decimal.Zero,
		PersonalMonthlyContribution: decimal.Zero,
		CurrentAge:                  30,
		RetirementAge:               31,
		LifeExpectancy:              40,
		AnnualInterestRate:          d("0.049"),
		StartingPotValue:            decimal.Zero,
	}

	res, err := Project(in)
	require.NoError(t, err)
	require.Len(t, res.Samples, 11)

	for _, s := range res.Samples {
		assert.True(t, s.ProjectedPot.IsZero(), "age %d: %s", s.Age, s.ProjectedPot)
	}
	assert.True(t, res.RequiredLumpSum.IsPositive())
}

func TestProject_DrawdownExhaustsPot(t *testing.T) {
	in := scenarioA()
	in.DesiredAnnualIncome = decimal.NewFromInt(60000)

	res, err := Project(in)
	require.NoError(t, err)

	summary := Summarize(in, res)
	assert.False(t, summary.OnTrack)
	assert.Greater(t, summary.DepletionAge, 65)

	for _, s := range res.Samples {
		assert.False(t, s.ProjectedPot.IsNegative(), "age %d reported negative pot %s", s.Age, s.ProjectedPot)
		if s.Age >= summary.DepletionAge {
			assert.True(t, s.ProjectedPot.IsZero(), "age %d should be exhausted", s.Age)
		}
	}
}

func TestProject_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ProjectionInput)
		kind   error
		code   string
	}{
		{
			name:   "retirement age equals current age",
			mutate: func(in *domain.ProjectionInput) { in.RetirementAge = in.CurrentAge },
			kind:   ErrInvalidAgeRange,
			code:   CodeInvalidAgeRange,
		},
		{
			name:   "retirement age before current age",
			mutate: func(in *domain.ProjectionInput) { in.RetirementAge = 20 },
			kind:   ErrInvalidAgeRange,
			code:   CodeInvalidAgeRange,
		},
		{
			name:   "life expectancy equals retirement age",
			mutate: func(in *domain.ProjectionInput) { in.LifeExpectancy = in.RetirementAge },
			kind:   ErrInvalidAgeRange,
			code:   CodeInvalidAgeRange,
		},
		{
			name:   "negative current age",
			mutate: func(in *domain.ProjectionInput) { in.CurrentAge = -1 },
			kind:   ErrInvalidAgeRange,
			code:   CodeInvalidAgeRange,
		},
		{
			name:   "huge negative current age",
			mutate: func(in *domain.ProjectionInput) { in.CurrentAge = math.MinInt + 1 },
			kind:   ErrInvalidAgeRange,
			code:   CodeInvalidAgeRange,
		},
		{
			name:   "life expectancy beyond horizon",
			mutate: func(in *domain.ProjectionInput) { in.LifeExpectancy = domain.MaxLifeExpectancy + 1 },
			kind:   ErrInvalidAgeRange,
			code:   CodeInvalidAgeRange,
		},
		{
			name:   "zero desired income",
			mutate: func(in *domain.ProjectionInput) { in.DesiredAnnualIncome = decimal.Zero },
			kind:   ErrInvalidFinancialInput,
			code:   CodeInvalidFinancialInput,
		},
		{
			name:   "negative employer contribution",
			mutate: func(in *domain.ProjectionInput) { in.EmployerMonthlyContribution = decimal.NewFromInt(-1) },
			kind:   ErrInvalidFinancialInput,
			code:   CodeInvalidFinancialInput,
		},
		{
			name:   "negative personal contribution",
			mutate: func(in *domain.ProjectionInput) { in.PersonalMonthlyContribution = decimal.NewFromInt(-1) },
			kind:   ErrInvalidFinancialInput,
			code:   CodeInvalidFinancialInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenarioA()
			tt.mutate(&in)

			res, err := Project(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			assert.Equal(t, tt.code, ErrorCode(err))

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Field)

			assert.NotNil(t, res.Samples)
			assert.Empty(t, res.Samples)
			assert.True(t, res.RequiredLumpSum.IsZero())
		})
	}
}

func TestProject_Properties(t *testing.T) {
	inputs := []domain.ProjectionInput{scenarioA()}

	short := scenarioA()
	short.CurrentAge, short.RetirementAge, short.LifeExpectancy = 60, 61, 62
	inputs = append(inputs, short)

	zeroRate := scenarioA()
	zeroRate.AnnualInterestRate = decimal.Zero
	inputs = append(inputs, zeroRate)

	heavy := scenarioA()
	heavy.DesiredAnnualIncome = decimal.NewFromInt(250000)
	inputs = append(inputs, heavy)

	for _, in := range inputs {
		res, err := Project(in)
		require.NoError(t, err)

		require.Len(t, res.Samples, in.LifeExpectancy-in.CurrentAge+1)
		withLumpSum := 0
		for i, s := range res.Samples {
			assert.Equal(t, in.CurrentAge+i, s.Age, "ages must be contiguous")
			assert.False(t, s.ProjectedPot.IsNegative())
			if s.DesiredPotAtRetirement != nil {
				withLumpSum++
				assert.Equal(t, in.RetirementAge, s.Age)
			}
		}
		assert.Equal(t, 1, withLumpSum)
	}
}

func TestProject_ZeroRateHasNoLumpSum(t *testing.T) {
	in := scenarioA()
	in.AnnualInterestRate = decimal.Zero

	res, err := Project(in)
	require.NoError(t, err)
	assert.True(t, res.RequiredLumpSum.IsZero())

	// 10000 + 40 years of 4200 with no growth
	retirement, _ := res.SampleAt(65)
	assert.True(t, retirement.ProjectedPot.Equal(decimal.NewFromInt(178000)), "got %s", retirement.ProjectedPot)
}

func TestProject_Idempotent(t *testing.T) {
	engine := NewProjectionEngine()
	first, err := engine.Project(scenarioA())
	require.NoError(t, err)
	second, err := engine.Project(scenarioA())
	require.NoError(t, err)

	require.Equal(t, len(first.Samples), len(second.Samples))
	for i := range first.Samples {
		assert.Equal(t, first.Samples[i].ProjectedPot.String(), second.Samples[i].ProjectedPot.String())
	}
	assert.Equal(t, first.RequiredLumpSum.String(), second.RequiredLumpSum.String())
}

func TestProjectionEngine_Logging(t *testing.T) {
	var buf bytes.Buffer
	engine := NewProjectionEngine()
	engine.SetLogger(NewStdLogger(&buf, LevelDebug))
	engine.Debug = true

	_, err := engine.Project(scenarioA())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[DEBUG] age 25: running pot 14690.00")
	assert.Contains(t, buf.String(), "[INFO] projected ages 25-81")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestProjectConfiguration_ScenarioC(t *testing.T) {
	cfg := domain.NewConfiguration()
	cfg.Contributions = domain.Contributions{
		DesiredAnnualIncome:         decimal.NewFromInt(16000),
		EmployerMonthlyContribution: decimal.NewFromInt(200),
		PersonalMonthlyContribution: decimal.NewFromInt(150),
		CurrentAge:                  25,
		RetirementAge:               65,
	}
	cfg.ExistingPots = []domain.ExistingPot{
		{ID: 1, Amount: decimal.NewFromInt(10000)},
		{ID: 2, Amount: decimal.NewFromInt(5000)},
	}

	in, res, err := NewProjectionEngine().ProjectConfiguration(cfg)
	require.NoError(t, err)
	assert.True(t, in.StartingPotValue.Equal(decimal.NewFromInt(15000)))
	// 15000*1.049 + 4200
	assert.True(t, res.Samples[0].ProjectedPot.Equal(d("19935")), "got %s", res.Samples[0].ProjectedPot)
}
