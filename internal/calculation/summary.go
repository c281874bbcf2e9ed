package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/pension-tracker/internal/domain"
)

// Summarize derives headline figures from a projection. An empty result gives a zero summary.
func Summarize(in domain.ProjectionInput, res domain.ProjectionResult) domain.ProjectionSummary {
	summary := domain.ProjectionSummary{
		PotAtRetirement: decimal.Zero,
		RequiredLumpSum: res.RequiredLumpSum,
		Shortfall:       decimal.Zero,
		FinalPot:        decimal.Zero,
		PeakPot:         decimal.Zero,
	}
	if res.IsEmpty() {
		return summary
	}

	if s, ok := res.SampleAt(in.RetirementAge); ok {
		summary.PotAtRetirement = s.ProjectedPot
	}
	summary.Shortfall = res.RequiredLumpSum.Sub(summary.PotAtRetirement)
	summary.OnTrack = !summary.Shortfall.IsPositive()
	summary.FinalPot = res.Samples[len(res.Samples)-1].ProjectedPot

	summary.PeakAge = res.Samples[0].Age
	summary.PeakPot = res.Samples[0].ProjectedPot
	for _, s := range res.Samples {
		if s.ProjectedPot.GreaterThan(summary.PeakPot) {
			summary.PeakPot = s.ProjectedPot
			summary.PeakAge = s.Age
		}
		if summary.DepletionAge == 0 && s.Age > in.RetirementAge && s.ProjectedPot.IsZero() {
			summary.DepletionAge = s.Age
		}
	}
	return summary
}

// BuildReport assembles everything the formatters need from one projection run.
// A validation error is recorded on the report rather than returned.
func BuildReport(name string, in domain.ProjectionInput, pots []domain.ExistingPot, a domain.Assumptions, res domain.ProjectionResult, err error) *domain.ProjectionReport {
	report := &domain.ProjectionReport{
		Name:        name,
		Input:       in,
		Pots:        pots,
		Result:      res,
		Summary:     Summarize(in, res),
		Assumptions: a.GenerateAssumptions(),
	}
	if report.Pots == nil {
		report.Pots = []domain.ExistingPot{}
	}
	if err != nil {
		report.Result = domain.EmptyResult()
		report.Summary = Summarize(in, report.Result)
		report.ErrorCode = ErrorCode(err)
		report.ErrorMessage = err.Error()
	}
	return report
}
