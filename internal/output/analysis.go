package output

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/pension-tracker/internal/domain"
)

// Recommendation is a plain-language reading of a projection summary.
type Recommendation struct {
	Status string
	// Coverage is the pot at retirement as a percentage of the required lump sum.
	Coverage decimal.Decimal
	// Gap is the shortfall when positive and the surplus when negative.
	Gap         decimal.Decimal
	YearsFunded int
	Message     string
}

// Recommendation statuses
const (
	StatusOnTrack   = "on track"
	StatusShortfall = "shortfall"
	StatusNoResult  = "no projection"
)

// AnalyzeProjection summarises whether the plan funds the desired income.
// Extracted from the formatters for testability.
func AnalyzeProjection(r *domain.ProjectionReport) Recommendation {
	if !r.HasProjection() {
		return Recommendation{Status: StatusNoResult, Coverage: decimal.Zero, Gap: decimal.Zero, Message: GuidanceMessage}
	}

	s := r.Summary
	rec := Recommendation{Gap: s.Shortfall, Coverage: decimal.Zero}
	if s.RequiredLumpSum.IsPositive() {
		rec.Coverage = s.PotAtRetirement.Div(s.RequiredLumpSum).Mul(decimalHundred).Round(1)
	}

	years := r.Input.YearsInRetirement()
	if s.DepletionAge > 0 {
		rec.YearsFunded = s.DepletionAge - r.Input.RetirementAge - 1
	} else {
		rec.YearsFunded = years
	}

	if s.OnTrack {
		rec.Status = StatusOnTrack
		rec.Message = "Your projected pot covers the lump sum needed at retirement with a surplus of " +
			FormatCurrency(s.Shortfall.Neg()) + "."
	} else {
		rec.Status = StatusShortfall
		rec.Message = "Your projected pot falls " + FormatCurrency(s.Shortfall) +
			" short of the lump sum needed at retirement."
	}
	return rec
}
