package output

import (
	"fmt"

	"github.com/rpgo/pension-tracker/internal/domain"
)

// GuidanceMessage is shown instead of a chart when there is no projection.
const GuidanceMessage = "Please enter valid inputs to see your pension projections. Ensure retirement age is greater than current age."

// SummaryLines returns the headline sentences shown above the chart.
// The pot line is omitted when the plan has no existing pots.
func SummaryLines(r *domain.ProjectionReport) []string {
	in := r.Input
	lines := []string{
		fmt.Sprintf("Based on your inputs, your pension pot will grow and then support your desired income until the assumed life expectancy of %d years.",
			in.LifeExpectancy),
		fmt.Sprintf("The desired lump sum needed at retirement (%d years old) to provide %s%s annually until age %d (at %s) is: %s",
			in.RetirementAge, currencySymbol, FormatAmount(in.DesiredAnnualIncome), in.LifeExpectancy,
			FormatRate(in.AnnualInterestRate), FormatCurrency(r.Result.RequiredLumpSum)),
	}
	if len(r.Pots) > 0 {
		total := domain.NewPotList(r.Pots...).Total()
		lines = append(lines, fmt.Sprintf("Your existing pension pots contribute %s%s to your starting balance.",
			currencySymbol, FormatAmount(total)))
	}
	return lines
}

// PresentationLines is SummaryLines followed by the guidance message when there is nothing to chart.
func PresentationLines(r *domain.ProjectionReport) []string {
	lines := SummaryLines(r)
	if !r.HasProjection() {
		lines = append(lines, GuidanceMessage)
	}
	return lines
}
