package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/pension-tracker/internal/domain"
)

// ConsoleVerboseFormatter renders the full projection report as plain text.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(r *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "PENSION PROJECTIONS")
	fmt.Fprintln(&buf, "=================================================================================")
	if r.Name != "" {
		fmt.Fprintf(&buf, "Plan: %s\n", r.Name)
	}
	if r.CalculationID != "" {
		fmt.Fprintf(&buf, "Calculation ID: %s\n", r.CalculationID)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range reportAssumptions(r) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeInputs(&buf, r)
	writePots(&buf, r)

	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, "=======")
	for _, line := range SummaryLines(r) {
		fmt.Fprintln(&buf, line)
	}
	fmt.Fprintln(&buf)

	if !r.HasProjection() {
		if r.ErrorMessage != "" {
			fmt.Fprintf(&buf, "Input rejected (%s): %s\n", r.ErrorCode, r.ErrorMessage)
		}
		fmt.Fprintln(&buf, GuidanceMessage)
		return buf.Bytes(), nil
	}

	writeHeadline(&buf, r)
	writeYearByYear(&buf, r)
	return buf.Bytes(), nil
}

func writeInputs(buf *bytes.Buffer, r *domain.ProjectionReport) {
	in := r.Input
	fmt.Fprintln(buf, "YOUR INPUTS")
	fmt.Fprintln(buf, "-----------")
	fmt.Fprintf(buf, "  Desired Annual Income in Retirement: %s\n", FormatCurrency(in.DesiredAnnualIncome))
	fmt.Fprintf(buf, "  Employer Monthly Contribution:       %s\n", FormatCurrency(in.EmployerMonthlyContribution))
	fmt.Fprintf(buf, "  Personal Monthly Contribution:       %s\n", FormatCurrency(in.PersonalMonthlyContribution))
	fmt.Fprintf(buf, "  Current Age:                         %d\n", in.CurrentAge)
	fmt.Fprintf(buf, "  Retirement Age:                      %d\n", in.RetirementAge)
	fmt.Fprintln(buf)
}

func writePots(buf *bytes.Buffer, r *domain.ProjectionReport) {
	fmt.Fprintln(buf, "EXISTING PENSION POTS")
	fmt.Fprintln(buf, "---------------------")
	if len(r.Pots) == 0 {
		fmt.Fprintln(buf, "  (none)")
	}
	for i, p := range r.Pots {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("Pension Pot %d", i+1)
		}
		fmt.Fprintf(buf, "  #%-3d %-30s %12s\n", p.ID, name, FormatCurrency(p.Amount))
	}
	fmt.Fprintf(buf, "  Starting balance: %s\n", FormatCurrency(r.Input.StartingPotValue))
	fmt.Fprintln(buf)
}

func writeHeadline(buf *bytes.Buffer, r *domain.ProjectionReport) {
	s := r.Summary
	rec := AnalyzeProjection(r)
	fmt.Fprintln(buf, "HEADLINE FIGURES")
	fmt.Fprintln(buf, "----------------")
	fmt.Fprintf(buf, "  Pot at Retirement (age %d):   %s\n", r.Input.RetirementAge, FormatCurrency(s.PotAtRetirement))
	fmt.Fprintf(buf, "  Desired Pot at Retirement:     %s\n", FormatCurrency(s.RequiredLumpSum))
	if s.OnTrack {
		fmt.Fprintf(buf, "  Surplus:                       %s\n", FormatCurrency(s.Shortfall.Neg()))
	} else {
		fmt.Fprintf(buf, "  Shortfall:                     %s\n", FormatCurrency(s.Shortfall))
	}
	if s.RequiredLumpSum.IsPositive() {
		fmt.Fprintf(buf, "  Coverage:                      %s\n", FormatPercentage(rec.Coverage))
	}
	fmt.Fprintf(buf, "  Peak Pot:                      %s at age %d\n", FormatCurrency(s.PeakPot), s.PeakAge)
	if s.DepletionAge > 0 {
		fmt.Fprintf(buf, "  Pot Exhausted at Age:          %d\n", s.DepletionAge)
	} else {
		fmt.Fprintf(buf, "  Pot Remaining at Age %d:       %s\n", r.Input.LifeExpectancy, FormatCurrency(s.FinalPot))
	}
	fmt.Fprintf(buf, "  Status:                        %s\n", strings.ToUpper(rec.Status))
	fmt.Fprintln(buf, " ", rec.Message)
	fmt.Fprintln(buf)
}

func writeYearByYear(buf *bytes.Buffer, r *domain.ProjectionReport) {
	fmt.Fprintln(buf, "YEAR-BY-YEAR PROJECTION")
	fmt.Fprintln(buf, "-----------------------")
	fmt.Fprintf(buf, "  %-5s %-13s %16s\n", "Age", "Phase", "Projected Pot")
	for _, s := range r.Result.Samples {
		line := fmt.Sprintf("  %-5d %-13s %16s", s.Age, phaseOf(r.Input, s.Age), FormatCurrency(s.ProjectedPot))
		if s.IsRetirementPoint() {
			line += "  <- Desired Pot at Retirement: " + FormatCurrency(*s.DesiredPotAtRetirement)
		}
		fmt.Fprintln(buf, line)
	}
}

// Projection phases by age
const (
	PhaseAccumulation = "accumulation"
	PhaseRetirement   = "retirement"
	PhaseDrawdown     = "drawdown"
)

func phaseOf(in domain.ProjectionInput, age int) string {
	switch {
	case age < in.RetirementAge:
		return PhaseAccumulation
	case age == in.RetirementAge:
		return PhaseRetirement
	default:
		return PhaseDrawdown
	}
}
