package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/pension-tracker/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per projection).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(r *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Plan", "CurrentAge", "RetirementAge", "LifeExpectancy", "AnnualInterestRate", "DesiredAnnualIncome", "MonthlyContribution", "StartingPotValue", "PotAtRetirement", "RequiredLumpSum", "Shortfall", "OnTrack", "DepletionAge", "FinalPot", "ErrorCode"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	in, s := r.Input, r.Summary
	row := []string{
		r.Name,
		strconv.Itoa(in.CurrentAge),
		strconv.Itoa(in.RetirementAge),
		strconv.Itoa(in.LifeExpectancy),
		in.AnnualInterestRate.String(),
		in.DesiredAnnualIncome.StringFixed(2),
		in.TotalMonthlyContribution().StringFixed(2),
		in.StartingPotValue.StringFixed(2),
		s.PotAtRetirement.StringFixed(2),
		s.RequiredLumpSum.StringFixed(2),
		s.Shortfall.StringFixed(2),
		strconv.FormatBool(s.OnTrack),
		strconv.Itoa(s.DepletionAge),
		s.FinalPot.StringFixed(2),
		r.ErrorCode,
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
