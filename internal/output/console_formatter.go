package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/pension-tracker/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(r *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PENSION PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, line := range PresentationLines(r) {
		fmt.Fprintln(&buf, line)
	}
	if !r.HasProjection() {
		return buf.Bytes(), nil
	}

	s := r.Summary
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Ages %d-%d: Start=%s AtRetirement=%s Desired=%s Final=%s\n",
		r.Input.CurrentAge, r.Input.LifeExpectancy,
		FormatCurrency(r.Input.StartingPotValue),
		FormatCurrency(s.PotAtRetirement),
		FormatCurrency(s.RequiredLumpSum),
		FormatCurrency(s.FinalPot),
	)
	rec := AnalyzeProjection(r)
	fmt.Fprintf(&buf, "Status: %s\n", rec.Status)
	if s.DepletionAge > 0 {
		fmt.Fprintf(&buf, "Pot exhausted at age %d\n", s.DepletionAge)
	}
	return buf.Bytes(), nil
}
