package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/pension-tracker/internal/domain"
)

// CSVDetailedExporter provides the raw projection, one row per age in ascending order.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(r *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Age", "Phase", "ProjectedPot", "DesiredPotAtRetirement"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range r.Result.Samples {
		desired := ""
		if s.IsRetirementPoint() {
			desired = s.DesiredPotAtRetirement.StringFixed(2)
		}
		row := []string{
			strconv.Itoa(s.Age),
			phaseOf(r.Input, s.Age),
			s.ProjectedPot.StringFixed(2),
			desired,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
