package output

import (
	json "github.com/goccy/go-json"

	"github.com/rpgo/pension-tracker/internal/domain"
)

// JSONFormatter serializes the projection report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *domain.ProjectionReport) ([]byte, error) {
	doc := struct {
		*domain.ProjectionReport
		Lines []string `json:"lines"`
	}{r, PresentationLines(r)}
	return json.MarshalIndent(doc, "", "  ")
}
