package output

import (
	"bytes"
	_ "embed"
	"html/template"

	json "github.com/goccy/go-json"

	"github.com/rpgo/pension-tracker/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with an inline SVG chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"amount": FormatAmount,
	"pct":    FormatPercentage,
	"rate":   FormatRate,
	"coord":  formatCoord,
	"phase":  phaseOf,
	"add":    func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	chart, hasChart := BuildChart(r, DefaultChartWidth, DefaultChartHeight)

	data := struct {
		*domain.ProjectionReport
		Lines          []string
		Guidance       string
		Assumptions    []string
		Recommendation Recommendation
		Chart          Chart
		HasChart       bool
	}{
		ProjectionReport: r,
		Lines:            SummaryLines(r),
		Guidance:         GuidanceMessage,
		Assumptions:      reportAssumptions(r),
		Recommendation:   AnalyzeProjection(r),
		Chart:            chart,
		HasChart:         hasChart,
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
