package output

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rpgo/pension-tracker/internal/domain"
)

// Default chart canvas size in SVG user units
const (
	DefaultChartWidth  = 800
	DefaultChartHeight = 400
)

const (
	chartMarginLeft   = 90
	chartMarginRight  = 30
	chartMarginTop    = 40
	chartMarginBottom = 40
	chartYTickCount   = 5
	chartMaxXTicks    = 12
)

// ChartPoint is one projected pot value placed on the canvas
type ChartPoint struct {
	Age int
	Pot decimal.Decimal
	X   float64
	Y   float64
}

// ChartTick is an axis label at a canvas position
type ChartTick struct {
	Pos   float64
	Label string
}

// ChartMarker is a labelled reference line or point
type ChartMarker struct {
	X1, Y1, X2, Y2 float64
	Label          string
}

// Chart is a projection laid out for rendering as SVG
type Chart struct {
	Width, Height            float64
	Left, Right, Top, Bottom float64
	Points                   []ChartPoint
	XTicks                   []ChartTick
	YTicks                   []ChartTick
	// RetirementMarker is a vertical line at the retirement age.
	RetirementMarker ChartMarker
	// LumpSumMarker marks (retirement age, required lump sum); nil when the lump sum is zero.
	LumpSumMarker *ChartMarker
}

// BuildChart lays out the projection. It reports false when there is nothing to draw.
func BuildChart(r *domain.ProjectionReport, width, height float64) (Chart, bool) {
	samples := r.Result.Samples
	if len(samples) == 0 {
		return Chart{}, false
	}

	c := Chart{
		Width:  width,
		Height: height,
		Left:   chartMarginLeft,
		Right:  width - chartMarginRight,
		Top:    chartMarginTop,
		Bottom: height - chartMarginBottom,
	}

	maxValue := r.Result.RequiredLumpSum.InexactFloat64()
	for _, s := range samples {
		maxValue = math.Max(maxValue, s.ProjectedPot.InexactFloat64())
	}
	yMax := niceCeiling(maxValue)

	firstAge, lastAge := samples[0].Age, samples[len(samples)-1].Age
	xOf := func(age int) float64 {
		if lastAge == firstAge {
			return c.Left
		}
		return c.Left + float64(age-firstAge)/float64(lastAge-firstAge)*(c.Right-c.Left)
	}
	yOf := func(v float64) float64 {
		return c.Bottom - v/yMax*(c.Bottom-c.Top)
	}

	c.Points = make([]ChartPoint, len(samples))
	for i, s := range samples {
		c.Points[i] = ChartPoint{Age: s.Age, Pot: s.ProjectedPot, X: xOf(s.Age), Y: yOf(s.ProjectedPot.InexactFloat64())}
	}

	for i := 0; i <= chartYTickCount; i++ {
		v := yMax * float64(i) / chartYTickCount
		c.YTicks = append(c.YTicks, ChartTick{Pos: yOf(v), Label: FormatCurrency(decimal.NewFromFloat(v))})
	}
	for _, age := range ageTicks(firstAge, lastAge) {
		c.XTicks = append(c.XTicks, ChartTick{Pos: xOf(age), Label: strconv.Itoa(age)})
	}

	retX := xOf(r.Input.RetirementAge)
	c.RetirementMarker = ChartMarker{X1: retX, Y1: c.Top, X2: retX, Y2: c.Bottom, Label: "Retirement Age"}
	if r.Result.RequiredLumpSum.IsPositive() {
		y := yOf(r.Result.RequiredLumpSum.InexactFloat64())
		c.LumpSumMarker = &ChartMarker{
			X1: retX, Y1: y, X2: retX, Y2: y,
			Label: "Desired Pot at Retirement: " + FormatCurrency(r.Result.RequiredLumpSum),
		}
	}
	return c, true
}

// Polyline renders the points as an SVG points attribute
func (c Chart) Polyline() string {
	parts := make([]string, len(c.Points))
	for i, p := range c.Points {
		parts[i] = formatCoord(p.X) + "," + formatCoord(p.Y)
	}
	return strings.Join(parts, " ")
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// niceCeiling rounds v up to 1, 2, 5 or 10 times a power of ten.
func niceCeiling(v float64) float64 {
	if v <= 0 {
		return 1
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(v)))
	for _, step := range []float64{1, 2, 5, 10} {
		if step*magnitude >= v {
			return step * magnitude
		}
	}
	return 10 * magnitude
}

// ageTicks keeps the first and last age plus round ages in between.
func ageTicks(first, last int) []int {
	step := 1
	for _, s := range []int{1, 2, 5, 10, 20} {
		step = s
		if (last-first)/s+1 <= chartMaxXTicks {
			break
		}
	}
	minGap := (step + 1) / 2
	ticks := []int{first}
	for age := (first/step + 1) * step; age < last; age += step {
		if age-first >= minGap {
			ticks = append(ticks, age)
		}
	}
	if last != first {
		if n := len(ticks); n > 1 && last-ticks[n-1] < minGap {
			ticks = ticks[:n-1]
		}
		ticks = append(ticks, last)
	}
	return ticks
}
