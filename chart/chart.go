// Package chart converts a numeric series plus a canvas size into pixel
// coordinates, axis ticks, and SVG path data. Pure geometry computation; the
// series builder is responsible for filtering invalid samples before this
// package sees them.
package chart

import (
	"fmt"
	"math"
	"strings"

	"weather-assistant/models"
)

// Rendering-density heuristics per chart type. The caps are deliberate and
// differ between the chart families.
const (
	lineStrideCap = 80.0
	areaStrideCap = 60.0
	barWidth      = 30.0
	barGap        = 20.0

	topMargin    = 20.0
	bottomMargin = 30.0
	leftMargin   = 40.0

	yTickCount = 5
)

// Kind returns the chart form used for a metric: temperature is drawn as
// min/max/avg lines, precipitation as bars, humidity as an area.
func Kind(metric models.MetricKind) models.ChartKind {
	switch metric {
	case models.MetricPrecipitation:
		return models.ChartBar
	case models.MetricHumidity:
		return models.ChartArea
	default:
		return models.ChartLine
	}
}

// Map computes the drawing plan for a series on a width x height canvas.
func Map(s models.Series, width, height float64) models.Geometry {
	g := models.Geometry{
		Kind:          Kind(s.Metric),
		Width:         width,
		Height:        height,
		HistoricCount: s.HistoricCount(),
	}
	total := s.HistoricCount() + s.ForecastCount()
	if total == 0 {
		g.NoData = true
		return g
	}

	plotWidth := width - leftMargin
	plotHeight := height - topMargin - bottomMargin
	g.Stride = stride(g.Kind, plotWidth, total)

	yMin, yMax := scale(s)
	yOf := func(v float64) float64 {
		return topMargin + plotHeight - (v-yMin)/(yMax-yMin)*plotHeight
	}

	switch g.Kind {
	case models.ChartBar:
		values := displayValues(s)
		for i, v := range values {
			x := leftMargin + float64(i)*g.Stride + barGap/2
			y := yOf(v)
			g.Bars = append(g.Bars, models.Bar{
				X:      x,
				Y:      y,
				Width:  barWidth,
				Height: topMargin + plotHeight - y,
			})
		}
	case models.ChartArea:
		pts := pointsFor(displayValues(s), g.Stride, yOf)
		g.Series = []models.PathSeries{{
			Name:   "humidity",
			Points: pts,
			Path:   areaPath(pts, topMargin+plotHeight),
		}}
	default:
		for _, sub := range []struct {
			name               string
			historic, forecast []float64
		}{
			{"min", s.HistoricMin, s.ForecastMin},
			{"max", s.HistoricMax, s.ForecastMax},
			{"avg", s.HistoricAvg, s.ForecastAvg},
		} {
			values := append(append([]float64{}, sub.historic...), sub.forecast...)
			pts := pointsFor(values, g.Stride, yOf)
			g.Series = append(g.Series, models.PathSeries{
				Name:   sub.name,
				Points: pts,
				Path:   linePath(pts),
			})
		}
	}

	g.XTicks = xTicks(s, g.Stride)
	g.YTicks = yTicksFor(yMin, yMax, s.Unit, yOf)

	if s.HistoricCount() > 0 && s.ForecastCount() > 0 {
		gap := 0.0
		if g.Kind == models.ChartBar {
			gap = barGap
		}
		x := leftMargin + float64(s.HistoricCount())*g.Stride - gap/2
		g.DividerX = &x
		g.DividerLabel = "Today"
	}
	return g
}

func stride(kind models.ChartKind, plotWidth float64, total int) float64 {
	switch kind {
	case models.ChartBar:
		return barWidth + barGap
	case models.ChartArea:
		return math.Min(areaStrideCap, plotWidth/float64(total))
	default:
		return math.Min(lineStrideCap, plotWidth/float64(total))
	}
}

// scale returns the y-axis range: data min/max padded by 5 units and rounded
// outward for temperature, fixed 0-100 for the percentage metrics.
func scale(s models.Series) (float64, float64) {
	if s.Metric != models.MetricTemperature {
		return 0, 100
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, arr := range [][]float64{
		s.HistoricMin, s.HistoricMax, s.HistoricAvg,
		s.ForecastMin, s.ForecastMax, s.ForecastAvg,
	} {
		for _, v := range arr {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	return math.Floor(lo - 5), math.Ceil(hi + 5)
}

// displayValues flattens historic+forecast and converts precipitation from
// its 0-1 storage range to the 0-100 display scale.
func displayValues(s models.Series) []float64 {
	values := append(append([]float64{}, s.Historic...), s.Forecast...)
	if s.Metric == models.MetricPrecipitation {
		for i, v := range values {
			values[i] = v * 100
		}
	}
	return values
}

func pointsFor(values []float64, stride float64, yOf func(float64) float64) []models.Point {
	pts := make([]models.Point, 0, len(values))
	for i, v := range values {
		pts = append(pts, models.Point{
			X: leftMargin + float64(i)*stride + stride/2,
			Y: yOf(v),
		})
	}
	return pts
}

// linePath builds an SVG path through the points, or "" when a connecting
// line needs at least two of them.
func linePath(pts []models.Point) string {
	if len(pts) < 2 {
		return ""
	}
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			fmt.Fprintf(&b, "M %.2f %.2f", p.X, p.Y)
		} else {
			fmt.Fprintf(&b, " L %.2f %.2f", p.X, p.Y)
		}
	}
	return b.String()
}

func areaPath(pts []models.Point, baseline float64) string {
	line := linePath(pts)
	if line == "" {
		return ""
	}
	return fmt.Sprintf("%s L %.2f %.2f L %.2f %.2f Z",
		line, pts[len(pts)-1].X, baseline, pts[0].X, baseline)
}

func xTicks(s models.Series, stride float64) []models.Tick {
	labels := append(append([]string{}, s.HistoricLabels...), s.ForecastLabels...)
	ticks := make([]models.Tick, 0, len(labels))
	for i, label := range labels {
		ticks = append(ticks, models.Tick{
			Pos:   leftMargin + float64(i)*stride + stride/2,
			Label: label,
		})
	}
	return ticks
}

func yTicksFor(yMin, yMax float64, unit string, yOf func(float64) float64) []models.Tick {
	ticks := make([]models.Tick, 0, yTickCount)
	step := (yMax - yMin) / float64(yTickCount-1)
	for i := 0; i < yTickCount; i++ {
		v := yMin + float64(i)*step
		ticks = append(ticks, models.Tick{
			Pos:   yOf(v),
			Label: fmt.Sprintf("%.0f%s", v, unit),
		})
	}
	return ticks
}
