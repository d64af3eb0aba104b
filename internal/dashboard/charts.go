// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package dashboard

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tomtom215/reelstats/internal/analytics"
	"github.com/tomtom215/reelstats/internal/dataset"
	"github.com/tomtom215/reelstats/internal/metrics"
)

// ChartKind names one of the four dashboard charts.
type ChartKind string

const (
	ChartRuntime ChartKind = "runtime"
	ChartScatter ChartKind = "scatter"
	ChartGenres  ChartKind = "genres"
	ChartTrend   ChartKind = "trend"
)

// ChartKinds lists the charts in page order.
var ChartKinds = []ChartKind{ChartRuntime, ChartScatter, ChartGenres, ChartTrend}

// ParseChartKind validates a chart name from a URL.
func ParseChartKind(s string) (ChartKind, bool) {
	for _, k := range ChartKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

const (
	chartWidth  = 640
	chartHeight = 400
)

var (
	colorTeal   = drawing.ColorFromHex("008080")
	colorPurple = drawing.Color{R: 128, G: 0, B: 128, A: 153}
	colorGreen  = drawing.ColorFromHex("2ca02c")
	colorGrid   = drawing.ColorFromHex("e0e0e0")

	// magma, sampled at ten points from dark to light
	magma = []drawing.Color{
		drawing.ColorFromHex("000004"),
		drawing.ColorFromHex("180f3d"),
		drawing.ColorFromHex("440f76"),
		drawing.ColorFromHex("721f81"),
		drawing.ColorFromHex("9e2f7f"),
		drawing.ColorFromHex("cd4071"),
		drawing.ColorFromHex("f1605d"),
		drawing.ColorFromHex("fd9668"),
		drawing.ColorFromHex("feca8d"),
		drawing.ColorFromHex("fcfdbf"),
	}
)

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

func withAlpha(c drawing.Color, a uint8) drawing.Color {
	c.A = a
	return c
}

// ChartTitle returns the heading shown above a chart.
func ChartTitle(kind ChartKind, sel dataset.Selection) string {
	switch kind {
	case ChartRuntime:
		genre := sel.Genre
		if genre == "" {
			genre = dataset.AllGenres
		}
		return "Runtime Distribution: " + genre
	case ChartScatter:
		return "Rating vs Revenue"
	case ChartGenres:
		return "Top Genres by Avg Revenue"
	case ChartTrend:
		return "Avg Revenue by Year"
	default:
		return string(kind)
	}
}

// RenderChart writes one chart of report as SVG. A chart with nothing to
// plot renders a placeholder instead of failing.
func RenderChart(w io.Writer, kind ChartKind, report *analytics.Report) error {
	start := time.Now()
	title := ChartTitle(kind, report.Selection)

	var err error
	switch kind {
	case ChartRuntime:
		err = renderRuntime(w, title, report.Runtime)
	case ChartScatter:
		err = renderScatter(w, title, report.RatingRevenue)
	case ChartGenres:
		err = renderGenres(w, title, report.GenreRevenue)
	case ChartTrend:
		err = renderTrend(w, title, report.YearRevenue)
	default:
		err = fmt.Errorf("unknown chart %q", kind)
	}

	metrics.RecordChartRender(string(kind), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("render %s chart: %w", kind, err)
	}
	return nil
}

// renderEmpty draws a titled, axis-less canvas.
func renderEmpty(w io.Writer, title string) error {
	ch := chart.Chart{
		Title:      title + " (no data for this selection)",
		Width:      chartWidth,
		Height:     chartHeight,
		Background: background(),
		XAxis:      chart.XAxis{Style: chart.Style{Hidden: true}, Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		YAxis:      chart.YAxis{Style: chart.Style{Hidden: true}, Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0.5, 0.5},
				Style:   chart.Style{StrokeWidth: chart.Disabled},
			},
		},
	}
	return ch.Render(chart.SVG, w)
}

// paddedRange widens [lo, hi] by a margin and never returns a zero span.
func paddedRange(lo, hi float64) *chart.ContinuousRange {
	if hi <= lo {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func moneyFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return shortMoney(f)
	}
	return ""
}

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(math.Round(f)))
	}
	return ""
}

func renderRuntime(w io.Writer, title string, dist analytics.Distribution) error {
	if len(dist.Bins) == 0 {
		return renderEmpty(w, title)
	}

	// Bars are drawn as a filled step outline.
	xs := []float64{dist.Bins[0].Lower}
	ys := []float64{0}
	maxCount := 0.0
	for _, b := range dist.Bins {
		c := float64(b.Count)
		xs = append(xs, b.Lower, b.Upper)
		ys = append(ys, c, c)
		maxCount = math.Max(maxCount, c)
	}
	last := dist.Bins[len(dist.Bins)-1].Upper
	xs = append(xs, last)
	ys = append(ys, 0)

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Movies",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: colorTeal,
				StrokeWidth: 1,
				FillColor:   withAlpha(colorTeal, 120),
			},
		},
	}

	if len(dist.Density) > 0 {
		dx := make([]float64, len(dist.Density))
		dy := make([]float64, len(dist.Density))
		for i, p := range dist.Density {
			dx[i], dy[i] = p.X, p.Y
			maxCount = math.Max(maxCount, p.Y)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "Density",
			XValues: dx,
			YValues: dy,
			Style:   chart.Style{StrokeColor: colorTeal, StrokeWidth: 2},
		})
	}

	ch := chart.Chart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: background(),
		XAxis: chart.XAxis{
			Name:  "Runtime (min)",
			Range: &chart.ContinuousRange{Min: dist.Bins[0].Lower, Max: last},
		},
		YAxis: chart.YAxis{
			Name:  "Count",
			Range: &chart.ContinuousRange{Min: 0, Max: maxCount * 1.1},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.SVG, w)
}

func renderScatter(w io.Writer, title string, points []analytics.ScatterPoint) error {
	if len(points) == 0 {
		return renderEmpty(w, title)
	}

	// Revenue spans orders of magnitude, so y is plotted as log10 with
	// ticks at each power of ten.
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		xs[i] = p.Rating
		ys[i] = math.Log10(p.Gross)
		xMin, xMax = math.Min(xMin, xs[i]), math.Max(xMax, xs[i])
		yMin, yMax = math.Min(yMin, ys[i]), math.Max(yMax, ys[i])
	}

	lo, hi := math.Floor(yMin), math.Ceil(yMax)
	if hi <= lo {
		hi = lo + 1
	}
	ticks := make([]chart.Tick, 0, int(hi-lo)+1)
	for e := lo; e <= hi; e++ {
		ticks = append(ticks, chart.Tick{Value: e, Label: shortMoney(math.Pow(10, e))})
	}

	ch := chart.Chart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: background(),
		XAxis: chart.XAxis{
			Name:  "IMDB Rating",
			Range: paddedRange(xMin, xMax),
		},
		YAxis: chart.YAxis{
			Name:           "Gross Revenue (log scale)",
			Range:          &chart.ContinuousRange{Min: lo, Max: hi},
			Ticks:          ticks,
			GridMajorStyle: chart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Movies",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    colorPurple,
				},
			},
		},
	}
	return ch.Render(chart.SVG, w)
}

// renderGenres draws the genre ranking. go-chart's BarChart only lays bars
// out vertically, so the ranking reads left to right with rotated labels.
func renderGenres(w io.Writer, title string, genres []analytics.GenreGross) error {
	if len(genres) == 0 {
		return renderEmpty(w, title)
	}

	bars := make([]chart.Value, len(genres))
	maxGross := 0.0
	for i, g := range genres {
		col := magma[i*len(magma)/len(genres)]
		bars[i] = chart.Value{
			Label: g.Genre,
			Value: g.AvgGross,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		}
		maxGross = math.Max(maxGross, g.AvgGross)
	}
	if maxGross <= 0 {
		maxGross = 1
	}

	bc := chart.BarChart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   36,
		BarSpacing: 12,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 60}},
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:           "Avg Gross",
			Range:          &chart.ContinuousRange{Min: 0, Max: maxGross * 1.1},
			ValueFormatter: moneyFormatter,
		},
		Bars: bars,
	}
	return bc.Render(chart.SVG, w)
}

func renderTrend(w io.Writer, title string, years []analytics.YearRevenue) error {
	segments := trendSegments(years)
	if len(segments) == 0 {
		return renderEmpty(w, title)
	}

	maxGross := 0.0
	series := make([]chart.Series, 0, len(segments))
	for _, seg := range segments {
		for _, y := range seg.YValues {
			maxGross = math.Max(maxGross, y)
		}
		style := chart.Style{
			StrokeColor: colorGreen,
			StrokeWidth: 2,
			FillColor:   withAlpha(colorGreen, 26),
		}
		if len(seg.XValues) == 1 {
			style.DotWidth = 3
			style.DotColor = colorGreen
		}
		seg.Style = style
		series = append(series, seg)
	}
	if maxGross <= 0 {
		maxGross = 1
	}

	ch := chart.Chart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: background(),
		XAxis: chart.XAxis{
			Name:           "Year",
			Range:          paddedRange(float64(years[0].Year), float64(years[len(years)-1].Year)),
			ValueFormatter: yearFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Avg Gross",
			Range:          &chart.ContinuousRange{Min: 0, Max: maxGross * 1.1},
			ValueFormatter: moneyFormatter,
		},
		Series: series,
	}
	return ch.Render(chart.SVG, w)
}

// trendSegments splits the year trend into runs of years that have a mean
// gross. A year without one ends the current run, leaving a gap in the line.
func trendSegments(years []analytics.YearRevenue) []chart.ContinuousSeries {
	var (
		out []chart.ContinuousSeries
		cur chart.ContinuousSeries
	)
	flush := func() {
		if len(cur.XValues) > 0 {
			out = append(out, cur)
		}
		cur = chart.ContinuousSeries{}
	}
	for _, y := range years {
		if y.AvgGross == nil {
			flush()
			continue
		}
		cur.Name = "Avg Gross"
		cur.XValues = append(cur.XValues, float64(y.Year))
		cur.YValues = append(cur.YValues, *y.AvgGross)
	}
	flush()
	return out
}
