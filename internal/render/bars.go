package render

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/epitools/episcope/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrorBarsPlotter draws the absolute error per (location, time bucket) as
// a bar chart, one fill color per location.
type ErrorBarsPlotter struct{}

// Name implements Plotter.
func (p *ErrorBarsPlotter) Name() schema.ChartKind {
	return schema.ErrorBarsChart
}

// Render implements Plotter. Rows without an observation carry no error and
// are skipped.
func (p *ErrorBarsPlotter) Render(data *Dataset, w io.Writer) error {
	colors := locationColors(data.Metrics)

	var bars []chart.Value
	for _, m := range data.Metrics {
		if !m.AbsError.Valid {
			continue
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s %s", m.Location, m.TimeBucket),
			Value: m.AbsError.Value,
			Style: chart.Style{FillColor: colors[m.Location], StrokeWidth: 0},
		})
	}
	if len(bars) == 0 {
		return errors.New("no error values to plot")
	}

	graph := chart.BarChart{
		Title:      "Absolute Error per Location & Time",
		Width:      800,
		Height:     600,
		BarWidth:   40,
		Background: chart.Style{Padding: chart.Box{Top: 36, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      chart.YAxis{Name: "Absolute error"},
		Bars:       bars,
	}

	return graph.Render(chart.PNG, w)
}

// locationColors assigns each distinct location a palette color, in sorted
// location order so the mapping is stable between runs. The palette cycles
// when there are more locations than colors.
func locationColors(rows []schema.MetricRow) map[string]drawing.Color {
	seen := make(map[string]struct{})
	var locations []string
	for _, m := range rows {
		if _, ok := seen[m.Location]; !ok {
			seen[m.Location] = struct{}{}
			locations = append(locations, m.Location)
		}
	}
	sort.Strings(locations)

	colors := make(map[string]drawing.Color, len(locations))
	for i, loc := range locations {
		colors[loc] = locationPalette[i%len(locationPalette)]
	}
	return colors
}
