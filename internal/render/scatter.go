package render

import (
	"errors"
	"io"

	"github.com/epitools/episcope/schema"
	"github.com/wcharczuk/go-chart/v2"
)

// ScatterPlotter draws observed vs predicted cases with a dashed 45 degree
// reference line. A point on the line is a perfect prediction.
type ScatterPlotter struct{}

// Name implements Plotter.
func (p *ScatterPlotter) Name() schema.ChartKind {
	return schema.ScatterChart
}

// Render implements Plotter. It uses the metric rows, which already pair
// each forecast with its observation; rows with no observation are skipped.
func (p *ScatterPlotter) Render(data *Dataset, w io.Writer) error {
	var xs, ys []float64
	maxVal := 0.0
	for _, m := range data.Metrics {
		if !m.Observed.Valid {
			continue
		}
		xs = append(xs, m.Observed.Value)
		ys = append(ys, m.Forecast)
		if m.Observed.Value > maxVal {
			maxVal = m.Observed.Value
		}
		if m.Forecast > maxVal {
			maxVal = m.Forecast
		}
	}
	if len(xs) == 0 {
		return errors.New("no forecast/observation pairs to plot")
	}
	if maxVal == 0 {
		maxVal = 1
	}

	points := chart.ContinuousSeries{
		Name:    "Prediction",
		XValues: xs,
		YValues: ys,
		Style:   pointStyle(predColor),
	}
	diagonal := chart.ContinuousSeries{
		Name:    "45 degree reference",
		XValues: []float64{0, maxVal},
		YValues: []float64{0, maxVal},
		Style: chart.Style{
			StrokeColor:     lineColor,
			StrokeWidth:     2,
			StrokeDashArray: []float64{4, 3},
		},
	}

	graph := chart.Chart{
		Title:      "Truth vs Prediction",
		Width:      800,
		Height:     600,
		Background: chart.Style{Padding: chart.Box{Top: 36, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Observed cases"},
		YAxis:      chart.YAxis{Name: "Predicted cases"},
		Series:     []chart.Series{points, diagonal},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
