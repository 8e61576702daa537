package render

import (
	"errors"
	"io"

	"github.com/epitools/episcope/schema"
	"github.com/wcharczuk/go-chart/v2"
)

// OutbreakPlotter draws the outbreak signal over time: the 95% forecast
// interval bounds in gray, the forecast mean in orange, the alert threshold
// as a dashed purple line, and the exceedance probability in green on the
// secondary y axis with a fixed [0,1] range.
type OutbreakPlotter struct{}

// Name implements Plotter.
func (p *OutbreakPlotter) Name() schema.ChartKind {
	return schema.OutbreakChart
}

// Render implements Plotter. Buckets are laid out at integer x positions
// with tick labels carrying the bucket names; absent fields drop points
// rather than plotting zeros.
func (p *OutbreakPlotter) Render(data *Dataset, w io.Writer) error {
	rows := data.Signal
	if len(rows) == 0 {
		return errors.New("no signal rows to plot")
	}

	ticks := make([]chart.Tick, len(rows))
	for i, r := range rows {
		ticks[i] = chart.Tick{Value: float64(i), Label: r.TimeBucket}
	}

	lo := seriesOf(rows, func(r schema.SignalRow) schema.Float { return r.ForecastLo })
	hi := seriesOf(rows, func(r schema.SignalRow) schema.Float { return r.ForecastHi })
	pred := seriesOf(rows, func(r schema.SignalRow) schema.Float { return r.ForecastMean })
	thr := seriesOf(rows, func(r schema.SignalRow) schema.Float { return r.Threshold })
	prob := seriesOf(rows, func(r schema.SignalRow) schema.Float { return r.ExceedProb })

	var series []chart.Series
	if len(lo.xs) > 1 {
		series = append(series, chart.ContinuousSeries{
			Name:    "95% PI lower",
			XValues: lo.xs,
			YValues: lo.ys,
			Style:   chart.Style{StrokeColor: bandColor, StrokeWidth: 1.5},
		})
	}
	if len(hi.xs) > 1 {
		series = append(series, chart.ContinuousSeries{
			Name:    "95% PI upper",
			XValues: hi.xs,
			YValues: hi.ys,
			Style:   chart.Style{StrokeColor: bandColor, StrokeWidth: 1.5},
		})
	}
	if len(pred.xs) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Prediction",
			XValues: pred.xs,
			YValues: pred.ys,
			Style: chart.Style{
				StrokeColor: predColor,
				StrokeWidth: 2,
				DotWidth:    4,
				DotColor:    predColor,
			},
		})
	}
	if len(thr.xs) > 1 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Threshold",
			XValues: thr.xs,
			YValues: thr.ys,
			Style: chart.Style{
				StrokeColor:     thrColor,
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 4},
			},
		})
	}
	if len(prob.xs) > 1 {
		series = append(series, chart.ContinuousSeries{
			Name:    "P(exceed)",
			XValues: prob.xs,
			YValues: prob.ys,
			YAxis:   chart.YAxisSecondary,
			Style:   chart.Style{StrokeColor: probColor, StrokeWidth: 2},
		})
	}
	if len(series) == 0 {
		return errors.New("signal rows carry no plottable values")
	}

	graph := chart.Chart{
		Title:      "Outbreak & Probability (95% PI, threshold, P(exceed))",
		Width:      900,
		Height:     600,
		Background: chart.Style{Padding: chart.Box{Top: 36, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Time",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(rows)-1) + 0.5},
		},
		YAxis: chart.YAxis{Name: "Prediction / Threshold / PI"},
		YAxisSecondary: chart.YAxis{
			Name:  "P(exceed)",
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// sparseSeries holds the x positions and values of the buckets where an
// optional field is present.
type sparseSeries struct {
	xs, ys []float64
}

// seriesOf extracts one optional field from the signal rows, keeping only
// present values and their bucket positions.
func seriesOf(rows []schema.SignalRow, field func(schema.SignalRow) schema.Float) sparseSeries {
	var s sparseSeries
	for i, r := range rows {
		if v := field(r); v.Valid {
			s.xs = append(s.xs, float64(i))
			s.ys = append(s.ys, v.Value)
		}
	}
	return s
}
