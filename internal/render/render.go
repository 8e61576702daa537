// Package render draws episcope's charts with github.com/wcharczuk/go-chart.
//
// The renderers form a closed set of strategies behind the Plotter
// interface; callers pick them by chart kind and feed every plotter the
// same Dataset.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/epitools/episcope/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Dataset bundles everything any plotter may need. Commands populate it
// once and run each selected plotter against it.
type Dataset struct {
	Observations []schema.Observation
	Forecasts    []schema.ForecastRecord
	Metrics      []schema.MetricRow
	Signal       []schema.SignalRow
}

// Plotter renders one chart kind from a Dataset.
type Plotter interface {
	Name() schema.ChartKind
	Render(data *Dataset, w io.Writer) error
}

// Colors used consistently across the charts.
var (
	predColor = drawing.Color{R: 0xff, G: 0x7f, B: 0x0e, A: 255} // orange
	thrColor  = drawing.Color{R: 0x95, G: 0x75, B: 0xcd, A: 255} // purple
	bandColor = drawing.Color{R: 0xb0, G: 0xb0, B: 0xb0, A: 255} // gray
	probColor = drawing.Color{R: 0x43, G: 0xa0, B: 0x47, A: 255} // green
	lineColor = drawing.Color{R: 0x00, G: 0x00, B: 0x00, A: 255} // black
)

// locationPalette cycles bar fill colors per location.
var locationPalette = []drawing.Color{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 255},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 255},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 255},
	{R: 0xd6, G: 0x27, B: 0x28, A: 255},
	{R: 0x94, G: 0x67, B: 0xbd, A: 255},
}

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    5,
		DotColor:    col,
	}
}

// Registry returns one instance of every renderer, in render order.
func Registry() []Plotter {
	return []Plotter{
		&ScatterPlotter{},
		&ErrorBarsPlotter{},
		&OutbreakPlotter{},
	}
}

// Select filters the registry down to the requested kinds, preserving
// registry order.
func Select(kinds []schema.ChartKind) []Plotter {
	wanted := make(map[schema.ChartKind]struct{}, len(kinds))
	for _, k := range kinds {
		wanted[k] = struct{}{}
	}
	var selected []Plotter
	for _, p := range Registry() {
		if _, ok := wanted[p.Name()]; ok {
			selected = append(selected, p)
		}
	}
	return selected
}

// RenderToFile runs a plotter and writes the PNG to outDir/<name>.png,
// creating the directory if needed. It returns the written path.
func RenderToFile(p Plotter, data *Dataset, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create output directory %s: %w", outDir, err)
	}
	outPath := filepath.Join(outDir, fmt.Sprintf("%s.png", p.Name()))

	file, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("cannot create %s: %w", outPath, err)
	}
	defer func() { _ = file.Close() }()

	if err := p.Render(data, file); err != nil {
		return "", fmt.Errorf("rendering %s: %w", p.Name(), err)
	}
	return outPath, nil
}
