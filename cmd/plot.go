package cmd

import (
	"fmt"
	"os"

	"github.com/epitools/episcope/core"
	"github.com/epitools/episcope/internal"
	"github.com/epitools/episcope/internal/render"
	"github.com/epitools/episcope/schema"
	"github.com/spf13/cobra"
)

// plotCmd renders the selected charts as PNG files.
var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render forecast evaluation charts as PNG files",
	Long: `Render charts from the forecast and observation data:

  scatter    observed vs predicted cases with a 45 degree reference line
  errorbars  absolute error per location and time bucket
  outbreak   forecast mean, 95% interval, alert threshold and P(exceed)

Each selected chart is written to <out-dir>/<name>.png.

Examples:
  # All charts into ./output
  episcope plot -o observations.csv -f forecasts.csv

  # Only the outbreak chart, into a custom directory
  episcope plot -o obs.csv -f fc.csv --charts outbreak --out-dir charts`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runPlot(); err != nil {
			internal.LogFatal("Cannot render charts", err)
		}
	},
}

// runPlot loads the inputs once, derives everything any plotter needs, and
// runs each selected renderer.
func runPlot() error {
	observations, err := internal.ReadObservations(cfg.ObservationsPath)
	if err != nil {
		return err
	}
	forecasts, err := internal.ReadForecasts(cfg.ForecastsPath)
	if err != nil {
		return err
	}

	signal, err := core.ComputeSignal(observations, schema.FlattenForecasts(forecasts), core.SignalOptions{
		Window: cfg.Window,
		Z:      cfg.Z,
	})
	if err != nil {
		return err
	}

	data := &render.Dataset{
		Observations: observations,
		Forecasts:    forecasts,
		Metrics:      core.ComputeAbsError(forecasts, observations),
		Signal:       signal,
	}

	for _, plotter := range render.Select(cfg.Charts) {
		outPath, err := render.RenderToFile(plotter, data, cfg.OutDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s chart to %s\n", plotter.Name(), outPath)
	}
	return nil
}
