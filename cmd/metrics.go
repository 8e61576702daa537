package cmd

import (
	"github.com/epitools/episcope/core"
	"github.com/epitools/episcope/internal"
	"github.com/epitools/episcope/schema"
	"github.com/spf13/cobra"
)

// metricsCmd computes the per-row absolute error metric.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Compute per-row absolute error between forecasts and observations",
	Long: `Join each forecast row to the observation for the same location and time
bucket and report the absolute error. Forecast rows with no matching
observation keep empty observed/error fields.

Examples:
  episcope metrics -o observations.csv -f forecasts.csv
  episcope metrics -o obs.csv -f fc.csv --output json --output-file errors.json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		rows, err := computeMetricRows()
		if err != nil {
			internal.LogFatal("Cannot compute error metric", err)
		}
		if err := internal.PrintMetricResults(rows, cfg); err != nil {
			internal.LogFatal("Cannot write metric output", err)
		}
	},
}

// computeMetricRows loads both inputs and joins them.
func computeMetricRows() ([]schema.MetricRow, error) {
	observations, err := internal.ReadObservations(cfg.ObservationsPath)
	if err != nil {
		return nil, err
	}
	forecasts, err := internal.ReadForecasts(cfg.ForecastsPath)
	if err != nil {
		return nil, err
	}
	return core.ComputeAbsError(forecasts, observations), nil
}
