package cmd

import (
	"github.com/epitools/episcope/core"
	"github.com/epitools/episcope/internal"
	"github.com/epitools/episcope/schema"
	"github.com/spf13/cobra"
)

// signalCmd computes the outbreak signal from the two input files.
var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Compute per-bucket outbreak signal rows from forecasts and observations",
	Long: `Compute the outbreak signal: one row per time bucket with the mean observed
cases, a rolling smoothed mean and standard deviation, the alert threshold
(smoothed mean + z * sd), the forecast mean with its 95% interval, and the
probability that forecast samples exceed the threshold.

Buckets that only appear on one side still produce a row; the missing side's
fields stay empty rather than defaulting to zero.

Examples:
  # Signal table from the example data
  episcope signal -o observations.csv -f forecasts.csv

  # Wider smoothing and a stricter threshold, exported as CSV
  episcope signal -o obs.csv -f fc.csv --window 5 --z 3 --output csv --output-file signal.csv

  # Parquet export for downstream analysis
  episcope signal -o obs.csv -f fc.csv --output parquet --output-file signal.parquet`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		rows, err := computeSignalRows()
		if err != nil {
			internal.LogFatal("Cannot compute outbreak signal", err)
		}
		if err := internal.PrintSignalResults(rows, cfg); err != nil {
			internal.LogFatal("Cannot write signal output", err)
		}
	},
}

// computeSignalRows loads both inputs and runs the signal computation with
// the configured window and z.
func computeSignalRows() ([]schema.SignalRow, error) {
	observations, err := internal.ReadObservations(cfg.ObservationsPath)
	if err != nil {
		return nil, err
	}
	forecasts, err := internal.ReadForecasts(cfg.ForecastsPath)
	if err != nil {
		return nil, err
	}
	return core.ComputeSignal(observations, schema.FlattenForecasts(forecasts), core.SignalOptions{
		Window: cfg.Window,
		Z:      cfg.Z,
	})
}
