// Package cmd defines the command-line interface for episcope.
package cmd

import (
	"github.com/epitools/episcope/core"
	"github.com/epitools/episcope/internal"
	"github.com/epitools/episcope/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(signalCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("observations", "o", "", "Path to observations CSV (location,time_period,disease_cases)")
	rootCmd.PersistentFlags().StringP("forecasts", "f", "", "Path to forecasts CSV (location,time_period,horizon_distance,sample,forecast)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write tabular output to")
	rootCmd.PersistentFlags().Int("precision", internal.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().IntP("window", "w", core.DefaultWindow, "Half-window radius for rolling smoothing")
	rootCmd.PersistentFlags().Float64P("z", "z", core.DefaultZ, "Threshold multiplier on the rolling standard deviation")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		internal.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of plotCmd to Viper
	plotCmd.Flags().String("charts", "", "Comma-separated chart kinds to render (scatter,errorbars,outbreak); empty = all")
	plotCmd.Flags().String("out-dir", internal.DefaultOutDir, "Directory for rendered PNG files")
	if err := viper.BindPFlags(plotCmd.Flags()); err != nil {
		internal.LogFatal("Error binding plot flags", err)
	}
}
