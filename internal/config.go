// Package internal has helpers that are only useful within the episcope
// runtime: configuration processing, input loading and tabular output.
package internal

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/epitools/episcope/core"
	"github.com/epitools/episcope/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 2
	MaxPrecision     = 10
	DefaultOutDir    = "output"
)

// Config is the validated, final runtime configuration.
type Config struct {
	ObservationsPath string
	ForecastsPath    string
	Output           schema.OutputMode
	OutputFile       string
	Precision        int
	Window           int
	Z                float64
	Charts           []schema.ChartKind
	OutDir           string
	Color            bool
	Width            int
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Observations string  `mapstructure:"observations"`
	Forecasts    string  `mapstructure:"forecasts"`
	Output       string  `mapstructure:"output"`
	OutputFile   string  `mapstructure:"output-file"`
	Precision    int     `mapstructure:"precision"`
	Window       int     `mapstructure:"window"`
	Z            float64 `mapstructure:"z"`
	Charts       string  `mapstructure:"charts"`
	OutDir       string  `mapstructure:"out-dir"`
	Color        string  `mapstructure:"color"`
	Width        int     `mapstructure:"width"`
}

// ProcessAndValidate turns raw input into the final Config, rejecting
// anything the commands cannot work with.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if input.Observations == "" {
		return fmt.Errorf("observations CSV path is required (--observations)")
	}
	if input.Forecasts == "" {
		return fmt.Errorf("forecasts CSV path is required (--forecasts)")
	}
	for _, path := range []string{input.Observations, input.Forecasts} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("cannot read input file %s: %w", path, err)
		}
	}
	cfg.ObservationsPath = input.Observations
	cfg.ForecastsPath = input.Forecasts

	output := schema.OutputMode(input.Output)
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q (text, csv, json, parquet)", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d, got %d", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Window < 0 {
		return fmt.Errorf("window must be non-negative, got %d", input.Window)
	}
	cfg.Window = input.Window
	if cfg.Window == 0 {
		cfg.Window = core.DefaultWindow
	}

	if math.IsNaN(input.Z) || math.IsInf(input.Z, 0) {
		return fmt.Errorf("z multiplier must be finite, got %v", input.Z)
	}
	cfg.Z = input.Z
	if cfg.Z == 0 {
		cfg.Z = core.DefaultZ
	}

	charts, err := parseChartKinds(input.Charts)
	if err != nil {
		return err
	}
	cfg.Charts = charts

	cfg.OutDir = input.OutDir
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}

	cfg.Color = parseBoolish(input.Color)
	cfg.Width = input.Width
	return nil
}

// parseChartKinds resolves a comma list of chart names against the closed
// set of renderers. Empty means all of them.
func parseChartKinds(raw string) ([]schema.ChartKind, error) {
	if strings.TrimSpace(raw) == "" {
		return schema.AllChartKinds, nil
	}
	var kinds []schema.ChartKind
	for _, part := range strings.Split(raw, ",") {
		kind := schema.ChartKind(strings.TrimSpace(part))
		if _, ok := schema.ValidChartKinds[kind]; !ok {
			return nil, fmt.Errorf("invalid chart kind %q (scatter, errorbars, outbreak)", part)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// parseBoolish accepts the yes/no/true/false/1/0 forms used by flags.
func parseBoolish(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "no", "false", "0", "off":
		return false
	default:
		return true
	}
}
