package internal

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/epitools/episcope/internal/parquet"
	"github.com/epitools/episcope/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSignalResults outputs the signal rows in the configured format.
func PrintSignalResults(rows []schema.SignalRow, cfg *Config) error {
	fmtFloat := func(f schema.Float) string {
		return f.Format(cfg.Precision, "")
	}

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return printJSON(rows, cfg)
	case schema.CSVOut:
		return printCSV(cfg, func(w *csv.Writer) error {
			return writeSignalCSV(w, rows, fmtFloat)
		})
	case schema.ParquetOut:
		if err := parquet.WriteSignalRows(rows, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		// Default to human-readable table
		return printSignalTable(rows, cfg)
	}
}

// PrintMetricResults outputs the metric rows in the configured format.
func PrintMetricResults(rows []schema.MetricRow, cfg *Config) error {
	fmtFloat := func(f schema.Float) string {
		return f.Format(cfg.Precision, "")
	}

	switch cfg.Output {
	case schema.JSONOut:
		return printJSON(rows, cfg)
	case schema.CSVOut:
		return printCSV(cfg, func(w *csv.Writer) error {
			return writeMetricCSV(w, rows, fmtFloat, cfg.Precision)
		})
	case schema.ParquetOut:
		if err := parquet.WriteMetricRows(rows, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return printMetricTable(rows, cfg)
	}
}

// printJSON handles opening the file and writing the JSON array.
func printJSON(rows any, cfg *Config) error {
	file, err := selectOutputFile(cfg.OutputFile)
	if err != nil {
		if cfg.OutputFile != "" {
			LogWarn("cannot open output file, falling back to stdout", err)
		}
		file = os.Stdout
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writeJSON(file, rows); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "Wrote JSON to %s\n", cfg.OutputFile)
	}
	return nil
}

// printCSV handles opening the file and calling the CSV writer.
func printCSV(cfg *Config, write func(*csv.Writer) error) error {
	file, err := selectOutputFile(cfg.OutputFile)
	if err != nil {
		if cfg.OutputFile != "" {
			LogWarn("cannot open output file, falling back to stdout", err)
		}
		file = os.Stdout
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	w := csv.NewWriter(file)
	if err := write(w); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "Wrote CSV to %s\n", cfg.OutputFile)
	}
	return nil
}

// printSignalTable generates and prints the human-readable signal table.
func printSignalTable(rows []schema.SignalRow, cfg *Config) error {
	fmtCell := func(f schema.Float) string {
		return f.Format(cfg.Precision, noDataValue)
	}
	label := getColorLabel
	if !cfg.Color {
		label = getPlainLabel
	}
	compact := useCompactTable(cfg)

	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	headers := []string{"Bucket", "Observed", "Forecast", "P(exceed)", "Label"}
	if !compact {
		headers = []string{
			"Bucket", "Observed", "Smoothed", "SD", "Threshold",
			"Forecast", "Lo", "Hi", "P(exceed)", "Label",
		}
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, r := range rows {
		var row []string
		if compact {
			row = []string{
				r.TimeBucket,
				fmtCell(r.ObservedMean),
				fmtCell(r.ForecastMean),
				fmtCell(r.ExceedProb),
				label(r.ExceedProb),
			}
		} else {
			row = []string{
				r.TimeBucket,
				fmtCell(r.ObservedMean),
				fmtCell(r.SmoothedMean),
				fmtCell(r.SmoothedSD),
				fmtCell(r.Threshold),
				fmtCell(r.ForecastMean),
				fmtCell(r.ForecastLo),
				fmtCell(r.ForecastHi),
				fmtCell(r.ExceedProb),
				label(r.ExceedProb),
			}
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// printMetricTable generates and prints the human-readable metric table.
func printMetricTable(rows []schema.MetricRow, cfg *Config) error {
	fmtCell := func(f schema.Float) string {
		return f.Format(cfg.Precision, noDataValue)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Rank", "Location", "Bucket", "Forecast", "Observed", "Abs Error"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, r := range rows {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			r.Location,
			r.TimeBucket,
			fmt.Sprintf("%.*f", cfg.Precision, r.Forecast),
			fmtCell(r.Observed),
			fmtCell(r.AbsError),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
