package internal

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/epitools/episcope/schema"
)

// selectOutputFile returns the appropriate file handle for output, based on
// the provided file path.
func selectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return nil, errors.New("no file specified")
	}
	return os.Create(filePath)
}

// writeSignalCSV writes the signal rows in CSV format. Absent fields
// serialize as empty strings so downstream tools can tell "no data" apart
// from zero.
func writeSignalCSV(w *csv.Writer, rows []schema.SignalRow, fmtFloat func(schema.Float) string) error {
	header := []string{
		"time_bucket", "observed_mean", "smoothed_mean", "smoothed_sd",
		"threshold", "forecast_mean", "forecast_lo", "forecast_hi",
		"exceed_probability", "label",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.TimeBucket,
			fmtFloat(r.ObservedMean),
			fmtFloat(r.SmoothedMean),
			fmtFloat(r.SmoothedSD),
			fmtFloat(r.Threshold),
			fmtFloat(r.ForecastMean),
			fmtFloat(r.ForecastLo),
			fmtFloat(r.ForecastHi),
			fmtFloat(r.ExceedProb),
			getPlainLabel(r.ExceedProb),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeMetricCSV writes the metric rows in CSV format.
func writeMetricCSV(w *csv.Writer, rows []schema.MetricRow, fmtFloat func(schema.Float) string, precision int) error {
	header := []string{"rank", "location", "time_bucket", "forecast", "observed", "abs_error"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, r := range rows {
		rec := []string{
			strconv.Itoa(i + 1),
			r.Location,
			r.TimeBucket,
			fmt.Sprintf("%.*f", precision, r.Forecast),
			fmtFloat(r.Observed),
			fmtFloat(r.AbsError),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSON writes any row slice as an indented JSON array. Absent Float
// fields marshal as null via schema.Float.
func writeJSON(w io.Writer, rows any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
