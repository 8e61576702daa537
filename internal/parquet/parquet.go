// Package parquet exports episcope results to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/epitools/episcope/schema"
	"github.com/parquet-go/parquet-go"
)

// SignalRecord is the Parquet shape of one outbreak signal row. Optional
// schema.Float fields map to nullable pointer columns.
type SignalRecord struct {
	// TimeBucket is the discrete period label, e.g. "2023-W01"
	TimeBucket string `parquet:"time_bucket,snappy"`

	// ObservedMean is the mean observed cases across locations (nullable)
	ObservedMean *float64 `parquet:"observed_mean,optional,snappy"`

	// SmoothedMean is the rolling mean of observed means (nullable)
	SmoothedMean *float64 `parquet:"smoothed_mean,optional,snappy"`

	// SmoothedSD is the rolling population sd of observed means (nullable)
	SmoothedSD *float64 `parquet:"smoothed_sd,optional,snappy"`

	// Threshold is the alert threshold, smoothed mean + z * sd (nullable)
	Threshold *float64 `parquet:"threshold,optional,snappy"`

	// ForecastMean is the mean of the forecast sample bag (nullable)
	ForecastMean *float64 `parquet:"forecast_mean,optional,snappy"`

	// ForecastLo is the 2.5th percentile of the bag (nullable)
	ForecastLo *float64 `parquet:"forecast_lo,optional,snappy"`

	// ForecastHi is the 97.5th percentile of the bag (nullable)
	ForecastHi *float64 `parquet:"forecast_hi,optional,snappy"`

	// ExceedProbability is the fraction of samples above Threshold (nullable)
	ExceedProbability *float64 `parquet:"exceed_probability,optional,snappy"`
}

// MetricRecord is the Parquet shape of one absolute-error metric row.
type MetricRecord struct {
	// Location the forecast was issued for
	Location string `parquet:"location,snappy"`

	// TimeBucket is the discrete period label the forecast targets
	TimeBucket string `parquet:"time_bucket,snappy"`

	// Forecast is the predicted disease cases
	Forecast float64 `parquet:"forecast,snappy"`

	// Observed is the matching ground truth (nullable)
	Observed *float64 `parquet:"observed,optional,snappy"`

	// AbsError is |forecast - observed| (nullable)
	AbsError *float64 `parquet:"abs_error,optional,snappy"`
}

// FromSignalRows converts signal rows into their Parquet records.
func FromSignalRows(rows []schema.SignalRow) []SignalRecord {
	records := make([]SignalRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, SignalRecord{
			TimeBucket:        r.TimeBucket,
			ObservedMean:      r.ObservedMean.Ptr(),
			SmoothedMean:      r.SmoothedMean.Ptr(),
			SmoothedSD:        r.SmoothedSD.Ptr(),
			Threshold:         r.Threshold.Ptr(),
			ForecastMean:      r.ForecastMean.Ptr(),
			ForecastLo:        r.ForecastLo.Ptr(),
			ForecastHi:        r.ForecastHi.Ptr(),
			ExceedProbability: r.ExceedProb.Ptr(),
		})
	}
	return records
}

// FromMetricRows converts metric rows into their Parquet records.
func FromMetricRows(rows []schema.MetricRow) []MetricRecord {
	records := make([]MetricRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, MetricRecord{
			Location:   r.Location,
			TimeBucket: r.TimeBucket,
			Forecast:   r.Forecast,
			Observed:   r.Observed.Ptr(),
			AbsError:   r.AbsError.Ptr(),
		})
	}
	return records
}

// WriteSignalRows writes signal rows to a Parquet file.
func WriteSignalRows(rows []schema.SignalRow, outputPath string) error {
	return writeRecords(FromSignalRows(rows), outputPath)
}

// WriteMetricRows writes metric rows to a Parquet file.
func WriteMetricRows(rows []schema.MetricRow, outputPath string) error {
	return writeRecords(FromMetricRows(rows), outputPath)
}

// writeRecords writes any record slice using struct schema inference.
func writeRecords[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the record struct tags
	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
