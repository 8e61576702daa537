package internal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/epitools/episcope/schema"
)

// Column names expected in the flat input files.
const (
	colLocation = "location"
	colPeriod   = "time_period"
	colCases    = "disease_cases"
	colHorizon  = "horizon_distance"
	colSample   = "sample"
	colForecast = "forecast"
)

// ReadObservations loads a flat observations CSV with columns
// location, time_period, disease_cases. Column order does not matter;
// extra columns are ignored. Records come back in file order.
func ReadObservations(path string) ([]schema.Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open observations file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	cols, err := headerIndex(reader, path, colLocation, colPeriod, colCases)
	if err != nil {
		return nil, err
	}

	var out []schema.Observation
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		cases, err := parseFloatField(record, cols[colCases], path, line, colCases)
		if err != nil {
			return nil, err
		}
		out = append(out, schema.Observation{
			Location:   record[cols[colLocation]],
			TimeBucket: record[cols[colPeriod]],
			Value:      cases,
		})
	}
	return out, nil
}

// ReadForecasts loads a flat forecasts CSV with columns
// location, time_period, horizon_distance, sample, forecast.
func ReadForecasts(path string) ([]schema.ForecastRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open forecasts file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	cols, err := headerIndex(reader, path, colLocation, colPeriod, colHorizon, colSample, colForecast)
	if err != nil {
		return nil, err
	}

	var out []schema.ForecastRecord
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		horizon, err := parseIntField(record, cols[colHorizon], path, line, colHorizon)
		if err != nil {
			return nil, err
		}
		sample, err := parseIntField(record, cols[colSample], path, line, colSample)
		if err != nil {
			return nil, err
		}
		forecast, err := parseFloatField(record, cols[colForecast], path, line, colForecast)
		if err != nil {
			return nil, err
		}
		out = append(out, schema.ForecastRecord{
			Location:   record[cols[colLocation]],
			TimeBucket: record[cols[colPeriod]],
			Horizon:    horizon,
			Sample:     sample,
			Value:      forecast,
		})
	}
	return out, nil
}

// headerIndex reads the header row and maps each required column name to
// its position.
func headerIndex(reader *csv.Reader, path string, required ...string) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header of %s: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", path, name)
		}
	}
	return index, nil
}

func parseFloatField(record []string, idx int, path string, line int, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("%s:%d: bad %s value %q", path, line, name, record[idx])
	}
	return v, nil
}

func parseIntField(record []string, idx int, path string, line int, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(record[idx]))
	if err != nil {
		return 0, fmt.Errorf("%s:%d: bad %s value %q", path, line, name, record[idx])
	}
	return v, nil
}
