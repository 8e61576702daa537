package core

import (
	"testing"

	"github.com/epitools/episcope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exampleObservations covers two locations over two weeks.
func exampleObservations() []schema.Observation {
	return []schema.Observation{
		{Location: "loc1", TimeBucket: "2023-W01", Value: 11},
		{Location: "loc1", TimeBucket: "2023-W02", Value: 13},
		{Location: "loc2", TimeBucket: "2023-W01", Value: 19},
		{Location: "loc2", TimeBucket: "2023-W02", Value: 21},
	}
}

// TestComputeSignalAggregation checks the worked example: per-bucket means,
// smoothing across a two-bucket series, and the derived threshold.
func TestComputeSignalAggregation(t *testing.T) {
	rows, err := ComputeSignal(exampleObservations(), nil, SignalOptions{Window: 1, Z: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	w01, w02 := rows[0], rows[1]
	assert.Equal(t, "2023-W01", w01.TimeBucket)
	assert.Equal(t, "2023-W02", w02.TimeBucket)

	// Means across locations: (11+19)/2 and (13+21)/2.
	assert.InDelta(t, 15.0, w01.ObservedMean.Value, 1e-9)
	assert.InDelta(t, 17.0, w02.ObservedMean.Value, 1e-9)

	// With only two buckets and radius 1 both windows cover the whole
	// series: mean 16, population sd 1.
	for _, r := range rows {
		require.True(t, r.SmoothedMean.Valid)
		assert.InDelta(t, 16.0, r.SmoothedMean.Value, 1e-9)
		assert.InDelta(t, 1.0, r.SmoothedSD.Value, 1e-9)
		assert.InDelta(t, 18.0, r.Threshold.Value, 1e-9)
	}

	// No forecasts: forecast fields and exceedance stay absent.
	for _, r := range rows {
		assert.False(t, r.ForecastMean.Valid)
		assert.False(t, r.ForecastLo.Valid)
		assert.False(t, r.ForecastHi.Valid)
		assert.False(t, r.ExceedProb.Valid)
	}
}

// TestComputeSignalExceedance checks the worked example for forecast stats
// and the strict exceedance probability.
func TestComputeSignalExceedance(t *testing.T) {
	forecasts := []schema.ForecastSample{
		{TimeBucket: "2023-W01", Value: 10},
		{TimeBucket: "2023-W01", Value: 21},
	}
	rows, err := ComputeSignal(exampleObservations(), forecasts, SignalOptions{Window: 1, Z: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	w01 := rows[0]
	require.True(t, w01.ForecastMean.Valid)
	assert.InDelta(t, 15.5, w01.ForecastMean.Value, 1e-9)

	// Linear interpolation over [10, 21]: h = p/100 * (n-1).
	assert.InDelta(t, 10.275, w01.ForecastLo.Value, 1e-9)
	assert.InDelta(t, 20.725, w01.ForecastHi.Value, 1e-9)

	// Threshold 18.0; exactly one of two samples (21) exceeds it.
	require.True(t, w01.ExceedProb.Valid)
	assert.InDelta(t, 0.5, w01.ExceedProb.Value, 1e-9)

	// W02 has observations but no samples.
	assert.False(t, rows[1].ForecastMean.Valid)
	assert.False(t, rows[1].ExceedProb.Valid)
}

// TestComputeSignalBucketUnion ensures a bucket present on only one side
// still produces a row, with the other side's fields absent.
func TestComputeSignalBucketUnion(t *testing.T) {
	forecasts := []schema.ForecastSample{
		{TimeBucket: "2023-W05", Value: 30},
		{TimeBucket: "2023-W05", Value: 32},
	}
	rows, err := ComputeSignal(exampleObservations(), forecasts, SignalOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Sorted ascending with no duplicates.
	var buckets []string
	for _, r := range rows {
		buckets = append(buckets, r.TimeBucket)
	}
	assert.Equal(t, []string{"2023-W01", "2023-W02", "2023-W05"}, buckets)

	// Forecast-only bucket: no observed side, no threshold, no exceedance.
	w05 := rows[2]
	assert.False(t, w05.ObservedMean.Valid)
	assert.False(t, w05.SmoothedMean.Valid)
	assert.False(t, w05.Threshold.Valid)
	assert.False(t, w05.ExceedProb.Valid)
	require.True(t, w05.ForecastMean.Valid)
	assert.InDelta(t, 31.0, w05.ForecastMean.Value, 1e-9)
}

// TestComputeSignalIntervalOrdering checks lo <= mean <= hi across a range
// of bag shapes.
func TestComputeSignalIntervalOrdering(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
	}{
		{name: "single sample", samples: []float64{7}},
		{name: "two samples", samples: []float64{3, 9}},
		{name: "repeated values", samples: []float64{5, 5, 5, 5}},
		{name: "spread", samples: []float64{1, 2, 4, 8, 16, 32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var forecasts []schema.ForecastSample
			for _, v := range tt.samples {
				forecasts = append(forecasts, schema.ForecastSample{TimeBucket: "2023-W01", Value: v})
			}
			rows, err := ComputeSignal(nil, forecasts, SignalOptions{})
			require.NoError(t, err)
			require.Len(t, rows, 1)

			r := rows[0]
			require.True(t, r.ForecastLo.Valid)
			assert.LessOrEqual(t, r.ForecastLo.Value, r.ForecastMean.Value)
			assert.LessOrEqual(t, r.ForecastMean.Value, r.ForecastHi.Value)
		})
	}
}

// TestComputeSignalWideWindow checks the boundary case: a window covering
// the whole series flattens every smoothed mean to the global mean.
func TestComputeSignalWideWindow(t *testing.T) {
	observations := []schema.Observation{
		{Location: "a", TimeBucket: "W01", Value: 2},
		{Location: "a", TimeBucket: "W02", Value: 4},
		{Location: "a", TimeBucket: "W03", Value: 6},
		{Location: "a", TimeBucket: "W04", Value: 12},
	}
	rows, err := ComputeSignal(observations, nil, SignalOptions{Window: 100})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	for _, r := range rows {
		require.True(t, r.SmoothedMean.Valid)
		assert.InDelta(t, 6.0, r.SmoothedMean.Value, 1e-9)
	}
}

// TestComputeSignalTruncatedWindows verifies the asymmetric edge windows:
// radius 1 over [1,2,3,4] gives means 1.5, 2, 3, 3.5.
func TestComputeSignalTruncatedWindows(t *testing.T) {
	observations := []schema.Observation{
		{Location: "a", TimeBucket: "W01", Value: 1},
		{Location: "a", TimeBucket: "W02", Value: 2},
		{Location: "a", TimeBucket: "W03", Value: 3},
		{Location: "a", TimeBucket: "W04", Value: 4},
	}
	rows, err := ComputeSignal(observations, nil, SignalOptions{Window: 1})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	expected := []float64{1.5, 2.0, 3.0, 3.5}
	for i, r := range rows {
		assert.InDelta(t, expected[i], r.SmoothedMean.Value, 1e-9, "bucket %s", r.TimeBucket)
	}
}

// TestComputeSignalInvalidInput checks that blank bucket keys abort the
// whole computation with no partial result.
func TestComputeSignalInvalidInput(t *testing.T) {
	tests := []struct {
		name         string
		observations []schema.Observation
		forecasts    []schema.ForecastSample
	}{
		{
			name: "blank observation bucket",
			observations: []schema.Observation{
				{Location: "a", TimeBucket: "W01", Value: 1},
				{Location: "a", TimeBucket: "", Value: 2},
			},
		},
		{
			name:      "blank forecast bucket",
			forecasts: []schema.ForecastSample{{TimeBucket: "", Value: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ComputeSignal(tt.observations, tt.forecasts, SignalOptions{})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, rows)
		})
	}
}

// TestComputeSignalNegativeWindow rejects a negative radius.
func TestComputeSignalNegativeWindow(t *testing.T) {
	_, err := ComputeSignal(exampleObservations(), nil, SignalOptions{Window: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestComputeSignalEmptyInputs returns an empty result, not an error.
func TestComputeSignalEmptyInputs(t *testing.T) {
	rows, err := ComputeSignal(nil, nil, SignalOptions{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// TestComputeSignalIdempotent checks that repeated calls with identical
// inputs yield identical output.
func TestComputeSignalIdempotent(t *testing.T) {
	forecasts := []schema.ForecastSample{
		{TimeBucket: "2023-W01", Value: 10},
		{TimeBucket: "2023-W01", Value: 21},
		{TimeBucket: "2023-W03", Value: 14},
	}
	first, err := ComputeSignal(exampleObservations(), forecasts, SignalOptions{})
	require.NoError(t, err)
	second, err := ComputeSignal(exampleObservations(), forecasts, SignalOptions{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
