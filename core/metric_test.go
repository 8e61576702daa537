package core

import (
	"testing"

	"github.com/epitools/episcope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComputeAbsError joins forecasts to observations and keeps input order.
func TestComputeAbsError(t *testing.T) {
	forecasts := []schema.ForecastRecord{
		{Location: "loc1", TimeBucket: "2023-W01", Horizon: 1, Sample: 1, Value: 10},
		{Location: "loc1", TimeBucket: "2023-W02", Horizon: 2, Sample: 1, Value: 12},
		{Location: "loc2", TimeBucket: "2023-W01", Horizon: 1, Sample: 1, Value: 21},
		{Location: "loc2", TimeBucket: "2023-W02", Horizon: 2, Sample: 1, Value: 23},
	}
	observations := []schema.Observation{
		{Location: "loc1", TimeBucket: "2023-W01", Value: 11},
		{Location: "loc1", TimeBucket: "2023-W02", Value: 13},
		{Location: "loc2", TimeBucket: "2023-W01", Value: 19},
		{Location: "loc2", TimeBucket: "2023-W02", Value: 21},
	}

	rows := ComputeAbsError(forecasts, observations)
	require.Len(t, rows, 4)

	expected := []float64{1, 1, 2, 2}
	for i, r := range rows {
		assert.Equal(t, forecasts[i].Location, r.Location)
		assert.Equal(t, forecasts[i].TimeBucket, r.TimeBucket)
		require.True(t, r.AbsError.Valid)
		assert.InDelta(t, expected[i], r.AbsError.Value, 1e-9)
	}
}

// TestComputeAbsErrorUnmatched keeps absent fields for forecasts with no
// observation, instead of a zero error.
func TestComputeAbsErrorUnmatched(t *testing.T) {
	forecasts := []schema.ForecastRecord{
		{Location: "loc1", TimeBucket: "2023-W09", Value: 10},
	}
	rows := ComputeAbsError(forecasts, nil)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Observed.Valid)
	assert.False(t, rows[0].AbsError.Valid)
	assert.InDelta(t, 10.0, rows[0].Forecast, 1e-9)
}

// TestComputeAbsErrorDuplicateObservations averages repeated
// (location, bucket) observations before differencing.
func TestComputeAbsErrorDuplicateObservations(t *testing.T) {
	forecasts := []schema.ForecastRecord{
		{Location: "loc1", TimeBucket: "2023-W01", Value: 10},
	}
	observations := []schema.Observation{
		{Location: "loc1", TimeBucket: "2023-W01", Value: 8},
		{Location: "loc1", TimeBucket: "2023-W01", Value: 16},
	}
	rows := ComputeAbsError(forecasts, observations)
	require.Len(t, rows, 1)
	require.True(t, rows[0].Observed.Valid)
	assert.InDelta(t, 12.0, rows[0].Observed.Value, 1e-9)
	assert.InDelta(t, 2.0, rows[0].AbsError.Value, 1e-9)
}
