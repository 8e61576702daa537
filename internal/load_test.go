package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTempCSV writes content to a file under the test's temp dir.
func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestReadObservations loads a well-formed file in file order.
func TestReadObservations(t *testing.T) {
	path := writeTempCSV(t, "observations.csv",
		"location,time_period,disease_cases\n"+
			"loc1,2023-W01,11.0\n"+
			"loc2,2023-W01,19.0\n")

	observations, err := ReadObservations(path)
	require.NoError(t, err)
	require.Len(t, observations, 2)
	assert.Equal(t, "loc1", observations[0].Location)
	assert.Equal(t, "2023-W01", observations[0].TimeBucket)
	assert.InDelta(t, 11.0, observations[0].Value, 1e-9)
	assert.InDelta(t, 19.0, observations[1].Value, 1e-9)
}

// TestReadObservationsHeaderOrder resolves columns by name, not position.
func TestReadObservationsHeaderOrder(t *testing.T) {
	path := writeTempCSV(t, "observations.csv",
		"disease_cases,location,time_period\n"+
			"7.5,loc9,2023-W03\n")

	observations, err := ReadObservations(path)
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, "loc9", observations[0].Location)
	assert.InDelta(t, 7.5, observations[0].Value, 1e-9)
}

// TestReadObservationsErrors reports the file and line of bad data.
func TestReadObservationsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{
			name:    "missing column",
			content: "location,time_period\nloc1,2023-W01\n",
			errPart: "missing required column",
		},
		{
			name:    "bad number",
			content: "location,time_period,disease_cases\nloc1,2023-W01,oops\n",
			errPart: "bad disease_cases value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, "observations.csv", tt.content)
			_, err := ReadObservations(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

// TestReadForecasts loads all five columns.
func TestReadForecasts(t *testing.T) {
	path := writeTempCSV(t, "forecasts.csv",
		"location,time_period,horizon_distance,sample,forecast\n"+
			"loc1,2023-W01,1,1,10\n"+
			"loc1,2023-W01,1,2,12.5\n")

	forecasts, err := ReadForecasts(path)
	require.NoError(t, err)
	require.Len(t, forecasts, 2)
	assert.Equal(t, 1, forecasts[0].Horizon)
	assert.Equal(t, 2, forecasts[1].Sample)
	assert.InDelta(t, 12.5, forecasts[1].Value, 1e-9)
}

// TestReadForecastsMissingFile surfaces the open error.
func TestReadForecastsMissingFile(t *testing.T) {
	_, err := ReadForecasts(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
