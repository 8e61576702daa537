// Package schema has the data model, optional values and global constants
// shared by all parts of episcope.
package schema

// Observation is a single ground-truth record: the reported disease cases
// for one location in one time bucket.
type Observation struct {
	Location   string  // Reporting location identifier
	TimeBucket string  // Discrete period label, e.g. "2023-W01"
	Value      float64 // Observed disease cases
}

// ForecastRecord is one row of a flat forecast file: a single sample drawn
// for a location, time bucket and forecast horizon.
type ForecastRecord struct {
	Location   string // Location the forecast was issued for
	TimeBucket string // Discrete period label the forecast targets
	Horizon    int    // Steps ahead from the forecast origin
	Sample     int    // Sample index within the predictive distribution
	Value      float64
}

// ForecastSample is the flattened input to the signal computation: one
// forecast value for one time bucket. Location and sample identity are
// pooled away on purpose; repeated identical values are legitimate samples.
type ForecastSample struct {
	TimeBucket string
	Value      float64
}

// SignalRow is one time bucket of the outbreak signal. Every field except
// TimeBucket is optional: a bucket may carry observations, forecasts, or
// both, and absence must stay distinguishable from a zero value.
type SignalRow struct {
	TimeBucket   string `json:"time_bucket"`
	ObservedMean Float  `json:"observed_mean"`      // Mean observed cases across locations
	SmoothedMean Float  `json:"smoothed_mean"`      // Rolling mean of ObservedMean
	SmoothedSD   Float  `json:"smoothed_sd"`        // Rolling population sd of ObservedMean
	Threshold    Float  `json:"threshold"`          // SmoothedMean + z * SmoothedSD
	ForecastMean Float  `json:"forecast_mean"`      // Mean of the forecast sample bag
	ForecastLo   Float  `json:"forecast_lo"`        // 2.5th percentile of the bag
	ForecastHi   Float  `json:"forecast_hi"`        // 97.5th percentile of the bag
	ExceedProb   Float  `json:"exceed_probability"` // Fraction of samples above Threshold
}

// MetricRow is one row of the per-forecast absolute error metric. Observed
// and AbsError are absent when no observation matches the forecast row.
type MetricRow struct {
	Location   string  `json:"location"`
	TimeBucket string  `json:"time_bucket"`
	Forecast   float64 `json:"forecast"`
	Observed   Float   `json:"observed"`
	AbsError   Float   `json:"abs_error"`
}

// FlattenForecasts pools forecast records into the per-bucket samples the
// signal computation consumes.
func FlattenForecasts(records []ForecastRecord) []ForecastSample {
	samples := make([]ForecastSample, 0, len(records))
	for _, r := range records {
		samples = append(samples, ForecastSample{TimeBucket: r.TimeBucket, Value: r.Value})
	}
	return samples
}
