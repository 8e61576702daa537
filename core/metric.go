package core

import (
	"math"

	"github.com/epitools/episcope/schema"
)

// obsKey joins observations to forecast rows.
type obsKey struct {
	location string
	bucket   string
}

// ComputeAbsError computes the per-row absolute error between each forecast
// record and the observation for the same (location, time bucket). The
// output preserves forecast row order. Rows with no matching observation
// keep an absent Observed and AbsError rather than a zero.
//
// Inputs normally carry one observation per (location, bucket); if a file
// repeats the pair, the values are averaged, consistent with how the signal
// computation aggregates observations.
func ComputeAbsError(forecasts []schema.ForecastRecord, observations []schema.Observation) []schema.MetricRow {
	sums := make(map[obsKey]float64)
	counts := make(map[obsKey]int)
	for _, o := range observations {
		k := obsKey{location: o.Location, bucket: o.TimeBucket}
		sums[k] += o.Value
		counts[k]++
	}

	rows := make([]schema.MetricRow, 0, len(forecasts))
	for _, f := range forecasts {
		row := schema.MetricRow{
			Location:   f.Location,
			TimeBucket: f.TimeBucket,
			Forecast:   f.Value,
		}
		k := obsKey{location: f.Location, bucket: f.TimeBucket}
		if n := counts[k]; n > 0 {
			observed := sums[k] / float64(n)
			row.Observed = schema.FloatFrom(observed)
			row.AbsError = schema.FloatFrom(math.Abs(f.Value - observed))
		}
		rows = append(rows, row)
	}
	return rows
}
