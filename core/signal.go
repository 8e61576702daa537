// Package core implements episcope's numerical routines: the outbreak
// signal computation and the forecast error metric.
package core

import (
	"errors"
	"fmt"
	"sort"

	"github.com/epitools/episcope/schema"
)

// Default tuning for the outbreak signal.
const (
	// DefaultWindow is the half-window radius for rolling smoothing:
	// each position sees up to DefaultWindow neighbors on each side.
	DefaultWindow = 3

	// DefaultZ is the multiplier on the rolling sd when deriving the
	// alert threshold.
	DefaultZ = 2.0
)

// Forecast interval bounds, in percent.
const (
	intervalLoPct = 2.5
	intervalHiPct = 97.5
)

// ErrInvalidInput flags a data-quality problem in the inputs. The signal
// computation returns it wrapped, with no partial result.
var ErrInvalidInput = errors.New("invalid input")

// SignalOptions tunes the outbreak signal computation. The zero value is
// replaced by defaults; see DefaultWindow and DefaultZ.
type SignalOptions struct {
	Window int     // Half-window radius for rolling smoothing
	Z      float64 // Threshold multiplier on the rolling sd
}

// ComputeSignal derives one SignalRow per distinct time bucket appearing in
// either input, sorted ascending by bucket label.
//
// Observations are averaged per bucket across locations, then smoothed with
// a rolling mean and population sd over a window of +/- opts.Window
// positions in the sorted observed sequence. Windows truncate at the
// sequence boundaries rather than padding, and they are positional: a gap
// in the calendar does not change window membership. The alert threshold is
// smoothed mean + Z * smoothed sd.
//
// Forecast samples are pooled per bucket with no deduplication. Non-empty
// bags yield a mean and a 2.5/97.5 percentile interval; the exceedance
// probability is the fraction of samples strictly above the threshold, and
// exists only where both a bag and a threshold do.
//
// Missing data is never an error: fields stay absent and the row is still
// emitted. The only failure is a blank time bucket label, which breaks the
// total order the output relies on.
func ComputeSignal(observations []schema.Observation, forecasts []schema.ForecastSample, opts SignalOptions) ([]schema.SignalRow, error) {
	if opts.Window == 0 {
		opts.Window = DefaultWindow
	}
	if opts.Z == 0 {
		opts.Z = DefaultZ
	}
	if opts.Window < 0 {
		return nil, fmt.Errorf("%w: window must be non-negative, got %d", ErrInvalidInput, opts.Window)
	}
	if err := checkBucketKeys(observations, forecasts); err != nil {
		return nil, err
	}

	buckets, obsMean := observedMeans(observations)

	ma, sd := rollingMeanSD(obsMean, opts.Window)

	obsByBucket := make(map[string]int, len(buckets))
	for i, b := range buckets {
		obsByBucket[b] = i
	}

	samplesByBucket := forecastBags(forecasts)

	// Output axis: sorted union of observation and forecast buckets.
	union := make(map[string]struct{}, len(buckets)+len(samplesByBucket))
	for _, b := range buckets {
		union[b] = struct{}{}
	}
	for b := range samplesByBucket {
		union[b] = struct{}{}
	}
	axis := make([]string, 0, len(union))
	for b := range union {
		axis = append(axis, b)
	}
	sort.Strings(axis)

	rows := make([]schema.SignalRow, 0, len(axis))
	for _, bucket := range axis {
		row := schema.SignalRow{TimeBucket: bucket}

		if i, ok := obsByBucket[bucket]; ok {
			row.ObservedMean = schema.FloatFrom(obsMean[i])
			row.SmoothedMean = schema.FloatFrom(ma[i])
			row.SmoothedSD = schema.FloatFrom(sd[i])
			row.Threshold = schema.FloatFrom(ma[i] + opts.Z*sd[i])
		}

		if bag := samplesByBucket[bucket]; len(bag) > 0 {
			row.ForecastMean = schema.FloatFrom(mean(bag))
			lo, hi := interval(bag)
			row.ForecastLo = schema.FloatFrom(lo)
			row.ForecastHi = schema.FloatFrom(hi)

			if row.Threshold.Valid {
				row.ExceedProb = schema.FloatFrom(exceedance(bag, row.Threshold.Value))
			}
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// checkBucketKeys rejects blank bucket labels before any aggregation, so a
// bad input never yields a partial result.
func checkBucketKeys(observations []schema.Observation, forecasts []schema.ForecastSample) error {
	for i, o := range observations {
		if o.TimeBucket == "" {
			return fmt.Errorf("%w: observation %d has an empty time bucket", ErrInvalidInput, i)
		}
	}
	for i, f := range forecasts {
		if f.TimeBucket == "" {
			return fmt.Errorf("%w: forecast sample %d has an empty time bucket", ErrInvalidInput, i)
		}
	}
	return nil
}

// observedMeans averages observations per bucket across locations and
// returns parallel slices sorted ascending by bucket label.
func observedMeans(observations []schema.Observation) ([]string, []float64) {
	grouped := make(map[string][]float64)
	for _, o := range observations {
		grouped[o.TimeBucket] = append(grouped[o.TimeBucket], o.Value)
	}

	buckets := make([]string, 0, len(grouped))
	for b := range grouped {
		buckets = append(buckets, b)
	}
	sort.Strings(buckets)

	means := make([]float64, len(buckets))
	for i, b := range buckets {
		means[i] = mean(grouped[b])
	}
	return buckets, means
}

// rollingMeanSD smooths values with a centered window of radius k. Windows
// truncate asymmetrically at the edges; the sd uses the population
// denominator (window size, not size-1).
func rollingMeanSD(values []float64, k int) (ma, sd []float64) {
	n := len(values)
	ma = make([]float64, n)
	sd = make([]float64, n)
	for i := range values {
		lo, hi := max(0, i-k), min(n, i+k+1)
		window := values[lo:hi]
		ma[i] = mean(window)
		sd[i] = populationSD(window)
	}
	return ma, sd
}

// forecastBags pools raw forecast values per bucket. Repeated identical
// values are kept; they are distinct samples.
func forecastBags(forecasts []schema.ForecastSample) map[string][]float64 {
	bags := make(map[string][]float64)
	for _, f := range forecasts {
		bags[f.TimeBucket] = append(bags[f.TimeBucket], f.Value)
	}
	return bags
}

// interval returns the 2.5 and 97.5 percentiles of a non-empty bag.
func interval(bag []float64) (lo, hi float64) {
	sorted := make([]float64, len(bag))
	copy(sorted, bag)
	sort.Float64s(sorted)
	return percentileLinear(sorted, intervalLoPct), percentileLinear(sorted, intervalHiPct)
}

// exceedance is the fraction of samples strictly greater than threshold.
func exceedance(bag []float64, threshold float64) float64 {
	var above int
	for _, v := range bag {
		if v > threshold {
			above++
		}
	}
	return float64(above) / float64(len(bag))
}
