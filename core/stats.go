package core

import (
	"math"

	"github.com/montanaflynn/stats"
)

// mean is the arithmetic mean of a non-empty slice.
func mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return math.NaN()
	}
	return m
}

// populationSD is the standard deviation with the population denominator.
func populationSD(values []float64) float64 {
	sd, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return math.NaN()
	}
	return sd
}

// percentileLinear extracts the p-th percentile (0-100) from an already
// sorted slice, interpolating linearly between order statistics: the rank
// is h = (n-1) * p/100 and fractional ranks blend the two neighbors. This
// is the "linear" percentile method; stats.Percentile implements a
// different (ordinal) convention, so it cannot be used here.
func percentileLinear(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	h := (p / 100) * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
