// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import "math"

// Summary holds the aggregates shown for a story's numeric estimates
type Summary struct {
	Count int
	Min   float64
	Mean  float64
	Max   float64
	Stdev float64
}

// Summarize computes all aggregates in one pass over values.
// An empty input yields a zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	return Summary{
		Count: len(values),
		Min:   Min(values),
		Mean:  Mean(values),
		Max:   Max(values),
		Stdev: PopulationStdev(values),
	}
}

// Mean calculates the arithmetic mean
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PopulationStdev is the square root of the mean squared deviation.
// The divisor is N, not N-1.
func PopulationStdev(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	avg := Mean(values)
	deviations := make([]float64, len(values))
	for i, v := range values {
		d := v - avg
		deviations[i] = d * d
	}
	return math.Sqrt(Mean(deviations))
}

// Min returns the smallest value, 0 for empty input
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Max returns the largest value, 0 for empty input
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
