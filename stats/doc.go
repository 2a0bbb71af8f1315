// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stats aggregates numeric estimates.

	s := stats.Summarize([]float64{5, 8})
	// s.Min=5 s.Mean=6.5 s.Max=8 s.Stdev=1.5

Every function returns 0 for an empty input instead of failing, so a story
with no numeric votes never breaks a report. The standard deviation is the
population one (divisor N).
*/
package stats
