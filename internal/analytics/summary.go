// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

// Package analytics computes the dashboard aggregates over a filtered
// dataset.Table. Every function here is pure: it reads the table, never
// modifies it, and returns empty results (not errors) for an empty table.
//
// Absent values are NaN in the table and are skipped by every statistic;
// a statistic with no values is reported as nil rather than zero.
package analytics

import (
	"math"

	"github.com/go-gota/gota/series"

	"github.com/tomtom215/reelstats/internal/dataset"
)

// Summary backs the four metric cards.
type Summary struct {
	Count       int      `json:"count"`
	AvgRating   *float64 `json:"avg_rating"`
	MedianGross *float64 `json:"median_gross"`
	AvgRuntime  *float64 `json:"avg_runtime"`
}

// SummaryMetrics computes row count, mean rating, median gross and mean
// runtime of t.
func SummaryMetrics(t *dataset.Table) Summary {
	return Summary{
		Count:       t.Len(),
		AvgRating:   mean(t.Ratings()),
		MedianGross: median(t.Gross()),
		AvgRuntime:  mean(t.Runtimes()),
	}
}

// present drops NaN values.
func present(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// presentSeries wraps the non-NaN values in a gota series. ok is false
// when nothing is left.
func presentSeries(values []float64) (s series.Series, ok bool) {
	vals := present(values)
	if len(vals) == 0 {
		return series.Series{}, false
	}
	return series.Floats(vals), true
}

func mean(values []float64) *float64 {
	s, ok := presentSeries(values)
	if !ok {
		return nil
	}
	m := s.Mean()
	return &m
}

func median(values []float64) *float64 {
	s, ok := presentSeries(values)
	if !ok {
		return nil
	}
	m := s.Median()
	return &m
}

// stddev is the sample standard deviation (n-1 denominator) of values
// that are already free of NaN.
func stddev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	return series.Floats(vals).StdDev()
}

// optional converts NaN to nil for JSON output.
func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
