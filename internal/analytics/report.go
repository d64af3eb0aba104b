// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package analytics

import (
	"github.com/tomtom215/reelstats/internal/dataset"
)

// Options sizes the report sections. CacheSize > 0 memoizes that many
// selections; the default 0 recomputes every request.
type Options struct {
	TopGenres     int
	TopMovies     int
	HistogramBins int
	CacheSize     int
}

// DefaultOptions returns the dashboard defaults.
func DefaultOptions() Options {
	return Options{
		TopGenres:     DefaultTopGenres,
		TopMovies:     DefaultTopMovies,
		HistogramBins: DefaultHistogramBins,
	}
}

// Report is everything the presentation layer renders for one selection.
type Report struct {
	Selection      dataset.Selection `json:"selection"`
	Summary        Summary           `json:"summary"`
	Runtime        Distribution      `json:"runtime_distribution"`
	RatingRevenue  []ScatterPoint    `json:"rating_revenue"`
	GenreRevenue   []GenreGross      `json:"genre_revenue"`
	YearRevenue    []YearRevenue     `json:"year_revenue"`
	TopMovies      []MovieRow        `json:"top_movies"`
	EmptySelection bool              `json:"empty_selection"`
	Warnings       []string          `json:"warnings,omitempty"`
}

// BuildReport aggregates an already filtered table.
func BuildReport(filtered *dataset.Table, sel dataset.Selection, opts Options) (*Report, error) {
	top, err := TopMovies(filtered, opts.TopMovies)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Selection:     sel,
		Summary:       SummaryMetrics(filtered),
		Runtime:       RuntimeDistribution(filtered, opts.HistogramBins),
		RatingRevenue: RatingRevenue(filtered),
		GenreRevenue:  GenreRevenue(filtered, opts.TopGenres),
		YearRevenue:   YearRevenueTrend(filtered),
		TopMovies:     top,
	}

	if filtered.Len() == 0 {
		report.EmptySelection = true
		report.Warnings = append(report.Warnings, dataset.ErrEmptySelection.Error())
	}
	return report, nil
}
