// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelstats/internal/cache"
	"github.com/tomtom215/reelstats/internal/dataset"
	"github.com/tomtom215/reelstats/internal/logging"
	"github.com/tomtom215/reelstats/internal/metrics"
)

// Service runs the filter and aggregation chain against the loaded table.
// By default every Compute call re-runs the whole chain. With
// opts.CacheSize > 0 reports are memoized per selection; the table is never
// mutated, so a cached report stays valid for the process lifetime.
type Service struct {
	table          *dataset.Table
	opts           Options
	defaultYearMin int
	defaultYearMax int
	reports        *cache.LRU[*Report]
}

// NewService creates a Service over a loaded table. defaultYearMin and
// defaultYearMax are the initial range of the year control.
func NewService(table *dataset.Table, opts Options, defaultYearMin, defaultYearMax int) *Service {
	s := &Service{
		table:          table,
		opts:           opts,
		defaultYearMin: defaultYearMin,
		defaultYearMax: defaultYearMax,
	}
	if opts.CacheSize > 0 {
		s.reports = cache.NewLRU[*Report](opts.CacheSize, 0)
	}
	return s
}

// CacheStats reports memoization effectiveness. ok is false when caching
// is disabled.
func (s *Service) CacheStats() (stats cache.Stats, ok bool) {
	if s.reports == nil {
		return cache.Stats{}, false
	}
	return s.reports.Stats(), true
}

func selectionKey(sel dataset.Selection) string {
	genre := sel.Genre
	if sel.IsAllGenres() {
		genre = dataset.AllGenres
	}
	return fmt.Sprintf("%d|%d|%s", sel.YearMin, sel.YearMax, genre)
}

// Table returns the full, unfiltered table.
func (s *Service) Table() *dataset.Table {
	return s.table
}

// Options returns the report sizing.
func (s *Service) Options() Options {
	return s.opts
}

// FilterDomain describes the values the two controls may take.
type FilterDomain struct {
	YearMin   int               `json:"year_min"`
	YearMax   int               `json:"year_max"`
	Default   dataset.Selection `json:"default"`
	Genres    []string          `json:"genres"`
	GenreMode string            `json:"genre_mode"`
}

// Domain returns the year bounds and genre list of the full table. Genres
// start with dataset.AllGenres.
func (s *Service) Domain() FilterDomain {
	lo, hi, ok := s.table.YearBounds()
	if !ok {
		lo, hi = s.defaultYearMin, s.defaultYearMax
	}
	genres := append([]string{dataset.AllGenres}, s.table.Genres()...)
	return FilterDomain{
		YearMin:   lo,
		YearMax:   hi,
		Default:   s.DefaultSelection(),
		Genres:    genres,
		GenreMode: string(s.table.Match()),
	}
}

// DefaultSelection is the control state before any user input.
func (s *Service) DefaultSelection() dataset.Selection {
	return dataset.DefaultSelection(s.table, s.defaultYearMin, s.defaultYearMax)
}

// Compute filters the table by sel and builds the report. view labels the
// caller in metrics ("page", "api", "chart", "ws").
func (s *Service) Compute(ctx context.Context, sel dataset.Selection, view string) (*Report, error) {
	start := time.Now()

	var key string
	if s.reports != nil {
		key = selectionKey(sel)
		cached, ok := s.reports.Get(key)
		metrics.RecordCacheLookup(ok)
		if ok {
			// Shallow copy so the caller sees its own spelling of the genre.
			report := *cached
			report.Selection = sel
			elapsed := time.Since(start)
			metrics.RecordDashboardCompute(view, report.Summary.Count, elapsed)
			logging.Ctx(ctx).Debug().Str("view", view).Str("selection", key).Dur("duration", elapsed).Msg("Selection served from cache")
			return &report, nil
		}
	}

	filtered, err := s.table.Filter(sel)
	if err != nil {
		return nil, fmt.Errorf("apply selection: %w", err)
	}

	report, err := BuildReport(filtered, sel, s.opts)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	if s.reports != nil {
		s.reports.Add(key, report)
	}

	elapsed := time.Since(start)
	metrics.RecordDashboardCompute(view, filtered.Len(), elapsed)

	event := logging.Ctx(ctx).Debug()
	if report.EmptySelection {
		event = logging.Ctx(ctx).Info()
	}
	event.
		Str("view", view).
		Int("year_min", sel.YearMin).
		Int("year_max", sel.YearMax).
		Str("genre", sel.Genre).
		Int("rows", filtered.Len()).
		Bool("empty", report.EmptySelection).
		Dur("duration", elapsed).
		Msg("Selection computed")

	return report, nil
}

// TopMovies returns up to limit movies of the selection, best rated first.
func (s *Service) TopMovies(ctx context.Context, sel dataset.Selection, limit int) ([]MovieRow, error) {
	filtered, err := s.table.Filter(sel)
	if err != nil {
		return nil, fmt.Errorf("apply selection: %w", err)
	}
	rows, err := TopMovies(filtered, limit)
	if err != nil {
		return nil, fmt.Errorf("rank movies: %w", err)
	}
	logging.Ctx(ctx).Debug().Int("limit", limit).Int("rows", len(rows)).Msg("Top movies computed")
	return rows, nil
}
