// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package dataset

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// AllGenres disables the genre predicate.
const AllGenres = "All"

// Selection is the state of the two dashboard controls.
type Selection struct {
	YearMin int    `json:"year_min"`
	YearMax int    `json:"year_max"`
	Genre   string `json:"genre"`
}

// IsAllGenres reports whether the selection keeps every genre.
func (s Selection) IsAllGenres() bool {
	return s.Genre == "" || s.Genre == AllGenres
}

// Clamp limits the year range to [lo, hi].
func (s Selection) Clamp(lo, hi int) Selection {
	s.YearMin = min(max(s.YearMin, lo), hi)
	s.YearMax = min(max(s.YearMax, lo), hi)
	return s
}

// DefaultSelection is the initial control state: the configured year
// range clamped to the data, and every genre.
func DefaultSelection(t *Table, yearMin, yearMax int) Selection {
	sel := Selection{YearMin: yearMin, YearMax: yearMax, Genre: AllGenres}
	if lo, hi, ok := t.YearBounds(); ok {
		sel = sel.Clamp(lo, hi)
	}
	return sel
}

// Filter returns the rows released within [YearMin, YearMax] (inclusive)
// that carry the selected genre. The receiver is not modified, and
// filtering an already filtered table with the same selection is a no-op.
func (t *Table) Filter(sel Selection) (*Table, error) {
	df := t.df.
		Filter(dataframe.F{Colname: ColYear, Comparator: series.GreaterEq, Comparando: sel.YearMin}).
		Filter(dataframe.F{Colname: ColYear, Comparator: series.LessEq, Comparando: sel.YearMax})
	if df.Err != nil {
		return nil, fmt.Errorf("filter by year: %w", df.Err)
	}

	if !sel.IsAllGenres() {
		matches := t.genreMatcher(sel.Genre)
		df = df.Filter(dataframe.F{
			Colname:    ColGenre,
			Comparator: series.CompFunc,
			Comparando: func(el series.Element) bool { return matches(el.String()) },
		})
		if df.Err != nil {
			return nil, fmt.Errorf("filter by genre: %w", df.Err)
		}
	}

	return t.derive(df), nil
}

// genreMatcher returns the predicate for one genre field under t's mode.
func (t *Table) genreMatcher(genre string) func(field string) bool {
	if t.match == MatchSubstring {
		return func(field string) bool { return strings.Contains(field, genre) }
	}
	delim := t.delim
	return func(field string) bool {
		return slices.Contains(SplitGenres(field, delim), genre)
	}
}
