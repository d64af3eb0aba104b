// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

// Package dataset owns the movie table: loading it once from CSV, and
// deriving filtered, read-only views of it.
//
// A Table wraps a gota DataFrame. Nothing in this package mutates a
// Table after construction; Filter and TopRated return new tables.
// Absent numeric cells are NaN and must be skipped by consumers.
package dataset

import (
	"math"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names expected in the source file.
const (
	ColTitle    = "title"
	ColYear     = "year"
	ColRating   = "rating"
	ColGross    = "gross"
	ColRuntime  = "runtime"
	ColGenre    = "genre"
	ColDirector = "director"
)

// RequiredColumns lists the columns every dataset must carry.
var RequiredColumns = []string{ColTitle, ColYear, ColRating, ColGross, ColRuntime, ColGenre, ColDirector}

// columnTypes fixes the parse type of each required column. Year is read
// as float so that "1994.0" loads and "1994.5" is rejected explicitly.
var columnTypes = map[string]series.Type{
	ColTitle:    series.String,
	ColYear:     series.Float,
	ColRating:   series.Float,
	ColGross:    series.Float,
	ColRuntime:  series.Float,
	ColGenre:    series.String,
	ColDirector: series.String,
}

// Movie is one row of the table. Rating, Gross and Runtime are NaN when
// the source cell was empty or unparsable.
type Movie struct {
	Title    string  `json:"title"`
	Year     int     `json:"year"`
	Rating   float64 `json:"rating"`
	Gross    float64 `json:"gross"`
	Runtime  float64 `json:"runtime"`
	Genre    string  `json:"genre"`
	Director string  `json:"director"`
}

// GenreMatch selects how a genre selection is compared with a row.
type GenreMatch string

const (
	// MatchToken keeps a row when the genre is one of its split tokens.
	MatchToken GenreMatch = "token"
	// MatchSubstring keeps a row when the genre occurs anywhere in the raw field.
	MatchSubstring GenreMatch = "substring"
)

// DefaultGenreDelimiter separates genre tokens inside the genre column.
const DefaultGenreDelimiter = ","

// Table is an immutable view over the movie rows.
type Table struct {
	df    dataframe.DataFrame
	delim string
	match GenreMatch
}

// NewTable builds a table from in-memory rows.
func NewTable(movies []Movie, delim string, match GenreMatch) *Table {
	titles := make([]string, len(movies))
	years := make([]int, len(movies))
	ratings := make([]float64, len(movies))
	gross := make([]float64, len(movies))
	runtimes := make([]float64, len(movies))
	genres := make([]string, len(movies))
	directors := make([]string, len(movies))

	for i, m := range movies {
		titles[i] = m.Title
		years[i] = m.Year
		ratings[i] = m.Rating
		gross[i] = m.Gross
		runtimes[i] = m.Runtime
		genres[i] = m.Genre
		directors[i] = m.Director
	}

	df := dataframe.New(
		series.New(titles, series.String, ColTitle),
		series.New(years, series.Int, ColYear),
		series.New(ratings, series.Float, ColRating),
		series.New(gross, series.Float, ColGross),
		series.New(runtimes, series.Float, ColRuntime),
		series.New(genres, series.String, ColGenre),
		series.New(directors, series.String, ColDirector),
	)
	return newTable(df, delim, match)
}

func newTable(df dataframe.DataFrame, delim string, match GenreMatch) *Table {
	if delim == "" {
		delim = DefaultGenreDelimiter
	}
	if match == "" {
		match = MatchToken
	}
	return &Table{df: df, delim: delim, match: match}
}

// derive wraps a frame produced from t with t's genre settings.
func (t *Table) derive(df dataframe.DataFrame) *Table {
	return &Table{df: df, delim: t.delim, match: t.match}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.df.Nrow()
}

// Delimiter returns the genre token delimiter.
func (t *Table) Delimiter() string {
	return t.delim
}

// Match returns the genre matching mode.
func (t *Table) Match() GenreMatch {
	return t.match
}

// Titles returns the title column.
func (t *Table) Titles() []string {
	return t.df.Col(ColTitle).Records()
}

// Years returns the year column.
func (t *Table) Years() []int {
	years, err := t.df.Col(ColYear).Int()
	if err != nil {
		// Years are validated at load time; an error here means an empty
		// or corrupted frame.
		return []int{}
	}
	return years
}

// Ratings returns the rating column with NaN for absent values.
func (t *Table) Ratings() []float64 {
	return t.df.Col(ColRating).Float()
}

// Gross returns the gross revenue column with NaN for absent values.
func (t *Table) Gross() []float64 {
	return t.df.Col(ColGross).Float()
}

// Runtimes returns the runtime column with NaN for absent values.
func (t *Table) Runtimes() []float64 {
	return t.df.Col(ColRuntime).Float()
}

// GenreFields returns the raw genre column.
func (t *Table) GenreFields() []string {
	return t.df.Col(ColGenre).Records()
}

// Directors returns the director column.
func (t *Table) Directors() []string {
	return t.df.Col(ColDirector).Records()
}

// Movies materializes every row.
func (t *Table) Movies() []Movie {
	n := t.Len()
	if n == 0 {
		return []Movie{}
	}

	titles, years := t.Titles(), t.Years()
	ratings, gross, runtimes := t.Ratings(), t.Gross(), t.Runtimes()
	genres, directors := t.GenreFields(), t.Directors()

	movies := make([]Movie, n)
	for i := range movies {
		movies[i] = Movie{
			Title:    titles[i],
			Year:     years[i],
			Rating:   ratings[i],
			Gross:    gross[i],
			Runtime:  runtimes[i],
			Genre:    genres[i],
			Director: directors[i],
		}
	}
	return movies
}

// SplitGenres splits a genre field into trimmed, non-empty tokens.
func SplitGenres(field, delim string) []string {
	if delim == "" {
		delim = DefaultGenreDelimiter
	}
	parts := strings.Split(field, delim)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Genres returns every distinct genre token, sorted alphabetically.
func (t *Table) Genres() []string {
	seen := make(map[string]struct{})
	for _, field := range t.GenreFields() {
		for _, g := range SplitGenres(field, t.delim) {
			seen[g] = struct{}{}
		}
	}

	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

// YearBounds returns the smallest and largest release year.
// ok is false for an empty table.
func (t *Table) YearBounds() (lo, hi int, ok bool) {
	years := t.Years()
	if len(years) == 0 {
		return 0, 0, false
	}
	lo, hi = years[0], years[0]
	for _, y := range years[1:] {
		lo = min(lo, y)
		hi = max(hi, y)
	}
	return lo, hi, true
}

// TopRated returns at most n rows ordered by rating, highest first.
// Ties keep table order and unrated rows sort last.
func (t *Table) TopRated(n int) (*Table, error) {
	if t.Len() == 0 || n <= 0 {
		return t.derive(t.df.Subset([]int{})), nil
	}

	rated := t.df.Filter(dataframe.F{
		Colname:    ColRating,
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool { return !math.IsNaN(el.Float()) },
	})
	if rated.Err != nil {
		return nil, rated.Err
	}

	ordered := rated
	if rated.Nrow() > 0 {
		ordered = rated.Arrange(dataframe.RevSort(ColRating))
		if ordered.Err != nil {
			return nil, ordered.Err
		}
	}

	if ordered.Nrow() < n && ordered.Nrow() < t.Len() {
		unrated := t.df.Filter(dataframe.F{
			Colname:    ColRating,
			Comparator: series.CompFunc,
			Comparando: func(el series.Element) bool { return math.IsNaN(el.Float()) },
		})
		if unrated.Err != nil {
			return nil, unrated.Err
		}
		if ordered.Nrow() == 0 {
			ordered = unrated
		} else {
			ordered = ordered.RBind(unrated)
		}
		if ordered.Err != nil {
			return nil, ordered.Err
		}
	}

	if ordered.Nrow() > n {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		ordered = ordered.Subset(idx)
		if ordered.Err != nil {
			return nil, ordered.Err
		}
	}
	return t.derive(ordered), nil
}
