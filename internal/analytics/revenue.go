// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package analytics

import (
	"math"
	"sort"

	"github.com/tomtom215/reelstats/internal/dataset"
)

// DefaultTopGenres is the number of genres shown in the revenue bar chart.
const DefaultTopGenres = 10

// GenreToken is one (row, genre) pair of the genre fan-out.
type GenreToken struct {
	Row   int
	Genre string
}

// GenreGross is the mean gross of the movies carrying one genre.
type GenreGross struct {
	Genre    string  `json:"genre"`
	AvgGross float64 `json:"avg_gross"`
	Movies   int     `json:"movies"`
}

// YearRevenue is the mean gross of the movies released in one year.
// AvgGross is nil when none of them has a gross value.
type YearRevenue struct {
	Year     int      `json:"year"`
	AvgGross *float64 `json:"avg_gross"`
	Movies   int      `json:"movies"`
}

// ExplodeGenres fans every row out into one pair per genre token, in row
// order then token order. A row with n genres contributes n pairs.
func ExplodeGenres(t *dataset.Table) []GenreToken {
	fields := t.GenreFields()
	pairs := make([]GenreToken, 0, len(fields))
	for row, field := range fields {
		for _, g := range dataset.SplitGenres(field, t.Delimiter()) {
			pairs = append(pairs, GenreToken{Row: row, Genre: g})
		}
	}
	return pairs
}

// accumulator sums the present gross values of one group.
type accumulator struct {
	sum    float64
	count  int
	movies int
}

func (a *accumulator) add(v float64) {
	a.movies++
	if math.IsNaN(v) {
		return
	}
	a.sum += v
	a.count++
}

// mean is nil when the group has no gross value.
func (a *accumulator) mean() *float64 {
	if a.count == 0 {
		return nil
	}
	m := a.sum / float64(a.count)
	return &m
}

// GenreRevenue returns the topN genres by mean gross, highest first.
// Groups without any gross value are dropped; equal means keep the order
// in which the genres first appear. topN <= 0 returns every genre.
func GenreRevenue(t *dataset.Table, topN int) []GenreGross {
	gross := t.Gross()

	var order []string
	groups := make(map[string]*accumulator)
	for _, pair := range ExplodeGenres(t) {
		acc, ok := groups[pair.Genre]
		if !ok {
			acc = &accumulator{}
			groups[pair.Genre] = acc
			order = append(order, pair.Genre)
		}
		acc.add(gross[pair.Row])
	}

	out := make([]GenreGross, 0, len(order))
	for _, g := range order {
		acc := groups[g]
		if acc.count == 0 {
			continue
		}
		out = append(out, GenreGross{Genre: g, AvgGross: acc.sum / float64(acc.count), Movies: acc.movies})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgGross > out[j].AvgGross
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// YearRevenueTrend returns the mean gross per release year in ascending
// year order, one entry per distinct year in t. A year whose movies all
// lack a gross value keeps its entry with a nil mean.
func YearRevenueTrend(t *dataset.Table) []YearRevenue {
	years := t.Years()
	gross := t.Gross()

	groups := make(map[int]*accumulator)
	for i, y := range years {
		acc, ok := groups[y]
		if !ok {
			acc = &accumulator{}
			groups[y] = acc
		}
		acc.add(gross[i])
	}

	out := make([]YearRevenue, 0, len(groups))
	for y, acc := range groups {
		out = append(out, YearRevenue{Year: y, AvgGross: acc.mean(), Movies: acc.movies})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
