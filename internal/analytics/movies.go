// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package analytics

import (
	"math"

	"github.com/tomtom215/reelstats/internal/dataset"
)

// DefaultTopMovies is the length of the ranked table.
const DefaultTopMovies = 10

// ScatterPoint is one movie on the rating versus revenue plot.
type ScatterPoint struct {
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	Gross  float64 `json:"gross"`
}

// MovieRow is one line of the ranked table.
type MovieRow struct {
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Rating   *float64 `json:"rating"`
	Gross    *float64 `json:"gross"`
	Director string   `json:"director"`
}

// RatingRevenue returns the movies that can be placed on a log revenue
// axis: a present rating and strictly positive gross.
func RatingRevenue(t *dataset.Table) []ScatterPoint {
	titles, ratings, gross := t.Titles(), t.Ratings(), t.Gross()
	points := make([]ScatterPoint, 0, len(titles))
	for i := range titles {
		if math.IsNaN(ratings[i]) || math.IsNaN(gross[i]) || gross[i] <= 0 {
			continue
		}
		points = append(points, ScatterPoint{Title: titles[i], Rating: ratings[i], Gross: gross[i]})
	}
	return points
}

// TopMovies returns the n highest rated movies of t.
func TopMovies(t *dataset.Table, n int) ([]MovieRow, error) {
	top, err := t.TopRated(n)
	if err != nil {
		return nil, err
	}

	movies := top.Movies()
	rows := make([]MovieRow, len(movies))
	for i, m := range movies {
		rows[i] = MovieRow{
			Title:    m.Title,
			Year:     m.Year,
			Rating:   optional(m.Rating),
			Gross:    optional(m.Gross),
			Director: m.Director,
		}
	}
	return rows, nil
}
