// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package dataset

import (
	"context"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Loader reads the movie table from its source.
type Loader interface {
	Load(ctx context.Context) (*Table, error)
	// Engine names the backing implementation for logs and metrics.
	Engine() string
}

// Options configures how a loader interprets the source file.
type Options struct {
	Path           string
	GenreDelimiter string
	GenreMatch     GenreMatch
}

// NewLoader returns the loader for the named engine ("csv" or "duckdb").
func NewLoader(engine string, opts Options) (Loader, error) {
	switch engine {
	case "", "csv":
		return NewCSVLoader(opts), nil
	case "duckdb":
		return NewDuckDBLoader(opts), nil
	default:
		return nil, fmt.Errorf("unknown dataset engine %q", engine)
	}
}

// CSVLoader parses the file with gota's CSV reader.
type CSVLoader struct {
	opts Options
}

// NewCSVLoader creates a CSV loader.
func NewCSVLoader(opts Options) *CSVLoader {
	return &CSVLoader{opts: opts}
}

// Engine implements Loader.
func (l *CSVLoader) Engine() string { return "csv" }

// Load implements Loader.
func (l *CSVLoader) Load(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadError(l.opts.Path, "canceled", err)
	}

	f, err := os.Open(l.opts.Path)
	if err != nil {
		return nil, loadError(l.opts.Path, "cannot open file", err)
	}
	defer closeQuietly(f)

	df := dataframe.ReadCSV(f, readOptions()...)
	return tableFromFrame(df, l.opts)
}

// readOptions are shared by every loader so that cells parse identically.
func readOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(columnTypes),
		dataframe.NaNValues([]string{"NA", "NaN", "nan", "N/A", "<nil>"}),
	}
}

// tableFromFrame validates a freshly parsed frame and narrows it to the
// required columns with an integral year column.
func tableFromFrame(df dataframe.DataFrame, opts Options) (*Table, error) {
	if df.Err != nil {
		return nil, loadError(opts.Path, "cannot parse CSV", df.Err)
	}

	names := df.Names()
	for _, col := range RequiredColumns {
		if !slices.Contains(names, col) {
			return nil, loadError(opts.Path, fmt.Sprintf("missing required column %q", col), nil)
		}
	}

	df = df.Select(RequiredColumns)
	if df.Err != nil {
		return nil, loadError(opts.Path, "cannot select columns", df.Err)
	}

	rawYears := df.Col(ColYear).Float()
	years := make([]int, len(rawYears))
	for i, y := range rawYears {
		if math.IsNaN(y) || y != math.Trunc(y) {
			// +2: one for the header, one for 1-based line numbers.
			return nil, loadError(opts.Path, fmt.Sprintf("row %d: year is missing or not an integer", i+2), nil)
		}
		years[i] = int(y)
	}

	df = df.Mutate(series.New(years, series.Int, ColYear))
	if df.Err != nil {
		return nil, loadError(opts.Path, "cannot convert year column", df.Err)
	}

	return newTable(df, opts.GenreDelimiter, opts.GenreMatch), nil
}
