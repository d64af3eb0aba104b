// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package dataset

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

const sampleCSV = `title,year,rating,gross,runtime,genre,director
The Shawshank Redemption,1994,9.3,28341469,142,Drama,Frank Darabont
Inception,2010,8.8,292576195,148,"Action, Sci-Fi",Christopher Nolan
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// sampleTable returns a small in-memory table covering absent values and
// multi-genre rows.
func sampleTable() *Table {
	nan := math.NaN()
	return NewTable([]Movie{
		{Title: "The Shawshank Redemption", Year: 1994, Rating: 9.3, Gross: 28341469, Runtime: 142, Genre: "Drama", Director: "Frank Darabont"},
		{Title: "Inception", Year: 2010, Rating: 8.8, Gross: 292576195, Runtime: 148, Genre: "Action, Sci-Fi", Director: "Christopher Nolan"},
		{Title: "Sci-Fighters", Year: 2005, Rating: 7.9, Gross: nan, Runtime: 101, Genre: "Sci-Fiction Comedy", Director: "Nobody"},
		{Title: "The Dark Knight", Year: 2008, Rating: 9.0, Gross: 534858444, Runtime: 152, Genre: "Action, Crime, Drama", Director: "Christopher Nolan"},
		{Title: "Unrated Film", Year: 1990, Rating: nan, Gross: 1000, Runtime: nan, Genre: "Drama", Director: "Someone"},
	}, ",", MatchToken)
}

func TestCSVLoader_Load(t *testing.T) {
	t.Parallel()

	table, err := NewCSVLoader(Options{Path: writeCSV(t, sampleCSV)}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	movies := table.Movies()
	if movies[0].Title != "The Shawshank Redemption" || movies[0].Year != 1994 {
		t.Errorf("first row = %+v", movies[0])
	}
	if movies[1].Genre != "Action, Sci-Fi" {
		t.Errorf("second genre = %q", movies[1].Genre)
	}
	if movies[1].Gross != 292576195 {
		t.Errorf("second gross = %v", movies[1].Gross)
	}
}

func TestCSVLoader_AbsentNumericCellsAreNaN(t *testing.T) {
	t.Parallel()

	content := `title,year,rating,gross,runtime,genre,director,extra
Film A,2001,7.5,,95,Drama,Dir,ignored
Film B,2002.0,NA,1200,,Comedy,Dir,ignored
`
	table, err := NewCSVLoader(Options{Path: writeCSV(t, content)}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	movies := table.Movies()
	if !math.IsNaN(movies[0].Gross) {
		t.Errorf("empty gross = %v, want NaN", movies[0].Gross)
	}
	if !math.IsNaN(movies[1].Rating) {
		t.Errorf("NA rating = %v, want NaN", movies[1].Rating)
	}
	if !math.IsNaN(movies[1].Runtime) {
		t.Errorf("empty runtime = %v, want NaN", movies[1].Runtime)
	}
	if movies[1].Year != 2002 {
		t.Errorf("year 2002.0 = %d, want 2002", movies[1].Year)
	}
}

func TestCSVLoader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		content    string
		missing    bool
		wantReason string
	}{
		{name: "missing file", missing: true, wantReason: "cannot open file"},
		{name: "missing column", content: "title,year,rating,gross,runtime,genre\nA,2000,7,1,90,Drama\n", wantReason: `missing required column "director"`},
		{name: "missing year", content: "title,year,rating,gross,runtime,genre,director\nA,,7,1,90,Drama,D\n", wantReason: "row 2: year"},
		{name: "fractional year", content: "title,year,rating,gross,runtime,genre,director\nA,2000,7,1,90,Drama,D\nB,2000.5,7,1,90,Drama,D\n", wantReason: "row 3: year"},
		{name: "empty file", content: "", wantReason: "cannot parse CSV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "absent.csv")
			if !tt.missing {
				path = writeCSV(t, tt.content)
			}

			_, err := NewCSVLoader(Options{Path: path}).Load(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrDataLoad) {
				t.Errorf("errors.Is(err, ErrDataLoad) = false for %v", err)
			}
			var loadErr *DataLoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected *DataLoadError, got %T", err)
			}
			if !strings.Contains(loadErr.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want to contain %q", loadErr.Reason, tt.wantReason)
			}
			if loadErr.Path != path {
				t.Errorf("Path = %q, want %q", loadErr.Path, path)
			}
		})
	}
}

func TestDataLoadError_UnwrapsCause(t *testing.T) {
	t.Parallel()

	_, err := NewCSVLoader(Options{Path: filepath.Join(t.TempDir(), "nope.csv")}).Load(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestDuckDBLoader_MatchesCSVLoader(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, sampleCSV)
	fromCSV, err := NewCSVLoader(Options{Path: path}).Load(context.Background())
	if err != nil {
		t.Fatalf("csv Load() error = %v", err)
	}
	fromDuck, err := NewDuckDBLoader(Options{Path: path}).Load(context.Background())
	if err != nil {
		t.Fatalf("duckdb Load() error = %v", err)
	}

	a, b := fromCSV.Movies(), fromDuck.Movies()
	if len(a) != len(b) {
		t.Fatalf("row counts differ: csv=%d duckdb=%d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("row %d differs: csv=%+v duckdb=%+v", i, a[i], b[i])
		}
	}
}

func TestDuckDBLoader_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewDuckDBLoader(Options{Path: filepath.Join(t.TempDir(), "absent.csv")}).Load(context.Background())
	if !errors.Is(err, ErrDataLoad) {
		t.Errorf("expected ErrDataLoad, got %v", err)
	}
}

func TestNewLoader(t *testing.T) {
	t.Parallel()

	for engine, want := range map[string]string{"": "csv", "csv": "csv", "duckdb": "duckdb"} {
		l, err := NewLoader(engine, Options{})
		if err != nil {
			t.Fatalf("NewLoader(%q) error = %v", engine, err)
		}
		if l.Engine() != want {
			t.Errorf("NewLoader(%q).Engine() = %q, want %q", engine, l.Engine(), want)
		}
	}
	if _, err := NewLoader("parquet", Options{}); err == nil {
		t.Error("expected error for unknown engine")
	}
}

type countingLoader struct {
	calls atomic.Int32
	table *Table
	err   error
}

func (l *countingLoader) Load(context.Context) (*Table, error) {
	l.calls.Add(1)
	return l.table, l.err
}

func (l *countingLoader) Engine() string { return "fake" }

func TestStore_LoadIsMemoized(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{table: sampleTable()}
	store := NewStore(loader)

	if store.Ready() {
		t.Error("Ready() before Load should be false")
	}

	first, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, _ := store.Load(context.Background())

	if first != second {
		t.Error("expected the same table pointer on repeated loads")
	}
	if got := loader.calls.Load(); got != 1 {
		t.Errorf("loader called %d times, want 1", got)
	}
	if !store.Ready() {
		t.Error("Ready() after Load should be true")
	}
}

func TestStore_ErrorIsMemoized(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{err: loadError("x.csv", "cannot open file", os.ErrNotExist)}
	store := NewStore(loader)

	for i := 0; i < 3; i++ {
		if _, err := store.Load(context.Background()); !errors.Is(err, ErrDataLoad) {
			t.Fatalf("Load() error = %v, want ErrDataLoad", err)
		}
	}
	if got := loader.calls.Load(); got != 1 {
		t.Errorf("loader called %d times, want 1", got)
	}
	if store.Ready() {
		t.Error("Ready() should stay false after a failed load")
	}
}

func TestTable_GenresAndBounds(t *testing.T) {
	t.Parallel()

	table := sampleTable()

	want := []string{"Action", "Crime", "Drama", "Sci-Fi", "Sci-Fiction Comedy"}
	got := table.Genres()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Genres() = %v, want %v", got, want)
	}

	lo, hi, ok := table.YearBounds()
	if !ok || lo != 1990 || hi != 2010 {
		t.Errorf("YearBounds() = %d, %d, %v", lo, hi, ok)
	}
}

func TestTable_EmptyBounds(t *testing.T) {
	t.Parallel()

	if _, _, ok := NewTable(nil, ",", MatchToken).YearBounds(); ok {
		t.Error("expected ok=false for empty table")
	}
}

func TestSplitGenres(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field string
		delim string
		want  string
	}{
		{"Action, Sci-Fi", ",", "Action|Sci-Fi"},
		{"Drama", ",", "Drama"},
		{" Crime ,, Drama ", ",", "Crime|Drama"},
		{"", ",", ""},
		{"Action|Comedy", "|", "Action|Comedy"},
	}
	for _, tt := range tests {
		if got := strings.Join(SplitGenres(tt.field, tt.delim), "|"); got != tt.want {
			t.Errorf("SplitGenres(%q, %q) = %q, want %q", tt.field, tt.delim, got, tt.want)
		}
	}
}

func TestTable_TopRated(t *testing.T) {
	t.Parallel()

	top, err := sampleTable().TopRated(10)
	if err != nil {
		t.Fatalf("TopRated() error = %v", err)
	}

	titles := top.Titles()
	want := []string{"The Shawshank Redemption", "The Dark Knight", "Inception", "Sci-Fighters", "Unrated Film"}
	if strings.Join(titles, "|") != strings.Join(want, "|") {
		t.Errorf("TopRated order = %v, want %v", titles, want)
	}

	top2, err := sampleTable().TopRated(2)
	if err != nil {
		t.Fatalf("TopRated(2) error = %v", err)
	}
	if top2.Len() != 2 {
		t.Errorf("TopRated(2).Len() = %d", top2.Len())
	}
}

func TestTable_TopRatedStableTies(t *testing.T) {
	t.Parallel()

	table := NewTable([]Movie{
		{Title: "First", Year: 2000, Rating: 8.0, Genre: "Drama"},
		{Title: "Second", Year: 2001, Rating: 8.0, Genre: "Drama"},
		{Title: "Third", Year: 2002, Rating: 8.5, Genre: "Drama"},
	}, ",", MatchToken)

	top, err := table.TopRated(3)
	if err != nil {
		t.Fatalf("TopRated() error = %v", err)
	}
	if got := strings.Join(top.Titles(), "|"); got != "Third|First|Second" {
		t.Errorf("order = %s, want Third|First|Second", got)
	}
}

func TestTable_TopRatedEmpty(t *testing.T) {
	t.Parallel()

	top, err := NewTable(nil, ",", MatchToken).TopRated(10)
	if err != nil {
		t.Fatalf("TopRated() error = %v", err)
	}
	if top.Len() != 0 {
		t.Errorf("Len() = %d, want 0", top.Len())
	}
}
