// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package dataset

import (
	"slices"
	"strings"
	"testing"
)

func mustFilter(t *testing.T, table *Table, sel Selection) *Table {
	t.Helper()
	out, err := table.Filter(sel)
	if err != nil {
		t.Fatalf("Filter(%+v) error = %v", sel, err)
	}
	return out
}

func TestFilter_YearRangeIsInclusive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sel     Selection
		wantLen int
	}{
		{"full range", Selection{YearMin: 1990, YearMax: 2010, Genre: AllGenres}, 5},
		{"lower bound inclusive", Selection{YearMin: 2010, YearMax: 2020, Genre: AllGenres}, 1},
		{"upper bound inclusive", Selection{YearMin: 1980, YearMax: 1990, Genre: AllGenres}, 1},
		{"middle", Selection{YearMin: 1995, YearMax: 2008, Genre: AllGenres}, 2},
		{"before any movie", Selection{YearMin: 1800, YearMax: 1850, Genre: AllGenres}, 0},
		{"inverted range", Selection{YearMin: 2010, YearMax: 1990, Genre: AllGenres}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := mustFilter(t, sampleTable(), tt.sel)
			if out.Len() != tt.wantLen {
				t.Fatalf("Len() = %d, want %d", out.Len(), tt.wantLen)
			}
			for _, y := range out.Years() {
				if y < tt.sel.YearMin || y > tt.sel.YearMax {
					t.Errorf("year %d outside [%d, %d]", y, tt.sel.YearMin, tt.sel.YearMax)
				}
			}
		})
	}
}

func TestFilter_GenreToken(t *testing.T) {
	t.Parallel()

	table := sampleTable()
	out := mustFilter(t, table, Selection{YearMin: 1900, YearMax: 2100, Genre: "Sci-Fi"})

	if got := strings.Join(out.Titles(), "|"); got != "Inception" {
		t.Errorf("token match titles = %q, want Inception only", got)
	}
	for _, field := range out.GenreFields() {
		if !slices.Contains(SplitGenres(field, ","), "Sci-Fi") {
			t.Errorf("row genre %q lacks Sci-Fi", field)
		}
	}
}

func TestFilter_GenreSubstring(t *testing.T) {
	t.Parallel()

	table := NewTable(sampleTable().Movies(), ",", MatchSubstring)
	out := mustFilter(t, table, Selection{YearMin: 1900, YearMax: 2100, Genre: "Sci-Fi"})

	if got := strings.Join(out.Titles(), "|"); got != "Inception|Sci-Fighters" {
		t.Errorf("substring match titles = %q, want Inception|Sci-Fighters", got)
	}
}

func TestFilter_AllIsNoOp(t *testing.T) {
	t.Parallel()

	table := sampleTable()
	for _, genre := range []string{AllGenres, ""} {
		out := mustFilter(t, table, Selection{YearMin: 1900, YearMax: 2100, Genre: genre})
		if out.Len() != table.Len() {
			t.Errorf("genre %q: Len() = %d, want %d", genre, out.Len(), table.Len())
		}
	}
}

func TestFilter_Idempotent(t *testing.T) {
	t.Parallel()

	sel := Selection{YearMin: 1995, YearMax: 2010, Genre: "Action"}
	once := mustFilter(t, sampleTable(), sel)
	twice := mustFilter(t, once, sel)

	if strings.Join(once.Titles(), "|") != strings.Join(twice.Titles(), "|") {
		t.Errorf("filter not idempotent: %v vs %v", once.Titles(), twice.Titles())
	}
}

func TestFilter_DoesNotMutateSource(t *testing.T) {
	t.Parallel()

	table := sampleTable()
	before := strings.Join(table.Titles(), "|")
	_ = mustFilter(t, table, Selection{YearMin: 2000, YearMax: 2001, Genre: "Drama"})

	if after := strings.Join(table.Titles(), "|"); after != before {
		t.Errorf("source changed: %q -> %q", before, after)
	}
}

func TestFilter_EmptyThenGenre(t *testing.T) {
	t.Parallel()

	out := mustFilter(t, sampleTable(), Selection{YearMin: 1800, YearMax: 1850, Genre: "Drama"})
	if out.Len() != 0 {
		t.Errorf("Len() = %d, want 0", out.Len())
	}
	if len(out.Movies()) != 0 {
		t.Error("Movies() should be empty")
	}
}

func TestFilter_Scenario(t *testing.T) {
	t.Parallel()

	table := NewTable([]Movie{
		{Title: "The Shawshank Redemption", Year: 1994, Rating: 9.3, Gross: 28341469, Runtime: 142, Genre: "Drama", Director: "Frank Darabont"},
		{Title: "Inception", Year: 2010, Rating: 8.8, Gross: 292576195, Runtime: 148, Genre: "Action, Sci-Fi", Director: "Christopher Nolan"},
	}, ",", MatchToken)

	all := mustFilter(t, table, Selection{YearMin: 1990, YearMax: 2020, Genre: AllGenres})
	if all.Len() != 2 {
		t.Errorf("All: Len() = %d, want 2", all.Len())
	}

	action := mustFilter(t, table, Selection{YearMin: 1990, YearMax: 2020, Genre: "Action"})
	if got := strings.Join(action.Titles(), "|"); got != "Inception" {
		t.Errorf("Action: titles = %q, want Inception", got)
	}
}

func TestDefaultSelection(t *testing.T) {
	t.Parallel()

	sel := DefaultSelection(sampleTable(), 1990, 2020)
	if sel.YearMin != 1990 || sel.YearMax != 2010 || sel.Genre != AllGenres {
		t.Errorf("DefaultSelection = %+v, want 1990..2010 All", sel)
	}

	empty := DefaultSelection(NewTable(nil, ",", MatchToken), 1990, 2020)
	if empty.YearMin != 1990 || empty.YearMax != 2020 {
		t.Errorf("DefaultSelection on empty table = %+v, want configured range", empty)
	}
}

func TestSelection_Clamp(t *testing.T) {
	t.Parallel()

	got := Selection{YearMin: 1900, YearMax: 2100}.Clamp(1920, 2019)
	if got.YearMin != 1920 || got.YearMax != 2019 {
		t.Errorf("Clamp = %+v", got)
	}
}
