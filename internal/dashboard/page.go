// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/tomtom215/reelstats/internal/analytics"
	"github.com/tomtom215/reelstats/internal/dataset"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// ChartView is one chart slot on the page.
type ChartView struct {
	Kind  ChartKind
	Title string
	URL   string
}

// TableRow is one formatted line of the ranked table.
type TableRow struct {
	Title    string
	Year     int
	Rating   string
	Gross    string
	Director string
}

// Page is the data behind the HTML dashboard.
type Page struct {
	Domain    analytics.FilterDomain
	Selection dataset.Selection
	Cards     []Card
	Charts    []ChartView
	Rows      []TableRow
	Empty     bool
	Warnings  []string
	Errors    []string
}

// SelectionQuery encodes sel as the query string shared by the page and
// its chart images.
func SelectionQuery(sel dataset.Selection) string {
	v := url.Values{}
	v.Set("year_min", strconv.Itoa(sel.YearMin))
	v.Set("year_max", strconv.Itoa(sel.YearMax))
	genre := sel.Genre
	if genre == "" {
		genre = dataset.AllGenres
	}
	v.Set("genre", genre)
	return v.Encode()
}

// NewPage lays out report for the HTML template.
func NewPage(domain analytics.FilterDomain, report *analytics.Report) Page {
	query := SelectionQuery(report.Selection)

	charts := make([]ChartView, len(ChartKinds))
	for i, k := range ChartKinds {
		charts[i] = ChartView{
			Kind:  k,
			Title: ChartTitle(k, report.Selection),
			URL:   fmt.Sprintf("/charts/%s.svg?%s", k, query),
		}
	}

	rows := make([]TableRow, len(report.TopMovies))
	for i, m := range report.TopMovies {
		rows[i] = TableRow{
			Title:    m.Title,
			Year:     m.Year,
			Rating:   FormatScore(m.Rating),
			Gross:    FormatGross(m.Gross),
			Director: m.Director,
		}
	}

	return Page{
		Domain:    domain,
		Selection: report.Selection,
		Cards:     Cards(report.Summary),
		Charts:    charts,
		Rows:      rows,
		Empty:     report.EmptySelection,
		Warnings:  report.Warnings,
	}
}

// RenderPage writes the dashboard HTML.
func RenderPage(w io.Writer, page Page) error {
	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("render dashboard page: %w", err)
	}
	return nil
}
