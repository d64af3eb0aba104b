// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelstats/internal/analytics"
	"github.com/tomtom215/reelstats/internal/dashboard"
	"github.com/tomtom215/reelstats/internal/logging"
)

const pageCSP = "default-src 'self'; img-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'unsafe-inline'; frame-ancestors 'none'"

// Page serves the HTML dashboard. Invalid input does not fail the page:
// the default selection is shown with the problem in an error banner.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	var problems []string
	sel, verr := h.parseSelection(r.URL.Query())
	if verr != nil {
		for _, e := range verr.Errors() {
			problems = append(problems, e.Error())
		}
		sel = h.service.DefaultSelection()
	}

	report, err := h.service.Compute(r.Context(), sel, "page")
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to compute dashboard", err)
		return
	}

	page := dashboard.NewPage(h.service.Domain(), report)
	page.Errors = problems

	var buf bytes.Buffer
	if err := dashboard.RenderPage(&buf, page); err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeRender, "Failed to render dashboard", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", pageCSP)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write page")
	}
}

// Chart serves /charts/{chart}.svg for the selection in the query string.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	kind, ok := dashboard.ParseChartKind(chi.URLParam(r, "chart"))
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Unknown chart", nil)
		return
	}

	sel, verr := h.parseSelection(r.URL.Query())
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	report, err := h.service.Compute(r.Context(), sel, "chart")
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to compute dashboard", err)
		return
	}

	// Buffered so a render failure can still become a JSON error.
	var buf bytes.Buffer
	if err := dashboard.RenderChart(&buf, kind, report); err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeRender, "Failed to render chart", err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Str("chart", string(kind)).Msg("Failed to write chart")
	}
}

// dashboardData is the /api/v1/dashboard payload: the report plus the
// formatted metric cards.
type dashboardData struct {
	*analytics.Report
	Cards []dashboard.Card `json:"cards"`
}

// Dashboard returns the full report for a selection.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sel, verr := h.parseSelection(r.URL.Query())
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	report, err := h.service.Compute(r.Context(), sel, "api")
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to compute dashboard", err)
		return
	}

	respondSuccess(w, r, start, dashboardData{
		Report: report,
		Cards:  dashboard.Cards(report.Summary),
	})
}

// Movies returns the best rated movies of a selection.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sel, limit, verr := h.parseMoviesQuery(r.URL.Query())
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	rows, err := h.service.TopMovies(r.Context(), sel, limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to rank movies", err)
		return
	}
	if rows == nil {
		rows = []analytics.MovieRow{}
	}
	respondSuccess(w, r, start, rows)
}

// Filters returns the domain of the year and genre controls.
func (h *Handler) Filters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, start, h.service.Domain())
}
