// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/reelstats/internal/dataset"
	"github.com/tomtom215/reelstats/internal/validation"
)

// selectionInput is a selection as received, before defaults. Nil means
// the client did not send the value.
type selectionInput struct {
	YearMin *int    `json:"year_min"`
	YearMax *int    `json:"year_max"`
	Genre   *string `json:"genre"`
}

// optionalInt parses an optional integer parameter.
func optionalInt(values url.Values, key string) (*int, *validation.RequestValidationError) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, validation.NewFieldError(key, "numeric", raw, key+" must be an integer")
	}
	return &n, nil
}

func selectionFromQuery(values url.Values) (selectionInput, *validation.RequestValidationError) {
	var in selectionInput
	var verr *validation.RequestValidationError

	if in.YearMin, verr = optionalInt(values, "year_min"); verr != nil {
		return in, verr
	}
	if in.YearMax, verr = optionalInt(values, "year_max"); verr != nil {
		return in, verr
	}
	if values.Has("genre") {
		g := strings.TrimSpace(values.Get("genre"))
		in.Genre = &g
	}
	return in, nil
}

// resolveSelection fills defaults into in and validates the result against
// the static rules and the loaded genre list.
func (h *Handler) resolveSelection(in selectionInput) (dataset.Selection, *validation.RequestValidationError) {
	def := h.service.DefaultSelection()

	q := validation.DashboardQuery{
		YearMin: def.YearMin,
		YearMax: def.YearMax,
		Genre:   dataset.AllGenres,
	}
	if in.YearMin != nil {
		q.YearMin = *in.YearMin
	}
	if in.YearMax != nil {
		q.YearMax = *in.YearMax
	}
	if in.Genre != nil && *in.Genre != "" {
		q.Genre = *in.Genre
	}

	if verr := validation.ValidateStruct(&q); verr != nil {
		return dataset.Selection{}, verr
	}
	if verr := validation.CheckOneOf("genre", q.Genre, h.genres); verr != nil {
		return dataset.Selection{}, verr
	}

	return dataset.Selection{YearMin: q.YearMin, YearMax: q.YearMax, Genre: q.Genre}, nil
}

// parseSelection reads year_min, year_max and genre from a query string.
func (h *Handler) parseSelection(values url.Values) (dataset.Selection, *validation.RequestValidationError) {
	in, verr := selectionFromQuery(values)
	if verr != nil {
		return dataset.Selection{}, verr
	}
	return h.resolveSelection(in)
}

// parseMoviesQuery reads a selection plus limit, defaulting limit to the
// configured table size.
func (h *Handler) parseMoviesQuery(values url.Values) (dataset.Selection, int, *validation.RequestValidationError) {
	sel, verr := h.parseSelection(values)
	if verr != nil {
		return sel, 0, verr
	}

	limit := h.service.Options().TopMovies
	raw, verr := optionalInt(values, "limit")
	if verr != nil {
		return sel, 0, verr
	}
	if raw != nil {
		limit = *raw
	}

	q := validation.MoviesQuery{
		DashboardQuery: validation.DashboardQuery{YearMin: sel.YearMin, YearMax: sel.YearMax, Genre: sel.Genre},
		Limit:          limit,
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		return sel, 0, verr
	}
	return sel, limit, nil
}

func describeSelection(sel dataset.Selection) string {
	return fmt.Sprintf("%d-%d %s", sel.YearMin, sel.YearMax, sel.Genre)
}
