// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

// Package validation checks dashboard request parameters with
// go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata on first use and reports fields by their JSON names, so error
// messages read "year_min must be at most 3000" rather than citing Go
// field names.
//
// # Usage
//
//	q := validation.DashboardQuery{YearMin: 1990, YearMax: 2020, Genre: "Drama"}
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, verr)
//	    return
//	}
//
// Membership checks against data that is only known at runtime, such as
// the genre list of the loaded dataset, go through CheckOneOf and produce
// the same error shape.
package validation
