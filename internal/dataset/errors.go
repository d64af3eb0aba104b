// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package dataset

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrDataLoad matches every *DataLoadError.
	ErrDataLoad = errors.New("dataset load failed")

	// ErrEmptySelection marks a selection that matched no rows. It is a
	// warning for the presentation layer, never a failure.
	ErrEmptySelection = errors.New("no movies match the current selection")
)

// DataLoadError reports why the dataset could not be read. It is fatal
// at startup.
type DataLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load dataset %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load dataset %s: %s", e.Path, e.Reason)
}

// Unwrap exposes both ErrDataLoad and the underlying cause.
func (e *DataLoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDataLoad}
	}
	return []error{ErrDataLoad, e.Err}
}

func loadError(path, reason string, err error) *DataLoadError {
	return &DataLoadError{Path: path, Reason: reason, Err: err}
}

// closeQuietly closes a resource on a path where the Close error is not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
