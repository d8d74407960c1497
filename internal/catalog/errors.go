// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"fmt"
)

// ErrDataLoad is the root of every catalog load failure.
// Match it with errors.Is to treat any malformed snapshot as fatal at startup.
var ErrDataLoad = errors.New("catalog data load failed")

// ErrEmptyCatalog indicates the snapshot contained no rows.
var ErrEmptyCatalog = fmt.Errorf("%w: catalog is empty", ErrDataLoad)

// DataLoadError describes a row or column that could not be loaded.
// Row is 1-based over data rows; 0 means the problem is in the header or schema.
type DataLoadError struct {
	Row    int
	Field  string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *DataLoadError) Error() string {
	msg := fmt.Sprintf("catalog row %d field %q: %s", e.Row, e.Field, e.Reason)
	if e.Row == 0 {
		msg = fmt.Sprintf("catalog field %q: %s", e.Field, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes ErrDataLoad and the underlying parse error, if any.
func (e *DataLoadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrDataLoad, e.Err}
	}
	return []error{ErrDataLoad}
}
