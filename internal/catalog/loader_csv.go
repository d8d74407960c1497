// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadCSV reads snapshot rows from CSV with a header line. Columns are matched
// by name; unknown columns are ignored and missing optional columns read as
// empty text. A missing required column is reported as a *DataLoadError.
func ReadCSV(r io.Reader) ([]RawMovie, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCatalog
	}
	if err != nil {
		return nil, &DataLoadError{Field: "header", Reason: "unreadable", Err: err}
	}

	columns := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[i] = name
		present[name] = true
	}
	for _, req := range RequiredColumns {
		if !present[req] {
			return nil, &DataLoadError{Field: req, Reason: "required column missing"}
		}
	}

	var rows []RawMovie
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DataLoadError{Row: len(rows) + 1, Field: "record", Reason: "malformed csv", Err: err}
		}

		var raw RawMovie
		for i, value := range record {
			if i < len(columns) {
				raw.Set(columns[i], value)
			}
		}
		rows = append(rows, raw)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyCatalog
	}
	return rows, nil
}

// ReadCSVFile opens path and reads it with ReadCSV.
func ReadCSVFile(path string) ([]RawMovie, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("%w: open snapshot %s: %w", ErrDataLoad, path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// WriteCSV writes rows with the standard snapshot header.
func WriteCSV(w io.Writer, rows []RawMovie) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range rows {
		r := &rows[i]
		record := []string{
			r.ID, r.Title, r.ReleaseDate, r.Overview, r.VoteAverage, r.VoteCount,
			r.Popularity, r.Director, r.Cast, r.Genres, r.PosterURL,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
