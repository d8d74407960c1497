// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver
)

// identifierPattern restricts table names interpolated into DuckDB SQL.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// OpenDuckDB opens a DuckDB database. An empty path opens an in-memory database.
func OpenDuckDB(path string) (*sql.DB, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", path, err)
	}
	return db, nil
}

// ImportCSVToDuckDB materializes a CSV snapshot as a DuckDB table with every
// column typed VARCHAR, so loading applies the same parsing rules as ReadCSV.
func ImportCSVToDuckDB(ctx context.Context, db *sql.DB, csvPath, table string) error {
	if !identifierPattern.MatchString(table) {
		return fmt.Errorf("%w: invalid table name %q", ErrDataLoad, table)
	}
	quoted := "'" + strings.ReplaceAll(csvPath, "'", "''") + "'"
	query := fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto(%s, header = true, all_varchar = true)",
		table, quoted,
	)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%w: import %s: %w", ErrDataLoad, csvPath, err)
	}
	return nil
}

// ReadDuckDB reads snapshot rows from a DuckDB table (or view) whose columns
// use the snapshot column names. Optional columns may be absent; NULLs read
// as empty text. Rows are returned in insertion order.
func ReadDuckDB(ctx context.Context, db *sql.DB, table string) ([]RawMovie, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("%w: invalid table name %q", ErrDataLoad, table)
	}

	present, err := tableColumns(ctx, db, table)
	if err != nil {
		return nil, err
	}
	for _, req := range RequiredColumns {
		if !present[req] {
			return nil, &DataLoadError{Field: req, Reason: "required column missing"}
		}
	}

	selects := make([]string, len(Columns))
	for i, col := range Columns {
		if present[col] {
			selects[i] = fmt.Sprintf("COALESCE(CAST(%q AS VARCHAR), '')", col)
		} else {
			selects[i] = "''"
		}
	}

	//nolint:gosec // table validated by identifierPattern, columns are constants
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selects, ", "), table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %w", ErrDataLoad, table, err)
	}
	defer rows.Close()

	var out []RawMovie
	for rows.Next() {
		values := make([]string, len(Columns))
		dest := make([]any, len(Columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, &DataLoadError{Row: len(out) + 1, Field: "record", Reason: "scan failed", Err: err}
		}

		var raw RawMovie
		for i, col := range Columns {
			raw.Set(col, values[i])
		}
		out = append(out, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s: %w", ErrDataLoad, table, err)
	}

	if len(out) == 0 {
		return nil, ErrEmptyCatalog
	}
	return out, nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	name := table
	if i := strings.LastIndex(table, "."); i >= 0 {
		name = table[i+1:]
	}

	rows, err := db.QueryContext(ctx,
		"SELECT column_name FROM information_schema.columns WHERE table_name = ?", name)
	if err != nil {
		return nil, fmt.Errorf("%w: describe %s: %w", ErrDataLoad, table, err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, fmt.Errorf("%w: describe %s: %w", ErrDataLoad, table, err)
		}
		present[strings.ToLower(col)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: describe %s: %w", ErrDataLoad, table, err)
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("%w: table %s not found", ErrDataLoad, table)
	}
	return present, nil
}
