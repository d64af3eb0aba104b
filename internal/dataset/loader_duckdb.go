// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver
)

// duckDBLoadTimeout bounds the read_csv scan when the caller has no deadline.
const duckDBLoadTimeout = 30 * time.Second

// DuckDBLoader scans the file with DuckDB's read_csv in an in-memory
// database. Every cell is read as text and parsed with the same rules as
// CSVLoader, so both engines produce identical tables.
type DuckDBLoader struct {
	opts Options
}

// NewDuckDBLoader creates a DuckDB loader.
func NewDuckDBLoader(opts Options) *DuckDBLoader {
	return &DuckDBLoader{opts: opts}
}

// Engine implements Loader.
func (l *DuckDBLoader) Engine() string { return "duckdb" }

// Load implements Loader.
func (l *DuckDBLoader) Load(ctx context.Context) (*Table, error) {
	path := l.opts.Path
	if _, err := os.Stat(path); err != nil {
		return nil, loadError(path, "cannot open file", err)
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, loadError(path, "cannot open duckdb", err)
	}
	defer closeQuietly(db)

	records, err := l.readRecords(ctx, db)
	if err != nil {
		return nil, err
	}

	df := dataframe.LoadRecords(records, readOptions()...)
	return tableFromFrame(df, l.opts)
}

// readRecords returns the header plus every row as strings, NULL as "".
func (l *DuckDBLoader) readRecords(ctx context.Context, db *sql.DB) ([][]string, error) {
	path := l.opts.Path

	query := fmt.Sprintf("SELECT * FROM read_csv(%s, header = true, all_varchar = true)", quoteLiteral(path))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, loadError(path, "cannot parse CSV", err)
	}
	defer closeQuietly(rows)

	header, err := rows.Columns()
	if err != nil {
		return nil, loadError(path, "cannot read header", err)
	}

	records := [][]string{header}
	cells := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, loadError(path, "cannot scan row", err)
		}
		record := make([]string, len(cells))
		for i, c := range cells {
			if c.Valid {
				record[i] = c.String
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, loadError(path, "cannot read rows", err)
	}
	return records, nil
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ensureContext applies a default timeout when ctx has no deadline.
func ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, duckDBLoadTimeout)
}
