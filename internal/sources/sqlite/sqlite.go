// Package sqlite reads datasets from tables of a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"recycling/internal/sources"

	_ "modernc.org/sqlite"
)

// Columns are selected in dataset field order and coerced to text, so rows
// match what the delimited-file backends produce.
var queries = map[sources.Dataset]string{
	sources.Users: `SELECT COALESCE(user_id, ''), COALESCE(name, ''), COALESCE(email, ''),
		COALESCE(phone, ''), COALESCE(role, '') FROM users ORDER BY rowid`,
	sources.Dropboxes: `SELECT COALESCE(dropbox_id, ''), COALESCE(owner_user_id, ''),
		COALESCE(location, ''), COALESCE(description, '') FROM dropboxes ORDER BY rowid`,
	sources.Transactions: `SELECT COALESCE(transaction_id, ''), COALESCE(occurred_at, ''),
		COALESCE(dropbox_id, ''), COALESCE(user_id, ''), COALESCE(`+countText+`, '')
		FROM transactions ORDER BY rowid`,
}

// countText renders whole REAL counts such as 5.0 as "5"; anything else is
// passed through as text.
const countText = `CASE WHEN typeof(bottle_count) = 'real' AND bottle_count = CAST(bottle_count AS INTEGER)
		THEN CAST(CAST(bottle_count AS INTEGER) AS TEXT)
		ELSE CAST(bottle_count AS TEXT) END`

type Store struct {
	db *sql.DB
}

var _ sources.Source = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies
// migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Rows returns every row of the table backing ds in insertion order.
func (s *Store) Rows(ctx context.Context, ds sources.Dataset) ([][]string, error) {
	q, ok := queries[ds]
	if !ok {
		return nil, fmt.Errorf("%w: %q", sources.ErrUnknownDataset, ds)
	}
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", ds, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", ds, err)
	}
	out := [][]string{}
	for rows.Next() {
		rec := make([]string, len(cols))
		dest := make([]any, len(cols))
		for i := range rec {
			dest[i] = &rec[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", ds, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", ds, err)
	}
	return out, nil
}
