package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"anchorlog/internal/repository"
)

// Open opens (or creates) a sqlite database at the given path and ensures directories exist.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// reasonable defaults for sqlite with concurrent readers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return db, nil
}

// execScoped runs a statement expected to touch exactly one row owned by a user
// and maps a zero rows-affected result to repository.ErrNotFound.
func execScoped(ctx context.Context, db *sql.DB, action, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", action, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func insert(ctx context.Context, db *sql.DB, action, query string, args ...any) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", action, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s last insert id: %w", action, err)
	}
	return id, nil
}

// countByColumn tallies rows per distinct value of a category column for one user.
func countByColumn(ctx context.Context, db *sql.DB, table, column string, userID int64) (map[string]int64, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`
SELECT %s, COUNT(*)
FROM %s
WHERE user_id = ?
GROUP BY %s`, column, table, column),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("count %s by %s: %w", table, column, err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var category string
		var n int64
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan %s count: %w", table, err)
		}
		counts[category] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s counts: %w", table, err)
	}
	return counts, nil
}
