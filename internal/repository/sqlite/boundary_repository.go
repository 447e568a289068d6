package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"anchorlog/internal/domain"
	"anchorlog/internal/repository"
)

const createBoundariesTable = `
CREATE TABLE IF NOT EXISTS boundaries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	boundary TEXT NOT NULL,
	category TEXT NOT NULL,
	is_tracking INTEGER NOT NULL DEFAULT 0,
	date_added DATETIME NULL,
	created_at DATETIME NOT NULL
);
`

type BoundaryRepository struct {
	db *sql.DB
}

func NewBoundaryRepository(db *sql.DB) repository.BoundaryRepository {
	return &BoundaryRepository{db: db}
}

func (r *BoundaryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBoundariesTable); err != nil {
		return fmt.Errorf("create boundaries table: %w", err)
	}
	return nil
}

func (r *BoundaryRepository) Create(ctx context.Context, b *domain.Boundary) (int64, error) {
	b.CreatedAt = time.Now().UTC()

	id, err := insert(ctx, r.db, "insert boundary", `
INSERT INTO boundaries (user_id, boundary, category, is_tracking, date_added, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		b.UserID,
		b.Boundary,
		b.Category,
		b.IsTracking,
		b.DateAdded,
		b.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	b.ID = id
	return id, nil
}

func (r *BoundaryRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Boundary, error) {
	return r.queryBoundaries(ctx, `
SELECT id, user_id, boundary, category, is_tracking, date_added, created_at
FROM boundaries
WHERE user_id = ?
ORDER BY created_at DESC, id DESC`,
		userID,
	)
}

func (r *BoundaryRepository) RecentByUser(ctx context.Context, userID int64, limit int) ([]domain.Boundary, error) {
	return r.queryBoundaries(ctx, `
SELECT id, user_id, boundary, category, is_tracking, date_added, created_at
FROM boundaries
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?`,
		userID, limit,
	)
}

func (r *BoundaryRepository) SetTracking(ctx context.Context, id, userID int64, tracking bool) error {
	var dateAdded *time.Time
	if tracking {
		now := time.Now().UTC()
		dateAdded = &now
	}
	return execScoped(ctx, r.db, "track boundary", `
UPDATE boundaries
SET is_tracking = ?, date_added = ?
WHERE id = ? AND user_id = ?`,
		tracking, dateAdded, id, userID,
	)
}

func (r *BoundaryRepository) Delete(ctx context.Context, id, userID int64) error {
	return execScoped(ctx, r.db, "delete boundary", `
DELETE FROM boundaries
WHERE id = ? AND user_id = ?`,
		id, userID,
	)
}

func (r *BoundaryRepository) CountByCategory(ctx context.Context, userID int64) (map[string]int64, error) {
	return countByColumn(ctx, r.db, "boundaries", "category", userID)
}

func (r *BoundaryRepository) queryBoundaries(ctx context.Context, query string, args ...any) ([]domain.Boundary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query boundaries: %w", err)
	}
	defer rows.Close()

	var boundaries []domain.Boundary
	for rows.Next() {
		var b domain.Boundary
		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.Boundary,
			&b.Category,
			&b.IsTracking,
			&b.DateAdded,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan boundary: %w", err)
		}
		boundaries = append(boundaries, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate boundaries: %w", err)
	}
	return boundaries, nil
}
