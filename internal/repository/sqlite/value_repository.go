package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"anchorlog/internal/domain"
	"anchorlog/internal/repository"
)

// "values" is an SQL keyword, so the table is named core_values.
const createValuesTable = `
CREATE TABLE IF NOT EXISTS core_values (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	value TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
`

type ValueRepository struct {
	db *sql.DB
}

func NewValueRepository(db *sql.DB) repository.ValueRepository {
	return &ValueRepository{db: db}
}

func (r *ValueRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createValuesTable); err != nil {
		return fmt.Errorf("create core_values table: %w", err)
	}
	return nil
}

func (r *ValueRepository) Create(ctx context.Context, value *domain.Value) (int64, error) {
	value.CreatedAt = time.Now().UTC()

	id, err := insert(ctx, r.db, "insert value", `
INSERT INTO core_values (user_id, value, description, created_at)
VALUES (?, ?, ?, ?)`,
		value.UserID,
		value.Value,
		value.Description,
		value.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	value.ID = id
	return id, nil
}

func (r *ValueRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Value, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, value, description, created_at
FROM core_values
WHERE user_id = ?
ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query values: %w", err)
	}
	defer rows.Close()

	var values []domain.Value
	for rows.Next() {
		var v domain.Value
		if err := rows.Scan(&v.ID, &v.UserID, &v.Value, &v.Description, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate values: %w", err)
	}
	return values, nil
}

func (r *ValueRepository) Delete(ctx context.Context, id, userID int64) error {
	return execScoped(ctx, r.db, "delete value", `
DELETE FROM core_values
WHERE id = ? AND user_id = ?`,
		id, userID,
	)
}
