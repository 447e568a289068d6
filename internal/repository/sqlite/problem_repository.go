package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"anchorlog/internal/domain"
	"anchorlog/internal/repository"
)

const createProblemsTable = `
CREATE TABLE IF NOT EXISTS problems (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	problem TEXT NOT NULL,
	category TEXT NOT NULL,
	is_done INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
`

type ProblemRepository struct {
	db *sql.DB
}

func NewProblemRepository(db *sql.DB) repository.ProblemRepository {
	return &ProblemRepository{db: db}
}

func (r *ProblemRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProblemsTable); err != nil {
		return fmt.Errorf("create problems table: %w", err)
	}
	return nil
}

func (r *ProblemRepository) Create(ctx context.Context, problem *domain.Problem) (int64, error) {
	problem.CreatedAt = time.Now().UTC()

	id, err := insert(ctx, r.db, "insert problem", `
INSERT INTO problems (user_id, problem, category, is_done, created_at)
VALUES (?, ?, ?, ?, ?)`,
		problem.UserID,
		problem.Problem,
		problem.Category,
		problem.IsDone,
		problem.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	problem.ID = id
	return id, nil
}

func (r *ProblemRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Problem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, problem, category, is_done, created_at
FROM problems
WHERE user_id = ?
ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query problems: %w", err)
	}
	defer rows.Close()

	var problems []domain.Problem
	for rows.Next() {
		var p domain.Problem
		if err := rows.Scan(&p.ID, &p.UserID, &p.Problem, &p.Category, &p.IsDone, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		problems = append(problems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate problems: %w", err)
	}
	return problems, nil
}

func (r *ProblemRepository) SetDone(ctx context.Context, id, userID int64, done bool) error {
	return execScoped(ctx, r.db, "update problem", `
UPDATE problems
SET is_done = ?
WHERE id = ? AND user_id = ?`,
		done, id, userID,
	)
}

func (r *ProblemRepository) Delete(ctx context.Context, id, userID int64) error {
	return execScoped(ctx, r.db, "delete problem", `
DELETE FROM problems
WHERE id = ? AND user_id = ?`,
		id, userID,
	)
}

func (r *ProblemRepository) CountByCategory(ctx context.Context, userID int64) (map[string]int64, error) {
	return countByColumn(ctx, r.db, "problems", "category", userID)
}
