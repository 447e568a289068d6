package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"anchorlog/internal/domain"
	"anchorlog/internal/repository"
)

// Physical and therapy goals share one schema and differ only by table.
// goalTable carries the shared CRUD so the two repositories stay thin.
type goalTable struct {
	db    *sql.DB
	table string
}

func (g *goalTable) init(ctx context.Context) error {
	if _, err := g.db.ExecContext(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	goal TEXT NOT NULL,
	is_done INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);`, g.table)); err != nil {
		return fmt.Errorf("create %s table: %w", g.table, err)
	}
	return nil
}

func (g *goalTable) create(ctx context.Context, userID int64, goal string, done bool, createdAt time.Time) (int64, error) {
	return insert(ctx, g.db, fmt.Sprintf("insert %s", g.table), fmt.Sprintf(`
INSERT INTO %s (user_id, goal, is_done, created_at)
VALUES (?, ?, ?, ?)`, g.table),
		userID, goal, done, createdAt,
	)
}

type goalRow struct {
	id        int64
	userID    int64
	goal      string
	isDone    bool
	createdAt time.Time
}

func (g *goalTable) listByUser(ctx context.Context, userID int64) ([]goalRow, error) {
	rows, err := g.db.QueryContext(ctx, fmt.Sprintf(`
SELECT id, user_id, goal, is_done, created_at
FROM %s
WHERE user_id = ?
ORDER BY created_at DESC, id DESC`, g.table),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", g.table, err)
	}
	defer rows.Close()

	var goals []goalRow
	for rows.Next() {
		var row goalRow
		if err := rows.Scan(&row.id, &row.userID, &row.goal, &row.isDone, &row.createdAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", g.table, err)
		}
		goals = append(goals, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", g.table, err)
	}
	return goals, nil
}

func (g *goalTable) setDone(ctx context.Context, id, userID int64, done bool) error {
	return execScoped(ctx, g.db, fmt.Sprintf("update %s", g.table), fmt.Sprintf(`
UPDATE %s
SET is_done = ?
WHERE id = ? AND user_id = ?`, g.table),
		done, id, userID,
	)
}

func (g *goalTable) delete(ctx context.Context, id, userID int64) error {
	return execScoped(ctx, g.db, fmt.Sprintf("delete %s", g.table), fmt.Sprintf(`
DELETE FROM %s
WHERE id = ? AND user_id = ?`, g.table),
		id, userID,
	)
}

type PhysicalGoalRepository struct {
	goals goalTable
}

func NewPhysicalGoalRepository(db *sql.DB) repository.PhysicalGoalRepository {
	return &PhysicalGoalRepository{goals: goalTable{db: db, table: "physical_goals"}}
}

func (r *PhysicalGoalRepository) Init(ctx context.Context) error {
	return r.goals.init(ctx)
}

func (r *PhysicalGoalRepository) Create(ctx context.Context, goal *domain.PhysicalGoal) (int64, error) {
	goal.CreatedAt = time.Now().UTC()
	id, err := r.goals.create(ctx, goal.UserID, goal.Goal, goal.IsDone, goal.CreatedAt)
	if err != nil {
		return 0, err
	}
	goal.ID = id
	return id, nil
}

func (r *PhysicalGoalRepository) ListByUser(ctx context.Context, userID int64) ([]domain.PhysicalGoal, error) {
	rows, err := r.goals.listByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals := make([]domain.PhysicalGoal, len(rows))
	for i, row := range rows {
		goals[i] = domain.PhysicalGoal{
			ID:        row.id,
			UserID:    row.userID,
			Goal:      row.goal,
			IsDone:    row.isDone,
			CreatedAt: row.createdAt,
		}
	}
	return goals, nil
}

func (r *PhysicalGoalRepository) SetDone(ctx context.Context, id, userID int64, done bool) error {
	return r.goals.setDone(ctx, id, userID, done)
}

func (r *PhysicalGoalRepository) Delete(ctx context.Context, id, userID int64) error {
	return r.goals.delete(ctx, id, userID)
}

type TherapyGoalRepository struct {
	goals goalTable
}

func NewTherapyGoalRepository(db *sql.DB) repository.TherapyGoalRepository {
	return &TherapyGoalRepository{goals: goalTable{db: db, table: "therapy_goals"}}
}

func (r *TherapyGoalRepository) Init(ctx context.Context) error {
	return r.goals.init(ctx)
}

func (r *TherapyGoalRepository) Create(ctx context.Context, goal *domain.TherapyGoal) (int64, error) {
	goal.CreatedAt = time.Now().UTC()
	id, err := r.goals.create(ctx, goal.UserID, goal.Goal, goal.IsDone, goal.CreatedAt)
	if err != nil {
		return 0, err
	}
	goal.ID = id
	return id, nil
}

func (r *TherapyGoalRepository) ListByUser(ctx context.Context, userID int64) ([]domain.TherapyGoal, error) {
	rows, err := r.goals.listByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals := make([]domain.TherapyGoal, len(rows))
	for i, row := range rows {
		goals[i] = domain.TherapyGoal{
			ID:        row.id,
			UserID:    row.userID,
			Goal:      row.goal,
			IsDone:    row.isDone,
			CreatedAt: row.createdAt,
		}
	}
	return goals, nil
}

func (r *TherapyGoalRepository) SetDone(ctx context.Context, id, userID int64, done bool) error {
	return r.goals.setDone(ctx, id, userID, done)
}

func (r *TherapyGoalRepository) Delete(ctx context.Context, id, userID int64) error {
	return r.goals.delete(ctx, id, userID)
}
