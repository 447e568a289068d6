package repository

import (
	"context"

	"anchorlog/internal/domain"
)

// BoundaryRepository defines persistence operations for boundaries.
type BoundaryRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, b *domain.Boundary) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Boundary, error)
	RecentByUser(ctx context.Context, userID int64, limit int) ([]domain.Boundary, error)
	SetTracking(ctx context.Context, id, userID int64, tracking bool) error
	Delete(ctx context.Context, id, userID int64) error
	CountByCategory(ctx context.Context, userID int64) (map[string]int64, error)
}

// DiaryCardRepository defines persistence operations for diary cards.
type DiaryCardRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, card *domain.DiaryCard) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.DiaryCard, error)
	RecentByUser(ctx context.Context, userID int64, limit int) ([]domain.DiaryCard, error)
	Delete(ctx context.Context, id, userID int64) error
}

// PhysicalGoalRepository defines persistence operations for physical goals.
type PhysicalGoalRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, goal *domain.PhysicalGoal) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.PhysicalGoal, error)
	SetDone(ctx context.Context, id, userID int64, done bool) error
	Delete(ctx context.Context, id, userID int64) error
}

// TherapyGoalRepository defines persistence operations for therapy goals.
type TherapyGoalRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, goal *domain.TherapyGoal) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.TherapyGoal, error)
	SetDone(ctx context.Context, id, userID int64, done bool) error
	Delete(ctx context.Context, id, userID int64) error
}

// ValueRepository defines persistence operations for values.
type ValueRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, value *domain.Value) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Value, error)
	Delete(ctx context.Context, id, userID int64) error
}

// ProblemRepository defines persistence operations for problems.
type ProblemRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, problem *domain.Problem) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Problem, error)
	SetDone(ctx context.Context, id, userID int64, done bool) error
	Delete(ctx context.Context, id, userID int64) error
	CountByCategory(ctx context.Context, userID int64) (map[string]int64, error)
}
