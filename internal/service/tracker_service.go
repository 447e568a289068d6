package service

import (
	"context"
	"errors"

	"anchorlog/internal/domain"
	"anchorlog/internal/repository"
)

const recentLimit = 3

// TrackerService coordinates per-user tracking entries across the six resource
// kinds. Every call takes the authenticated user id so rows never cross users.
type TrackerService interface {
	AddBoundary(ctx context.Context, userID int64, boundary, category string) (*domain.Boundary, error)
	ListBoundaries(ctx context.Context, userID int64) ([]domain.Boundary, error)
	RecentBoundaries(ctx context.Context, userID int64) ([]domain.Boundary, error)
	TrackBoundary(ctx context.Context, id, userID int64, tracking bool) error
	DeleteBoundary(ctx context.Context, id, userID int64) error
	BoundaryCounts(ctx context.Context, userID int64) (map[string]int64, error)

	AddDiaryCard(ctx context.Context, card *domain.DiaryCard) (*domain.DiaryCard, error)
	ListDiaryCards(ctx context.Context, userID int64) ([]domain.DiaryCard, error)
	RecentDiaryCards(ctx context.Context, userID int64) ([]domain.DiaryCard, error)
	DeleteDiaryCard(ctx context.Context, id, userID int64) error

	AddPhysicalGoal(ctx context.Context, userID int64, goal string) (*domain.PhysicalGoal, error)
	ListPhysicalGoals(ctx context.Context, userID int64) ([]domain.PhysicalGoal, error)
	UpdatePhysicalGoal(ctx context.Context, id, userID int64, done bool) error
	DeletePhysicalGoal(ctx context.Context, id, userID int64) error

	AddTherapyGoal(ctx context.Context, userID int64, goal string) (*domain.TherapyGoal, error)
	ListTherapyGoals(ctx context.Context, userID int64) ([]domain.TherapyGoal, error)
	UpdateTherapyGoal(ctx context.Context, id, userID int64, done bool) error
	DeleteTherapyGoal(ctx context.Context, id, userID int64) error

	AddValue(ctx context.Context, userID int64, value, description string) (*domain.Value, error)
	ListValues(ctx context.Context, userID int64) ([]domain.Value, error)
	DeleteValue(ctx context.Context, id, userID int64) error

	AddProblem(ctx context.Context, userID int64, problem, category string) (*domain.Problem, error)
	ListProblems(ctx context.Context, userID int64) ([]domain.Problem, error)
	UpdateProblem(ctx context.Context, id, userID int64, done bool) error
	DeleteProblem(ctx context.Context, id, userID int64) error
	ProblemCounts(ctx context.Context, userID int64) (map[string]int64, error)
}

type trackerService struct {
	boundaries    repository.BoundaryRepository
	diaryCards    repository.DiaryCardRepository
	physicalGoals repository.PhysicalGoalRepository
	therapyGoals  repository.TherapyGoalRepository
	values        repository.ValueRepository
	problems      repository.ProblemRepository
}

func NewTrackerService(
	boundaries repository.BoundaryRepository,
	diaryCards repository.DiaryCardRepository,
	physicalGoals repository.PhysicalGoalRepository,
	therapyGoals repository.TherapyGoalRepository,
	values repository.ValueRepository,
	problems repository.ProblemRepository,
) TrackerService {
	return &trackerService{
		boundaries:    boundaries,
		diaryCards:    diaryCards,
		physicalGoals: physicalGoals,
		therapyGoals:  therapyGoals,
		values:        values,
		problems:      problems,
	}
}

func (s *trackerService) AddBoundary(ctx context.Context, userID int64, boundary, category string) (*domain.Boundary, error) {
	if boundary == "" {
		return nil, errors.New("boundary is required")
	}
	if category == "" {
		return nil, errors.New("category is required")
	}

	b := &domain.Boundary{
		UserID:   userID,
		Boundary: boundary,
		Category: category,
	}
	if _, err := s.boundaries.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *trackerService) ListBoundaries(ctx context.Context, userID int64) ([]domain.Boundary, error) {
	return s.boundaries.ListByUser(ctx, userID)
}

func (s *trackerService) RecentBoundaries(ctx context.Context, userID int64) ([]domain.Boundary, error) {
	return s.boundaries.RecentByUser(ctx, userID, recentLimit)
}

func (s *trackerService) TrackBoundary(ctx context.Context, id, userID int64, tracking bool) error {
	return s.boundaries.SetTracking(ctx, id, userID, tracking)
}

func (s *trackerService) DeleteBoundary(ctx context.Context, id, userID int64) error {
	return s.boundaries.Delete(ctx, id, userID)
}

func (s *trackerService) BoundaryCounts(ctx context.Context, userID int64) (map[string]int64, error) {
	return s.boundaries.CountByCategory(ctx, userID)
}

func (s *trackerService) AddDiaryCard(ctx context.Context, card *domain.DiaryCard) (*domain.DiaryCard, error) {
	if card.EntryDate == "" {
		return nil, errors.New("entry date is required")
	}
	if _, err := s.diaryCards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *trackerService) ListDiaryCards(ctx context.Context, userID int64) ([]domain.DiaryCard, error) {
	return s.diaryCards.ListByUser(ctx, userID)
}

func (s *trackerService) RecentDiaryCards(ctx context.Context, userID int64) ([]domain.DiaryCard, error) {
	return s.diaryCards.RecentByUser(ctx, userID, recentLimit)
}

func (s *trackerService) DeleteDiaryCard(ctx context.Context, id, userID int64) error {
	return s.diaryCards.Delete(ctx, id, userID)
}

func (s *trackerService) AddPhysicalGoal(ctx context.Context, userID int64, goal string) (*domain.PhysicalGoal, error) {
	if goal == "" {
		return nil, errors.New("goal is required")
	}
	g := &domain.PhysicalGoal{UserID: userID, Goal: goal}
	if _, err := s.physicalGoals.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *trackerService) ListPhysicalGoals(ctx context.Context, userID int64) ([]domain.PhysicalGoal, error) {
	return s.physicalGoals.ListByUser(ctx, userID)
}

func (s *trackerService) UpdatePhysicalGoal(ctx context.Context, id, userID int64, done bool) error {
	return s.physicalGoals.SetDone(ctx, id, userID, done)
}

func (s *trackerService) DeletePhysicalGoal(ctx context.Context, id, userID int64) error {
	return s.physicalGoals.Delete(ctx, id, userID)
}

func (s *trackerService) AddTherapyGoal(ctx context.Context, userID int64, goal string) (*domain.TherapyGoal, error) {
	if goal == "" {
		return nil, errors.New("goal is required")
	}
	g := &domain.TherapyGoal{UserID: userID, Goal: goal}
	if _, err := s.therapyGoals.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *trackerService) ListTherapyGoals(ctx context.Context, userID int64) ([]domain.TherapyGoal, error) {
	return s.therapyGoals.ListByUser(ctx, userID)
}

func (s *trackerService) UpdateTherapyGoal(ctx context.Context, id, userID int64, done bool) error {
	return s.therapyGoals.SetDone(ctx, id, userID, done)
}

func (s *trackerService) DeleteTherapyGoal(ctx context.Context, id, userID int64) error {
	return s.therapyGoals.Delete(ctx, id, userID)
}

func (s *trackerService) AddValue(ctx context.Context, userID int64, value, description string) (*domain.Value, error) {
	if value == "" {
		return nil, errors.New("value is required")
	}
	v := &domain.Value{UserID: userID, Value: value, Description: description}
	if _, err := s.values.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *trackerService) ListValues(ctx context.Context, userID int64) ([]domain.Value, error) {
	return s.values.ListByUser(ctx, userID)
}

func (s *trackerService) DeleteValue(ctx context.Context, id, userID int64) error {
	return s.values.Delete(ctx, id, userID)
}

func (s *trackerService) AddProblem(ctx context.Context, userID int64, problem, category string) (*domain.Problem, error) {
	if problem == "" {
		return nil, errors.New("problem is required")
	}
	if category == "" {
		return nil, errors.New("category is required")
	}
	p := &domain.Problem{UserID: userID, Problem: problem, Category: category}
	if _, err := s.problems.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *trackerService) ListProblems(ctx context.Context, userID int64) ([]domain.Problem, error) {
	return s.problems.ListByUser(ctx, userID)
}

func (s *trackerService) UpdateProblem(ctx context.Context, id, userID int64, done bool) error {
	return s.problems.SetDone(ctx, id, userID, done)
}

func (s *trackerService) DeleteProblem(ctx context.Context, id, userID int64) error {
	return s.problems.Delete(ctx, id, userID)
}

func (s *trackerService) ProblemCounts(ctx context.Context, userID int64) (map[string]int64, error) {
	return s.problems.CountByCategory(ctx, userID)
}
