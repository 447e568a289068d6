package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"anchorlog/internal/domain"
	"anchorlog/internal/storage"
)

// ExportService assembles a full JSON snapshot of one user's data and uploads
// it to object storage.
type ExportService struct {
	users     UserService
	tracker   TrackerService
	store     storage.Service
	bucket    string
	keyPrefix string
}

func NewExportService(users UserService, tracker TrackerService, store storage.Service, bucket, keyPrefix string) *ExportService {
	return &ExportService{
		users:     users,
		tracker:   tracker,
		store:     store,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

type exportSnapshot struct {
	ExportedAt    string                `json:"exportedAt"`
	User          *domain.User          `json:"user"`
	Boundaries    []domain.Boundary     `json:"boundaries"`
	DiaryCards    []domain.DiaryCard    `json:"diaryCards"`
	PhysicalGoals []domain.PhysicalGoal `json:"physicalGoals"`
	TherapyGoals  []domain.TherapyGoal  `json:"therapyGoals"`
	Values        []domain.Value        `json:"values"`
	Problems      []domain.Problem      `json:"problems"`
}

// Export uploads the snapshot and returns its s3 location.
func (s *ExportService) Export(ctx context.Context, userID int64) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}

	snapshot := exportSnapshot{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		User:       user,
	}
	if snapshot.Boundaries, err = s.tracker.ListBoundaries(ctx, userID); err != nil {
		return "", err
	}
	if snapshot.DiaryCards, err = s.tracker.ListDiaryCards(ctx, userID); err != nil {
		return "", err
	}
	if snapshot.PhysicalGoals, err = s.tracker.ListPhysicalGoals(ctx, userID); err != nil {
		return "", err
	}
	if snapshot.TherapyGoals, err = s.tracker.ListTherapyGoals(ctx, userID); err != nil {
		return "", err
	}
	if snapshot.Values, err = s.tracker.ListValues(ctx, userID); err != nil {
		return "", err
	}
	if snapshot.Problems, err = s.tracker.ListProblems(ctx, userID); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("%s/export-%s.json", s.userPrefix(userID), uuid.NewString())
	if err := s.store.Put(ctx, s.bucket, key, data); err != nil {
		return "", err
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// ListExports returns previously uploaded snapshots for the user.
func (s *ExportService) ListExports(ctx context.Context, userID int64) ([]storage.ObjectInfo, error) {
	return s.store.ListObjects(ctx, s.bucket, s.userPrefix(userID)+"/")
}

func (s *ExportService) userPrefix(userID int64) string {
	if s.keyPrefix == "" {
		return fmt.Sprintf("user-%d", userID)
	}
	return fmt.Sprintf("%s/user-%d", s.keyPrefix, userID)
}
