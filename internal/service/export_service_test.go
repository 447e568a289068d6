package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"anchorlog/internal/domain"
	"anchorlog/internal/repository/sqlite"
	"anchorlog/internal/storage"
)

type fakeStore struct {
	objects map[string][]byte
}

func (f *fakeStore) Put(_ context.Context, _, key string, body []byte) error {
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[key] = body
	return nil
}

func (f *fakeStore) ListObjects(_ context.Context, _, prefix string) ([]storage.ObjectInfo, error) {
	var objects []storage.ObjectInfo
	for key, body := range f.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, storage.ObjectInfo{Key: key, Size: int64(len(body))})
		}
	}
	return objects, nil
}

func TestExportSnapshot(t *testing.T) {
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	boundaryRepo := sqlite.NewBoundaryRepository(db)
	diaryCardRepo := sqlite.NewDiaryCardRepository(db)
	physicalGoalRepo := sqlite.NewPhysicalGoalRepository(db)
	therapyGoalRepo := sqlite.NewTherapyGoalRepository(db)
	valueRepo := sqlite.NewValueRepository(db)
	problemRepo := sqlite.NewProblemRepository(db)
	for _, repo := range []interface {
		Init(context.Context) error
	}{userRepo, boundaryRepo, diaryCardRepo, physicalGoalRepo, therapyGoalRepo, valueRepo, problemRepo} {
		require.NoError(t, repo.Init(context.Background()))
	}

	users := NewUserService(userRepo)
	tracker := NewTrackerService(
		boundaryRepo, diaryCardRepo, physicalGoalRepo, therapyGoalRepo, valueRepo, problemRepo,
	)

	user, err := users.Register(context.Background(), "a@example.com", "hunter22", "Ada", "L")
	require.NoError(t, err)

	_, err = tracker.AddBoundary(context.Background(), user.ID, "no late replies", domain.BoundaryCategoryMine)
	require.NoError(t, err)
	_, err = tracker.AddValue(context.Background(), user.ID, "honesty", "")
	require.NoError(t, err)

	store := &fakeStore{}
	exports := NewExportService(users, tracker, store, "test-bucket", "exports")

	location, err := exports.Export(context.Background(), user.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(location, "s3://test-bucket/exports/"), location)
	require.Len(t, store.objects, 1)

	for _, body := range store.objects {
		var snapshot exportSnapshot
		require.NoError(t, json.Unmarshal(body, &snapshot))
		require.Equal(t, "a@example.com", snapshot.User.Email)
		require.Len(t, snapshot.Boundaries, 1)
		require.Len(t, snapshot.Values, 1)
		require.Empty(t, snapshot.Problems)
	}

	objects, err := exports.ListExports(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, objects, 1)
}
