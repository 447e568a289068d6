package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"anchorlog/internal/domain"
	"anchorlog/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, repo := range []interface {
		Init(context.Context) error
	}{
		NewUserRepository(db),
		NewBoundaryRepository(db),
		NewDiaryCardRepository(db),
		NewPhysicalGoalRepository(db),
		NewTherapyGoalRepository(db),
		NewValueRepository(db),
		NewProblemRepository(db),
	} {
		require.NoError(t, repo.Init(context.Background()))
	}
	return db
}

func newTestUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()

	users := NewUserRepository(db)
	id, err := users.Create(context.Background(), &domain.User{
		Email:        email,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return id
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	_, err := users.Create(context.Background(), &domain.User{Email: "dup@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = users.Create(context.Background(), &domain.User{Email: "dup@example.com", PasswordHash: "y"})
	require.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	id, err := users.Create(context.Background(), &domain.User{
		Email:        "b@example.com",
		FirstName:    "Bea",
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	user, err := users.GetByEmail(context.Background(), "b@example.com")
	require.NoError(t, err)
	require.Equal(t, id, user.ID)
	require.Equal(t, "Bea", user.FirstName)
	require.Equal(t, "hash", user.PasswordHash)

	_, err = users.GetByEmail(context.Background(), "missing@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
