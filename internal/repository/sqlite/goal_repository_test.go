package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"anchorlog/internal/domain"
	"anchorlog/internal/repository"
)

func TestGoalRepositoriesRoundTrip(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db, "g1@example.com")

	physical := NewPhysicalGoalRepository(db)
	therapy := NewTherapyGoalRepository(db)

	pid, err := physical.Create(context.Background(), &domain.PhysicalGoal{UserID: userID, Goal: "run weekly"})
	require.NoError(t, err)
	tid, err := therapy.Create(context.Background(), &domain.TherapyGoal{UserID: userID, Goal: "practice opposite action"})
	require.NoError(t, err)

	require.NoError(t, physical.SetDone(context.Background(), pid, userID, true))

	pGoals, err := physical.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, pGoals, 1)
	require.True(t, pGoals[0].IsDone)

	// the two kinds live in separate tables
	tGoals, err := therapy.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, tGoals, 1)
	require.False(t, tGoals[0].IsDone)
	require.Equal(t, tid, tGoals[0].ID)

	require.NoError(t, therapy.Delete(context.Background(), tid, userID))
	err = therapy.Delete(context.Background(), tid, userID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestValueAndDiaryCardRoundTrip(t *testing.T) {
	db := newTestDB(t)
	userID := newTestUser(t, db, "v1@example.com")

	values := NewValueRepository(db)
	cards := NewDiaryCardRepository(db)

	_, err := values.Create(context.Background(), &domain.Value{
		UserID: userID, Value: "honesty", Description: "say the hard thing kindly",
	})
	require.NoError(t, err)

	gotValues, err := values.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, gotValues, 1)
	require.Equal(t, "honesty", gotValues[0].Value)

	for _, date := range []string{"2026-08-27", "2026-08-28", "2026-08-29", "2026-08-30"} {
		_, err := cards.Create(context.Background(), &domain.DiaryCard{
			UserID: userID, EntryDate: date, Mood: 3, SkillsUsed: "TIPP",
		})
		require.NoError(t, err)
	}

	recent, err := cards.RecentByUser(context.Background(), userID, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.Equal(t, "2026-08-30", recent[0].EntryDate)
	require.Equal(t, "2026-08-28", recent[2].EntryDate)
}
