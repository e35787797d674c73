package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habit-hero/habit-hero/internal/domain/character"
	"github.com/habit-hero/habit-hero/internal/domain/habit"
	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/internal/infrastructure/persistence/memory"
	"github.com/habit-hero/habit-hero/pkg/timeutil"
)

type completeFixture struct {
	store   *memory.Store
	streaks *recordingStreaks
	handler *CompleteHabitHandler
	now     time.Time
}

func newCompleteFixture(t *testing.T, withCharacter bool) *completeFixture {
	t.Helper()
	ctx := context.Background()

	f := &completeFixture{
		store: memory.NewStore(),
		now:   time.Date(2024, time.July, 10, 18, 45, 0, 0, time.UTC),
	}
	f.streaks = &recordingStreaks{StreakRepository: f.store.Streaks}
	f.handler = NewCompleteHabitHandler(
		f.store.Habits, f.store.Logs, f.streaks, f.store.Characters,
		fixedClock(f.now), discardLogger(),
	)

	require.NoError(t, f.store.Habits.Save(ctx, &habit.Habit{
		ID: "habit-1", UserID: "user-1", Name: "Meditate", BaseXP: 20, Active: true,
	}))
	if withCharacter {
		require.NoError(t, f.store.Characters.Save(ctx, character.New("user-1")))
	}
	return f
}

func TestCompleteHabitHandler_FirstCompletion(t *testing.T) {
	ctx := context.Background()
	f := newCompleteFixture(t, true)

	res, err := f.handler.Handle(ctx, CompleteHabitCommand{UserID: "user-1", HabitID: "habit-1"})
	require.NoError(t, err)

	today := timeutil.Date(2024, time.July, 10)
	assert.Equal(t, "log-habit-1-2024-07-10", res.Log.ID)
	assert.Equal(t, today, res.Log.Day)
	assert.Equal(t, f.now, res.Log.CompletedAt)
	assert.Equal(t, 20, res.Log.XPEarned)
	assert.Equal(t, 1, res.Streak.CurrentStreak)
	assert.Equal(t, 1, res.Streak.LongestStreak)
	require.NotNil(t, res.Character)
	assert.Equal(t, 20, res.Character.XP)
	assert.Zero(t, res.LevelsGained)

	streak, err := f.store.Streaks.Get(ctx, "user-1", "habit-1")
	require.NoError(t, err)
	assert.Equal(t, today, streak.LastCompletedDay)

	logs, err := f.store.Logs.ListForDay(ctx, "user-1", today)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, res.Log, logs[0])

	char, err := f.store.Characters.GetForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 20, char.XP)
}

func TestCompleteHabitHandler_ConsecutiveDaysBuildStreakAndBonus(t *testing.T) {
	ctx := context.Background()
	f := newCompleteFixture(t, true)
	start := timeutil.Date(2024, time.July, 1)

	var last *CompleteHabitResult
	totalXP := 0
	for i := 0; i < 5; i++ {
		res, err := f.handler.Handle(ctx, CompleteHabitCommand{
			UserID: "user-1", HabitID: "habit-1", Day: start.AddDate(0, 0, i),
		})
		require.NoError(t, err)
		totalXP += res.Log.XPEarned
		last = res
	}

	assert.Equal(t, 5, last.Streak.CurrentStreak)
	assert.Equal(t, 5, last.Streak.LongestStreak)
	// Day five crosses the first bonus step: 20 * 1.1.
	assert.Equal(t, 22, last.Log.XPEarned)
	assert.Equal(t, 4*20+22, totalXP)

	// 102 XP total: level 2 with 2 XP carried over.
	assert.Equal(t, 2, last.Character.Level)
	assert.Equal(t, 2, last.Character.XP)
	assert.Equal(t, 200, last.Character.XPToNextLevel)
	assert.Equal(t, 1, last.LevelsGained)
}

func TestCompleteHabitHandler_GapResetsStreak(t *testing.T) {
	ctx := context.Background()
	f := newCompleteFixture(t, true)
	day := timeutil.Date(2024, time.July, 1)

	for _, d := range []time.Time{day, day.AddDate(0, 0, 1), day.AddDate(0, 0, 4)} {
		_, err := f.handler.Handle(ctx, CompleteHabitCommand{UserID: "user-1", HabitID: "habit-1", Day: d})
		require.NoError(t, err)
	}

	streak, err := f.store.Streaks.Get(ctx, "user-1", "habit-1")
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 2, streak.LongestStreak)
}

func TestCompleteHabitHandler_SameDayTwiceResetsAndOverwritesLog(t *testing.T) {
	ctx := context.Background()
	f := newCompleteFixture(t, true)
	yesterday := timeutil.Date(2024, time.July, 9)

	_, err := f.handler.Handle(ctx, CompleteHabitCommand{UserID: "user-1", HabitID: "habit-1", Day: yesterday})
	require.NoError(t, err)
	first, err := f.handler.Handle(ctx, CompleteHabitCommand{UserID: "user-1", HabitID: "habit-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Streak.CurrentStreak)

	second, err := f.handler.Handle(ctx, CompleteHabitCommand{UserID: "user-1", HabitID: "habit-1"})
	require.NoError(t, err)

	assert.Equal(t, 1, second.Streak.CurrentStreak)
	assert.Equal(t, 2, second.Streak.LongestStreak)
	assert.Equal(t, first.Log.ID, second.Log.ID)
	assert.Equal(t, 2, f.store.Logs.Len())

	// XP is still awarded for the repeat completion.
	assert.Equal(t, 60, second.Character.XP)
}

func TestCompleteHabitHandler_WithoutCharacter(t *testing.T) {
	ctx := context.Background()
	f := newCompleteFixture(t, false)

	res, err := f.handler.Handle(ctx, CompleteHabitCommand{UserID: "user-1", HabitID: "habit-1"})
	require.NoError(t, err)

	assert.Nil(t, res.Character)
	assert.Equal(t, 1, f.streaks.saves)
	assert.Equal(t, 1, f.store.Logs.Len())

	_, err = f.store.Characters.GetForUser(ctx, "user-1")
	assert.True(t, shared.IsNotFound(err))
}

func TestCompleteHabitHandler_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		habitID string
	}{
		{"unknown habit", "user-1", "habit-missing"},
		{"habit of another user", "user-2", "habit-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newCompleteFixture(t, true)

			res, err := f.handler.Handle(ctx, CompleteHabitCommand{UserID: tt.userID, HabitID: tt.habitID})

			assert.Nil(t, res)
			assert.ErrorIs(t, err, shared.ErrHabitNotFound)
			assert.True(t, shared.IsNotFound(err))

			assert.Zero(t, f.streaks.saves)
			assert.Zero(t, f.store.Streaks.Len())
			assert.Zero(t, f.store.Logs.Len())

			char, err := f.store.Characters.GetForUser(ctx, "user-1")
			require.NoError(t, err)
			assert.Equal(t, character.New("user-1"), char)
		})
	}
}

func TestCompleteHabitHandler_CharacterStoreFailure(t *testing.T) {
	ctx := context.Background()
	f := newCompleteFixture(t, false)
	f.handler = NewCompleteHabitHandler(
		f.store.Habits, f.store.Logs, f.streaks, failingCharacters{},
		fixedClock(f.now), discardLogger(),
	)

	_, err := f.handler.Handle(ctx, CompleteHabitCommand{UserID: "user-1", HabitID: "habit-1"})

	assert.ErrorIs(t, err, errStorageDown)
	assert.False(t, shared.IsNotFound(err))
	assert.Zero(t, f.streaks.saves)
}

func TestCompleteHabitHandler_Validation(t *testing.T) {
	f := newCompleteFixture(t, true)

	_, err := f.handler.Handle(context.Background(), CompleteHabitCommand{UserID: "user-1"})

	assert.True(t, shared.IsValidation(err))
}
