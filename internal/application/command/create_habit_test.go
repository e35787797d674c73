package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/internal/infrastructure/persistence/memory"
)

func intPtr(v int) *int { return &v }

func TestCreateHabitHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		minutes    int
		baseXP     *int
		wantBaseXP int
	}{
		{"derived from minutes", 30, nil, 15},
		{"derived minimum", 0, nil, 5},
		{"derived maximum", 500, nil, 50},
		{"explicit", 30, intPtr(42), 42},
		{"explicit zero", 30, intPtr(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := memory.NewStore()
			h := NewCreateHabitHandler(store.Habits, &sequentialIDs{}, discardLogger())

			res, err := h.Handle(ctx, CreateHabitCommand{
				UserID:           "user-1",
				Name:             "Morning pages",
				Cue:              "coffee",
				Action:           "write 3 pages",
				Reward:           "walk",
				EstimatedMinutes: tt.minutes,
				BaseXP:           tt.baseXP,
			})
			require.NoError(t, err)

			assert.Equal(t, "habit-1", res.Habit.ID)
			assert.Equal(t, tt.wantBaseXP, res.Habit.BaseXP)
			assert.True(t, res.Habit.Active)

			stored, err := store.Habits.Get(ctx, "habit-1")
			require.NoError(t, err)
			assert.Equal(t, res.Habit, stored)
		})
	}
}

func TestCreateHabitHandler_Replacement(t *testing.T) {
	store := memory.NewStore()
	h := NewCreateHabitHandler(store.Habits, &sequentialIDs{}, discardLogger())

	res, err := h.Handle(context.Background(), CreateHabitCommand{
		UserID:          "user-1",
		Name:            "Chew gum",
		IsBadHabit:      false,
		ReplacesHabitID: "habit-smoking",
	})
	require.NoError(t, err)
	assert.Equal(t, "habit-smoking", res.Habit.ReplacesHabitID)
}

func TestCreateHabitHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreateHabitCommand
	}{
		{"missing user", CreateHabitCommand{Name: "Read"}},
		{"missing name", CreateHabitCommand{UserID: "user-1"}},
		{"negative minutes", CreateHabitCommand{UserID: "user-1", Name: "Read", EstimatedMinutes: -1}},
		{"negative base xp", CreateHabitCommand{UserID: "user-1", Name: "Read", BaseXP: intPtr(-5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			h := NewCreateHabitHandler(store.Habits, &sequentialIDs{}, discardLogger())

			_, err := h.Handle(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrValidation)

			habits, err := store.Habits.ListForUser(context.Background(), "user-1")
			require.NoError(t, err)
			assert.Empty(t, habits)
		})
	}
}
