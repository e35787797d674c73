package habit

import (
	"context"
	"time"
)

// Repository persists habits.
type Repository interface {
	// Get returns the habit or shared.ErrHabitNotFound.
	Get(ctx context.Context, habitID string) (*Habit, error)

	// ListForUser returns the user's active habits. Never nil on success.
	ListForUser(ctx context.Context, userID string) ([]*Habit, error)

	// Save creates or replaces a habit.
	Save(ctx context.Context, h *Habit) error
}

// LogRepository persists completion logs.
type LogRepository interface {
	// ListForDay returns the user's logs for a calendar day.
	ListForDay(ctx context.Context, userID string, day time.Time) ([]*Log, error)

	// Save creates or replaces a log by ID.
	Save(ctx context.Context, l *Log) error
}

// StreakRepository persists one streak per (user, habit).
type StreakRepository interface {
	// Get returns the streak or shared.ErrStreakNotFound.
	Get(ctx context.Context, userID, habitID string) (*StreakState, error)

	// Save creates or replaces the streak.
	Save(ctx context.Context, s *StreakState) error
}
