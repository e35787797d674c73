package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/habit-hero/habit-hero/internal/domain/habit"
	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// HABIT REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// HabitRepository implements habit.Repository for PostgreSQL.
type HabitRepository struct {
	conn *Connection
}

// NewHabitRepository creates a new HabitRepository.
func NewHabitRepository(conn *Connection) *HabitRepository {
	return &HabitRepository{conn: conn}
}

const habitColumns = `id, user_id, name, cue, action, reward, estimated_minutes,
	base_xp, is_bad_habit, COALESCE(replaces_habit_id, ''), active`

// Get returns a habit by ID.
func (r *HabitRepository) Get(ctx context.Context, habitID string) (*habit.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`

	h, err := scanHabit(r.conn.QueryRow(ctx, query, habitID))
	if IsNoRows(err) {
		return nil, shared.ErrHabitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}
	return h, nil
}

// ListForUser returns the user's active habits in creation order.
func (r *HabitRepository) ListForUser(ctx context.Context, userID string) ([]*habit.Habit, error) {
	query := `SELECT ` + habitColumns + `
		FROM habits
		WHERE user_id = $1 AND active
		ORDER BY created_at, id`

	rows, err := r.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	habits := make([]*habit.Habit, 0)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// Save inserts or replaces a habit. created_at is kept from the first insert.
func (r *HabitRepository) Save(ctx context.Context, h *habit.Habit) error {
	query := `
		INSERT INTO habits (
			id, user_id, name, cue, action, reward, estimated_minutes,
			base_xp, is_bad_habit, replaces_habit_id, active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			name = EXCLUDED.name,
			cue = EXCLUDED.cue,
			action = EXCLUDED.action,
			reward = EXCLUDED.reward,
			estimated_minutes = EXCLUDED.estimated_minutes,
			base_xp = EXCLUDED.base_xp,
			is_bad_habit = EXCLUDED.is_bad_habit,
			replaces_habit_id = EXCLUDED.replaces_habit_id,
			active = EXCLUDED.active
	`

	_, err := r.conn.Exec(ctx, query,
		h.ID,
		h.UserID,
		h.Name,
		h.Cue,
		h.Action,
		h.Reward,
		h.EstimatedMinutes,
		h.BaseXP,
		h.IsBadHabit,
		h.ReplacesHabitID,
		h.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}
	return nil
}

func scanHabit(row pgx.Row) (*habit.Habit, error) {
	var h habit.Habit
	err := row.Scan(
		&h.ID,
		&h.UserID,
		&h.Name,
		&h.Cue,
		&h.Action,
		&h.Reward,
		&h.EstimatedMinutes,
		&h.BaseXP,
		&h.IsBadHabit,
		&h.ReplacesHabitID,
		&h.Active,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HABIT LOG REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// HabitLogRepository implements habit.LogRepository for PostgreSQL.
type HabitLogRepository struct {
	conn *Connection
}

// NewHabitLogRepository creates a new HabitLogRepository.
func NewHabitLogRepository(conn *Connection) *HabitLogRepository {
	return &HabitLogRepository{conn: conn}
}

// ListForDay returns the user's logs for a day ordered by completion time.
func (r *HabitLogRepository) ListForDay(ctx context.Context, userID string, day time.Time) ([]*habit.Log, error) {
	query := `
		SELECT id, user_id, habit_id, day, completed_at, xp_earned
		FROM habit_logs
		WHERE user_id = $1 AND day = $2
		ORDER BY completed_at, id
	`

	rows, err := r.conn.Query(ctx, query, userID, timeutil.StartOfDay(day))
	if err != nil {
		return nil, fmt.Errorf("failed to list habit logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*habit.Log, 0)
	for rows.Next() {
		var l habit.Log
		if err := rows.Scan(&l.ID, &l.UserID, &l.HabitID, &l.Day, &l.CompletedAt, &l.XPEarned); err != nil {
			return nil, fmt.Errorf("failed to scan habit log: %w", err)
		}
		l.Day = timeutil.StartOfDay(l.Day)
		l.CompletedAt = l.CompletedAt.UTC()
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

// Save inserts or replaces a log by ID.
func (r *HabitLogRepository) Save(ctx context.Context, l *habit.Log) error {
	query := `
		INSERT INTO habit_logs (id, user_id, habit_id, day, completed_at, xp_earned)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			habit_id = EXCLUDED.habit_id,
			day = EXCLUDED.day,
			completed_at = EXCLUDED.completed_at,
			xp_earned = EXCLUDED.xp_earned
	`

	_, err := r.conn.Exec(ctx, query, l.ID, l.UserID, l.HabitID, timeutil.StartOfDay(l.Day), l.CompletedAt, l.XPEarned)
	if err != nil {
		return fmt.Errorf("failed to save habit log: %w", err)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STREAK REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// StreakRepository implements habit.StreakRepository for PostgreSQL.
type StreakRepository struct {
	conn *Connection
}

// NewStreakRepository creates a new StreakRepository.
func NewStreakRepository(conn *Connection) *StreakRepository {
	return &StreakRepository{conn: conn}
}

// Get returns the streak for (user, habit).
func (r *StreakRepository) Get(ctx context.Context, userID, habitID string) (*habit.StreakState, error) {
	query := `
		SELECT user_id, habit_id, current_streak, longest_streak, last_completed_day
		FROM habit_streaks
		WHERE user_id = $1 AND habit_id = $2
	`

	var (
		s    habit.StreakState
		last *time.Time
	)
	err := r.conn.QueryRow(ctx, query, userID, habitID).Scan(
		&s.UserID, &s.HabitID, &s.CurrentStreak, &s.LongestStreak, &last,
	)
	if IsNoRows(err) {
		return nil, shared.ErrStreakNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}

	if last != nil {
		s.LastCompletedDay = timeutil.StartOfDay(*last)
	}
	return &s, nil
}

// Save inserts or replaces the streak for (user, habit).
func (r *StreakRepository) Save(ctx context.Context, s *habit.StreakState) error {
	query := `
		INSERT INTO habit_streaks (user_id, habit_id, current_streak, longest_streak, last_completed_day)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, habit_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_completed_day = EXCLUDED.last_completed_day
	`

	var last *time.Time
	if s.HasLastCompletedDay() {
		day := timeutil.StartOfDay(s.LastCompletedDay)
		last = &day
	}

	if _, err := r.conn.Exec(ctx, query, s.UserID, s.HabitID, s.CurrentStreak, s.LongestStreak, last); err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}
	return nil
}
