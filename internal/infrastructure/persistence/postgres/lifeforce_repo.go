package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/habit-hero/habit-hero/internal/domain/focus"
	"github.com/habit-hero/habit-hero/internal/domain/lifeforce"
	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIFE FORCE REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// LifeForceRepository implements lifeforce.Repository for PostgreSQL.
type LifeForceRepository struct {
	conn *Connection
}

// NewLifeForceRepository creates a new LifeForceRepository.
func NewLifeForceRepository(conn *Connection) *LifeForceRepository {
	return &LifeForceRepository{conn: conn}
}

// GetForDay returns the user's check for a day.
func (r *LifeForceRepository) GetForDay(ctx context.Context, userID string, day time.Time) (*lifeforce.Check, error) {
	query := `
		SELECT id, user_id, day, exercise_score, diet_score
		FROM life_force_checks
		WHERE user_id = $1 AND day = $2
	`

	var c lifeforce.Check
	err := r.conn.QueryRow(ctx, query, userID, timeutil.StartOfDay(day)).Scan(
		&c.ID, &c.UserID, &c.Day, &c.ExerciseScore, &c.DietScore,
	)
	if IsNoRows(err) {
		return nil, shared.ErrLifeForceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get life force check: %w", err)
	}

	c.Day = timeutil.StartOfDay(c.Day)
	return &c, nil
}

// Save inserts the check, replacing any earlier check for the same day.
func (r *LifeForceRepository) Save(ctx context.Context, c *lifeforce.Check) error {
	query := `
		INSERT INTO life_force_checks (id, user_id, day, exercise_score, diet_score)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, day) DO UPDATE SET
			id = EXCLUDED.id,
			exercise_score = EXCLUDED.exercise_score,
			diet_score = EXCLUDED.diet_score
	`

	_, err := r.conn.Exec(ctx, query, c.ID, c.UserID, timeutil.StartOfDay(c.Day), c.ExerciseScore, c.DietScore)
	if err != nil {
		return fmt.Errorf("failed to save life force check: %w", err)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// FOCUS SESSION REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// FocusSessionRepository implements focus.Repository for PostgreSQL.
type FocusSessionRepository struct {
	conn *Connection
}

// NewFocusSessionRepository creates a new FocusSessionRepository.
func NewFocusSessionRepository(conn *Connection) *FocusSessionRepository {
	return &FocusSessionRepository{conn: conn}
}

// Get returns a focus session by ID.
func (r *FocusSessionRepository) Get(ctx context.Context, sessionID string) (*focus.Session, error) {
	query := `
		SELECT id, user_id, duration_minutes, started_at, completed_at, xp_earned
		FROM focus_sessions
		WHERE id = $1
	`

	var s focus.Session
	err := r.conn.QueryRow(ctx, query, sessionID).Scan(
		&s.ID, &s.UserID, &s.DurationMinutes, &s.StartedAt, &s.CompletedAt, &s.XPEarned,
	)
	if IsNoRows(err) {
		return nil, shared.ErrFocusSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get focus session: %w", err)
	}
	return &s, nil
}

// Save inserts or replaces a focus session.
func (r *FocusSessionRepository) Save(ctx context.Context, s *focus.Session) error {
	query := `
		INSERT INTO focus_sessions (id, user_id, duration_minutes, started_at, completed_at, xp_earned)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			duration_minutes = EXCLUDED.duration_minutes,
			started_at = EXCLUDED.started_at,
			completed_at = EXCLUDED.completed_at,
			xp_earned = EXCLUDED.xp_earned
	`

	_, err := r.conn.Exec(ctx, query, s.ID, s.UserID, s.DurationMinutes, s.StartedAt, s.CompletedAt, s.XPEarned)
	if err != nil {
		return fmt.Errorf("failed to save focus session: %w", err)
	}
	return nil
}
