package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/habit-hero/habit-hero/internal/domain/character"
	"github.com/habit-hero/habit-hero/internal/domain/habit"
	"github.com/habit-hero/habit-hero/internal/domain/lifeforce"
	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET DAILY SUMMARY QUERY
// Everything a user did on one calendar day: completed habits, the life
// force check and the XP those earned, next to the current character.
// ══════════════════════════════════════════════════════════════════════════════

// GetDailySummaryQuery selects a user and a day.
type GetDailySummaryQuery struct {
	UserID string

	// Day defaults to today.
	Day time.Time
}

// Validate validates the query.
func (q GetDailySummaryQuery) Validate() error {
	if q.UserID == "" {
		return shared.WrapError("summary", "Get", shared.ErrValidation, "invalid query",
			errors.New("user_id is required"))
	}
	return nil
}

// DailySummary is the read model for one user-day.
type DailySummary struct {
	UserID string
	Day    time.Time

	Logs []*habit.Log

	// LifeForce is nil when no check was logged that day.
	LifeForce *lifeforce.Check

	HabitXP     int
	LifeForceXP int

	// Character is nil when the user has no character.
	Character *character.Character
}

// TotalXP returns all XP earned on the day.
func (s *DailySummary) TotalXP() int {
	return s.HabitXP + s.LifeForceXP
}

// CompletedCount returns the number of habits completed on the day.
func (s *DailySummary) CompletedCount() int {
	return len(s.Logs)
}

// GetDailySummaryHandler handles the GetDailySummaryQuery.
type GetDailySummaryHandler struct {
	logs       habit.LogRepository
	lifeForce  lifeforce.Repository
	characters character.Repository
	clock      shared.Clock
}

// NewGetDailySummaryHandler creates a new GetDailySummaryHandler.
func NewGetDailySummaryHandler(
	logs habit.LogRepository,
	lifeForce lifeforce.Repository,
	characters character.Repository,
	clock shared.Clock,
) *GetDailySummaryHandler {
	return &GetDailySummaryHandler{
		logs:       logs,
		lifeForce:  lifeForce,
		characters: characters,
		clock:      clock,
	}
}

// Handle executes the query. It never writes.
func (h *GetDailySummaryHandler) Handle(ctx context.Context, q GetDailySummaryQuery) (*DailySummary, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("get_daily_summary: %w", err)
	}

	day := q.Day
	if day.IsZero() {
		day = h.clock.Now().UTC()
	}
	day = timeutil.StartOfDay(day)

	summary := &DailySummary{UserID: q.UserID, Day: day}

	logs, err := h.logs.ListForDay(ctx, q.UserID, day)
	if err != nil {
		return nil, fmt.Errorf("get_daily_summary: failed to list logs: %w", err)
	}
	summary.Logs = logs
	for _, l := range logs {
		summary.HabitXP += l.XPEarned
	}

	check, err := h.lifeForce.GetForDay(ctx, q.UserID, day)
	switch {
	case err == nil:
		summary.LifeForce = check
		summary.LifeForceXP = check.XP()
	case !shared.IsNotFound(err):
		return nil, fmt.Errorf("get_daily_summary: failed to get life force: %w", err)
	}

	char, err := h.characters.GetForUser(ctx, q.UserID)
	switch {
	case err == nil:
		summary.Character = char
	case !shared.IsNotFound(err):
		return nil, fmt.Errorf("get_daily_summary: failed to get character: %w", err)
	}

	return summary, nil
}
