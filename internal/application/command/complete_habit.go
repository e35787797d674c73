package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/habit-hero/habit-hero/internal/domain/character"
	"github.com/habit-hero/habit-hero/internal/domain/habit"
	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/pkg/logger"
	"github.com/habit-hero/habit-hero/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE HABIT COMMAND
// Marks a habit done for a day: updates the streak, awards XP to the
// character and writes the day's log.
// ══════════════════════════════════════════════════════════════════════════════

// CompleteHabitCommand contains the data to complete a habit.
type CompleteHabitCommand struct {
	UserID  string `validate:"required"`
	HabitID string `validate:"required"`

	// Day is the calendar day of the completion (defaults to today).
	Day time.Time
}

// CompleteHabitResult describes what the completion changed.
type CompleteHabitResult struct {
	Log    *habit.Log
	Streak *habit.StreakState

	// Character is nil when the user has no character.
	Character *character.Character

	// LevelsGained is how many levels the completion granted.
	LevelsGained int
}

// CompleteHabitHandler handles the CompleteHabitCommand.
type CompleteHabitHandler struct {
	habits     habit.Repository
	logs       habit.LogRepository
	streaks    habit.StreakRepository
	characters character.Repository
	clock      shared.Clock
	logger     *slog.Logger
}

// NewCompleteHabitHandler creates a new CompleteHabitHandler.
func NewCompleteHabitHandler(
	habits habit.Repository,
	logs habit.LogRepository,
	streaks habit.StreakRepository,
	characters character.Repository,
	clock shared.Clock,
	logger *slog.Logger,
) *CompleteHabitHandler {
	return &CompleteHabitHandler{
		habits:     habits,
		logs:       logs,
		streaks:    streaks,
		characters: characters,
		clock:      clock,
		logger:     loggerOrDefault(logger),
	}
}

// Handle executes the complete habit command.
// A missing habit, or one owned by another user, yields shared.ErrHabitNotFound
// and nothing is written.
func (h *CompleteHabitHandler) Handle(ctx context.Context, cmd CompleteHabitCommand) (*CompleteHabitResult, error) {
	if err := validateCommand("habit", "Complete", cmd); err != nil {
		return nil, fmt.Errorf("complete_habit: %w", err)
	}

	now := h.clock.Now().UTC()
	day := cmd.Day
	if day.IsZero() {
		day = now
	}
	day = timeutil.StartOfDay(day)

	hb, err := h.habits.Get(ctx, cmd.HabitID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrHabitNotFound
		}
		return nil, fmt.Errorf("complete_habit: failed to get habit: %w", err)
	}
	if !hb.BelongsTo(cmd.UserID) {
		return nil, shared.ErrHabitNotFound
	}

	existing, err := h.streaks.Get(ctx, cmd.UserID, cmd.HabitID)
	if err != nil {
		if !shared.IsNotFound(err) {
			return nil, fmt.Errorf("complete_habit: failed to get streak: %w", err)
		}
		existing = nil
	}

	streak := habit.CalculateNewStreak(existing, hb, day)
	xp := habit.XPGain(hb, streak)

	log := &habit.Log{
		ID:          habit.LogID(hb.ID, day),
		UserID:      cmd.UserID,
		HabitID:     hb.ID,
		Day:         day,
		CompletedAt: now,
		XPEarned:    xp,
	}

	result := &CompleteHabitResult{Log: log, Streak: streak}

	char, err := h.characters.GetForUser(ctx, cmd.UserID)
	switch {
	case err == nil:
		levelBefore := char.Level
		character.ApplyXP(char, xp)
		if err := h.characters.Save(ctx, char); err != nil {
			return nil, fmt.Errorf("complete_habit: failed to save character: %w", err)
		}
		result.Character = char
		result.LevelsGained = char.Level - levelBefore
	case shared.IsNotFound(err):
		h.logger.Debug("no character for user, skipping xp award", logger.UserID(cmd.UserID))
	default:
		return nil, fmt.Errorf("complete_habit: failed to get character: %w", err)
	}

	if err := h.streaks.Save(ctx, streak); err != nil {
		return nil, fmt.Errorf("complete_habit: failed to save streak: %w", err)
	}
	if err := h.logs.Save(ctx, log); err != nil {
		return nil, fmt.Errorf("complete_habit: failed to save log: %w", err)
	}

	h.logger.Info("habit completed",
		logger.UserID(cmd.UserID),
		logger.HabitID(hb.ID),
		logger.Day(day),
		"streak", streak.CurrentStreak,
		logger.XPAmount(xp),
	)
	if result.LevelsGained > 0 {
		h.logger.Info("character leveled up",
			logger.UserID(cmd.UserID),
			logger.Level(result.Character.Level),
			"levels_gained", result.LevelsGained,
		)
	}

	return result, nil
}
