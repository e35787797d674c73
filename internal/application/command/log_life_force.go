package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/habit-hero/habit-hero/internal/domain/character"
	"github.com/habit-hero/habit-hero/internal/domain/lifeforce"
	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// LOG LIFE FORCE COMMAND
// Records the daily exercise/diet self-assessment. Scores outside [0, 3]
// are clamped, never rejected.
// ══════════════════════════════════════════════════════════════════════════════

// LogLifeForceCommand contains the data to log a life force check.
type LogLifeForceCommand struct {
	UserID        string `validate:"required"`
	ExerciseScore int
	DietScore     int

	// Day is the calendar day being assessed (defaults to today).
	Day time.Time
}

// LogLifeForceResult contains the saved check and the XP it produced.
type LogLifeForceResult struct {
	Check    *lifeforce.Check
	XPGained int

	// Character is nil when the user has no character.
	Character *character.Character
}

// LogLifeForceHandler handles the LogLifeForceCommand.
type LogLifeForceHandler struct {
	checks     lifeforce.Repository
	characters character.Repository
	ids        shared.IDGenerator
	clock      shared.Clock
	logger     *slog.Logger
}

// NewLogLifeForceHandler creates a new LogLifeForceHandler.
func NewLogLifeForceHandler(
	checks lifeforce.Repository,
	characters character.Repository,
	ids shared.IDGenerator,
	clock shared.Clock,
	logger *slog.Logger,
) *LogLifeForceHandler {
	return &LogLifeForceHandler{
		checks:     checks,
		characters: characters,
		ids:        ids,
		clock:      clock,
		logger:     loggerOrDefault(logger),
	}
}

// Handle executes the log life force command.
func (h *LogLifeForceHandler) Handle(ctx context.Context, cmd LogLifeForceCommand) (*LogLifeForceResult, error) {
	if err := validateCommand("lifeforce", "Log", cmd); err != nil {
		return nil, fmt.Errorf("log_life_force: %w", err)
	}

	day := cmd.Day
	if day.IsZero() {
		day = h.clock.Now().UTC()
	}

	check := lifeforce.NewCheck(h.ids.NewID("lf"), cmd.UserID, day, cmd.ExerciseScore, cmd.DietScore)
	if err := h.checks.Save(ctx, check); err != nil {
		return nil, fmt.Errorf("log_life_force: failed to save check: %w", err)
	}

	result := &LogLifeForceResult{Check: check, XPGained: check.XP()}
	if result.XPGained <= 0 {
		return result, nil
	}

	char, err := h.characters.GetForUser(ctx, cmd.UserID)
	if err != nil {
		if shared.IsNotFound(err) {
			h.logger.Debug("no character for user, skipping xp award", logger.UserID(cmd.UserID))
			return result, nil
		}
		return nil, fmt.Errorf("log_life_force: failed to get character: %w", err)
	}

	character.ApplyXP(char, result.XPGained)
	if err := h.characters.Save(ctx, char); err != nil {
		return nil, fmt.Errorf("log_life_force: failed to save character: %w", err)
	}
	result.Character = char

	h.logger.Info("life force logged",
		logger.UserID(cmd.UserID),
		logger.Day(check.Day),
		"exercise", check.ExerciseScore,
		"diet", check.DietScore,
		logger.XPAmount(result.XPGained),
	)

	return result, nil
}
