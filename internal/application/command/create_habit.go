package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/habit-hero/habit-hero/internal/domain/habit"
	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE HABIT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// CreateHabitCommand contains the data to create a habit.
type CreateHabitCommand struct {
	UserID           string `validate:"required"`
	Name             string `validate:"required,max=200"`
	Cue              string
	Action           string
	Reward           string
	EstimatedMinutes int `validate:"min=0"`

	// BaseXP overrides the value derived from EstimatedMinutes when set.
	BaseXP *int `validate:"omitempty,min=0"`

	IsBadHabit      bool
	ReplacesHabitID string
}

// CreateHabitResult contains the created habit.
type CreateHabitResult struct {
	Habit *habit.Habit
}

// CreateHabitHandler handles the CreateHabitCommand.
type CreateHabitHandler struct {
	habits habit.Repository
	ids    shared.IDGenerator
	logger *slog.Logger
}

// NewCreateHabitHandler creates a new CreateHabitHandler.
func NewCreateHabitHandler(habits habit.Repository, ids shared.IDGenerator, logger *slog.Logger) *CreateHabitHandler {
	return &CreateHabitHandler{
		habits: habits,
		ids:    ids,
		logger: loggerOrDefault(logger),
	}
}

// Handle executes the create habit command.
func (h *CreateHabitHandler) Handle(ctx context.Context, cmd CreateHabitCommand) (*CreateHabitResult, error) {
	if err := validateCommand("habit", "Create", cmd); err != nil {
		return nil, fmt.Errorf("create_habit: %w", err)
	}

	baseXP := habit.DefaultBaseXP(cmd.EstimatedMinutes)
	if cmd.BaseXP != nil {
		baseXP = *cmd.BaseXP
	}

	hb := &habit.Habit{
		ID:               h.ids.NewID("habit"),
		UserID:           cmd.UserID,
		Name:             strings.TrimSpace(cmd.Name),
		Cue:              cmd.Cue,
		Action:           cmd.Action,
		Reward:           cmd.Reward,
		EstimatedMinutes: cmd.EstimatedMinutes,
		BaseXP:           baseXP,
		IsBadHabit:       cmd.IsBadHabit,
		ReplacesHabitID:  cmd.ReplacesHabitID,
		Active:           true,
	}

	if err := h.habits.Save(ctx, hb); err != nil {
		return nil, fmt.Errorf("create_habit: failed to save habit: %w", err)
	}

	h.logger.Info("habit created",
		logger.UserID(hb.UserID),
		logger.HabitID(hb.ID),
		"base_xp", hb.BaseXP,
	)

	return &CreateHabitResult{Habit: hb}, nil
}
