package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/habit-hero/habit-hero/internal/domain/character"
	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/internal/domain/user"
	"github.com/habit-hero/habit-hero/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE USER COMMAND
// Registers a user and gives them a fresh level 1 character.
// ══════════════════════════════════════════════════════════════════════════════

// CreateUserCommand contains the data to create a user.
type CreateUserCommand struct {
	// LongTermVision is the free-text goal behind the user's habits.
	LongTermVision string `validate:"max=4000"`
}

// CreateUserResult contains the created entities.
type CreateUserResult struct {
	User      *user.User
	Character *character.Character
}

// CreateUserHandler handles the CreateUserCommand.
type CreateUserHandler struct {
	users      user.Repository
	characters character.Repository
	ids        shared.IDGenerator
	clock      shared.Clock
	logger     *slog.Logger
}

// NewCreateUserHandler creates a new CreateUserHandler.
func NewCreateUserHandler(
	users user.Repository,
	characters character.Repository,
	ids shared.IDGenerator,
	clock shared.Clock,
	logger *slog.Logger,
) *CreateUserHandler {
	return &CreateUserHandler{
		users:      users,
		characters: characters,
		ids:        ids,
		clock:      clock,
		logger:     loggerOrDefault(logger),
	}
}

// Handle executes the create user command.
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error) {
	if err := validateCommand("user", "Create", cmd); err != nil {
		return nil, fmt.Errorf("create_user: %w", err)
	}

	u := user.New(h.ids.NewID("user"), cmd.LongTermVision, h.clock.Now())
	if err := h.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("create_user: failed to save user: %w", err)
	}

	c := character.New(u.ID)
	if err := h.characters.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("create_user: failed to save character: %w", err)
	}

	h.logger.Info("user created", logger.UserID(u.ID))

	return &CreateUserResult{User: u, Character: c}, nil
}
