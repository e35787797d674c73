// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/habit-hero/habit-hero/internal/domain/habit"
	"github.com/habit-hero/habit-hero/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST HABITS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListHabitsQuery selects the habits of one user.
type ListHabitsQuery struct {
	UserID string
}

// Validate validates the query.
func (q ListHabitsQuery) Validate() error {
	if q.UserID == "" {
		return shared.WrapError("habit", "List", shared.ErrValidation, "invalid query",
			errors.New("user_id is required"))
	}
	return nil
}

// ListHabitsResult contains the user's habits in repository order.
type ListHabitsResult struct {
	Habits []*habit.Habit
}

// ListHabitsHandler handles the ListHabitsQuery.
type ListHabitsHandler struct {
	habits habit.Repository
}

// NewListHabitsHandler creates a new ListHabitsHandler.
func NewListHabitsHandler(habits habit.Repository) *ListHabitsHandler {
	return &ListHabitsHandler{habits: habits}
}

// Handle executes the query.
func (h *ListHabitsHandler) Handle(ctx context.Context, q ListHabitsQuery) (*ListHabitsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("list_habits: %w", err)
	}

	habits, err := h.habits.ListForUser(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("list_habits: failed to list habits: %w", err)
	}
	if habits == nil {
		habits = []*habit.Habit{}
	}

	return &ListHabitsResult{Habits: habits}, nil
}
