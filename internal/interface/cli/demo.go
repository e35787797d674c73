package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/habit-hero/habit-hero/internal/application/command"
	"github.com/habit-hero/habit-hero/internal/application/query"
	"github.com/habit-hero/habit-hero/internal/infrastructure/identity"
	"github.com/habit-hero/habit-hero/internal/infrastructure/persistence/memory"
	"github.com/spf13/cobra"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted session against in-memory storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := NewMemoryApp(memory.NewStore(), identity.UUIDGenerator{}, identity.SystemClock{}, nil)
			return runDemo(cmd.Context(), app, cmd.OutOrStdout())
		},
	}
}

// runDemo creates a user and one habit, completes it today, logs a life
// force check and prints the resulting state.
func runDemo(ctx context.Context, app *App, w io.Writer) error {
	created, err := app.createUser().Handle(ctx, command.CreateUserCommand{
		LongTermVision: "Become the strongest, clearest version of myself.",
	})
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	userID := created.User.ID

	baseXP := 10
	h, err := app.createHabit().Handle(ctx, command.CreateHabitCommand{
		UserID:           userID,
		Name:             "Morning training",
		Cue:              "After I wake up",
		Action:           "Lift weights for 45 minutes",
		Reward:           "Feel strong and clear for the day",
		EstimatedMinutes: 45,
		BaseXP:           &baseXP,
	})
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	today := app.Clock.Now()
	completed, err := app.completeHabit().Handle(ctx, command.CompleteHabitCommand{
		UserID:  userID,
		HabitID: h.Habit.ID,
		Day:     today,
	})
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	lf, err := app.logLifeForce().Handle(ctx, command.LogLifeForceCommand{
		UserID:        userID,
		ExerciseScore: 3,
		DietScore:     2,
		Day:           today,
	})
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	list, err := app.listHabits().Handle(ctx, query.ListHabitsQuery{UserID: userID})
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	ch, err := app.Characters.GetForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	fmt.Fprintln(w, "=== Habit Hero Demo: Complete Habit Once ===")
	fmt.Fprintf(w, "User: %s\n", userID)
	fmt.Fprintf(w, "Habit: %s\n", h.Habit.Name)
	fmt.Fprintln(w, characterLine(ch))
	fmt.Fprintln(w, streakLine(completed.Streak))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Life Force logged for today: exercise=%d, diet=%d, XP awarded=%d\n",
		lf.Check.ExerciseScore, lf.Check.DietScore, lf.XPGained)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "All habits for this user:")
	printHabitList(w, list.Habits)
	return nil
}
