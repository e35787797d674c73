// Package cli implements the habithero command tree on cobra.
package cli

import (
	"context"
	"time"

	"github.com/habit-hero/habit-hero/internal/domain/shared"
	"github.com/habit-hero/habit-hero/pkg/timeutil"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. open supplies storage to every
// subcommand except demo, which always runs in memory.
func NewRootCmd(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "habithero",
		Short:         "Habit Hero: level up a character by keeping your habits",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newDemoCmd())
	root.AddCommand(newUserCmd(open))
	root.AddCommand(newHabitCmd(open))
	root.AddCommand(newLifeForceCmd(open))
	root.AddCommand(newSummaryCmd(open))
	root.AddCommand(newMigrateCmd(open))

	return root
}

// Execute runs the command tree with ctx and the process arguments.
func Execute(ctx context.Context, open Opener) error {
	return NewRootCmd(open).ExecuteContext(ctx)
}

// withApp opens the App for cmd, runs fn and closes it.
func withApp(cmd *cobra.Command, open Opener, opts OpenOptions, fn func(*App) error) error {
	app, err := open(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

// parseDay reads an optional --day value. Empty means today.
func parseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	day, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, shared.WrapError("cli", "ParseDay", shared.ErrInvalidFormat,
			"--day must be YYYY-MM-DD", err)
	}
	return day, nil
}
