package cli

import (
	"github.com/habit-hero/habit-hero/internal/application/command"
	"github.com/habit-hero/habit-hero/internal/application/query"
	"github.com/spf13/cobra"
)

func newHabitCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Create, list and complete habits",
	}
	cmd.AddCommand(newHabitCreateCmd(open))
	cmd.AddCommand(newHabitListCmd(open))
	cmd.AddCommand(newHabitCompleteCmd(open))
	return cmd
}

func newHabitCreateCmd(open Opener) *cobra.Command {
	var (
		userID   string
		name     string
		cue      string
		action   string
		reward   string
		minutes  int
		baseXP   int
		bad      bool
		replaces string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a habit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := command.CreateHabitCommand{
				UserID:           userID,
				Name:             name,
				Cue:              cue,
				Action:           action,
				Reward:           reward,
				EstimatedMinutes: minutes,
				IsBadHabit:       bad,
				ReplacesHabitID:  replaces,
			}
			if cmd.Flags().Changed("base-xp") {
				c.BaseXP = &baseXP
			}

			return withApp(cmd, open, OpenOptions{}, func(app *App) error {
				res, err := app.createHabit().Handle(cmd.Context(), c)
				if err != nil {
					return err
				}
				printHabitCreated(cmd.OutOrStdout(), res.Habit)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&userID, "user", "", "owner user ID")
	f.StringVar(&name, "name", "", "habit name")
	f.StringVar(&cue, "cue", "", "what triggers the habit")
	f.StringVar(&action, "action", "", "what you do")
	f.StringVar(&reward, "reward", "", "what you get out of it")
	f.IntVar(&minutes, "minutes", 0, "estimated minutes per completion")
	f.IntVar(&baseXP, "base-xp", 0, "XP per completion (derived from --minutes when omitted)")
	f.BoolVar(&bad, "bad", false, "mark as a bad habit")
	f.StringVar(&replaces, "replaces", "", "ID of the habit this one replaces")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newHabitListCmd(open Opener) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's active habits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, open, OpenOptions{}, func(app *App) error {
				res, err := app.listHabits().Handle(cmd.Context(), query.ListHabitsQuery{UserID: userID})
				if err != nil {
					return err
				}
				printHabitList(cmd.OutOrStdout(), res.Habits)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owner user ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newHabitCompleteCmd(open Opener) *cobra.Command {
	var userID, habitID, day string

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Mark a habit done for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDay(day)
			if err != nil {
				return err
			}
			return withApp(cmd, open, OpenOptions{}, func(app *App) error {
				res, err := app.completeHabit().Handle(cmd.Context(), command.CompleteHabitCommand{
					UserID:  userID,
					HabitID: habitID,
					Day:     d,
				})
				if err != nil {
					return err
				}
				printCompletion(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&userID, "user", "", "owner user ID")
	f.StringVar(&habitID, "habit", "", "habit ID")
	f.StringVar(&day, "day", "", "completion day as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("habit")
	return cmd
}
