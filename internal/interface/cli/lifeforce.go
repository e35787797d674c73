package cli

import (
	"github.com/habit-hero/habit-hero/internal/application/command"
	"github.com/habit-hero/habit-hero/internal/application/query"
	"github.com/spf13/cobra"
)

func newLifeForceCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lifeforce",
		Aliases: []string{"lf"},
		Short:   "Daily exercise and diet check",
	}
	cmd.AddCommand(newLifeForceLogCmd(open))
	return cmd
}

func newLifeForceLogCmd(open Opener) *cobra.Command {
	var (
		userID   string
		exercise int
		diet     int
		day      string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log exercise and diet scores (0-3 each)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDay(day)
			if err != nil {
				return err
			}
			return withApp(cmd, open, OpenOptions{}, func(app *App) error {
				res, err := app.logLifeForce().Handle(cmd.Context(), command.LogLifeForceCommand{
					UserID:        userID,
					ExerciseScore: exercise,
					DietScore:     diet,
					Day:           d,
				})
				if err != nil {
					return err
				}
				printLifeForce(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&userID, "user", "", "user ID")
	f.IntVar(&exercise, "exercise", 0, "exercise score, clamped to 0-3")
	f.IntVar(&diet, "diet", 0, "diet score, clamped to 0-3")
	f.StringVar(&day, "day", "", "day as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newSummaryCmd(open Opener) *cobra.Command {
	var userID, day string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show what a user earned on a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDay(day)
			if err != nil {
				return err
			}
			return withApp(cmd, open, OpenOptions{}, func(app *App) error {
				s, err := app.dailySummary().Handle(cmd.Context(), query.GetDailySummaryQuery{
					UserID: userID,
					Day:    d,
				})
				if err != nil {
					return err
				}
				printSummary(cmd.OutOrStdout(), s)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID")
	cmd.Flags().StringVar(&day, "day", "", "day as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
