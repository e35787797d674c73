package cli

import (
	"github.com/habit-hero/habit-hero/internal/application/command"
	"github.com/spf13/cobra"
)

func newUserCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserCreateCmd(open))
	return cmd
}

func newUserCreateCmd(open Opener) *cobra.Command {
	var vision string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user with a level 1 character",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, open, OpenOptions{}, func(app *App) error {
				res, err := app.createUser().Handle(cmd.Context(), command.CreateUserCommand{
					LongTermVision: vision,
				})
				if err != nil {
					return err
				}
				printUserCreated(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&vision, "vision", "", "long-term vision behind your habits")
	return cmd
}
