package commands

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"costestimator/collections"
)

// NewSeedCommand returns the "seed" subcommand, which creates the demo
// estimate for an existing user.
func NewSeedCommand(app core.App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Creates the demo estimate for a user",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			collections.Setup(app)

			user, err := app.FindAuthRecordByEmail("users", email)
			if err != nil {
				return fmt.Errorf("no user with email %q", email)
			}

			project, err := collections.SeedDemoProject(app, user.Id)
			if err != nil {
				return fmt.Errorf("seed demo project: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", project.GetString("project_name"), project.Id)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the user who will own the demo project")
	cmd.MarkFlagRequired("email")

	return cmd
}
