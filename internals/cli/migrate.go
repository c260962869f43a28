package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	database "ecclesia_backend/internals/databases"
	"ecclesia_backend/internals/seeds"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	var withSeeds bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db := opts.OpenDB()
			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if withSeeds {
				if err := seeds.RunAllSeeds(db, ""); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration complete")
			return nil
		},
	}
	cmd.Flags().BoolVar(&withSeeds, "seed", false, "also seed the default plans")
	return cmd
}

func NewSeedPlansCommand(opts *RootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed-plans",
		Short: "Upsert subscription plans (defaults, or --file plans.json)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := seeds.RunAllSeeds(opts.OpenDB(), file); err != nil {
				return fmt.Errorf("seed-plans: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "plans seeded")
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file with plan seeds")
	return cmd
}
