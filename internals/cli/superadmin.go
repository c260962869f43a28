package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ecclesia_backend/internals/seeds/users"
)

func NewCreateSuperadminCommand(opts *RootOptions) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "create-superadmin",
		Short: "Create the platform owner account (or promote an existing one)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("SUPERADMIN_PASSWORD")
			}
			if email == "" {
				return errors.New("--email is required")
			}
			created, err := users.EnsureSuperadmin(opts.OpenDB(), name, email, password)
			if err != nil {
				return fmt.Errorf("create-superadmin: %w", err)
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "superadmin %s created\n", email)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "user %s promoted to superadmin\n", email)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "superadmin", "user name")
	cmd.Flags().StringVar(&email, "email", "", "login e-mail")
	cmd.Flags().StringVar(&password, "password", "", "password (default $SUPERADMIN_PASSWORD)")
	return cmd
}
