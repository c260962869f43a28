package cli

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"ecclesia_backend/internals/configs"
)

// RootOptions holds what every admin command shares.
type RootOptions struct {
	// OpenDB connects lazily so --help never touches the database.
	OpenDB func() *gorm.DB
	Config *configs.Config
}

func NewRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "admin",
		Short:        "Ecclesia maintenance commands",
		SilenceUsage: true,
	}

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedPlansCommand(opts))
	cmd.AddCommand(NewCreateSuperadminCommand(opts))
	cmd.AddCommand(NewResetSystemCommand(opts))
	return cmd
}
