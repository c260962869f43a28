package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	provisioningController "ecclesia_backend/internals/features/churches/provisioning/controller"
	provisioningService "ecclesia_backend/internals/features/churches/provisioning/service"
	"ecclesia_backend/internals/helpers/oss"
)

// NewResetSystemCommand wipes every tenant table. Plans and superadmins stay.
func NewResetSystemCommand(opts *RootOptions) *cobra.Command {
	var confirm string
	cmd := &cobra.Command{
		Use:   "reset-system",
		Short: "Delete all church data (requires --confirm with the reset phrase)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !provisioningController.ConfirmPhraseMatches(confirm, opts.Config.SystemResetPhrase) {
				return errors.New("confirmation phrase does not match SYSTEM_RESET_PHRASE")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()

			keys, err := provisioningService.SystemReset(ctx, opts.OpenDB())
			if err != nil {
				return fmt.Errorf("reset-system: %w", err)
			}
			store := oss.NewBlobStore(oss.Config{
				Endpoint:   opts.Config.OSSEndpoint,
				AccessKey:  opts.Config.OSSAccessKey,
				SecretKey:  opts.Config.OSSSecretKey,
				Bucket:     opts.Config.OSSBucket,
				PublicBase: opts.Config.OSSPublicBase,
			})
			failed := 0
			for _, k := range keys {
				if err := store.DeleteObject(ctx, k); err != nil {
					failed++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "system reset done: %d documents removed, %d left in storage\n", len(keys)-failed, failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&confirm, "confirm", "", "the configured reset phrase")
	return cmd
}
