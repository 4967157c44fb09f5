package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createStatusCommand creates the status command.
func createStatusCommand(opts rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration status",
		Long:  "Show configuration status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := createAppFromCommand(cmd, opts)
			if err != nil {
				return err
			}

			status, err := app.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), status)
			return nil
		},
	}
}
