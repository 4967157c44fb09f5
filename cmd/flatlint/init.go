package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createInitCommand creates the init command.
func createInitCommand(opts rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Long:  "Write the default TypeScript configuration unless a config file already exists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := createAppFromCommand(cmd, opts)
			if err != nil {
				return err
			}

			written, err := app.Initialize()
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}

			configPath := opts.state.configPath
			if !written {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", configPath)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[✓] Wrote default config to %s\n", configPath)
			return nil
		},
	}
}
