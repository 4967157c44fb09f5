package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// createRulesCommand creates the rules listing command
func createRulesCommand(opts rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List blocks and their effective rule severities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath := opts.state.configPath

			// Check if config file exists
			if exists, _ := afero.Exists(opts.fs, configPath); !exists {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No rules found - %s does not exist\n", configPath)
				return nil
			}

			app, err := createAppFromCommand(cmd, opts)
			if err != nil {
				return err
			}

			output, err := app.ListRules(cmd.Context(), colorize(cmd))
			if err != nil {
				return fmt.Errorf("failed to list rules: %w", err)
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), output)
			return nil
		},
	}
}
