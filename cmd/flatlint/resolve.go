package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/flatlint/internal/cli"
)

// createResolveCommand creates the resolve command.
func createResolveCommand(opts rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve PATH...",
		Short: "Show the rules that apply to each path",
		Long: "Show whether each path is excluded, which block applies to it and the " +
			"severity of every rule in that block under the current environment",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := createAppFromCommand(cmd, opts)
			if err != nil {
				return err
			}

			results, err := app.Resolve(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("failed to resolve paths: %w", err)
			}

			if enabled, _ := cmd.Flags().GetBool("enabled"); enabled {
				results = cli.EnabledOnly(results)
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				output, err := cli.FormatResultsJSON(results)
				if err != nil {
					return err //nolint:wrapcheck // already wrapped
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), output)
				return nil
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), cli.FormatResults(results, colorize(cmd)))
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Output results as JSON")
	cmd.Flags().Bool("enabled", false, "Only show rules that are not off")

	return cmd
}
