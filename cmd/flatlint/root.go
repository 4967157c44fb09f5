package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/flatlint/internal/cli"
	"github.com/wizzomafizzo/flatlint/internal/config"
	"github.com/wizzomafizzo/flatlint/internal/environment"
	"github.com/wizzomafizzo/flatlint/internal/logging"
	"github.com/wizzomafizzo/flatlint/internal/project"
)

// rootOptions carries the dependencies shared by every subcommand
type rootOptions struct {
	fs afero.Fs
	// logWriter replaces the rotated log file when set.
	logWriter io.Writer
	// baseEnv is the environment --env overrides are layered over.
	baseEnv func() environment.Environment
	// state is filled in by PersistentPreRunE before any subcommand runs.
	state *invocation
}

// invocation is what the persistent flags resolved to for the running command
type invocation struct {
	// cfg is nil when the config file is missing or invalid.
	cfg        *config.Config
	configPath string
	root       string
}

// createNewRootCommand creates the main root command that shows help by default.
func createNewRootCommand() *cobra.Command {
	return newRootCommand(rootOptions{
		fs:      afero.NewOsFs(),
		baseEnv: environment.FromOS,
	})
}

func newRootCommand(opts rootOptions) *cobra.Command {
	opts.state = &invocation{}

	rootCmd := &cobra.Command{
		Use:           "flatlint",
		Short:         "Flat lint configuration resolver",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			state, err := prepareInvocation(cmd, opts.fs)
			if err != nil {
				return err
			}
			*opts.state = state

			ctx, err := initLogging(cmd, opts)
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Show help when run without subcommands
			return cmd.Help()
		},
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default: flatlint.yml in the project root)")
	rootCmd.PersistentFlags().StringArrayP("env", "e", nil, "Environment override as KEY=VALUE (repeatable)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(
		createInitCommand(opts),
		createResolveCommand(opts),
		createRulesCommand(opts),
		createStatusCommand(opts),
		createValidateCommand(opts),
	)

	return rootCmd
}

// prepareInvocation finds the project root and config path, and loads the
// config when it is present and valid.
func prepareInvocation(cmd *cobra.Command, fs afero.Fs) (invocation, error) {
	root, err := project.FindRoot()
	if err != nil {
		return invocation{}, fmt.Errorf("failed to find project root: %w", err)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return invocation{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath == "" {
		configPath, _ = project.FindConfig(fs, root)
	}

	state := invocation{configPath: configPath, root: root}
	// Load errors are reported by the subcommand that needs the config.
	if cfg, loadErr := config.LoadFromFs(fs, configPath); loadErr == nil {
		state.cfg = cfg
	}
	return state, nil
}

// initLogging attaches a logger to the command context. Logging settings
// come from the config file when it loads, and --log-level wins over them.
func initLogging(cmd *cobra.Command, opts rootOptions) (context.Context, error) {
	var settings config.LoggingConfig
	if opts.state.cfg != nil {
		settings = opts.state.cfg.Logging
	}

	levelFlag, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	if levelFlag != "" {
		settings.Level = levelFlag
	}

	level, err := logging.ParseLevel(settings.Level)
	if err != nil {
		return nil, err //nolint:wrapcheck // names the bad level
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}

	ctx, err := logging.New(parent, opts.fs, logging.Config{
		Writer:     opts.logWriter,
		Project:    opts.state.root,
		Level:      level,
		MaxSize:    settings.MaxSize,
		MaxBackups: settings.MaxBackups,
		MaxAge:     settings.MaxAge,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return ctx, nil
}

// createAppFromCommand builds a CLI app from the persistent flags
func createAppFromCommand(cmd *cobra.Command, opts rootOptions) (*cli.App, error) {
	overrides, err := cmd.Flags().GetStringArray("env")
	if err != nil {
		return nil, fmt.Errorf("failed to get env flag: %w", err)
	}
	overrideEnv, err := environment.Parse(overrides)
	if err != nil {
		return nil, fmt.Errorf("invalid --env value: %w", err)
	}
	logging.Get(cmd.Context()).Debug().Strs("env_overrides", overrideEnv.Keys()).Msg("environment prepared")

	env := overrideEnv
	if opts.baseEnv != nil {
		env = opts.baseEnv().Merge(overrideEnv)
	}

	return cli.NewApp(cli.AppOptions{
		FileSystem:  opts.fs,
		Environment: env,
		Config:      opts.state.cfg,
		ConfigPath:  opts.state.configPath,
		ProjectRoot: opts.state.root,
	}), nil
}

// colorize reports whether output should carry terminal colors
func colorize(cmd *cobra.Command) bool {
	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return false
	}
	return !noColor && !color.NoColor
}
