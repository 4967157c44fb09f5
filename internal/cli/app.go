// Package cli implements the operations behind the flatlint commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/flatlint/internal/config"
	"github.com/wizzomafizzo/flatlint/internal/environment"
	"github.com/wizzomafizzo/flatlint/internal/logging"
	"github.com/wizzomafizzo/flatlint/internal/plugin"
	"github.com/wizzomafizzo/flatlint/internal/resolver"
	"github.com/wizzomafizzo/flatlint/internal/storage"
)

// AppOptions contains configuration options for creating an App
type AppOptions struct {
	FileSystem  afero.Fs
	Environment environment.Environment
	Registry    *plugin.Registry
	// Config is used instead of reading ConfigPath when set.
	Config      *config.Config
	ConfigPath  string
	ProjectRoot string
	// WorkDir resolves relative paths given on the command line. Defaults to
	// the process working directory.
	WorkDir     string
}

type App struct {
	fs          afero.Fs
	registry    *plugin.Registry
	cfg         *config.Config
	env         environment.Environment
	configPath  string
	projectRoot string
	workDir     string
}

func NewApp(opts AppOptions) *App {
	fs := opts.FileSystem
	if fs == nil {
		fs = afero.NewOsFs()
	}
	registry := opts.Registry
	if registry == nil {
		registry = plugin.Builtin()
	}
	return &App{
		fs:          fs,
		registry:    registry,
		cfg:         opts.Config,
		env:         opts.Environment,
		configPath:  opts.ConfigPath,
		projectRoot: opts.ProjectRoot,
		workDir:     opts.WorkDir,
	}
}

// LoadConfig reads and validates the configuration file, or returns the
// config the app was created with.
func (a *App) LoadConfig(ctx context.Context) (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	logging.Get(ctx).Debug().Str("config_path", a.configPath).Msg("loading config file")

	cfg, err := config.LoadFromFs(a.fs, a.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", a.configPath, err)
	}
	return cfg, nil
}

// LoadResolver loads the configuration and builds a resolver anchored at the
// directory holding the config file.
func (a *App) LoadResolver(ctx context.Context) (*resolver.Resolver, error) {
	cfg, err := a.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	r, err := resolver.New(ctx, cfg, resolver.Options{
		Environment: a.env,
		Registry:    a.registry,
		BaseDir:     a.baseDir(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}
	return r, nil
}

// Resolve resolves each path. Relative paths are taken from the work dir.
func (a *App) Resolve(ctx context.Context, paths []string) ([]resolver.Result, error) {
	if len(paths) == 0 {
		return nil, errors.New("at least one path is required")
	}

	r, err := a.LoadResolver(ctx)
	if err != nil {
		return nil, err
	}

	workDir, err := a.getWorkDir()
	if err != nil {
		return nil, err
	}

	results := make([]resolver.Result, len(paths))
	for i, path := range paths {
		absolute := path
		if !filepath.IsAbs(path) {
			absolute = filepath.Join(workDir, path)
		}
		results[i] = r.Resolve(absolute)
		results[i].Path = path
	}
	return results, nil
}

// ValidateConfig reports whether the config file loads cleanly.
func (a *App) ValidateConfig(ctx context.Context) (string, error) {
	if _, err := a.LoadResolver(ctx); err != nil {
		return "", err
	}
	return "Configuration is valid\n", nil
}

// ListRules renders the ignore set and every block's effective severities
// under the app's environment.
func (a *App) ListRules(ctx context.Context, colorize bool) (string, error) {
	r, err := a.LoadResolver(ctx)
	if err != nil {
		return "", err
	}
	return FormatBlocks(r.Ignores(), r.Blocks(), colorize), nil
}

// Initialize writes the default configuration unless a config file exists.
// It reports whether a file was written.
func (a *App) Initialize() (bool, error) {
	exists, err := afero.Exists(a.fs, a.configPath)
	if err != nil {
		return false, fmt.Errorf("failed to check config file %s: %w", a.configPath, err)
	}
	if exists {
		return false, nil
	}

	if dir := filepath.Dir(a.configPath); dir != "" {
		if err := a.fs.MkdirAll(dir, 0o750); err != nil {
			return false, fmt.Errorf("failed to create config directory %s: %w", dir, err)
		}
	}

	if err := config.DefaultConfig().Save(a.fs, a.configPath); err != nil {
		return false, fmt.Errorf("failed to write default config: %w", err)
	}
	return true, nil
}

// Status returns a summary of the configuration in use.
func (a *App) Status(ctx context.Context) (string, error) {
	var status strings.Builder

	// strings.Builder.WriteString never returns error, but satisfying linter
	writeString := func(s string) {
		_, _ = status.WriteString(s)
	}

	writeString("Flatlint Status:\n")
	writeString("================\n\n")

	if a.projectRoot != "" {
		writeString(fmt.Sprintf("Project root: %s\n", a.projectRoot))
	}

	if logPath, err := storage.New(a.fs).GetLogPath(); err == nil {
		writeString(fmt.Sprintf("Log file: %s\n", logPath))
	}

	exists, err := afero.Exists(a.fs, a.configPath)
	if err != nil {
		return "", fmt.Errorf("failed to check config file %s: %w", a.configPath, err)
	}
	if !exists {
		writeString(fmt.Sprintf("Config file: %s (not found, run 'flatlint init')\n", a.configPath))
		return status.String(), nil
	}
	writeString(fmt.Sprintf("Config file: %s\n", a.configPath))

	r, err := a.LoadResolver(ctx)
	if err != nil {
		writeString(fmt.Sprintf("Config status: invalid (%v)\n", err))
		return status.String(), nil
	}

	blocks := r.Blocks()
	conditional := 0
	for i := range blocks {
		conditional += len(blocks[i].Conditional)
	}
	writeString("Config status: valid\n")
	writeString(fmt.Sprintf("Ignore patterns: %d\n", len(r.Ignores())))
	writeString(fmt.Sprintf("File blocks: %d\n", len(blocks)))
	writeString(fmt.Sprintf("Environment-dependent rules: %d\n", conditional))

	return status.String(), nil
}

func (a *App) baseDir() string {
	dir := filepath.Dir(a.configPath)
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

func (a *App) getWorkDir() (string, error) {
	if a.workDir != "" {
		return a.workDir, nil
	}
	workDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return workDir, nil
}
