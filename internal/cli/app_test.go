package cli

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/flatlint/internal/config"
	"github.com/wizzomafizzo/flatlint/internal/environment"
	"github.com/wizzomafizzo/flatlint/internal/matcher"
	"github.com/wizzomafizzo/flatlint/internal/severity"
	testutil "github.com/wizzomafizzo/flatlint/internal/testing"
)

const testConfigPath = "/repo/flatlint.yml"

func setupTestApp(t *testing.T, env environment.Environment) (*App, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, config.DefaultConfig().Save(fs, testConfigPath))

	app := NewApp(AppOptions{
		FileSystem:  fs,
		Environment: env,
		ConfigPath:  testConfigPath,
		ProjectRoot: "/repo",
		WorkDir:     "/repo",
	})
	return app, fs
}

func TestResolveDefaultConfig(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.NewTestContext(t)
	app, _ := setupTestApp(t, environment.Empty())

	results, err := app.Resolve(ctx, []string{"src/index.ts", "dist/index.ts", "src/index.js"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "src/index.ts", results[0].Path)
	assert.True(t, results[0].Matched)
	assert.Equal(t, map[string]severity.Severity{
		"prettier/prettier":                  severity.Error,
		"@typescript-eslint/no-explicit-any": severity.Warn,
		"no-console":                         severity.Off,
	}, results[0].Rules)

	assert.True(t, results[1].Excluded)
	assert.Equal(t, "dist", results[1].IgnoredBy)

	assert.False(t, results[2].Matched)
	assert.Empty(t, results[2].Rules)
}

func TestResolveProductionEnvironment(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.NewTestContext(t)
	app, _ := setupTestApp(t, environment.New(map[string]string{"NODE_ENV": "production"}))

	results, err := app.Resolve(ctx, []string{"/repo/lib/util.ts"})
	require.NoError(t, err)
	assert.Equal(t, severity.Warn, results[0].Rules["no-console"])
	assert.Equal(t, "/repo/lib/util.ts", results[0].Path)
}

func TestResolveOutsideProject(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.NewTestContext(t)
	app, _ := setupTestApp(t, environment.Empty())

	results, err := app.Resolve(ctx, []string{"/elsewhere/index.ts"})
	require.NoError(t, err)
	assert.False(t, results[0].Matched)
	assert.False(t, results[0].Excluded)
}

func TestResolveRequiresPaths(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.NewTestContext(t)
	app, _ := setupTestApp(t, environment.Empty())

	_, err := app.Resolve(ctx, nil)
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.NewTestContext(t)
	app, _ := setupTestApp(t, environment.Empty())

	result, err := app.ValidateConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Configuration is valid\n", result)
}

func TestValidateConfigInvalidGlob(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.NewTestContext(t)
	app, fs := setupTestApp(t, environment.Empty())

	content := `blocks:
  - files: ["src/[ab"]
    rules:
      no-console: warn
`
	require.NoError(t, afero.WriteFile(fs, testConfigPath, []byte(content), 0o600))

	_, err := app.ValidateConfig(ctx)
	require.ErrorIs(t, err, matcher.ErrInvalidGlob)
}

func TestValidateConfigUnknownSeverity(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.NewTestContext(t)
	app, fs := setupTestApp(t, environment.Empty())

	content := `blocks:
  - files: ["**/*.ts"]
    rules:
      no-console: loud
`
	require.NoError(t, afero.WriteFile(fs, testConfigPath, []byte(content), 0o600))

	_, err := app.ValidateConfig(ctx)
	require.ErrorIs(t, err, severity.ErrUnknownSeverity)
}

func TestValidateConfigMissingFile(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.NewTestContext(t)
	app := NewApp(AppOptions{FileSystem: afero.NewMemMapFs(), ConfigPath: "/missing/flatlint.yml"})

	_, err := app.ValidateConfig(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/missing/flatlint.yml")
}

func TestPreloadedConfigSkipsFile(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.NewTestContext(t)
	app := NewApp(AppOptions{
		FileSystem: afero.NewMemMapFs(),
		Config:     config.DefaultConfig(),
		ConfigPath: "/missing/flatlint.yml",
		WorkDir:    "/missing",
	})

	results, err := app.Resolve(ctx, []string{"src/index.ts"})
	require.NoError(t, err)
	assert.True(t, results[0].Matched)
}

func TestListRules(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.NewTestContext(t)
	app, _ := setupTestApp(t, environment.Empty())

	output, err := app.ListRules(ctx, false)
	require.NoError(t, err)
	assert.Contains(t, output, "Ignored: dist, node_modules")
	assert.Contains(t, output, "[1] typescript")
	assert.Contains(t, output, "no-console: off (environment)")
	assert.Contains(t, output, "prettier/prettier: error")
}

func TestInitialize(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	app := NewApp(AppOptions{FileSystem: fs, ConfigPath: "/new/flatlint.yml"})

	written, err := app.Initialize()
	require.NoError(t, err)
	assert.True(t, written)

	cfg, err := config.LoadFromFs(fs, "/new/flatlint.yml")
	require.NoError(t, err)
	assert.Len(t, cfg.Blocks, 2)

	written, err = app.Initialize()
	require.NoError(t, err)
	assert.False(t, written, "existing config must not be overwritten")
}

func TestStatus(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.NewTestContext(t)
	app, _ := setupTestApp(t, environment.Empty())

	status, err := app.Status(ctx)
	require.NoError(t, err)
	assert.Contains(t, status, "Flatlint Status:")
	assert.Contains(t, status, "Project root: /repo")
	assert.Contains(t, status, "Config status: valid")
	assert.Contains(t, status, "Ignore patterns: 8")
	assert.Contains(t, status, "File blocks: 1")
	assert.Contains(t, status, "Environment-dependent rules: 1")
}

func TestStatusMissingConfig(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.NewTestContext(t)
	app := NewApp(AppOptions{FileSystem: afero.NewMemMapFs(), ConfigPath: "/repo/flatlint.yml"})

	status, err := app.Status(ctx)
	require.NoError(t, err)
	assert.Contains(t, status, "not found, run 'flatlint init'")
}
