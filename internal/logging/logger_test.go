package logging

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestConfig(writer *strings.Builder) Config {
	return Config{
		Writer:  writer,
		Project: "test-project",
		Level:   InfoLevel,
	}
}

func TestGet_WithoutLogger(t *testing.T) {
	t.Parallel()

	logger := Get(context.Background())

	require.NotNil(t, logger)
	// When no logger is attached, zerolog.Ctx returns a disabled logger
	require.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNew_WithCustomWriter(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	ctx, err := New(context.Background(), nil, createTestConfig(&buf))

	require.NoError(t, err)
	logger := Get(ctx)
	assert.Equal(t, InfoLevel, logger.GetLevel())

	logger.Info().Str("path", "src/index.ts").Msg("resolved")
	logger.Debug().Msg("filtered out")

	output := buf.String()
	assert.Contains(t, output, `"project":"test-project"`)
	assert.Contains(t, output, `"path":"src/index.ts"`)
	assert.NotContains(t, output, "filtered out")
}

func TestNew_NoWriterNoFilesystem_ReturnsError(t *testing.T) {
	t.Parallel()

	ctx, err := New(context.Background(), nil, Config{Level: InfoLevel})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "filesystem required when no writer provided")
	assert.Nil(t, ctx)
}

func TestNew_FileWriterOnMemoryFs(t *testing.T) {
	t.Parallel()

	ctx, err := New(context.Background(), afero.NewMemMapFs(), Config{Level: WarnLevel})

	require.NoError(t, err)
	assert.Equal(t, WarnLevel, Get(ctx).GetLevel())
}

func TestNew_UnwritableFilesystem(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), afero.NewReadOnlyFs(afero.NewMemMapFs()), Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get log path")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
		wantErr  bool
	}{
		{"", InfoLevel, false},
		{"debug", DebugLevel, false},
		{"WARN", WarnLevel, false},
		{" trace ", TraceLevel, false},
		{"loud", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestOrDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, orDefault(0, 10))
	assert.Equal(t, 5, orDefault(5, 10))
	assert.Equal(t, 10, orDefault(-1, 10))
}
