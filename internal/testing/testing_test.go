package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/flatlint/internal/logging"
)

func TestNewTestContextCapturesOutput(t *testing.T) {
	t.Parallel()

	ctx, getLogOutput := NewTestContext(t)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logging.Get(ctx).Debug().Msg("concurrent entry")
		}()
	}
	wg.Wait()

	assert.Contains(t, getLogOutput(), "concurrent entry")
	assert.Contains(t, getLogOutput(), `"project":"test-project"`)
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	dir, configPath := WriteConfig(t, "blocks: []\n")

	assert.Equal(t, filepath.Join(dir, "flatlint.yml"), configPath)
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "blocks: []\n", string(data))
}

func TestVerifyNoNewLeaks(t *testing.T) {
	defer VerifyNoNewLeaks(t)()

	done := make(chan struct{})
	go func() { close(done) }()
	<-done
}
