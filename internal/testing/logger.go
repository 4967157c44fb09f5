package testutil

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wizzomafizzo/flatlint/internal/logging"
)

var loggerInitOnce sync.Once

// InitTestLogger points the global logger at io.Discard once per test binary.
func InitTestLogger(t *testing.T) {
	t.Helper()
	loggerInitOnce.Do(func() {
		log.Logger = zerolog.New(io.Discard)
	})
}

// NewTestContext creates a context with logger for race-safe testing
// Returns a context with logger attached and a function to retrieve log output
func NewTestContext(t *testing.T) (ctx context.Context, getLogOutput func() string) {
	t.Helper()

	output := &syncBuilder{}

	ctx, err := logging.New(context.Background(), nil, logging.Config{
		Project: "test-project",
		Writer:  output,
		Level:   zerolog.TraceLevel,
	})
	if err != nil {
		t.Fatalf("Failed to create test logger: %v", err)
	}

	return ctx, output.String
}

// syncBuilder guards the log buffer against concurrent writes and reads.
type syncBuilder struct {
	buf strings.Builder
	mu  sync.Mutex
}

func (b *syncBuilder) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p) //nolint:wrapcheck // strings.Builder never fails
}

func (b *syncBuilder) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
