package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wizzomafizzo/flatlint/internal/constants"
)

// WriteConfig writes content as the project config file in a fresh temp
// directory and returns the directory and config path.
func WriteConfig(t *testing.T, content string) (dir, configPath string) {
	t.Helper()

	dir = t.TempDir()
	configPath = filepath.Join(dir, constants.ConfigFilename)
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return dir, configPath
}
