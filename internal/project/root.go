// Package project provides utilities for detecting project root directories
// and the configuration file inside them.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/flatlint/internal/constants"
)

var markers = []string{constants.ConfigFilename, ".git", "go.mod", "package.json"}

// FindRoot finds the project root directory.
func FindRoot() (string, error) {
	fs := afero.NewOsFs()

	if root, found := checkProjectDirEnv(fs); found {
		return root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	if root, found := FindProjectMarkerFrom(fs, cwd); found {
		return root, nil
	}

	// Fall back to current working directory
	return cwd, nil
}

// FindProjectMarkerFrom walks up from startDir looking for a project marker.
func FindProjectMarkerFrom(fs afero.Fs, startDir string) (string, bool) {
	currentDir := startDir

	for {
		if hasProjectMarker(fs, currentDir) {
			return currentDir, true
		}

		parentDir := filepath.Dir(currentDir)

		// Stop if we've reached the filesystem root
		if parentDir == currentDir {
			break
		}

		currentDir = parentDir
	}

	return "", false
}

// FindConfig returns the config file in root, preferring ConfigFilename over
// the alternates. The second result is false when none exists.
func FindConfig(fs afero.Fs, root string) (string, bool) {
	candidates := append([]string{constants.ConfigFilename}, constants.AlternateConfigFilenames...)
	for _, name := range candidates {
		path := filepath.Join(root, name)
		if exists, err := afero.Exists(fs, path); err == nil && exists {
			return path, true
		}
	}
	return filepath.Join(root, constants.ConfigFilename), false
}

// checkProjectDirEnv checks if the project directory override is set and valid
func checkProjectDirEnv(fs afero.Fs) (string, bool) {
	dir := os.Getenv(constants.ProjectDirEnv)
	if dir == "" {
		return "", false
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	isDir, err := afero.IsDir(fs, abs)
	if err != nil || !isDir {
		return "", false
	}

	return abs, true
}

// hasProjectMarker checks if any of the markers exist in the directory
func hasProjectMarker(fs afero.Fs, dir string) bool {
	for _, marker := range markers {
		if exists, err := afero.Exists(fs, filepath.Join(dir, marker)); err == nil && exists {
			return true
		}
	}
	return false
}
