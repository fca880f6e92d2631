// Package paths provides centralized path handling for skyhook.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for skyhook
	EnvConfigDir = "SKYHOOK_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for skyhook
	EnvStateDir = "SKYHOOK_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// SkyhookDirName is the directory name for skyhook-specific files
	SkyhookDirName = "skyhook"

	// OverridesFileName is the default name of the key=value overrides file
	OverridesFileName = "skyhook.conf"

	// LogFileName is the name of the log file
	LogFileName = "skyhook.log"
)

// ConfigDir returns the XDG config directory for skyhook,
// respecting the SKYHOOK_CONFIG_DIR override.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, SkyhookDirName)
}

// StateDir returns the XDG state directory for skyhook,
// respecting the SKYHOOK_STATE_DIR override.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, SkyhookDirName)
	}
	return filepath.Join(xdg.Home, ".local", "state", SkyhookDirName)
}

// DefaultOverridesPath returns the default location of the key=value
// overrides file.
func DefaultOverridesPath() string {
	return filepath.Join(ConfigDir(), OverridesFileName)
}

// LogFilePath returns the path to skyhook's log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}
