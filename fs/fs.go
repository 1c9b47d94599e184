package fs

import (
	"os"
	"path/filepath"
)

// DefaultDataDir returns the default data directory for linediff.
// Uses XDG_DATA_HOME if set, otherwise falls back to ~/.local/share/linediff.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "linediff")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "linediff")
}

// DefaultHistoryPath returns the default location of the history log.
func DefaultHistoryPath() string {
	return filepath.Join(DefaultDataDir(), "history.jsonl")
}
