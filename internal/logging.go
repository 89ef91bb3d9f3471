package internal

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// NewLogger creates a timestamped logger writing to w at level.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "reorgboard",
	})
}

// DefaultLogFilePath is where the board UI logs while it owns the terminal.
func DefaultLogFilePath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "reorgboard", "reorgboard.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "reorgboard.log"
	}
	return filepath.Join(home, ".local", "state", "reorgboard", "reorgboard.log")
}

// OpenLogFile opens path for appending, creating parent directories. The
// caller closes the returned file.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
