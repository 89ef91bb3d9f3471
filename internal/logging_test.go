package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, log.WarnLevel)
	logger.Info("hidden")
	logger.Warn("shown", "column", 2)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "column=2")
	require.Contains(t, out, "reorgboard")
}

func TestDefaultLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/state")
	require.Equal(t, "/var/state/reorgboard/reorgboard.log", DefaultLogFilePath())
}

func TestOpenLogFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "board.log")
	for _, line := range []string{"one\n", "two\n"} {
		f, err := OpenLogFile(path)
		require.NoError(t, err)
		_, err = f.WriteString(line)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(data))
}
