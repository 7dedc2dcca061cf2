package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colorize/internal/config"
)

func readLog(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestLogger_WritesPerLevelFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l := NewLogger(&config.Config{LogDirectory: dir, LogLevel: "info"})

	l.Info("sampled %d frames", 6)
	l.Warning("decode stopped at %d", 41)
	l.Error("append failed: %s", "disk full")
	l.Sync()

	info := readLog(t, dir, "info.log")
	warning := readLog(t, dir, "warning.log")
	errLog := readLog(t, dir, "error.log")

	assert.Contains(t, info, "sampled 6 frames")
	assert.NotContains(t, info, "decode stopped")
	assert.Contains(t, warning, "decode stopped at 41")
	assert.NotContains(t, warning, "append failed")
	assert.Contains(t, errLog, "append failed: disk full")
}

func TestLogger_LevelThreshold(t *testing.T) {
	dir := t.TempDir()
	l := NewLogger(&config.Config{LogDirectory: dir, LogLevel: "warning"})

	l.Info("hidden")
	l.Warning("shown")
	l.Sync()

	assert.Empty(t, readLog(t, dir, "info.log"))
	assert.Contains(t, readLog(t, dir, "warning.log"), "shown")
}

func TestLogger_CleanLogs(t *testing.T) {
	dir := t.TempDir()
	l := NewLogger(&config.Config{LogDirectory: dir, LogLevel: "info"})

	l.Error("boom")
	l.Sync()
	require.NotEmpty(t, readLog(t, dir, "error.log"))

	require.NoError(t, l.CleanLogs("error.log"))
	assert.Empty(t, readLog(t, dir, "error.log"))
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Info("nothing")
	assert.Equal(t, "", l.Directory())
	assert.NoError(t, l.CleanLogs("info.log"))
}
