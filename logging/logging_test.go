package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomyedwab/jamajira/config"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("info"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestJSONFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LoggingConfig{Level: "warn", Format: "json"})

	logger.Info("dropped")
	logger.Warn("Failed to connect", "path", "/tmp/x.db")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "Failed to connect", entry["msg"])
	require.Equal(t, "/tmp/x.db", entry["path"])
}

func TestNewWritesToRotatingFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "jamajira.log")

	logger, closer, err := New(config.LoggingConfig{Level: "info", Format: "text", File: logFile})
	require.NoError(t, err)
	logger.Info("Created table", "table", "Items")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "Created table")
	require.Contains(t, string(data), "table=Items")
}

func TestNewRotatingWriterRequiresFile(t *testing.T) {
	_, err := NewRotatingWriter(RotationConfig{})
	require.Error(t, err)
}
