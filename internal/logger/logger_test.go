package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), "input %q", tt.input)
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	lg := New(Config{Level: "debug", Output: &buf}, nil)

	lg.With("component", "camera").WithGroup("pos").Info("pointer locked", "x", 1.5)

	line := buf.String()
	assert.Contains(t, line, "INFO  pointer locked")
	assert.Contains(t, line, "component=camera")
	assert.Contains(t, line, "pos.x=1.5")
	assert.True(t, strings.HasSuffix(line, "\n"))
	// a buffer is not a terminal, so no escape codes
	assert.NotContains(t, line, "\x1b[")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	lv := new(slog.LevelVar)
	lg := New(Config{Level: "warn", Output: &buf}, lv)

	lg.Info("hidden")
	lg.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN  shown")

	lv.Set(slog.LevelDebug)
	lg.Debug("now visible")
	assert.Contains(t, buf.String(), "DEBUG now visible")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	lg := New(Config{Level: "info", Format: "json", Output: &buf}, nil)

	lg.Info("config reloaded", "path", "roam.yaml")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "config reloaded", rec["msg"])
	assert.Equal(t, "roam.yaml", rec["path"])
}

func TestInitAndSetLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := Init(Config{Level: "error", Output: &buf})
	assert.Same(t, lg, L())

	L().Info("dropped")
	assert.Empty(t, buf.String())

	SetLevel("info")
	L().Info("kept")
	assert.Contains(t, buf.String(), "kept")
}
