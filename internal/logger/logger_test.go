package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ConsoleText(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf

	log, err := NewLogger(cfg)
	require.NoError(t, err)

	WithFile(log, "images/a.png").Info("Saved")
	out := buf.String()
	assert.Contains(t, out, "Saved")
	assert.Contains(t, out, "file=images/a.png")
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = "error"
	cfg.Output = &buf

	log, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.Equal(t, logrus.ErrorLevel, log.GetLevel())

	log.Info("hidden")
	log.Error("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_FileSinkWritesJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "run.log")

	var console bytes.Buffer
	cfg := DefaultConfig()
	cfg.FilePath = path
	cfg.Output = &console

	log, err := NewLogger(cfg)
	require.NoError(t, err)

	WithFileOperation(log, "images/b.jpg", "decode").Error("Failed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "Failed", entry["message"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "images/b.jpg", entry["file"])
	assert.Equal(t, "decode", entry["operation"])
	assert.Contains(t, entry, "timestamp")

	assert.Contains(t, console.String(), "Failed")
}
