package logger

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-home-io/device-monitor/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests wrong logger configuration.
func TestWrongLoggerSettings(t *testing.T) {
	_, err := NewLoggerProvider(&ConstructLogger{
		Settings: &providers.LoggerSettings{Provider: "zap", Level: "info"},
	})
	assert.IsType(t, &ErrUnknownProvider{}, err)

	_, err = NewLoggerProvider(&ConstructLogger{
		Settings: &providers.LoggerSettings{Provider: "console", Level: "loud"},
	})
	assert.Error(t, err)
}

// Tests that file-based logrus logger adds node field.
func TestLogrusProvider(t *testing.T) {
	file := filepath.Join(t.TempDir(), "monitor.log")
	l, err := NewLoggerProvider(&ConstructLogger{
		Settings: &providers.LoggerSettings{Provider: "logrus", Level: "warning", Format: "json", File: file},
		NodeID:   "booth-1",
	})
	require.NoError(t, err)

	l.Info("skipped")
	l.Warn("written", "device_path", "Network.p1")
	l.Flush()

	data, err := ioutil.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Equal(t, 1, len(lines))

	entry := make(map[string]interface{})
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "written", entry["msg"])
	assert.Equal(t, "booth-1", entry["node"])
	assert.Equal(t, "Network.p1", entry["device_path"])
}

// Tests default console provider.
func TestConsoleProvider(t *testing.T) {
	l, err := NewLoggerProvider(&ConstructLogger{
		Settings: &providers.LoggerSettings{Level: "error"},
	})
	require.NoError(t, err)
	l.Debug("not printed")
	l.Flush()
}
