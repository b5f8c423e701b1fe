package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)

	assert.False(t, IsVerbose())
	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name     string
		log      func(string, ...any)
		expected string
	}{
		{"debug", Debug, "[DEBUG] loaded 5 credentials\n"},
		{"info", Info, "[INFO] loaded 5 credentials\n"},
		{"warn", Warn, "[WARN] loaded 5 credentials\n"},
		{"error", Error, "[ERROR] loaded 5 credentials\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log("loaded %d credentials", 5)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	assert.Empty(t, buf.String())
}

func TestError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Error("store unreachable: %s", "timeout")

	assert.Equal(t, "[ERROR] store unreachable: timeout\n", buf.String())
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Fetch")

	assert.Equal(t, "\n=== Fetch ===\n", buf.String())
}

func TestNewSlog(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewSlog(&buf, "json", false)

		log.Info("http request", "path", "/groups")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "http request", rec["msg"])
		assert.Equal(t, "/groups", rec["path"])
	})

	t.Run("text hides debug unless verbose", func(t *testing.T) {
		var buf bytes.Buffer
		NewSlog(&buf, "text", false).Debug("quiet")
		assert.Empty(t, buf.String())

		NewSlog(&buf, "text", true).Debug("loud")
		assert.True(t, strings.Contains(buf.String(), "loud"))
	})
}
