package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates logger with console writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(Config{Level: "info", NoColor: true, Out: &buf})
		assert.NotNil(t, logger)

		logger.Info().Msg("hello")
		assert.Contains(t, buf.String(), "hello")
	})

	t.Run("creates logger with file writer", func(t *testing.T) {
		tmpDir := t.TempDir()
		logFile := filepath.Join(tmpDir, "nested", "test.log")

		var buf bytes.Buffer
		logger := NewLogger(Config{Level: "info", LogFile: logFile, NoColor: true, Out: &buf})
		assert.NotNil(t, logger)

		logger.Info().Msg("test")

		_, err := os.Stat(logFile)
		assert.NoError(t, err)
	})

	t.Run("level filters console output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(Config{Level: "warn", NoColor: true, Out: &buf})

		logger.Info().Msg("quiet")
		logger.Warn().Msg("loud")

		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "loud")
	})

	t.Run("with TERM=dumb", func(t *testing.T) {
		t.Setenv("TERM", "dumb")

		var buf bytes.Buffer
		logger := NewLogger(Config{Level: "info", Out: &buf})
		logger.Info().Msg("plain")

		assert.NotContains(t, buf.String(), "\x1b[")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"invalid", zerolog.WarnLevel},
		{"", zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)

	logger.Info().Str("entry", "Firefox").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected log output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, "Firefox") {
		t.Errorf("expected log output to contain 'Firefox' field, got: %s", output)
	}
}
