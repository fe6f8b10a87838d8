package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"nonsense", zerolog.WarnLevel},
		{"", zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{Level: LevelDebug, Output: &buf})

	logger.Info().Str("key", "value").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("output = %q, want JSON field key=value", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("output = %q, want message field", out)
	}
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{Level: LevelError, Output: &buf})

	logger.Warn().Msg("suppressed")
	if buf.Len() != 0 {
		t.Errorf("warn output = %q, want empty at error level", buf.String())
	}

	logger.Error().Msg("surfaced")
	if !strings.Contains(buf.String(), "surfaced") {
		t.Errorf("output = %q, want error message", buf.String())
	}
}

func TestNewLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Level: LevelDebug, Output: &buf})

	logger := NewLogger("client")
	logger.Info().Msg("tagged")
	if !strings.Contains(buf.String(), `"component":"client"`) {
		t.Errorf("output = %q, want component field", buf.String())
	}
}
