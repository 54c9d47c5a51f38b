package logger_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/impostor-party/impostor/internal/logger"
)

// TestParseLevel_KnownLevels tests parsing of all supported level names
func TestParseLevel_KnownLevels(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, c := range cases {
		if got := logger.ParseLevel(c.in); got != c.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

// TestSetLevel_SuppressesBelowThreshold tests dynamic level changes
func TestSetLevel_SuppressesBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelWarn)

	log.Debug("hidden debug")
	log.Info("hidden info")
	log.Warn("visible warn")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug/info suppressed at warn level, got: %s", out)
	}
	if !strings.Contains(out, "visible warn") {
		t.Errorf("expected warn message in output, got: %s", out)
	}

	log.SetLevel(slog.LevelDebug)
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("expected debug message after lowering level")
	}
	if log.GetLevel() != slog.LevelDebug {
		t.Errorf("expected level debug, got %v", log.GetLevel())
	}
}

// TestHTTPLogging_Toggle tests the HTTP logging flag
func TestHTTPLogging_Toggle(t *testing.T) {
	log := logger.New()

	if log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging off by default")
	}

	log.EnableHTTPLogging()
	if !log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging enabled")
	}

	log.DisableHTTPLogging()
	if log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging disabled")
	}
}

// TestLog_IncludesStructuredFields tests key/value output
func TestLog_IncludesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelInfo)

	log.Info("game started", "players", 5, "mode", "classic")

	out := buf.String()
	if !strings.Contains(out, "players=5") || !strings.Contains(out, "mode=classic") {
		t.Errorf("expected structured fields in output, got: %s", out)
	}
}
