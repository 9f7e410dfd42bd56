package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/2389/chainmgr/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "info", Format: "text"}, &buf)

	logger.Debug("hidden")
	logger.With("component", "manager").WithGroup("agent").Info("=== AGENT REGISTERED ===", "id", "a1")
	logger.Warn("command failed", "command", "validate")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level:\n%s", out)
	}
	for _, want := range []string{
		"INF === AGENT REGISTERED === component=manager agent.id=a1",
		"WRN command failed command=validate",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("got %d lines, want 2", n)
	}
}

func TestColorHandler_GroupedAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "info", Format: "text"}, &buf)

	logger.WithGroup("agent").With("id", "a1").WithGroup("iface").Info("attached", "id", "i1")

	want := "INF attached agent.id=a1 agent.iface.id=i1"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("output missing %q:\n%s", want, buf.String())
	}
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "debug", Format: "JSON"}, &buf)
	logger.Debug("interface added", "interface_id", "i1")

	if !strings.Contains(buf.String(), `"interface_id":"i1"`) {
		t.Errorf("expected JSON record, got %s", buf.String())
	}
}
