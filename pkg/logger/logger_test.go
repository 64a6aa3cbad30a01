package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestInitWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&Config{Level: "info", Format: "json"}, &buf)

	slog.Info("probe finished", "status", "ok")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "probe finished" {
		t.Errorf("Expected msg 'probe finished', got %v", entry["msg"])
	}
}

func TestInitWriterLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&Config{Level: "warn", Format: "text"}, &buf)

	slog.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered at warn level, got %q", buf.String())
	}

	slog.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Error("Expected warn message in log")
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&Config{Level: "debug", Format: "text"}, &buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
	ctx = WithSession(ctx, "sess-456")

	Info(ctx, "upload submitted")

	out := buf.String()
	if !strings.Contains(out, "request_id=req-123") {
		t.Errorf("Expected request_id in log, got %q", out)
	}
	if !strings.Contains(out, "session_id=sess-456") {
		t.Errorf("Expected session_id in log, got %q", out)
	}
}

func TestWithContextEmpty(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&Config{Level: "info", Format: "text"}, &buf)

	Info(context.Background(), "plain")

	if strings.Contains(buf.String(), "request_id") {
		t.Error("Expected no request_id attribute without context value")
	}
}

func TestLogFunctions(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&Config{Level: "debug", Format: "text"}, &buf)

	ctx := context.Background()

	tests := []struct {
		log   func(context.Context, string, ...any)
		msg   string
		level string
	}{
		{Debug, "debug message", "DEBUG"},
		{Info, "info message", "INFO"},
		{Warn, "warn message", "WARN"},
		{Error, "error message", "ERROR"},
	}

	for _, tt := range tests {
		buf.Reset()
		tt.log(ctx, tt.msg)
		if !strings.Contains(buf.String(), tt.msg) || !strings.Contains(buf.String(), tt.level) {
			t.Errorf("Expected %s at %s, got %q", tt.msg, tt.level, buf.String())
		}
	}
}
