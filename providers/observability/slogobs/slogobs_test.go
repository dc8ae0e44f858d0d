package slogobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/flowcanvas/providers/observability"
)

func TestHandler_Compact(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&HandlerOptions{Format: FormatCompact, Level: slog.LevelDebug, Output: &buf}))
	logger.Info("Node ran", "node.id", "scrape-1", "rows", 3)

	output := buf.String()
	if !strings.Contains(output, "INFO") {
		t.Errorf("Expected INFO level in output, got: %s", output)
	}
	if !strings.Contains(output, "Node ran → ") {
		t.Errorf("Expected message followed by separator, got: %s", output)
	}
	if !strings.Contains(output, `"node.id":"scrape-1"`) || !strings.Contains(output, `"rows":3`) {
		t.Errorf("Expected JSON attributes in output, got: %s", output)
	}
}

func TestHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&HandlerOptions{Format: FormatJSON, Level: slog.LevelInfo, Output: &buf}))
	logger.Warn("provider failed", "error", errors.New("boom"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Expected valid JSON, got %q: %v", buf.String(), err)
	}
	if record["level"] != "WARN" {
		t.Errorf("Expected level WARN, got %v", record["level"])
	}
	if record["error"] != "boom" {
		t.Errorf("Expected error 'boom', got %v", record["error"])
	}
}

func TestHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&HandlerOptions{Format: FormatCompact, Level: slog.LevelWarn, Output: &buf}))
	logger.Info("hidden")
	logger.Debug("hidden too")

	if buf.Len() != 0 {
		t.Errorf("Expected no output below WARN, got: %s", buf.String())
	}
}

func TestHandler_PrettySortedKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&HandlerOptions{Format: FormatPretty, Level: slog.LevelDebug, Output: &buf}))
	logger.Info("msg", "b", 2, "a", 1)

	output := buf.String()
	if strings.Index(output, "a: 1") > strings.Index(output, "b: 2") {
		t.Errorf("Expected attributes sorted by key, got: %s", output)
	}
	if !strings.Contains(output, "└─ b: 2") {
		t.Errorf("Expected last attribute with closing branch, got: %s", output)
	}
}

func TestHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&HandlerOptions{Format: FormatJSON, Output: &buf}))
	logger.WithGroup("server").WithGroup("http").Info("req", "status", 200)

	if !strings.Contains(buf.String(), `"server.http.status":200`) {
		t.Errorf("Expected grouped key, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" ERROR ", slog.LevelError},
	}
	for _, tc := range testCases {
		if got := ParseLevel(tc.input); got != tc.expected {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}

func TestFormatFromEnv(t *testing.T) {
	t.Setenv("FLOWCANVAS_LOG_FORMAT", "json")
	t.Setenv("LOG_FORMAT", "pretty")
	if got := FormatFromEnv(); got != FormatJSON {
		t.Errorf("Expected FLOWCANVAS_LOG_FORMAT to win, got %s", got)
	}

	t.Setenv("FLOWCANVAS_LOG_FORMAT", "")
	if got := FormatFromEnv(); got != FormatPretty {
		t.Errorf("Expected LOG_FORMAT fallback, got %s", got)
	}
}

func TestObserver_CounterAccumulates(t *testing.T) {
	var buf bytes.Buffer
	observer := New(WithOutput(&buf), WithLevel(slog.LevelDebug), WithFormat(FormatCompact))
	ctx := context.Background()

	observer.Counter("actions").Add(ctx, 1)
	observer.Counter("actions").Add(ctx, 2, observability.String("node.id", "chat-1"))

	if got := observer.CounterValue("actions"); got != 3 {
		t.Errorf("Expected counter value 3, got %d", got)
	}
	if got := observer.CounterValue("missing"); got != 0 {
		t.Errorf("Expected 0 for unknown counter, got %d", got)
	}
}

func TestObserver_SpanInContext(t *testing.T) {
	var buf bytes.Buffer
	observer := New(WithOutput(&buf), WithLevel(slog.LevelDebug))

	ctx, span := observer.StartSpan(context.Background(), "op")
	if observability.SpanFromContext(ctx) != span {
		t.Fatal("Expected StartSpan to attach the span to the returned context")
	}
	span.RecordError(errors.New("failed"))
	span.SetStatus(observability.StatusError, "failed")
	span.End()

	output := buf.String()
	if !strings.Contains(output, "Span ended") || !strings.Contains(output, "WARN") {
		t.Errorf("Expected failed span to end at WARN, got: %s", output)
	}
}
