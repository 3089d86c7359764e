package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(slog.LevelInfo)

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected DEBUG to be disabled")
	}
	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected INFO to be enabled")
	}
}

func TestTraceHandler_NoSpanPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	h := withTraceContext(slog.NewJSONHandler(&buf, nil))
	log := slog.New(h)

	log.Info("fetch complete", "topic", "technology")

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "fetch complete" || record["topic"] != "technology" {
		t.Errorf("unexpected record %v", record)
	}
	if _, ok := record["trace_id"]; ok {
		t.Error("trace_id set without an active span")
	}
}
