package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceWritesOnlyWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure("")
	})

	SetTraceEnabled(false)
	Trace("hidden.event", map[string]interface{}{"a": 1})
	Sync()
	if data, err := os.ReadFile(path); err == nil && strings.Contains(string(data), "hidden.event") {
		t.Fatalf("expected no trace output while disabled, got %s", data)
	}

	SetTraceEnabled(true)
	Trace("posts.fetch", map[string]interface{}{"user": 7})
	Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"event":"posts.fetch"`) {
		t.Fatalf("expected trace event in log, got %s", out)
	}
	if !strings.Contains(out, `"user":7`) {
		t.Fatalf("expected payload in log, got %s", out)
	}
}

func TestErrorAlwaysWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	SetTraceEnabled(false)
	Error(errors.New("boom"))
	Error(nil)
	Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "boom") {
		t.Fatalf("expected error entry, got %s", data)
	}
	if got := strings.Count(strings.TrimSpace(string(data)), "\n"); got != 0 {
		t.Fatalf("expected a single entry, got %d extra lines", got)
	}
}
