package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newJSONLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: level, Format: "json"}, "test-svc", &buf)
	return l, &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("failed to decode log line %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestLogger_InfoWithFields(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.WithComponent("rest").Info("REST client ready", Fields(FieldResource, "users", FieldBaseURL, "http://users:80/"))

	m := decodeLine(t, buf)
	if m["message"] != "REST client ready" {
		t.Errorf("unexpected message %v", m["message"])
	}
	if m[FieldComponent] != "rest" {
		t.Errorf("expected component 'rest', got %v", m[FieldComponent])
	}
	if m[FieldResource] != "users" {
		t.Errorf("expected resource 'users', got %v", m[FieldResource])
	}
	if m["service"] != "test-svc" {
		t.Errorf("expected service 'test-svc', got %v", m["service"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newJSONLogger(t, "warn")
	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn output, got %q", buf.String())
	}
}

func TestLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, buf := newJSONLogger(t, "invalid-level")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug should be filtered at fallback info level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("info should be emitted at fallback info level")
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Error("nothing happens")
	l.WithComponent("x").WithFields(Fields("a", 1)).Info("still nothing")
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(m) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(m), m)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("call", errors.New("boom"))
	if ef[FieldOperation] != "call" || ef[FieldError] != "boom" {
		t.Errorf("unexpected error fields %v", ef)
	}
	df := DurationFields("call", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", df[FieldDuration])
	}
}

func TestConfig_ApplyDefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	bad := Config{Level: "loud", Format: "json"}
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("expected level validation error, got %v", err)
	}
	bad = Config{Level: "info", Format: "xml"}
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Errorf("expected format validation error, got %v", err)
	}
}

func TestGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	l, buf := newJSONLogger(t, "info")
	SetGlobalLogger(l)
	WithComponent("discovery").Info("hello")
	if !strings.Contains(buf.String(), `"component":"discovery"`) {
		t.Errorf("expected component tag in global output, got %q", buf.String())
	}
}
