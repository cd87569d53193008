package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func newJSONLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: "json"}, "bridge", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got nothing")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", line, err)
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

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "invalid-level")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Error("expected debug to be dropped at the fallback info level")
	}
	l.Info("shown")
	if buf.Len() == 0 {
		t.Error("expected info to be written")
	}
}

func TestWithComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "debug").WithComponent("sqlbridge")
	l.Info("select finished", Fields(FieldRows, 3, FieldStatement, "SELECT 1"))

	m := decodeLine(t, &buf)
	if m[FieldComponent] != "sqlbridge" {
		t.Errorf("expected component sqlbridge, got %v", m[FieldComponent])
	}
	if m[FieldRows] != float64(3) {
		t.Errorf("expected rows=3, got %v", m[FieldRows])
	}
	if m["service"] != "bridge" {
		t.Errorf("expected service=bridge, got %v", m["service"])
	}
	if m["message"] != "select finished" {
		t.Errorf("unexpected message %v", m["message"])
	}
}

func TestWithContext_RequestID(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info")

	ctx := ContextWithRequestID(context.Background(), "req-42")
	l.WithContext(ctx).Info("hello")

	m := decodeLine(t, &buf)
	if m[FieldRequestID] != "req-42" {
		t.Errorf("expected request_id=req-42, got %v", m[FieldRequestID])
	}

	if l.WithContext(context.Background()) != l {
		t.Error("expected the same logger back when no request id is present")
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	newJSONLogger(&buf, "info").WithError(fmt.Errorf("boom")).Error("failed")
	m := decodeLine(t, &buf)
	if m["error"] != "boom" {
		t.Errorf("expected error=boom, got %v", m["error"])
	}
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	SetGlobalLogger(newJSONLogger(&buf, "info"))
	WithComponent("whisper").Warn("model missing")
	m := decodeLine(t, &buf)
	if m["level"] != "warn" {
		t.Errorf("expected warn level, got %v", m["level"])
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"bad level", Config{Level: "loud"}, true},
		{"bad format", Config{Format: "xml"}, true},
		{"bad output", Config{Output: "file"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.ApplyDefaults()
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFieldsHelpers(t *testing.T) {
	f := Fields("a", 1, "b")
	if len(f) != 1 || f["a"] != 1 {
		t.Errorf("unexpected fields %v", f)
	}
	ef := ErrorFields("load", fmt.Errorf("x"))
	if ef[FieldOperation] != "load" || ef[FieldError] != "x" {
		t.Errorf("unexpected error fields %v", ef)
	}
	merged := MergeWithError(nil, fmt.Errorf("y"))
	if merged[FieldError] != "y" {
		t.Errorf("unexpected merged fields %v", merged)
	}
}
