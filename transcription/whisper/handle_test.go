package whisper

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kbukum/nativebridge/logger"
)

func TestCell_SnapshotKeepsReplacedModelAlive(t *testing.T) {
	first := &fakeModel{path: "first"}
	second := &fakeModel{path: "second"}

	var c Cell
	if _, ok := c.Snapshot(); ok {
		t.Fatal("expected empty cell")
	}

	c.Replace(newHandle(first, first.path, logger.Nop()))
	held, ok := c.Snapshot()
	if !ok || held.Path() != "first" {
		t.Fatalf("unexpected snapshot %v %v", held, ok)
	}

	c.Replace(newHandle(second, second.path, logger.Nop()))
	if first.closed.Load() {
		t.Fatal("replaced model closed while still in use")
	}
	if path, _ := c.Loaded(); path != "second" {
		t.Errorf("expected second to be loaded, got %q", path)
	}

	held.Release()
	if !first.closed.Load() {
		t.Error("expected replaced model to close after last release")
	}
	if second.closed.Load() {
		t.Error("active model must stay open")
	}
}

func TestHandle_ReleaseLogsCloseError(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "test", &buf)
	m := &fakeModel{path: "broken.bin", closeErr: errors.New("free failed")}

	var c Cell
	c.Replace(newHandle(m, m.path, log))
	c.Replace(nil)

	if !m.closed.Load() {
		t.Fatal("expected model to be closed")
	}
	out := buf.String()
	if !strings.Contains(out, "model close failed") || !strings.Contains(out, "free failed") || !strings.Contains(out, "broken.bin") {
		t.Errorf("expected the close error to be logged, got %q", out)
	}
}
