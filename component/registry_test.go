package component

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/kbukum/nativebridge/logger"
)

type fakeComponent struct {
	name     string
	startErr error
	stopErr  error
	events   *[]string
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(ctx context.Context) error {
	*f.events = append(*f.events, "start:"+f.name)
	return f.startErr
}

func (f *fakeComponent) Stop(ctx context.Context) error {
	*f.events = append(*f.events, "stop:"+f.name)
	return f.stopErr
}

func (f *fakeComponent) Health(ctx context.Context) Health {
	return Health{Name: f.name, Status: StatusHealthy}
}

func TestRegistry_Order(t *testing.T) {
	var events []string
	r := NewRegistry(logger.Nop())
	for _, n := range []string{"sql", "whisper", "server"} {
		if err := r.Register(&fakeComponent{name: n, events: &events}); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := "start:sql,start:whisper,start:server,stop:server,stop:whisper,stop:sql"
	if got := strings.Join(events, ","); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	var events []string
	r := NewRegistry(logger.Nop())
	_ = r.Register(&fakeComponent{name: "sql", events: &events})
	if err := r.Register(&fakeComponent{name: "sql", events: &events}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegistry_StartFailureStopsOnlyStarted(t *testing.T) {
	var events []string
	r := NewRegistry(logger.Nop())
	_ = r.Register(&fakeComponent{name: "a", events: &events})
	_ = r.Register(&fakeComponent{name: "b", events: &events, startErr: fmt.Errorf("boom")})
	_ = r.Register(&fakeComponent{name: "c", events: &events})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected start failure")
	}
	_ = r.StopAll(context.Background())

	want := "start:a,start:b,stop:a"
	if got := strings.Join(events, ","); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRegistry_StopErrorsCollected(t *testing.T) {
	var events []string
	r := NewRegistry(logger.Nop())
	_ = r.Register(&fakeComponent{name: "a", events: &events, stopErr: fmt.Errorf("stuck")})
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "stuck") {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestRegistry_HealthAndGet(t *testing.T) {
	var events []string
	r := NewRegistry(logger.Nop())
	_ = r.Register(&fakeComponent{name: "a", events: &events})

	health := r.HealthAll(context.Background())
	if len(health) != 1 || health[0].Status != StatusHealthy {
		t.Errorf("unexpected health %+v", health)
	}
	if r.Get("a") == nil {
		t.Error("expected component a")
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unknown component")
	}
}
