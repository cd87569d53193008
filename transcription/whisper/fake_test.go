package whisper

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

type fakeModel struct {
	path     string
	segments []string
	fullErr  error
	stateErr error
	closeErr error
	closed   atomic.Bool

	// entered receives once per Full call; gate, when set, holds Full open.
	entered chan struct{}
	gate    chan struct{}

	mu     sync.Mutex
	params []Params
}

func (m *fakeModel) NewState() (State, error) {
	if m.stateErr != nil {
		return nil, m.stateErr
	}
	return &fakeState{model: m}, nil
}

func (m *fakeModel) Close() error {
	m.closed.Store(true)
	return m.closeErr
}

func (m *fakeModel) lastParams() Params {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params[len(m.params)-1]
}

type fakeState struct {
	model *fakeModel
	ran   bool
}

func (s *fakeState) Full(samples []float32, p Params) error {
	s.model.mu.Lock()
	s.model.params = append(s.model.params, p)
	s.model.mu.Unlock()
	if s.model.entered != nil {
		s.model.entered <- struct{}{}
	}
	if s.model.gate != nil {
		<-s.model.gate
	}
	if s.model.fullErr != nil {
		return s.model.fullErr
	}
	s.ran = true
	return nil
}

func (s *fakeState) NumSegments() (int, error) {
	if !s.ran {
		return 0, errors.New("not run")
	}
	return len(s.model.segments), nil
}

func (s *fakeState) Segment(i int) (RawSegment, error) {
	return RawSegment{
		Start: time.Duration(i) * time.Second,
		End:   time.Duration(i+1) * time.Second,
		Text:  s.model.segments[i],
	}, nil
}

func (s *fakeState) Close() error { return nil }

// fakeLoader returns models keyed by path; unknown paths fail.
type fakeLoader struct {
	mu     sync.Mutex
	models map[string]*fakeModel
	calls  int
}

func newFakeLoader(models ...*fakeModel) *fakeLoader {
	l := &fakeLoader{models: map[string]*fakeModel{}}
	for _, m := range models {
		l.models[m.path] = m
	}
	return l
}

func (l *fakeLoader) Load(path string) (Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	m, ok := l.models[path]
	if !ok {
		return nil, errors.New("failed to load model: invalid ggml file")
	}
	return m, nil
}

func writeWAV(t *testing.T, sampleRate, bitDepth, channels int, data []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav: %v", err)
	}
	return path
}

func monoClip(t *testing.T, n int) string {
	t.Helper()
	data := make([]int, n)
	for i := range data {
		data[i] = (i % 200) - 100
	}
	return writeWAV(t, SampleRate, BitDepth, Channels, data)
}
