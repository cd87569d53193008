package whisper

import (
	"sync"
	"time"
)

// Strategy selects the decoder's sampling strategy.
type Strategy string

const (
	StrategyGreedy Strategy = "greedy"
)

// Params configures one inference run.
type Params struct {
	Strategy  Strategy
	BestOf    int
	Translate bool
	Language  string
	Threads   int
}

// RawSegment is a decoded span as reported by the engine, before trimming.
type RawSegment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Loader loads a model file into a new engine instance.
type Loader func(path string) (Model, error)

// Model is a loaded speech model. It is shared read-only between
// concurrent transcriptions and must not carry per-run buffers.
type Model interface {
	// NewState creates isolated working state for a single run.
	NewState() (State, error)
	// Close frees the model. It is called once the last user is done.
	Close() error
}

// State holds the mutable buffers of one inference run.
type State interface {
	// Full runs inference over samples to completion.
	Full(samples []float32, params Params) error
	// NumSegments returns the number of decoded segments.
	NumSegments() (int, error)
	// Segment returns the i-th decoded segment.
	Segment(i int) (RawSegment, error)
	// Close releases the state.
	Close() error
}

func defaultParams(language string, threads int) Params {
	return Params{
		Strategy:  StrategyGreedy,
		BestOf:    1,
		Translate: false,
		Language:  language,
		Threads:   threads,
	}
}

// serialModel lets only one Full run at a time across all states of a model.
// It is for engines whose states decode into buffers owned by the model;
// such states must copy their results out before Full returns.
type serialModel struct {
	Model
	mu sync.Mutex
}

func serialize(m Model) Model { return &serialModel{Model: m} }

func (m *serialModel) NewState() (State, error) {
	st, err := m.Model.NewState()
	if err != nil {
		return nil, err
	}
	return &serialState{State: st, mu: &m.mu}, nil
}

type serialState struct {
	State
	mu *sync.Mutex
}

func (s *serialState) Full(samples []float32, p Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State.Full(samples, p)
}
