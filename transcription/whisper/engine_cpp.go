//go:build whisper_cpp

package whisper

import (
	"errors"
	"fmt"
	"io"

	wcpp "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// DefaultLoader loads models with whisper.cpp.
var DefaultLoader Loader = loadCPP

// EngineName identifies the compiled-in engine.
const EngineName = "whisper.cpp"

type cppModel struct {
	model wcpp.Model
}

func loadCPP(path string) (Model, error) {
	m, err := wcpp.New(path)
	if err != nil {
		return nil, err
	}
	// Every binding context decodes into the model's single whisper_state
	// and the binding has no whisper_init_state, so runs must not overlap.
	return serialize(&cppModel{model: m}), nil
}

func (m *cppModel) NewState() (State, error) {
	ctx, err := m.model.NewContext()
	if err != nil {
		return nil, err
	}
	return &cppState{ctx: ctx}, nil
}

func (m *cppModel) Close() error { return m.model.Close() }

type cppState struct {
	ctx      wcpp.Context
	segments []RawSegment
}

func (s *cppState) Full(samples []float32, p Params) error {
	// The binding's context decodes greedily; best-of is fixed by whisper.cpp.
	if p.Strategy != StrategyGreedy {
		return fmt.Errorf("unsupported sampling strategy %q", p.Strategy)
	}
	if err := s.ctx.SetLanguage(p.Language); err != nil {
		return fmt.Errorf("set language %q: %w", p.Language, err)
	}
	s.ctx.SetTranslate(p.Translate)
	if p.Threads > 0 {
		s.ctx.SetThreads(uint(p.Threads))
	}

	// Segments live in the shared state until the next run, so they are
	// copied out before Full returns.
	if err := s.ctx.Process(samples, nil, nil, nil); err != nil {
		return err
	}

	s.segments = s.segments[:0]
	for {
		seg, err := s.ctx.NextSegment()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read segment %d: %w", len(s.segments), err)
		}
		s.segments = append(s.segments, RawSegment{Start: seg.Start, End: seg.End, Text: seg.Text})
	}
}

func (s *cppState) NumSegments() (int, error) { return len(s.segments), nil }

func (s *cppState) Segment(i int) (RawSegment, error) {
	if i < 0 || i >= len(s.segments) {
		return RawSegment{}, fmt.Errorf("segment %d out of range [0,%d)", i, len(s.segments))
	}
	return s.segments[i], nil
}

// Close drops the segment buffer; the binding frees context state with the model.
func (s *cppState) Close() error {
	s.segments = nil
	return nil
}
