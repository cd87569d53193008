package whisper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/kbukum/nativebridge/errors"
	"github.com/kbukum/nativebridge/logger"
	"github.com/kbukum/nativebridge/observability"
	"github.com/kbukum/nativebridge/transcription"
)

const (
	// ProviderName is the registered name for the whisper provider.
	ProviderName = "whisper"

	loadedMessage = "Whisper initialized."
)

// Service owns the process-wide speech model. Loads replace the model
// wholesale; transcriptions take a shared snapshot and run on their own
// inference state without holding the lock. There is no request queue:
// concurrent transcriptions run in parallel, limited only by the engine.
type Service struct {
	cfg     Config
	load    Loader
	cell    Cell
	threads int
	log     *logger.Logger
	metrics *observability.Metrics
}

// NewService creates a Service that loads models with loader.
func NewService(cfg Config, loader Loader, log *logger.Logger) *Service {
	cfg.ApplyDefaults()
	threads := cfg.Threads
	if threads <= 0 {
		threads = availableCores()
	}
	return &Service{
		cfg:     cfg,
		load:    loader,
		threads: threads,
		log:     log.WithComponent(ProviderName),
		metrics: observability.DefaultMetrics(),
	}
}

// ensure Service satisfies transcription.Provider
var _ transcription.Provider = (*Service)(nil)

// Name returns the provider name.
func (s *Service) Name() string { return ProviderName }

// IsAvailable reports whether a model is loaded.
func (s *Service) IsAvailable(_ context.Context) bool {
	_, ok := s.cell.Loaded()
	return ok
}

// ModelPath returns the path of the loaded model, if any.
func (s *Service) ModelPath() (string, bool) { return s.cell.Loaded() }

// SetMetrics replaces the instruments operations are recorded on.
func (s *Service) SetMetrics(m *observability.Metrics) { s.metrics = m }

// Threads returns the inference thread count.
func (s *Service) Threads() int { return s.threads }

// Load loads the model at modelPath and makes it the active model.
// Concurrent loads are serialized by the cell; the last one wins.
func (s *Service) Load(ctx context.Context, modelPath string) (msg string, err error) {
	path := strings.TrimSpace(modelPath)
	ctx, span := observability.StartSpan(ctx, "whisper.load", attribute.String("whisper.model_path", path))
	begin := time.Now()
	defer func() {
		s.metrics.RecordOperation(ctx, ProviderName, "load", time.Since(begin), err)
		observability.EndSpan(span, err)
	}()
	log := s.log.WithContext(ctx)

	if path == "" {
		return "", apperrors.InvalidArgument("model_path", "model path must not be empty")
	}
	if s.cfg.VerifyModel {
		if err := VerifyModelPath(path); err != nil {
			log.Warn("model verification failed", logger.MergeWithError(logger.Fields(logger.FieldModelPath, path), err))
			return "", err
		}
	}

	model, err := s.load(path)
	if err != nil {
		log.Error("model load failed", logger.MergeWithError(logger.Fields(logger.FieldModelPath, path), err))
		return "", apperrors.EngineLoad(err).WithDetail("model_path", path)
	}
	s.cell.Replace(newHandle(model, path, s.log))

	log.Info("model loaded", logger.Fields(
		logger.FieldModelPath, path,
		logger.FieldDuration, time.Since(begin).Milliseconds(),
	))
	return loadedMessage, nil
}

// TranscribeText transcribes the WAV file at audioPath and returns the
// assembled transcript. language is an optional hint; empty selects the
// configured default.
func (s *Service) TranscribeText(ctx context.Context, audioPath, language string) (string, error) {
	resp, err := s.Transcribe(ctx, transcription.TranscriptionRequest{AudioPath: audioPath, Language: language})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Transcribe runs a full transcription and returns the transcript with its
// timed segments.
func (s *Service) Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (resp *transcription.TranscriptionResponse, err error) {
	audioPath := strings.TrimSpace(req.AudioPath)
	ctx, span := observability.StartSpan(ctx, "whisper.transcribe", attribute.String("whisper.audio_path", audioPath))
	begin := time.Now()
	defer func() {
		s.metrics.RecordOperation(ctx, ProviderName, "transcribe", time.Since(begin), err)
		observability.EndSpan(span, err)
	}()
	log := s.log.WithContext(ctx)

	h, ok := s.cell.Snapshot()
	if !ok {
		return nil, apperrors.NotInitialized()
	}
	defer h.Release()

	if audioPath == "" {
		return nil, apperrors.InvalidArgument("path", "audio path must not be empty")
	}
	samples, err := ReadPCM16Mono(audioPath)
	if err != nil {
		log.Warn("audio rejected", logger.MergeWithError(logger.Fields(logger.FieldAudioPath, audioPath), err))
		return nil, err
	}

	lang := ResolveLanguage(req.Language, s.cfg.DefaultLanguage)
	span.SetAttributes(
		attribute.String("whisper.language", lang),
		attribute.Int("whisper.samples", len(samples)),
	)

	inferStart := time.Now()
	segments, err := s.infer(h.Model(), samples, defaultParams(lang, s.threads))
	if err != nil {
		log.Error("inference failed", logger.MergeWithError(logger.Fields(
			logger.FieldAudioPath, audioPath,
			logger.FieldModelPath, h.Path(),
		), err))
		return nil, err
	}

	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	resp = &transcription.TranscriptionResponse{
		Text:     AssembleTranscript(texts),
		Segments: segments,
		Duration: float64(len(samples)) / SampleRate,
		Language: lang,
	}

	log.Info("transcription finished", logger.Fields(
		logger.FieldAudioPath, audioPath,
		logger.FieldLanguage, lang,
		logger.FieldSamples, len(samples),
		logger.FieldSegments, len(segments),
		logger.FieldThreads, s.threads,
		logger.FieldDuration, time.Since(inferStart).Milliseconds(),
	))
	s.metrics.RecordAudio(ctx, resp.Duration)
	return resp, nil
}

// infer creates fresh state on model, decodes samples and reads the
// segments back in order.
func (s *Service) infer(model Model, samples []float32, params Params) ([]transcription.Segment, error) {
	state, err := model.NewState()
	if err != nil {
		return nil, apperrors.Inference("cannot create inference state", err)
	}
	defer state.Close()

	if err := state.Full(samples, params); err != nil {
		return nil, apperrors.Inference("transcription failed", err)
	}
	n, err := state.NumSegments()
	if err != nil {
		return nil, apperrors.Inference("cannot read segment count", err)
	}

	segments := make([]transcription.Segment, 0, n)
	for i := 0; i < n; i++ {
		raw, err := state.Segment(i)
		if err != nil {
			return nil, apperrors.Inference(fmt.Sprintf("cannot read segment %d", i), err)
		}
		segments = append(segments, transcription.Segment{
			Start: raw.Start.Seconds(),
			End:   raw.End.Seconds(),
			Text:  strings.TrimSpace(raw.Text),
		})
	}
	return segments, nil
}
