package whisper

import (
	"context"
	"fmt"

	"github.com/kbukum/nativebridge/component"
	"github.com/kbukum/nativebridge/logger"
)

// ensure Service satisfies component.Component
var _ component.Component = (*Service)(nil)

// Start preloads the configured model, if any. A failed preload is logged
// and leaves the service uninitialized.
func (s *Service) Start(ctx context.Context) error {
	s.log.Info("whisper service starting", logger.Fields("engine", EngineName, logger.FieldThreads, s.threads))
	if s.cfg.ModelPath == "" {
		return nil
	}
	if _, err := s.Load(ctx, s.cfg.ModelPath); err != nil {
		s.log.Warn("model preload failed; waiting for an explicit init", logger.MergeWithError(
			logger.Fields(logger.FieldModelPath, s.cfg.ModelPath), err))
	}
	return nil
}

// Stop drops the service's reference to the loaded model.
func (s *Service) Stop(_ context.Context) error {
	s.cell.Replace(nil)
	return nil
}

// Health reports degraded until a model is loaded.
func (s *Service) Health(_ context.Context) component.Health {
	path, ok := s.cell.Loaded()
	if !ok {
		return component.Health{
			Name:    s.Name(),
			Status:  component.StatusDegraded,
			Message: "no model loaded",
		}
	}
	return component.Health{
		Name:    s.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("model %s", path),
	}
}
