package sqlbridge

import (
	"context"

	"github.com/kbukum/nativebridge/component"
	"github.com/kbukum/nativebridge/logger"
)

const componentName = "sqlbridge"

// ensure Bridge satisfies component.Component
var _ component.Component = (*Bridge)(nil)

// Name returns the component name.
func (b *Bridge) Name() string { return componentName }

// Start prepares the application data directory. A failure is logged and
// reported through Health; prefixed locators will fail until it resolves.
func (b *Bridge) Start(ctx context.Context) error {
	dir, err := b.resolver.DataDir()
	if err != nil {
		b.log.Warn("application data directory unavailable", logger.MergeWithError(nil, err))
		return nil
	}
	b.log.Info("sql bridge ready", logger.Fields("data_dir", dir, "locator_prefix", b.resolver.Prefix()))
	return nil
}

// Stop is a no-op; no connection outlives a call.
func (b *Bridge) Stop(_ context.Context) error { return nil }

// Health reports whether logical store locators can currently be resolved.
func (b *Bridge) Health(_ context.Context) component.Health {
	if _, err := b.resolver.DataDir(); err != nil {
		return component.Health{
			Name:    b.Name(),
			Status:  component.StatusUnhealthy,
			Message: err.Error(),
		}
	}
	return component.Health{Name: b.Name(), Status: component.StatusHealthy}
}
