package sqlbridge

import (
	"context"
	"errors"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/kbukum/nativebridge/logger"
	"github.com/kbukum/nativebridge/resilience"
)

// isBusy reports whether err comes from the store being locked by another
// connection. Such statements were not applied and can be tried again.
func isBusy(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
}

func (b *Bridge) busyPolicy(ctx context.Context, op, locator string) resilience.Policy {
	p := resilience.DefaultPolicy()
	p.MaxAttempts = b.cfg.BusyAttempts
	p.RetryIf = isBusy
	p.OnRetry = func(attempt int, err error, wait time.Duration) {
		b.log.WithContext(ctx).Debug("store busy, retrying", logger.Fields(
			logger.FieldOperation, op,
			logger.FieldLocator, locator,
			"attempt", attempt,
			"backoff_ms", wait.Milliseconds(),
		))
	}
	return p
}
