package sqlbridge

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/kbukum/nativebridge/errors"
	"github.com/kbukum/nativebridge/logger"
	"github.com/kbukum/nativebridge/observability"
	"github.com/kbukum/nativebridge/resilience"
)

// Bridge executes statements against store files named by locators. It
// keeps no connection between calls: every operation opens, uses and
// closes its own.
type Bridge struct {
	cfg      Config
	resolver *Resolver
	log      *logger.Logger
	metrics  *observability.Metrics
}

// New creates a Bridge.
func New(cfg Config, log *logger.Logger) *Bridge {
	cfg.ApplyDefaults()
	return &Bridge{
		cfg:      cfg,
		resolver: NewResolver(cfg),
		log:      log.WithComponent(componentName),
		metrics:  observability.DefaultMetrics(),
	}
}

// SetMetrics replaces the instruments operations are recorded on.
func (b *Bridge) SetMetrics(m *observability.Metrics) { b.metrics = m }

// Resolver returns the bridge's locator resolver.
func (b *Bridge) Resolver() *Resolver { return b.resolver }

// Load resolves locator, verifies the store can be opened and returns the
// resolved path.
func (b *Bridge) Load(ctx context.Context, locator string) (path string, err error) {
	ctx, span := observability.StartSpan(ctx, "sqlbridge.load", attribute.String("db.locator", locator))
	begin := time.Now()
	defer func() {
		b.metrics.RecordOperation(ctx, componentName, "load", time.Since(begin), err)
		observability.EndSpan(span, err)
	}()

	path, err = b.resolver.Resolve(locator)
	if err != nil {
		b.logFailure(ctx, "load", err, logger.Fields(logger.FieldLocator, locator))
		return "", err
	}
	conn, err := Open(ctx, path, b.cfg, b.log)
	if err != nil {
		b.logFailure(ctx, "load", err, logger.Fields(logger.FieldLocator, locator, logger.FieldPath, path))
		return "", err
	}
	_ = conn.Close()

	b.log.WithContext(ctx).Debug("store loaded", logger.Fields(
		logger.FieldLocator, locator,
		logger.FieldPath, path,
		logger.FieldDuration, time.Since(begin).Milliseconds(),
	))
	return path, nil
}

// Select runs a row-returning statement. params are decoded JSON values and
// are coerced before any connection is opened.
func (b *Bridge) Select(ctx context.Context, locator, stmt string, params []any) (rows []map[string]any, err error) {
	ctx, span := observability.StartSpan(ctx, "sqlbridge.select",
		attribute.String("db.locator", locator),
		attribute.String("db.statement", stmt),
	)
	begin := time.Now()
	defer func() {
		b.metrics.RecordOperation(ctx, componentName, "select", time.Since(begin), err)
		observability.EndSpan(span, err)
	}()

	err = b.withConn(ctx, "select", locator, stmt, params, func(conn *Conn, values []Value) error {
		var qerr error
		rows, qerr = conn.Query(ctx, stmt, values)
		return qerr
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("db.rows", len(rows)))
	b.log.WithContext(ctx).Debug("select finished", logger.Fields(
		logger.FieldLocator, locator,
		logger.FieldRows, len(rows),
		logger.FieldDuration, time.Since(begin).Milliseconds(),
	))
	return rows, nil
}

// Execute runs a statement and discards any result set.
func (b *Bridge) Execute(ctx context.Context, locator, stmt string, params []any) (err error) {
	ctx, span := observability.StartSpan(ctx, "sqlbridge.execute",
		attribute.String("db.locator", locator),
		attribute.String("db.statement", stmt),
	)
	begin := time.Now()
	defer func() {
		b.metrics.RecordOperation(ctx, componentName, "execute", time.Since(begin), err)
		observability.EndSpan(span, err)
	}()

	var affected int64
	err = b.withConn(ctx, "execute", locator, stmt, params, func(conn *Conn, values []Value) error {
		var xerr error
		affected, xerr = conn.Exec(ctx, stmt, values)
		return xerr
	})
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", affected))
	b.log.WithContext(ctx).Debug("execute finished", logger.Fields(
		logger.FieldLocator, locator,
		logger.FieldRows, affected,
		logger.FieldDuration, time.Since(begin).Milliseconds(),
	))
	return nil
}

// Close exists for symmetry with Load. The bridge holds no connection
// between calls, so it always succeeds.
func (b *Bridge) Close(ctx context.Context, locator string) error {
	b.log.WithContext(ctx).Debug("close requested", logger.Fields(logger.FieldLocator, locator))
	return nil
}

func (b *Bridge) withConn(ctx context.Context, op, locator, stmt string, params []any, fn func(*Conn, []Value) error) error {
	fields := logger.Fields(logger.FieldLocator, locator, logger.FieldStatement, stmt, logger.FieldParams, len(params))

	values, err := FromDynamicAll(params)
	if err != nil {
		b.logFailure(ctx, op, err, fields)
		return err
	}
	path, err := b.resolver.Resolve(locator)
	if err != nil {
		b.logFailure(ctx, op, err, fields)
		return err
	}
	conn, err := Open(ctx, path, b.cfg, b.log)
	if err != nil {
		b.logFailure(ctx, op, err, fields)
		return err
	}
	defer conn.Close()

	err = resilience.Do(ctx, b.busyPolicy(ctx, op, locator), func(context.Context) error {
		return fn(conn, values)
	})
	if err != nil {
		b.logFailure(ctx, op, err, fields)
		return err
	}
	return nil
}

func (b *Bridge) logFailure(ctx context.Context, op string, err error, fields map[string]interface{}) {
	f := logger.MergeWithError(fields, err)
	f[logger.FieldOperation] = op
	f[logger.FieldErrorCode] = string(apperrors.CodeOf(err))
	b.log.WithContext(ctx).Warn("sql operation failed", f)
}
