package sqlbridge

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "github.com/kbukum/nativebridge/errors"
	"github.com/kbukum/nativebridge/logger"
)

// Conn is a single-use connection to one store file. Statements run on the
// underlying *sql.DB so positional parameters reach the driver untouched.
type Conn struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	path   string
}

// Open opens (creating if absent) the store at path. The parent directory
// is created first.
func Open(ctx context.Context, path string, cfg Config, log *logger.Logger) (*Conn, error) {
	cfg.ApplyDefaults()

	if dir := parentDir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperrors.IO(fmt.Sprintf("cannot create directory %s", dir), err)
		}
	}

	slowThreshold, _ := time.ParseDuration(cfg.SlowQueryThreshold)
	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newGormLogger(log, slowThreshold, parseLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, apperrors.IO(fmt.Sprintf("cannot open store %s", path), err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, apperrors.IO(fmt.Sprintf("cannot open store %s", path), err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, apperrors.IO(fmt.Sprintf("cannot open store %s", path), err)
	}
	return &Conn{gormDB: gormDB, sqlDB: sqlDB, path: path}, nil
}

// Path returns the file the connection was opened on.
func (c *Conn) Path() string { return c.path }

// Query runs stmt with params bound positionally and returns one map per
// row keyed by column name. A statement producing no rows yields an empty,
// non-nil slice.
func (c *Conn) Query(ctx context.Context, stmt string, params []Value) (rows []map[string]any, err error) {
	begin := time.Now()
	defer func() {
		c.gormDB.Logger.Trace(ctx, begin, func() (string, int64) { return stmt, int64(len(rows)) }, err)
	}()

	rs, err := c.sqlDB.QueryContext(ctx, c.storageClassQuery(ctx, stmt), Args(params)...)
	if err != nil {
		return nil, apperrors.Query("statement failed", err)
	}
	defer rs.Close()

	cols, err := rs.Columns()
	if err != nil {
		return nil, apperrors.Query("cannot read result columns", err)
	}

	rows = make([]map[string]any, 0)
	raw := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}
	for rs.Next() {
		if err := rs.Scan(dest...); err != nil {
			return nil, apperrors.Query("cannot decode row", err)
		}
		row := make(map[string]any, len(cols))
		for i, name := range cols {
			row[name] = ToDynamic(fromDriver(raw[i]))
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, apperrors.Query("cannot read rows", err)
	}
	return rows, nil
}

// Exec runs stmt with params bound positionally, discarding any result set.
// It returns the number of affected rows as reported by the driver.
func (c *Conn) Exec(ctx context.Context, stmt string, params []Value) (affected int64, err error) {
	begin := time.Now()
	defer func() {
		c.gormDB.Logger.Trace(ctx, begin, func() (string, int64) { return stmt, affected }, err)
	}()

	res, err := c.sqlDB.ExecContext(ctx, stmt, Args(params)...)
	if err != nil {
		return 0, apperrors.Query("statement failed", err)
	}
	affected, _ = res.RowsAffected()
	return affected, nil
}

// Close releases the connection.
func (c *Conn) Close() error {
	return c.sqlDB.Close()
}

func parentDir(path string) string {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return ""
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}
	return dir
}
