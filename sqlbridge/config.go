package sqlbridge

import (
	"fmt"
	"strings"
	"time"
)

// Config configures locator resolution and the per-call store connection.
type Config struct {
	// DataDir overrides the application-private data directory.
	DataDir string `mapstructure:"data_dir"`

	// AppIdentifier names the directory created under the platform data dir.
	AppIdentifier string `mapstructure:"app_identifier"`

	// LocatorPrefix marks a locator as a logical store name (e.g. "sqlite:").
	LocatorPrefix string `mapstructure:"locator_prefix"`

	// LogLevel controls gorm statement logging: silent, error, warn or info.
	LogLevel string `mapstructure:"log_level"`

	// SlowQueryThreshold is the duration above which statements are logged as slow (e.g. "200ms").
	SlowQueryThreshold string `mapstructure:"slow_query_threshold"`

	// BusyAttempts is how many times a statement is tried while the store is
	// locked by another connection. The default of 1 never retries.
	BusyAttempts int `mapstructure:"busy_attempts"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.AppIdentifier == "" {
		c.AppIdentifier = "nativebridge"
	}
	if c.LocatorPrefix == "" {
		c.LocatorPrefix = "sqlite:"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.SlowQueryThreshold == "" {
		c.SlowQueryThreshold = "200ms"
	}
	if c.BusyAttempts == 0 {
		c.BusyAttempts = 1
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.ContainsAny(c.AppIdentifier, `/\`) {
		return fmt.Errorf("sql.app_identifier must not contain path separators: %q", c.AppIdentifier)
	}
	switch strings.ToLower(c.LogLevel) {
	case "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("sql.log_level must be one of silent, error, warn, info; got %q", c.LogLevel)
	}
	if _, err := time.ParseDuration(c.SlowQueryThreshold); err != nil {
		return fmt.Errorf("invalid sql.slow_query_threshold %q: %w", c.SlowQueryThreshold, err)
	}
	if c.BusyAttempts < 1 {
		return fmt.Errorf("sql.busy_attempts must be at least 1 (got: %d)", c.BusyAttempts)
	}
	return nil
}
