package sqlbridge

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	apperrors "github.com/kbukum/nativebridge/errors"
)

// Resolver turns store locators into filesystem paths.
type Resolver struct {
	prefix  string
	dataDir func() (string, error)
}

// NewResolver creates a resolver for cfg. An explicit cfg.DataDir wins over
// the platform data directory.
func NewResolver(cfg Config) *Resolver {
	cfg.ApplyDefaults()
	r := &Resolver{prefix: cfg.LocatorPrefix}
	if cfg.DataDir != "" {
		dir := cfg.DataDir
		r.dataDir = func() (string, error) { return dir, nil }
	} else {
		app := cfg.AppIdentifier
		r.dataDir = func() (string, error) { return platformDataDir(app) }
	}
	return r
}

// Prefix returns the logical-store prefix.
func (r *Resolver) Prefix() string { return r.prefix }

// IsLogical reports whether locator names a store under the data directory.
func (r *Resolver) IsLogical(locator string) bool {
	return strings.HasPrefix(locator, r.prefix)
}

// Resolve returns the filesystem path for locator. Prefixed locators are
// joined onto the data directory, which is created if missing; anything
// else is returned verbatim.
func (r *Resolver) Resolve(locator string) (string, error) {
	if !r.IsLogical(locator) {
		return locator, nil
	}
	name := strings.TrimPrefix(locator, r.prefix)

	dir, err := r.DataDir()
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	return filepath.Join(dir, name), nil
}

func platformDataDir(app string) (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, app), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", app), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, app), nil
}

// DataDir returns the application-private data directory, creating it if
// necessary.
func (r *Resolver) DataDir() (string, error) {
	dir, err := r.dataDir()
	if err != nil {
		return "", apperrors.ResourceUnavailable("application data directory is not available", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.ResourceUnavailable(fmt.Sprintf("cannot create application data directory %s", dir), err)
	}
	return dir, nil
}
