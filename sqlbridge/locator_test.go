package sqlbridge

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	apperrors "github.com/kbukum/nativebridge/errors"
)

func TestResolver_Resolve(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	r := NewResolver(Config{DataDir: dataDir})

	tests := []struct {
		name    string
		locator string
		want    string
	}{
		{"logical", "sqlite:notes.db", filepath.Join(dataDir, "notes.db")},
		{"logical nested", "sqlite:a/b.db", filepath.Join(dataDir, "a", "b.db")},
		{"logical absolute", "sqlite:/tmp/x.db", "/tmp/x.db"},
		{"literal", "/var/tmp/other.db", "/var/tmp/other.db"},
		{"literal relative", "local.db", "local.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.locator)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}

	if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
		t.Errorf("expected data dir to be created, stat err=%v", err)
	}
}

func TestResolver_LiteralDoesNotTouchDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "never")
	r := NewResolver(Config{DataDir: dataDir})
	if _, err := r.Resolve("/some/where.db"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dataDir); !os.IsNotExist(err) {
		t.Errorf("expected data dir to stay absent, got %v", err)
	}
}

func TestResolver_DataDirUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewResolver(Config{DataDir: filepath.Join(blocker, "data")})

	_, err := r.Resolve("sqlite:x.db")
	if !apperrors.Is(err, apperrors.ErrCodeResourceUnavailable) {
		t.Errorf("expected RESOURCE_UNAVAILABLE, got %v", err)
	}
}

func TestResolver_CustomPrefix(t *testing.T) {
	dataDir := t.TempDir()
	r := NewResolver(Config{DataDir: dataDir, LocatorPrefix: "db://"})
	got, err := r.Resolve("db://main.sqlite")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dataDir, "main.sqlite") {
		t.Errorf("unexpected path %q", got)
	}
	if !r.IsLogical("db://x") || r.IsLogical("sqlite:x") {
		t.Error("unexpected IsLogical result")
	}
}

func TestPlatformDataDir_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_DATA_HOME is only consulted on linux")
	}
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := platformDataDir("nativebridge")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, "nativebridge") {
		t.Errorf("unexpected data dir %q", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"bad level", Config{LogLevel: "verbose"}, true},
		{"bad threshold", Config{SlowQueryThreshold: "soon"}, true},
		{"separator in identifier", Config{AppIdentifier: "a/b"}, true},
		{"negative busy attempts", Config{BusyAttempts: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.ApplyDefaults()
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
