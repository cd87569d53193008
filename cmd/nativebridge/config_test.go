package main

import (
	"path/filepath"
	"testing"

	"github.com/kbukum/nativebridge/config"
)

func TestAppConfig_LoadShippedFile(t *testing.T) {
	var cfg AppConfig
	path := filepath.Join(".", "config.yml")
	if err := config.Load(serviceName, &cfg, config.WithConfigFile(path), config.WithEnvPrefix("NBCMDTEST")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("shipped config does not validate: %v", err)
	}
	if cfg.Server.Port != 8787 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("unexpected server section %+v", cfg.Server)
	}
	if cfg.SQL.LocatorPrefix != "sqlite:" || cfg.Whisper.DefaultLanguage != "de" {
		t.Errorf("unexpected sections sql=%+v whisper=%+v", cfg.SQL, cfg.Whisper)
	}
	if cfg.Tracing.ServiceName != "nativebridge" {
		t.Errorf("expected tracing service name propagated, got %q", cfg.Tracing.ServiceName)
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	cfg.ApplyDefaults()
	if cfg.Name != serviceName {
		t.Errorf("expected default name, got %q", cfg.Name)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	cfg.Whisper.Threads = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected negative threads to fail validation")
	}
}
