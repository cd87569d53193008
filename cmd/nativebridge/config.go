package main

import (
	"fmt"

	"github.com/kbukum/nativebridge/config"
	"github.com/kbukum/nativebridge/observability"
	"github.com/kbukum/nativebridge/server"
	"github.com/kbukum/nativebridge/sqlbridge"
	"github.com/kbukum/nativebridge/transcription/whisper"
)

// AppConfig is the full process configuration loaded from config.yml, .env
// and NATIVEBRIDGE_* environment variables.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server  server.Config              `yaml:"server" mapstructure:"server"`
	SQL     sqlbridge.Config           `yaml:"sql" mapstructure:"sql"`
	Whisper whisper.Config             `yaml:"whisper" mapstructure:"whisper"`
	Tracing observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// ApplyDefaults fills unset fields in every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.SQL.ApplyDefaults()
	c.Whisper.ApplyDefaults()
	c.Tracing.ApplyDefaults()
	c.Tracing.ServiceName = c.Name
	c.Tracing.Version = c.Version
	c.Tracing.Environment = c.Environment
	c.Metrics.ApplyDefaults()
	c.Metrics.ServiceName = c.Name
	c.Metrics.Version = c.Version
	c.Metrics.Environment = c.Environment
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.SQL.Validate(); err != nil {
		return fmt.Errorf("sql: %w", err)
	}
	if err := c.Whisper.Validate(); err != nil {
		return fmt.Errorf("whisper: %w", err)
	}
	if err := c.Tracing.Validate(); err != nil {
		return err
	}
	return c.Metrics.Validate()
}
