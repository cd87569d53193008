package whisper

import "fmt"

// Config holds configuration for the whisper transcription service.
type Config struct {
	// ModelPath is loaded on Start when set.
	ModelPath string `mapstructure:"model_path"`

	// DefaultLanguage is used when a request carries no usable hint.
	DefaultLanguage string `mapstructure:"default_language"`

	// Threads caps inference threads; 0 uses every logical core.
	Threads int `mapstructure:"threads"`

	// VerifyModel runs VerifyModelPath before every load.
	VerifyModel bool `mapstructure:"verify_model"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = DefaultLanguage
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Threads < 0 {
		return fmt.Errorf("whisper.threads must be >= 0, got %d", c.Threads)
	}
	if len([]rune(c.DefaultLanguage)) != 2 {
		return fmt.Errorf("whisper.default_language must be a two-letter code, got %q", c.DefaultLanguage)
	}
	return nil
}
