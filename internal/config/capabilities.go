package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// EnvCapabilitiesMode overrides the capability mode.
	EnvCapabilitiesMode = "CAPABILITIES_MODE"

	// EnvAnthropicAPIKey overrides the Anthropic API key.
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"

	// EnvCapabilitiesModel overrides the model identifier.
	EnvCapabilitiesModel = "CAPABILITIES_MODEL"
)

// Capability modes. Deterministic mode runs the rule-based extractors and
// validators without any model calls.
const (
	CapabilityModeDeterministic = "deterministic"
	CapabilityModeClaude        = "claude"
)

// CapabilitiesConfig contains language capability configuration.
type CapabilitiesConfig struct {
	Mode           string `toml:"mode"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	MaxTokens      int64  `toml:"max_tokens"`
	RequestTimeout string `toml:"request_timeout"`
}

// RequestTimeoutDuration parses and returns the request timeout as a time.Duration.
func (c *CapabilitiesConfig) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates
// the capabilities configuration.
func (c *CapabilitiesConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *CapabilitiesConfig) Merge(overlay *CapabilitiesConfig) {
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.MaxTokens != 0 {
		c.MaxTokens = overlay.MaxTokens
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
}

func (c *CapabilitiesConfig) loadDefaults() {
	if c.Mode == "" {
		c.Mode = CapabilityModeDeterministic
	}
	if c.Model == "" {
		c.Model = "claude-3-5-haiku-latest"
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 1024
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "30s"
	}
}

func (c *CapabilitiesConfig) loadEnv() {
	if v := os.Getenv(EnvCapabilitiesMode); v != "" {
		c.Mode = v
	}
	if v := os.Getenv(EnvAnthropicAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvCapabilitiesModel); v != "" {
		c.Model = v
	}
}

func (c *CapabilitiesConfig) validate() error {
	switch c.Mode {
	case CapabilityModeDeterministic, CapabilityModeClaude:
	default:
		return fmt.Errorf("invalid mode: %s", c.Mode)
	}
	if c.Mode == CapabilityModeClaude && c.APIKey == "" {
		return fmt.Errorf("api_key required for claude mode")
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request_timeout: %w", err)
	}
	return nil
}
