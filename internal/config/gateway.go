package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// EnvGatewayBaseURL overrides the messaging gateway base URL.
	EnvGatewayBaseURL = "GATEWAY_BASE_URL"

	// EnvGatewayAPIKey overrides the messaging gateway API key.
	EnvGatewayAPIKey = "GATEWAY_API_KEY"

	// EnvGatewayWebhookSecret overrides the webhook verification secret.
	EnvGatewayWebhookSecret = "GATEWAY_WEBHOOK_SECRET"

	// EnvGatewayAllowedNumbers overrides the inbound number allowlist
	// as a comma-separated list.
	EnvGatewayAllowedNumbers = "GATEWAY_ALLOWED_NUMBERS"
)

// GatewayConfig contains WhatsApp gateway configuration.
type GatewayConfig struct {
	BaseURL       string `toml:"base_url"`
	APIKey        string `toml:"api_key"`
	WebhookSecret string `toml:"webhook_secret"`
	SendTimeout   string `toml:"send_timeout"`
	MediaTimeout  string `toml:"media_timeout"`

	// AllowedNumbers restricts inbound processing to these phone
	// numbers. Empty means every number is accepted.
	AllowedNumbers []string `toml:"allowed_numbers"`
}

// SendTimeoutDuration parses and returns the send timeout as a time.Duration.
func (c *GatewayConfig) SendTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.SendTimeout)
	return d
}

// MediaTimeoutDuration parses and returns the media download timeout as a time.Duration.
func (c *GatewayConfig) MediaTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.MediaTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates
// the gateway configuration.
func (c *GatewayConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *GatewayConfig) Merge(overlay *GatewayConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.WebhookSecret != "" {
		c.WebhookSecret = overlay.WebhookSecret
	}
	if overlay.SendTimeout != "" {
		c.SendTimeout = overlay.SendTimeout
	}
	if overlay.MediaTimeout != "" {
		c.MediaTimeout = overlay.MediaTimeout
	}
	if len(overlay.AllowedNumbers) > 0 {
		c.AllowedNumbers = overlay.AllowedNumbers
	}
}

func (c *GatewayConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://www.wasenderapi.com/api"
	}
	if c.SendTimeout == "" {
		c.SendTimeout = "15s"
	}
	if c.MediaTimeout == "" {
		c.MediaTimeout = "30s"
	}
}

func (c *GatewayConfig) loadEnv() {
	if v := os.Getenv(EnvGatewayBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvGatewayAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvGatewayWebhookSecret); v != "" {
		c.WebhookSecret = v
	}
	if v := os.Getenv(EnvGatewayAllowedNumbers); v != "" {
		c.AllowedNumbers = nil
		for _, number := range strings.Split(v, ",") {
			if number = strings.TrimSpace(number); number != "" {
				c.AllowedNumbers = append(c.AllowedNumbers, number)
			}
		}
	}
}

func (c *GatewayConfig) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url required")
	}
	if _, err := time.ParseDuration(c.SendTimeout); err != nil {
		return fmt.Errorf("invalid send_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.MediaTimeout); err != nil {
		return fmt.Errorf("invalid media_timeout: %w", err)
	}
	return nil
}
