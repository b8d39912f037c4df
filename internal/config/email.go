package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	// EnvEmailAPIKey overrides the email provider API key.
	EnvEmailAPIKey = "RESEND_API_KEY"

	// EnvEmailFrom overrides the notification sender address.
	EnvEmailFrom = "EMAIL_FROM"

	// EnvEmailRecipients overrides the notification recipient list.
	EnvEmailRecipients = "EMAIL_RECIPIENTS"
)

// EmailConfig contains completion notification configuration.
type EmailConfig struct {
	Enabled    bool     `toml:"enabled"`
	APIKey     string   `toml:"api_key"`
	From       string   `toml:"from"`
	Recipients []string `toml:"recipients"`
}

// Finalize applies defaults, loads environment overrides, and validates
// the email configuration.
func (c *EmailConfig) Finalize() error {
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *EmailConfig) Merge(overlay *EmailConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.From != "" {
		c.From = overlay.From
	}
	if len(overlay.Recipients) > 0 {
		c.Recipients = overlay.Recipients
	}
}

func (c *EmailConfig) loadEnv() {
	if v := os.Getenv(EnvEmailAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvEmailFrom); v != "" {
		c.From = v
	}
	if v := os.Getenv(EnvEmailRecipients); v != "" {
		parts := strings.Split(v, ",")
		recipients := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				recipients = append(recipients, trimmed)
			}
		}
		c.Recipients = recipients
	}
}

func (c *EmailConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.APIKey == "" {
		return fmt.Errorf("api_key required when enabled")
	}
	if c.From == "" {
		return fmt.Errorf("from required when enabled")
	}
	if len(c.Recipients) == 0 {
		return fmt.Errorf("recipients required when enabled")
	}
	return nil
}
