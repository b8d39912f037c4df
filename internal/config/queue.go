package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// EnvQueueTextDelay overrides the text coalescing delay.
	EnvQueueTextDelay = "QUEUE_TEXT_DELAY"

	// EnvQueueMediaDelay overrides the media coalescing delay.
	EnvQueueMediaDelay = "QUEUE_MEDIA_DELAY"
)

// QueueConfig contains inbound message coalescing configuration.
type QueueConfig struct {
	// TextDelay is how long to wait after a text message before
	// processing, so rapid consecutive messages merge into one turn.
	TextDelay string `toml:"text_delay"`

	// MediaDelay is the shorter wait applied when a turn carries an
	// attachment.
	MediaDelay string `toml:"media_delay"`
}

// TextDelayDuration parses and returns the text delay as a time.Duration.
func (c *QueueConfig) TextDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.TextDelay)
	return d
}

// MediaDelayDuration parses and returns the media delay as a time.Duration.
func (c *QueueConfig) MediaDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.MediaDelay)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates
// the queue configuration.
func (c *QueueConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *QueueConfig) Merge(overlay *QueueConfig) {
	if overlay.TextDelay != "" {
		c.TextDelay = overlay.TextDelay
	}
	if overlay.MediaDelay != "" {
		c.MediaDelay = overlay.MediaDelay
	}
}

func (c *QueueConfig) loadDefaults() {
	if c.TextDelay == "" {
		c.TextDelay = "2s"
	}
	if c.MediaDelay == "" {
		c.MediaDelay = "1s"
	}
}

func (c *QueueConfig) loadEnv() {
	if v := os.Getenv(EnvQueueTextDelay); v != "" {
		c.TextDelay = v
	}
	if v := os.Getenv(EnvQueueMediaDelay); v != "" {
		c.MediaDelay = v
	}
}

func (c *QueueConfig) validate() error {
	if _, err := time.ParseDuration(c.TextDelay); err != nil {
		return fmt.Errorf("invalid text_delay: %w", err)
	}
	if _, err := time.ParseDuration(c.MediaDelay); err != nil {
		return fmt.Errorf("invalid media_delay: %w", err)
	}
	return nil
}
