package pagination

import (
	"fmt"
	"os"
	"strconv"
)

// ConfigEnv maps environment variable names for pagination overrides.
type ConfigEnv struct {
	DefaultPageSize string
	MaxPageSize     string
}

// Config contains pagination limits loaded from TOML.
type Config struct {
	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`

	env *ConfigEnv
}

// SetEnv assigns the environment variable names consulted by Finalize.
func (c *Config) SetEnv(env *ConfigEnv) {
	c.env = env
}

// Finalize applies defaults, loads environment overrides, and validates
// the pagination configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if c.DefaultPageSize < 1 {
		return fmt.Errorf("default_page_size must be positive: %d", c.DefaultPageSize)
	}
	if c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("max_page_size (%d) must be >= default_page_size (%d)", c.MaxPageSize, c.DefaultPageSize)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultPageSize > 0 {
		c.DefaultPageSize = overlay.DefaultPageSize
	}
	if overlay.MaxPageSize > 0 {
		c.MaxPageSize = overlay.MaxPageSize
	}
}

func (c *Config) loadDefaults() {
	if c.DefaultPageSize == 0 {
		c.DefaultPageSize = 20
	}
	if c.MaxPageSize == 0 {
		c.MaxPageSize = 100
	}
}

func (c *Config) loadEnv() {
	if c.env == nil {
		return
	}
	if v := os.Getenv(c.env.DefaultPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DefaultPageSize = n
		}
	}
	if v := os.Getenv(c.env.MaxPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxPageSize = n
		}
	}
}
