package logging

import "os"

// Env maps environment variable names for logging overrides.
type Env struct {
	Level  string
	Format string
}

// Config contains logging configuration loaded from TOML.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`

	env *Env
}

// SetEnv assigns the environment variable names consulted by Finalize.
func (c *Config) SetEnv(env *Env) {
	c.env = env
}

// Finalize applies defaults, loads environment overrides, and validates
// the logging configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.Level.Validate(); err != nil {
		return err
	}
	return c.Format.Validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
}

func (c *Config) loadEnv() {
	if c.env == nil {
		return
	}
	if v := os.Getenv(c.env.Level); v != "" {
		c.Level = Level(v)
	}
	if v := os.Getenv(c.env.Format); v != "" {
		c.Format = Format(v)
	}
}
