// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/vendetucasa/intake/pkg/database"
	"github.com/vendetucasa/intake/pkg/logging"
	"github.com/vendetucasa/intake/pkg/pagination"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv specifies the environment name for configuration overlays.
	EnvServiceEnv = "SERVICE_ENV"

	// EnvServiceShutdownTimeout overrides the service shutdown timeout.
	EnvServiceShutdownTimeout = "SERVICE_SHUTDOWN_TIMEOUT"
)

var databaseEnv = &database.Env{
	Host:     "DATABASE_HOST",
	Port:     "DATABASE_PORT",
	Name:     "DATABASE_NAME",
	User:     "DATABASE_USER",
	Password: "DATABASE_PASSWORD",
}

var loggingEnv = &logging.Env{
	Level:  "LOGGING_LEVEL",
	Format: "LOGGING_FORMAT",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "API_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "API_PAGINATION_MAX_PAGE_SIZE",
}

// Config represents the root service configuration.
type Config struct {
	Server          ServerConfig       `toml:"server"`
	Database        database.Config    `toml:"database"`
	Logging         logging.Config     `toml:"logging"`
	Storage         StorageConfig      `toml:"storage"`
	Capabilities    CapabilitiesConfig `toml:"capabilities"`
	Gateway         GatewayConfig      `toml:"gateway"`
	Email           EmailConfig        `toml:"email"`
	Queue           QueueConfig        `toml:"queue"`
	Pagination      pagination.Config  `toml:"pagination"`
	ShutdownTimeout string             `toml:"shutdown_timeout"`
}

// ShutdownTimeoutDuration parses and returns the shutdown timeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads and parses the base configuration file and applies any
// environment-specific overlay.
func Load() (*Config, error) {
	cfg, err := load(BaseConfigFile)
	if err != nil {
		return nil, err
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	c.Logging.SetEnv(loggingEnv)
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Storage.Finalize(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Capabilities.Finalize(); err != nil {
		return fmt.Errorf("capabilities: %w", err)
	}
	if err := c.Gateway.Finalize(); err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	if err := c.Email.Finalize(); err != nil {
		return fmt.Errorf("email: %w", err)
	}
	if err := c.Queue.Finalize(); err != nil {
		return fmt.Errorf("queue: %w", err)
	}
	c.Pagination.SetEnv(paginationEnv)
	if err := c.Pagination.Finalize(); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Logging.Merge(&overlay.Logging)
	c.Storage.Merge(&overlay.Storage)
	c.Capabilities.Merge(&overlay.Capabilities)
	c.Gateway.Merge(&overlay.Gateway)
	c.Email.Merge(&overlay.Email)
	c.Queue.Merge(&overlay.Queue)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvServiceShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		overlayPath := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(overlayPath); err == nil {
			return overlayPath
		}
	}
	return ""
}
