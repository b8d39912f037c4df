package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

const (
	// EnvStorageBasePath overrides the storage base path.
	EnvStorageBasePath = "STORAGE_BASE_PATH"

	// EnvStorageMaxMediaSize overrides the maximum accepted media size.
	EnvStorageMaxMediaSize = "STORAGE_MAX_MEDIA_SIZE"
)

// StorageConfig contains blob storage configuration.
type StorageConfig struct {
	// BasePath is the root directory for filesystem storage.
	// Default: ".data/media"
	BasePath        string `toml:"base_path"`
	MaxMediaSize    string `toml:"max_media_size"`
	maxMediaSizeVal int64
}

// MaxMediaSizeBytes returns the parsed media size limit in bytes.
func (c *StorageConfig) MaxMediaSizeBytes() int64 {
	return c.maxMediaSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *StorageConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *StorageConfig) Merge(overlay *StorageConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}

	if size, err := units.FromHumanSize(overlay.MaxMediaSize); err == nil {
		c.MaxMediaSize = overlay.MaxMediaSize
		c.maxMediaSizeVal = size
	}
}

func (c *StorageConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = ".data/media"
	}
	if c.MaxMediaSize == "" {
		c.MaxMediaSize = "10MB"
	}
}

func (c *StorageConfig) loadEnv() {
	if v := os.Getenv(EnvStorageBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvStorageMaxMediaSize); v != "" {
		c.MaxMediaSize = v
	}
}

func (c *StorageConfig) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}

	size, err := units.FromHumanSize(c.MaxMediaSize)
	if err != nil {
		return fmt.Errorf("invalid max_media_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_media_size must be positive")
	}
	c.maxMediaSizeVal = size

	return nil
}
