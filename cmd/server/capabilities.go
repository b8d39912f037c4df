package main

import (
	"log/slog"

	"github.com/vendetucasa/intake/internal/capability"
	"github.com/vendetucasa/intake/internal/config"
)

// buildCapabilities selects the configured extraction and validation
// implementations. Claude mode always carries the deterministic
// implementations as its fallback path.
func buildCapabilities(cfg *config.Config, logger *slog.Logger) (capability.Extractor, capability.DocumentValidator) {
	extractor := capability.DeterministicExtractor{}
	validator := capability.DeterministicValidator{}

	if cfg.Capabilities.Mode != config.CapabilityModeClaude {
		return extractor, validator
	}

	claude := capability.NewClaude(&cfg.Capabilities, logger)
	return capability.NewExtractorWithFallback(claude, extractor, logger),
		capability.NewValidatorWithFallback(claude, validator, logger)
}
