package capability

import (
	"context"
	"log/slog"

	"github.com/vendetucasa/intake/internal/catalog"
)

// ExtractorWithFallback tries a primary extractor and degrades to a
// secondary when the primary fails. A model outage never stalls the
// conversation; the rule-based extractor keeps it moving.
type ExtractorWithFallback struct {
	primary   Extractor
	secondary Extractor
	logger    *slog.Logger
}

// NewExtractorWithFallback wraps primary with secondary as the
// degraded path.
func NewExtractorWithFallback(primary, secondary Extractor, logger *slog.Logger) *ExtractorWithFallback {
	return &ExtractorWithFallback{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With("system", "capability"),
	}
}

func (e *ExtractorWithFallback) Extract(ctx context.Context, req ExtractionRequest) (Extraction, error) {
	result, err := e.primary.Extract(ctx, req)
	if err == nil {
		return result, nil
	}
	e.logger.Warn("primary extractor failed, using fallback", "error", err)
	return e.secondary.Extract(ctx, req)
}

func (e *ExtractorWithFallback) Edit(ctx context.Context, message string, fields catalog.Fields) (EditUpdate, error) {
	result, err := e.primary.Edit(ctx, message, fields)
	if err == nil {
		return result, nil
	}
	e.logger.Warn("primary edit interpreter failed, using fallback", "error", err)
	return e.secondary.Edit(ctx, message, fields)
}

// ValidatorWithFallback tries a primary document validator and
// degrades to a secondary when the primary fails or the media type is
// outside the primary's reach.
type ValidatorWithFallback struct {
	primary   DocumentValidator
	secondary DocumentValidator
	logger    *slog.Logger
}

// NewValidatorWithFallback wraps primary with secondary as the
// degraded path.
func NewValidatorWithFallback(primary, secondary DocumentValidator, logger *slog.Logger) *ValidatorWithFallback {
	return &ValidatorWithFallback{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With("system", "capability"),
	}
}

func (v *ValidatorWithFallback) Validate(ctx context.Context, data []byte, kind string, mimeType string) (Verdict, error) {
	verdict, err := v.primary.Validate(ctx, data, kind, mimeType)
	if err == nil {
		return verdict, nil
	}
	v.logger.Warn("primary validator failed, using fallback",
		"kind", kind,
		"mime_type", mimeType,
		"error", err,
	)
	return v.secondary.Validate(ctx, data, kind, mimeType)
}
