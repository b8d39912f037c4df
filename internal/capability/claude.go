package capability

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/vendetucasa/intake/internal/catalog"
	"github.com/vendetucasa/intake/internal/config"
)

// ErrUnsupportedMedia indicates a document type the model cannot
// inspect. Callers are expected to fall back to structural checks.
var ErrUnsupportedMedia = errors.New("capability: unsupported media type")

// Claude implements Extractor and DocumentValidator against the
// Anthropic Messages API.
type Claude struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	timeout   time.Duration
	logger    *slog.Logger
}

// NewClaude constructs a model-backed capability from configuration.
func NewClaude(cfg *config.CapabilitiesConfig, logger *slog.Logger) *Claude {
	return &Claude{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     anthropic.Model(cfg.Model),
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.RequestTimeoutDuration(),
		logger:    logger.With("system", "capability", "mode", "claude"),
	}
}

// Extract interprets a collecting-mode turn through the model.
func (c *Claude) Extract(ctx context.Context, req ExtractionRequest) (Extraction, error) {
	content := []anthropic.ContentBlockParamUnion{
		anthropic.NewTextBlock(extractionUserPrompt(req.Message)),
	}

	text, err := c.complete(ctx, extractionSystemPrompt(req), content)
	if err != nil {
		return Extraction{}, fmt.Errorf("extract: %w", err)
	}

	var result Extraction
	if err := decodeResponse(text, &result); err != nil {
		return Extraction{}, fmt.Errorf("extract: %w", err)
	}
	if result.ExtractedFields == nil {
		result.ExtractedFields = catalog.Fields{}
	}
	return result, nil
}

// Edit interprets an editing-mode turn through the model.
func (c *Claude) Edit(ctx context.Context, message string, fields catalog.Fields) (EditUpdate, error) {
	content := []anthropic.ContentBlockParamUnion{
		anthropic.NewTextBlock(fmt.Sprintf("El cliente dice: %q", message)),
	}

	text, err := c.complete(ctx, editSystemPrompt(fields), content)
	if err != nil {
		return EditUpdate{}, fmt.Errorf("edit: %w", err)
	}

	var result EditUpdate
	if err := decodeResponse(text, &result); err != nil {
		return EditUpdate{}, fmt.Errorf("edit: %w", err)
	}
	if result.UpdatedFields == nil {
		result.UpdatedFields = catalog.Fields{}
	}
	return result, nil
}

// Validate inspects an uploaded image through the model's vision
// input. PDFs are reported as unsupported so the caller can apply the
// structural fallback instead.
func (c *Claude) Validate(ctx context.Context, data []byte, kind string, mimeType string) (Verdict, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return Verdict{}, fmt.Errorf("validate %s: %w", mimeType, ErrUnsupportedMedia)
	}

	content := []anthropic.ContentBlockParamUnion{
		anthropic.NewImageBlockBase64(mimeType, base64.StdEncoding.EncodeToString(data)),
		anthropic.NewTextBlock(validationUserPrompt(kind)),
	}

	text, err := c.complete(ctx, validationSystemPrompt(kind), content)
	if err != nil {
		return Verdict{}, fmt.Errorf("validate: %w", err)
	}

	var verdict Verdict
	if err := decodeResponse(text, &verdict); err != nil {
		return Verdict{}, fmt.Errorf("validate: %w", err)
	}
	verdict.Confidence = clampConfidence(verdict.Confidence)
	return verdict, nil
}

func (c *Claude) complete(ctx context.Context, system string, content []anthropic.ContentBlockParamUnion) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system, Type: "text"},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(content...),
		},
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for i := range resp.Content {
		block := &resp.Content[i]
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}
	if text.Len() == 0 {
		return "", ErrParseResponse
	}
	return text.String(), nil
}
