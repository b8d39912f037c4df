// Package capability defines the narrow contracts for the external
// intelligence the conversation engine consumes: free-form field
// extraction, edit interpretation, and document validation. Each
// contract has a deterministic rule-based implementation and a
// Claude-backed one, selected by configuration; the deterministic
// implementation doubles as the fallback when a model call fails.
package capability

import (
	"context"

	"github.com/vendetucasa/intake/internal/catalog"
)

// Action is the extractor's suggestion for what the conversation
// should do next.
type Action string

const (
	ActionContinue        Action = "continue"
	ActionComplete        Action = "complete"
	ActionRequestDocument Action = "request_document"
)

// EditAction signals whether the seller is done editing.
type EditAction string

const (
	EditContinue EditAction = "continue_editing"
	EditFinish   EditAction = "finish_editing"
)

// ExtractionRequest carries one free-form turn plus the conversation
// state the extractor may use.
type ExtractionRequest struct {
	Message    string
	Fields     catalog.Fields
	Missing    []string
	ClientName string
	Address    string
	City       string
}

// Extraction is the extractor's interpretation of a turn. Extracted
// fields are merged into the listing by the engine; a single message
// may populate several fields.
type Extraction struct {
	ResponseText    string         `json:"message"`
	ExtractedFields catalog.Fields `json:"extracted_data"`
	NextAction      Action         `json:"next_action"`
}

// EditUpdate is the interpretation of a turn while in editing mode.
type EditUpdate struct {
	ResponseText  string         `json:"message"`
	UpdatedFields catalog.Fields `json:"updated_data"`
	Action        EditAction     `json:"action"`
}

// Extractor interprets free-form seller messages.
type Extractor interface {
	// Extract maps a collecting-mode turn onto field values.
	Extract(ctx context.Context, req ExtractionRequest) (Extraction, error)

	// Edit maps an editing-mode turn onto field updates, constrained
	// to the existing field map.
	Edit(ctx context.Context, message string, fields catalog.Fields) (EditUpdate, error)
}

// Verdict is the outcome of validating an uploaded document.
type Verdict struct {
	IsValid       bool              `json:"isValid"`
	Confidence    int               `json:"confidence"`
	Reason        string            `json:"reason"`
	ExtractedInfo map[string]string `json:"extractedInfo"`
}

// Accepted applies the intake acceptance rule to a verdict. The
// confidence bound is strict.
func (v Verdict) Accepted() bool {
	return v.IsValid && v.Confidence > 50
}

// DocumentValidator decides whether an uploaded file is the requested
// document kind.
type DocumentValidator interface {
	Validate(ctx context.Context, data []byte, kind string, mimeType string) (Verdict, error)
}
