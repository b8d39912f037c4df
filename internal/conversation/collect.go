package conversation

import (
	"context"
	"fmt"

	"github.com/vendetucasa/intake/internal/capability"
	"github.com/vendetucasa/intake/internal/catalog"
	"github.com/vendetucasa/intake/internal/knowledge"
	"github.com/vendetucasa/intake/internal/listing"
)

// collect handles a turn while fields are being gathered. Attachments
// route to document intake; questions get a knowledge base answer
// before the current step is re-asked; everything else goes through
// the extractor.
func (e *Engine) collect(ctx context.Context, l *listing.Listing, text string, att *Attachment) (string, error) {
	if att != nil {
		return e.document(ctx, l, att)
	}

	if knowledge.IsQuestion(text) {
		if answer, ok := knowledge.Search(text); ok {
			msg := answer
			if prompt := currentPrompt(l.Fields); prompt != "" {
				msg += "\n\n" + prompt
			}
			return msg, nil
		}
	}

	extraction, err := e.extractor.Extract(ctx, capability.ExtractionRequest{
		Message:    text,
		Fields:     l.Fields,
		Missing:    catalog.Missing(l.Fields),
		ClientName: l.Client.FirstName,
		Address:    l.Client.Address,
		City:       l.Client.City,
	})
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}

	mergeFields(l, extraction.ExtractedFields)

	if catalog.IsComplete(l.Fields) {
		l.Process.Mode = listing.ModeAwaitingConfirmation
		return summaryMessage(l), nil
	}

	if extraction.ResponseText != "" {
		return extraction.ResponseText, nil
	}
	return currentPrompt(l.Fields), nil
}

// mergeFields applies extracted scalar values to the listing. Document
// fields only change through the validated upload path, so extracted
// values for them are discarded.
func mergeFields(l *listing.Listing, fields catalog.Fields) {
	for key, value := range fields {
		def, ok := catalog.Lookup(key)
		if !ok || def.Document || value == nil {
			continue
		}
		l.Fields[key] = value
		l.MarkFieldCompleted(key)
	}
}
