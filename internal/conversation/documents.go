package conversation

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/vendetucasa/intake/internal/catalog"
	"github.com/vendetucasa/intake/internal/listing"
)

// document handles an inbound media file. The file only counts when
// the current step is a document field; otherwise it is acknowledged
// and the seller is redirected to the pending question.
func (e *Engine) document(ctx context.Context, l *listing.Listing, att *Attachment) (string, error) {
	missing := catalog.Missing(l.Fields)
	if len(missing) == 0 || !catalog.IsDocumentField(missing[0]) {
		return documentOutOfTurnMessage(l.Fields), nil
	}
	kind := missing[0]

	verdict, err := e.validator.Validate(ctx, att.Data, kind, att.MimeType)
	if err != nil {
		e.logger.Error("document validation failed",
			"phone", l.Client.Phone,
			"kind", kind,
			"filename", att.Filename,
			"error", err,
		)
		return documentErrorMessage(kind, att.Filename), nil
	}

	if !verdict.Accepted() {
		e.logger.Info("document rejected",
			"phone", l.Client.Phone,
			"kind", kind,
			"confidence", verdict.Confidence,
			"reason", verdict.Reason,
		)
		return documentRejectedMessage(kind, att.Filename, verdict.Reason), nil
	}

	key := path.Join(l.Client.Phone, kind+extensionFor(att.MimeType))
	if err := e.blobs.Store(ctx, key, att.Data); err != nil {
		return "", fmt.Errorf("store %s: %w", key, err)
	}

	l.Fields[kind] = catalog.Attachment{
		Validated:     true,
		Confidence:    verdict.Confidence,
		ExtractedInfo: verdict.ExtractedInfo,
		UploadedAt:    time.Now().UTC(),
		MimeType:      att.MimeType,
		Filename:      att.Filename,
		StorageKey:    key,
	}
	l.MarkFieldCompleted(kind)

	if catalog.IsComplete(l.Fields) {
		l.Process.Mode = listing.ModeAwaitingConfirmation
		return summaryMessage(l), nil
	}
	return documentAcceptedMessage(kind, currentPrompt(l.Fields)), nil
}

func extensionFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "pdf"):
		return ".pdf"
	case strings.Contains(mimeType, "png"):
		return ".png"
	case strings.Contains(mimeType, "webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}
