package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/vendetucasa/intake/internal/capability"
	"github.com/vendetucasa/intake/internal/catalog"
	"github.com/vendetucasa/intake/internal/listing"
)

// Confirmation vocabulary. Matching is on whole words so that tokens
// like "si" or "no" never fire inside longer words.
var (
	affirmativeTokens = []string{"sí", "si", "yes", "ok", "correcto", "confirmo", "confirmado", "perfecto"}
	editTokens        = []string{"modificar", "cambiar", "no", "editar", "corregir"}
)

// confirm handles a turn while the seller is reviewing the summary.
// Edit intent is checked before affirmation so that "no, quiero
// cambiar el precio" never confirms.
func (e *Engine) confirm(ctx context.Context, l *listing.Listing, text string, att *Attachment) (string, error) {
	if att != nil {
		return msgConfirmRetry, nil
	}

	switch {
	case matchesToken(text, editTokens):
		l.Process.Mode = listing.ModeEditing
		return msgEditPrompt, nil
	case matchesToken(text, affirmativeTokens):
		l.Complete()
		return completionMessage(l), nil
	default:
		return msgConfirmRetry + "\n\n" + summaryMessage(l), nil
	}
}

// edit handles a turn while the seller is correcting fields. Changing
// the property type can add or drop conditional fields, so finishing
// an edit only returns to confirmation when the listing is still
// complete; otherwise collection resumes at the first missing field.
func (e *Engine) edit(ctx context.Context, l *listing.Listing, text string) (string, error) {
	update, err := e.extractor.Edit(ctx, text, l.Fields)
	if err != nil {
		return "", fmt.Errorf("edit: %w", err)
	}

	mergeFields(l, update.UpdatedFields)

	if update.Action == capability.EditFinish {
		if !catalog.IsComplete(l.Fields) {
			l.Process.Mode = listing.ModeCollecting
			return "Entendido. Con ese cambio me falta un dato adicional.\n\n" + currentPrompt(l.Fields), nil
		}
		l.Process.Mode = listing.ModeAwaitingConfirmation
		return summaryMessage(l), nil
	}

	if !catalog.IsComplete(l.Fields) {
		l.Process.Mode = listing.ModeCollecting
		msg := update.ResponseText
		if msg != "" {
			msg += "\n\n"
		}
		return msg + currentPrompt(l.Fields), nil
	}

	msg := update.ResponseText
	if msg == "" {
		msg = msgEditContinue
	} else {
		msg += "\n\n" + msgEditContinue
	}
	return msg, nil
}

func matchesToken(text string, tokens []string) bool {
	for _, word := range strings.Fields(strings.ToLower(strings.TrimSpace(text))) {
		word = strings.Trim(word, ".,;:!¡¿?*\"'")
		for _, token := range tokens {
			if word == token {
				return true
			}
		}
	}
	return false
}
