// Package conversation implements the turn-by-turn intake dialogue.
// Every inbound seller message enters through Engine.ProcessTurn, which
// loads the listing, dispatches on its conversation mode, persists the
// updated state, and returns the reply to send back.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vendetucasa/intake/internal/capability"
	"github.com/vendetucasa/intake/internal/listing"
	"github.com/vendetucasa/intake/internal/storage"
)

// Attachment is an inbound media file accompanying a turn.
type Attachment struct {
	Data     []byte
	MimeType string
	Filename string
}

// TurnResult is the outcome of processing one turn.
type TurnResult struct {
	Message  string       `json:"message"`
	Status   listing.Mode `json:"status"`
	Progress Progress     `json:"progress"`
}

// Notifier is told when a listing reaches its terminal mode.
type Notifier interface {
	NotifyCompletion(ctx context.Context, l *listing.Listing) error
}

// Engine drives the intake conversation.
type Engine struct {
	store     listing.Store
	extractor capability.Extractor
	validator capability.DocumentValidator
	blobs     storage.System
	notifier  Notifier
	logger    *slog.Logger
}

// NewEngine wires the conversation engine. notifier may be nil when
// completion notifications are disabled.
func NewEngine(
	store listing.Store,
	extractor capability.Extractor,
	validator capability.DocumentValidator,
	blobs storage.System,
	notifier Notifier,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		store:     store,
		extractor: extractor,
		validator: validator,
		blobs:     blobs,
		notifier:  notifier,
		logger:    logger.With("system", "conversation"),
	}
}

// ProcessTurn handles one inbound message from a seller. Unknown
// senders get a registration pointer; known senders are dispatched by
// conversation mode. Capability failures degrade to a retry message
// and leave the stored listing untouched.
func (e *Engine) ProcessTurn(ctx context.Context, phone, text string, att *Attachment) (TurnResult, error) {
	phone = listing.NormalizePhone(phone)

	l, err := e.store.Get(ctx, phone)
	if errors.Is(err, listing.ErrNotFound) {
		return TurnResult{Message: msgUnknownSender}, nil
	}
	if err != nil {
		return TurnResult{}, fmt.Errorf("load listing %s: %w", phone, err)
	}

	previousMode := l.Process.Mode

	var message string
	switch l.Process.Mode {
	case listing.ModeCompleted:
		return TurnResult{
			Message:  msgAlreadyCompleted,
			Status:   l.Process.Mode,
			Progress: Snapshot(l.Fields),
		}, nil
	case listing.ModeCollecting:
		message, err = e.collect(ctx, l, text, att)
	case listing.ModeAwaitingConfirmation:
		message, err = e.confirm(ctx, l, text, att)
	case listing.ModeEditing:
		message, err = e.edit(ctx, l, text)
	default:
		return TurnResult{}, fmt.Errorf("listing %s in unknown mode %q", phone, l.Process.Mode)
	}

	if err != nil {
		e.logger.Error("turn processing failed",
			"phone", phone,
			"mode", previousMode,
			"error", err,
		)
		return TurnResult{
			Message:  msgTransientError,
			Status:   previousMode,
			Progress: Snapshot(l.Fields),
		}, nil
	}

	l.Touch()
	if err := e.store.Put(ctx, l); err != nil {
		return TurnResult{}, fmt.Errorf("save listing %s: %w", phone, err)
	}

	if previousMode != listing.ModeCompleted && l.Process.Mode == listing.ModeCompleted {
		e.notifyCompletion(ctx, l)
	}

	return TurnResult{
		Message:  message,
		Status:   l.Process.Mode,
		Progress: Snapshot(l.Fields),
	}, nil
}

func (e *Engine) notifyCompletion(ctx context.Context, l *listing.Listing) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.NotifyCompletion(ctx, l); err != nil {
		e.logger.Error("completion notification failed",
			"phone", l.Client.Phone,
			"listing_id", l.ID,
			"error", err,
		)
	}
}
