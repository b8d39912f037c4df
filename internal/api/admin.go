package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vendetucasa/intake/internal/catalog"
	"github.com/vendetucasa/intake/internal/conversation"
	"github.com/vendetucasa/intake/internal/listing"
	"github.com/vendetucasa/intake/internal/queue"
	"github.com/vendetucasa/intake/pkg/handlers"
	"github.com/vendetucasa/intake/pkg/routes"
)

// AdminHandler exposes operational endpoints: live conversation state,
// queue introspection, and manual completion.
type AdminHandler struct {
	store      listing.Store
	dispatcher *queue.Dispatcher
	notifier   conversation.Notifier
	logger     *slog.Logger
}

// NewAdminHandler creates the admin handler. notifier may be nil when
// completion notifications are disabled.
func NewAdminHandler(store listing.Store, dispatcher *queue.Dispatcher, notifier conversation.Notifier, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		store:      store,
		dispatcher: dispatcher,
		notifier:   notifier,
		logger:     logger.With("handler", "admin"),
	}
}

// Routes returns the admin route group.
func (h *AdminHandler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "",
		Description: "Operational inspection and overrides",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/conversations", Handler: h.Conversations},
			{Method: "POST", Pattern: "/properties/{phone}/complete", Handler: h.CompleteListing},
		},
	}
}

// conversationState is one row of the live conversation snapshot.
type conversationState struct {
	Phone        string                `json:"phone"`
	Name         string                `json:"name"`
	Status       listing.Mode          `json:"status"`
	Progress     conversation.Progress `json:"progress"`
	LastActivity string                `json:"last_activity"`
}

// Conversations reports every stored conversation plus the queue's
// in-flight lines.
func (h *AdminHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.All(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	states := make([]conversationState, 0, len(all))
	for i := range all {
		l := &all[i]
		states = append(states, conversationState{
			Phone:        l.Client.Phone,
			Name:         l.Client.FirstName,
			Status:       l.Process.Mode,
			Progress:     conversation.Snapshot(l.Fields),
			LastActivity: l.Process.LastActivityAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"conversations": states,
		"queue":         h.dispatcher.Snapshot(),
	})
}

// CompleteListing forces a listing into its terminal mode regardless
// of missing fields. Used when the remaining data was collected out of
// band.
func (h *AdminHandler) CompleteListing(w http.ResponseWriter, r *http.Request) {
	phone := listing.NormalizePhone(r.PathValue("phone"))

	l, err := h.store.Get(r.Context(), phone)
	if err != nil {
		handlers.RespondError(w, h.logger, listing.MapHTTPStatus(err), err)
		return
	}

	alreadyCompleted := l.Process.Mode == listing.ModeCompleted
	l.Complete()
	if err := h.store.Put(r.Context(), l); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	if !alreadyCompleted {
		h.notify(r.Context(), l)
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"phone":    l.Client.Phone,
		"id":       l.ID,
		"status":   l.Process.Mode,
		"progress": catalog.Progress(l.Fields),
	})
}

func (h *AdminHandler) notify(ctx context.Context, l *listing.Listing) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.NotifyCompletion(ctx, l); err != nil {
		h.logger.Error("completion notification failed",
			"phone", l.Client.Phone,
			"listing_id", l.ID,
			"error", err,
		)
	}
}
