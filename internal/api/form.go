package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vendetucasa/intake/internal/catalog"
	"github.com/vendetucasa/intake/internal/listing"
	"github.com/vendetucasa/intake/internal/queue"
	"github.com/vendetucasa/intake/pkg/handlers"
	"github.com/vendetucasa/intake/pkg/routes"
)

// FormHandler receives intake form submissions from the website and
// opens the WhatsApp conversation.
type FormHandler struct {
	store  listing.Store
	sender queue.Sender
	logger *slog.Logger
}

// NewFormHandler creates the form webhook handler.
func NewFormHandler(store listing.Store, sender queue.Sender, logger *slog.Logger) *FormHandler {
	return &FormHandler{
		store:  store,
		sender: sender,
		logger: logger.With("handler", "form"),
	}
}

// Routes returns the form webhook route group.
func (h *FormHandler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/form-webhook",
		Description: "Website intake form submissions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Receive},
		},
	}
}

// Receive opens a listing for the submitted client and sends the
// welcome message. A failed welcome send does not fail the request;
// the seller can always write first.
func (h *FormHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var client listing.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	l, err := h.store.Create(r.Context(), listing.CreateCommand{Client: client})
	if err != nil {
		handlers.RespondError(w, h.logger, listing.MapHTTPStatus(err), err)
		return
	}

	h.logger.Info("listing opened",
		"phone", l.Client.Phone,
		"listing_id", l.ID,
		"city", l.Client.City,
	)

	if err := h.sender.SendText(r.Context(), l.Client.Phone, welcomeMessage(l)); err != nil {
		h.logger.Error("welcome message failed", "phone", l.Client.Phone, "error", err)
	}

	handlers.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":    l.ID,
		"phone": l.Client.Phone,
	})
}

func welcomeMessage(l *listing.Listing) string {
	name := l.Client.FirstName
	if name == "" {
		name = "vendedor"
	}

	msg := fmt.Sprintf("¡Hola, %s! 👋 Recibimos el registro de tu propiedad en %s. Soy el asistente virtual y te haré unas preguntas cortas para completar la publicación.", name, l.Client.City)
	if def, ok := catalog.Lookup(catalog.FieldPropertyType); ok {
		msg += "\n\n" + def.Prompt
	}
	return msg
}
