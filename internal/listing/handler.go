package listing

import (
	"log/slog"
	"net/http"

	"github.com/vendetucasa/intake/internal/catalog"
	"github.com/vendetucasa/intake/pkg/handlers"
	"github.com/vendetucasa/intake/pkg/pagination"
	"github.com/vendetucasa/intake/pkg/routes"
)

// Handler provides HTTP endpoints for the listing admin surface.
type Handler struct {
	store      Store
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a listing handler with the specified configuration.
func NewHandler(store Store, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		store:      store,
		logger:     logger.With("handler", "listings"),
		pagination: pagination,
	}
}

// Routes returns the listing endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/properties",
		Description: "Listing inspection and management",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{phone}", Handler: h.Find},
			{Method: "DELETE", Pattern: "/{phone}", Handler: h.Delete},
		},
	}
}

// detail is the admin view of one listing with derived progress state.
type detail struct {
	*Listing
	CurrentStep   string         `json:"current_step"`
	Progress      int            `json:"progress"`
	MissingFields []string       `json:"missing_fields"`
	Documents     map[string]any `json:"documents"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.store.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	l, err := h.store.Get(r.Context(), r.PathValue("phone"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	missing := catalog.Missing(l.Fields)
	currentStep := "completed"
	if len(missing) > 0 {
		currentStep = missing[0]
	}

	handlers.RespondJSON(w, http.StatusOK, detail{
		Listing:       l,
		CurrentStep:   currentStep,
		Progress:      catalog.Progress(l.Fields),
		MissingFields: missing,
		Documents: map[string]any{
			catalog.FieldTaxReceipt: documentStatus(l.Fields, catalog.FieldTaxReceipt),
			catalog.FieldTitleCert:  documentStatus(l.Fields, catalog.FieldTitleCert),
		},
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.Delete(r.Context(), r.PathValue("phone"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"phone":   NormalizePhone(r.PathValue("phone")),
		"deleted": deleted,
	})
}

func documentStatus(fields catalog.Fields, key string) map[string]any {
	status := map[string]any{
		"required":   true,
		"validated":  false,
		"confidence": 0,
	}
	if att, ok := catalog.AttachmentFrom(fields[key]); ok {
		status["validated"] = att.Validated
		status["confidence"] = att.Confidence
	}
	return status
}
