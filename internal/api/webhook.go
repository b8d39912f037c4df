// Package api exposes the HTTP surface: the messaging gateway
// webhooks that feed the conversation and the admin endpoints used to
// inspect it.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vendetucasa/intake/internal/config"
	"github.com/vendetucasa/intake/internal/conversation"
	"github.com/vendetucasa/intake/internal/listing"
	"github.com/vendetucasa/intake/internal/queue"
	"github.com/vendetucasa/intake/pkg/handlers"
	"github.com/vendetucasa/intake/pkg/routes"
)

// MediaFetcher downloads inbound media referenced by webhook events.
type MediaFetcher interface {
	FetchMedia(ctx context.Context, url string) ([]byte, string, error)
}

// WebhookHandler receives gateway events and feeds the message queue.
type WebhookHandler struct {
	dispatcher *queue.Dispatcher
	media      MediaFetcher
	secret     string
	allowed    map[string]bool
	logger     *slog.Logger
}

// NewWebhookHandler creates the gateway webhook handler. An empty
// secret disables signature verification; an empty allowlist accepts
// every number.
func NewWebhookHandler(dispatcher *queue.Dispatcher, media MediaFetcher, cfg *config.GatewayConfig, logger *slog.Logger) *WebhookHandler {
	var allowed map[string]bool
	if len(cfg.AllowedNumbers) > 0 {
		allowed = make(map[string]bool, len(cfg.AllowedNumbers))
		for _, number := range cfg.AllowedNumbers {
			allowed[listing.NormalizePhone(number)] = true
		}
	}

	return &WebhookHandler{
		dispatcher: dispatcher,
		media:      media,
		secret:     cfg.WebhookSecret,
		allowed:    allowed,
		logger:     logger.With("handler", "webhook"),
	}
}

// Routes returns the webhook route group.
func (h *WebhookHandler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/webhook",
		Description: "Messaging gateway event intake",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Receive},
		},
	}
}

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Messages webhookMessage `json:"messages"`
	} `json:"data"`
}

type webhookMessage struct {
	Key struct {
		RemoteJid string `json:"remoteJid"`
		FromMe    bool   `json:"fromMe"`
		ID        string `json:"id"`
	} `json:"key"`
	Message struct {
		Conversation        string `json:"conversation"`
		ExtendedTextMessage *struct {
			Text string `json:"text"`
		} `json:"extendedTextMessage"`
		ImageMessage    *mediaMessage `json:"imageMessage"`
		DocumentMessage *mediaMessage `json:"documentMessage"`
	} `json:"message"`
}

type mediaMessage struct {
	URL      string `json:"url"`
	MimeType string `json:"mimetype"`
	Caption  string `json:"caption"`
	FileName string `json:"fileName"`
}

// Receive handles one gateway event. Echoes of our own outbound
// messages and non-message events are acknowledged without processing.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if !h.verified(r) {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("invalid webhook signature"))
		return
	}

	var event webhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if event.Event != "messages.upsert" || event.Data.Messages.Key.FromMe {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	msg := event.Data.Messages
	phone := strings.SplitN(msg.Key.RemoteJid, "@", 2)[0]
	if phone == "" {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if h.allowed != nil && !h.allowed[listing.NormalizePhone(phone)] {
		h.logger.Debug("number not in allowlist", "phone", phone)
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	text := msg.Message.Conversation
	if text == "" && msg.Message.ExtendedTextMessage != nil {
		text = msg.Message.ExtendedTextMessage.Text
	}

	att, caption := h.attachment(r.Context(), &msg)
	if text == "" {
		text = caption
	}

	if text == "" && att == nil {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	h.dispatcher.Enqueue(queue.Inbound{
		Phone:      phone,
		Text:       text,
		Attachment: att,
	})

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "received"})
}

// attachment downloads the media referenced by the event, if any. A
// failed download is logged and dropped; the turn still proceeds with
// whatever text arrived.
func (h *WebhookHandler) attachment(ctx context.Context, msg *webhookMessage) (*conversation.Attachment, string) {
	media := msg.Message.ImageMessage
	if media == nil {
		media = msg.Message.DocumentMessage
	}
	if media == nil || media.URL == "" {
		return nil, ""
	}

	data, contentType, err := h.media.FetchMedia(ctx, media.URL)
	if err != nil {
		h.logger.Error("media download failed",
			"remote_jid", msg.Key.RemoteJid,
			"url", media.URL,
			"error", err,
		)
		return nil, media.Caption
	}

	mimeType := media.MimeType
	if mimeType == "" {
		mimeType = contentType
	}

	return &conversation.Attachment{
		Data:     data,
		MimeType: mimeType,
		Filename: media.FileName,
	}, media.Caption
}

func (h *WebhookHandler) verified(r *http.Request) bool {
	if h.secret == "" {
		return true
	}
	signature := r.Header.Get("X-Webhook-Signature")
	return subtle.ConstantTimeCompare([]byte(signature), []byte(h.secret)) == 1
}
