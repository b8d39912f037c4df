// Package whatsapp is the client side of the WhatsApp messaging
// gateway: it sends replies and downloads inbound media referenced by
// webhook events.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vendetucasa/intake/internal/config"
)

// Client talks to the gateway's REST API.
type Client struct {
	send     *http.Client
	media    *http.Client
	baseURL  string
	apiKey   string
	maxMedia int64
	logger   *slog.Logger
}

// NewClient builds a gateway client. maxMedia caps the size of any
// downloaded media blob.
func NewClient(cfg *config.GatewayConfig, maxMedia int64, logger *slog.Logger) *Client {
	return &Client{
		send:     &http.Client{Timeout: cfg.SendTimeoutDuration()},
		media:    &http.Client{Timeout: cfg.MediaTimeoutDuration()},
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		maxMedia: maxMedia,
		logger:   logger.With("system", "whatsapp"),
	}
}

type sendRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// SendText delivers a text message to a phone number.
func (c *Client) SendText(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(sendRequest{To: phone, Text: message})
	if err != nil {
		return fmt.Errorf("encode send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send-message", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.send.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send message: gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	c.logger.Debug("message sent", "phone", phone, "length", len(message))
	return nil
}

// FetchMedia downloads a media blob from the URL carried by a webhook
// event. It returns the data and the reported content type.
func (c *Client) FetchMedia(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build media request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.media.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch media: gateway returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxMedia+1))
	if err != nil {
		return nil, "", fmt.Errorf("read media: %w", err)
	}
	if int64(len(data)) > c.maxMedia {
		return nil, "", fmt.Errorf("media exceeds %d byte limit", c.maxMedia)
	}

	return data, resp.Header.Get("Content-Type"), nil
}
