package whatsapp_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vendetucasa/intake/internal/config"
	"github.com/vendetucasa/intake/internal/whatsapp"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(t *testing.T, handler http.Handler, maxMedia int64) *whatsapp.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.GatewayConfig{
		BaseURL:      server.URL,
		APIKey:       "test-key",
		SendTimeout:  "5s",
		MediaTimeout: "5s",
	}
	return whatsapp.NewClient(cfg, maxMedia, testLogger())
}

func TestSendText(t *testing.T) {
	var got struct {
		To   string `json:"to"`
		Text string `json:"text"`
	}
	var auth string

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/send-message" {
			t.Errorf("path = %q, want /send-message", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}), 1024)

	err := client.SendText(context.Background(), "573001112233", "hola")
	if err != nil {
		t.Fatalf("SendText() error = %v", err)
	}
	if got.To != "573001112233" || got.Text != "hola" {
		t.Errorf("request = %+v", got)
	}
	if auth != "Bearer test-key" {
		t.Errorf("Authorization = %q", auth)
	}
}

func TestSendText_GatewayError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session disconnected", http.StatusBadGateway)
	}), 1024)

	err := client.SendText(context.Background(), "573001112233", "hola")
	if err == nil {
		t.Fatal("SendText() succeeded, want error")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error = %v, want status in message", err)
	}
}

func TestFetchMedia(t *testing.T) {
	payload := []byte("jpeg-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(payload)
	}))
	t.Cleanup(server.Close)

	client := testClient(t, http.NotFoundHandler(), 1024)

	data, contentType, err := client.FetchMedia(context.Background(), server.URL+"/media/abc")
	if err != nil {
		t.Fatalf("FetchMedia() error = %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("data = %q, want %q", data, payload)
	}
	if contentType != "image/jpeg" {
		t.Errorf("contentType = %q, want image/jpeg", contentType)
	}
}

func TestFetchMedia_SizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 64))
	}))
	t.Cleanup(server.Close)

	client := testClient(t, http.NotFoundHandler(), 16)

	_, _, err := client.FetchMedia(context.Background(), server.URL+"/media/huge")
	if err == nil {
		t.Fatal("FetchMedia() succeeded, want size limit error")
	}
	if !strings.Contains(err.Error(), "limit") {
		t.Errorf("error = %v, want limit error", err)
	}
}
