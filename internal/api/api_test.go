package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vendetucasa/intake/internal/api"
	"github.com/vendetucasa/intake/internal/config"
	"github.com/vendetucasa/intake/internal/conversation"
	"github.com/vendetucasa/intake/internal/listing"
	"github.com/vendetucasa/intake/internal/queue"
	"github.com/vendetucasa/intake/pkg/lifecycle"
	"github.com/vendetucasa/intake/pkg/pagination"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memStore struct {
	mu       sync.Mutex
	listings map[string]*listing.Listing
}

func newMemStore() *memStore {
	return &memStore{listings: map[string]*listing.Listing{}}
}

func (m *memStore) Get(ctx context.Context, phone string) (*listing.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.listings[listing.NormalizePhone(phone)]
	if !ok {
		return nil, listing.ErrNotFound
	}
	return l, nil
}

func (m *memStore) Put(ctx context.Context, l *listing.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listings[l.Client.Phone] = l
	return nil
}

func (m *memStore) Create(ctx context.Context, cmd listing.CreateCommand) (*listing.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := listing.New(cmd)
	if !listing.ValidPhone(l.Client.Phone) {
		return nil, listing.ErrInvalidPhone
	}
	if _, ok := m.listings[l.Client.Phone]; ok {
		return nil, listing.ErrDuplicate
	}
	m.listings[l.Client.Phone] = l
	return l, nil
}

func (m *memStore) List(ctx context.Context, page pagination.PageRequest, filters listing.Filters) (*pagination.PageResult[listing.Summary], error) {
	return nil, errors.New("not implemented")
}

func (m *memStore) All(ctx context.Context) ([]listing.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []listing.Listing
	for _, l := range m.listings {
		all = append(all, *l)
	}
	return all, nil
}

func (m *memStore) Delete(ctx context.Context, phone string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := listing.NormalizePhone(phone)
	_, ok := m.listings[key]
	delete(m.listings, key)
	return ok, nil
}

type recordedTurn struct {
	phone string
	text  string
	att   *conversation.Attachment
}

type stubProcessor struct {
	mu    sync.Mutex
	turns []recordedTurn
}

func (p *stubProcessor) ProcessTurn(ctx context.Context, phone, text string, att *conversation.Attachment) (conversation.TurnResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.turns = append(p.turns, recordedTurn{phone: phone, text: text, att: att})
	return conversation.TurnResult{}, nil
}

func (p *stubProcessor) recorded() []recordedTurn {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recordedTurn(nil), p.turns...)
}

type stubSender struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (s *stubSender) SendText(ctx context.Context, phone, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return s.err
}

func (s *stubSender) sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

type stubFetcher struct {
	data        []byte
	contentType string
	err         error
}

func (f *stubFetcher) FetchMedia(ctx context.Context, url string) ([]byte, string, error) {
	return f.data, f.contentType, f.err
}

func testDispatcher(t *testing.T, p queue.Processor) *queue.Dispatcher {
	t.Helper()
	cfg := &config.QueueConfig{TextDelay: "10ms", MediaDelay: "5ms"}
	d := queue.NewDispatcher(cfg, p, &stubSender{}, testLogger())

	lc := lifecycle.New()
	if err := d.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	lc.WaitForStartup()
	t.Cleanup(lc.Shutdown)
	return d
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

const messageEvent = `{
	"event": "messages.upsert",
	"data": {
		"messages": {
			"key": {"remoteJid": "573001112233@s.whatsapp.net", "fromMe": false, "id": "ABC"},
			"message": {"conversation": "quiero vender un apartamento"}
		}
	}
}`

func TestWebhook_EnqueuesTextMessage(t *testing.T) {
	processor := &stubProcessor{}
	h := api.NewWebhookHandler(testDispatcher(t, processor), &stubFetcher{}, &config.GatewayConfig{}, testLogger())

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(messageEvent))
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	waitFor(t, time.Second, func() bool { return len(processor.recorded()) == 1 })
	turn := processor.recorded()[0]
	if turn.phone != "573001112233" {
		t.Errorf("phone = %q", turn.phone)
	}
	if turn.text != "quiero vender un apartamento" {
		t.Errorf("text = %q", turn.text)
	}
}

func TestWebhook_IgnoresOwnEchoes(t *testing.T) {
	processor := &stubProcessor{}
	h := api.NewWebhookHandler(testDispatcher(t, processor), &stubFetcher{}, &config.GatewayConfig{}, testLogger())

	event := strings.Replace(messageEvent, `"fromMe": false`, `"fromMe": true`, 1)
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(event))
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["status"] != "ignored" {
		t.Errorf("status field = %q, want ignored", body["status"])
	}

	time.Sleep(50 * time.Millisecond)
	if len(processor.recorded()) != 0 {
		t.Errorf("turns = %+v, want none", processor.recorded())
	}
}

func TestWebhook_RejectsBadSignature(t *testing.T) {
	processor := &stubProcessor{}
	cfg := &config.GatewayConfig{WebhookSecret: "topsecret"}
	h := api.NewWebhookHandler(testDispatcher(t, processor), &stubFetcher{}, cfg, testLogger())

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(messageEvent))
	req.Header.Set("X-Webhook-Signature", "wrong")
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestWebhook_ScreensUnlistedNumbers(t *testing.T) {
	processor := &stubProcessor{}
	cfg := &config.GatewayConfig{AllowedNumbers: []string{"3009998877"}}
	h := api.NewWebhookHandler(testDispatcher(t, processor), &stubFetcher{}, cfg, testLogger())

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(messageEvent))
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["status"] != "ignored" {
		t.Errorf("status field = %q, want ignored", body["status"])
	}

	time.Sleep(50 * time.Millisecond)
	if len(processor.recorded()) != 0 {
		t.Errorf("turns = %+v, want none", processor.recorded())
	}
}

func TestWebhook_DownloadsMedia(t *testing.T) {
	processor := &stubProcessor{}
	fetcher := &stubFetcher{data: []byte("jpeg-bytes"), contentType: "image/jpeg"}
	h := api.NewWebhookHandler(testDispatcher(t, processor), fetcher, &config.GatewayConfig{}, testLogger())

	event := `{
		"event": "messages.upsert",
		"data": {
			"messages": {
				"key": {"remoteJid": "573001112233@s.whatsapp.net", "fromMe": false},
				"message": {"imageMessage": {"url": "https://gateway/media/1", "mimetype": "image/jpeg", "fileName": "predial.jpg"}}
			}
		}
	}`
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(event))
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	waitFor(t, time.Second, func() bool { return len(processor.recorded()) == 1 })
	turn := processor.recorded()[0]
	if turn.att == nil {
		t.Fatal("attachment missing")
	}
	if turn.att.MimeType != "image/jpeg" || string(turn.att.Data) != "jpeg-bytes" {
		t.Errorf("attachment = %+v", turn.att)
	}
}

func TestForm_CreatesListingAndWelcomes(t *testing.T) {
	store := newMemStore()
	sender := &stubSender{}
	h := api.NewFormHandler(store, sender, testLogger())

	body := `{"nombre": "Laura", "apellido": "Gómez", "celular": "3001112233", "ciudad_inmueble": "Medellín", "direccion_inmueble": "Calle 10 # 5-23"}`
	req := httptest.NewRequest("POST", "/form-webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}

	l, err := store.Get(context.Background(), "573001112233")
	if err != nil {
		t.Fatalf("Get() after form error = %v", err)
	}
	if l.Process.Mode != listing.ModeCollecting {
		t.Errorf("mode = %v, want %v", l.Process.Mode, listing.ModeCollecting)
	}

	sent := sender.sent()
	if len(sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(sent))
	}
	if !strings.Contains(sent[0], "Laura") || !strings.Contains(sent[0], "tipo de propiedad") {
		t.Errorf("welcome = %q", sent[0])
	}
}

func TestForm_DuplicatePhoneConflicts(t *testing.T) {
	store := newMemStore()
	h := api.NewFormHandler(store, &stubSender{}, testLogger())

	body := `{"nombre": "Laura", "celular": "3001112233", "ciudad_inmueble": "Medellín"}`
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest("POST", "/form-webhook", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Receive(rec, req)
		if rec.Code != want {
			t.Errorf("request %d status = %d, want %d", i, rec.Code, want)
		}
	}
}

type countingNotifier struct {
	mu    sync.Mutex
	count int
}

func (n *countingNotifier) NotifyCompletion(ctx context.Context, l *listing.Listing) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
	return nil
}

func TestAdmin_CompleteListing(t *testing.T) {
	store := newMemStore()
	notifier := &countingNotifier{}
	h := api.NewAdminHandler(store, testDispatcher(t, &stubProcessor{}), notifier, testLogger())

	if _, err := store.Create(context.Background(), listing.CreateCommand{
		Client: listing.Client{FirstName: "Laura", Phone: "3001112233"},
	}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	req := httptest.NewRequest("POST", "/properties/573001112233/complete", nil)
	req.SetPathValue("phone", "573001112233")
	rec := httptest.NewRecorder()
	h.CompleteListing(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	l, _ := store.Get(context.Background(), "573001112233")
	if l.Process.Mode != listing.ModeCompleted {
		t.Errorf("mode = %v, want %v", l.Process.Mode, listing.ModeCompleted)
	}
	if notifier.count != 1 {
		t.Errorf("notifier count = %d, want 1", notifier.count)
	}

	// Completing again never re-notifies.
	rec = httptest.NewRecorder()
	h.CompleteListing(rec, req)
	if notifier.count != 1 {
		t.Errorf("notifier count after repeat = %d, want 1", notifier.count)
	}
}

func TestAdmin_ConversationsSnapshot(t *testing.T) {
	store := newMemStore()
	h := api.NewAdminHandler(store, testDispatcher(t, &stubProcessor{}), nil, testLogger())

	if _, err := store.Create(context.Background(), listing.CreateCommand{
		Client: listing.Client{FirstName: "Laura", Phone: "3001112233"},
	}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/conversations", nil)
	rec := httptest.NewRecorder()
	h.Conversations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Conversations []struct {
			Phone  string `json:"phone"`
			Status string `json:"status"`
		} `json:"conversations"`
		Queue []any `json:"queue"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Conversations) != 1 {
		t.Fatalf("conversations = %d, want 1", len(body.Conversations))
	}
	if body.Conversations[0].Phone != "573001112233" || body.Conversations[0].Status != "collecting" {
		t.Errorf("conversation = %+v", body.Conversations[0])
	}
}
