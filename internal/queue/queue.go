// Package queue serializes inbound WhatsApp messages per phone number.
// Sellers often split one answer across several rapid messages; the
// dispatcher holds each phone's messages for a short debounce window,
// coalesces them into a single turn, and runs turns for the same phone
// strictly one at a time. Distinct phones process concurrently.
package queue

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vendetucasa/intake/internal/config"
	"github.com/vendetucasa/intake/internal/conversation"
	"github.com/vendetucasa/intake/pkg/lifecycle"
)

// Processor runs one coalesced turn.
type Processor interface {
	ProcessTurn(ctx context.Context, phone, text string, att *conversation.Attachment) (conversation.TurnResult, error)
}

// Sender delivers the turn's reply back to the seller.
type Sender interface {
	SendText(ctx context.Context, phone, message string) error
}

// Inbound is one received message before coalescing.
type Inbound struct {
	Phone      string
	Text       string
	Attachment *conversation.Attachment
	ReceivedAt time.Time
}

// LineStatus describes one phone's queue for the admin surface.
type LineStatus struct {
	Phone      string `json:"phone"`
	Pending    int    `json:"pending"`
	Processing bool   `json:"processing"`
}

type line struct {
	pending    []Inbound
	processing bool
}

// Dispatcher owns the per-phone lines.
type Dispatcher struct {
	processor  Processor
	sender     Sender
	textDelay  time.Duration
	mediaDelay time.Duration
	logger     *slog.Logger

	mu    sync.Mutex
	lines map[string]*line
	wg    sync.WaitGroup
	ctx   context.Context
	stop  context.CancelFunc
}

// NewDispatcher builds a dispatcher from configuration.
func NewDispatcher(cfg *config.QueueConfig, processor Processor, sender Sender, logger *slog.Logger) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		processor:  processor,
		sender:     sender,
		textDelay:  cfg.TextDelayDuration(),
		mediaDelay: cfg.MediaDelayDuration(),
		logger:     logger.With("system", "queue"),
		lines:      map[string]*line{},
		ctx:        ctx,
		stop:       cancel,
	}
}

// Start registers shutdown handling: no new turns begin after the
// lifecycle context is done, and in-flight turns are waited for.
func (d *Dispatcher) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.stop()
		d.wg.Wait()
		d.logger.Info("queue dispatcher drained")
	})
	return nil
}

// Enqueue adds a message to its phone's line, spawning the line worker
// when none is running.
func (d *Dispatcher) Enqueue(msg Inbound) {
	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = time.Now().UTC()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctx.Err() != nil {
		d.logger.Warn("message dropped during shutdown", "phone", msg.Phone)
		return
	}

	ln, ok := d.lines[msg.Phone]
	if ok {
		ln.pending = append(ln.pending, msg)
		return
	}

	ln = &line{pending: []Inbound{msg}}
	d.lines[msg.Phone] = ln
	d.wg.Add(1)
	go d.run(msg.Phone, ln)
}

// Snapshot reports every active line, sorted by phone.
func (d *Dispatcher) Snapshot() []LineStatus {
	d.mu.Lock()
	defer d.mu.Unlock()

	statuses := make([]LineStatus, 0, len(d.lines))
	for phone, ln := range d.lines {
		statuses = append(statuses, LineStatus{
			Phone:      phone,
			Pending:    len(ln.pending),
			Processing: ln.processing,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Phone < statuses[j].Phone })
	return statuses
}

func (d *Dispatcher) run(phone string, ln *line) {
	defer d.wg.Done()

	for {
		select {
		case <-time.After(d.debounce(ln)):
		case <-d.ctx.Done():
			d.finish(phone)
			return
		}

		d.mu.Lock()
		batch := ln.pending
		ln.pending = nil
		ln.processing = true
		d.mu.Unlock()

		if len(batch) > 0 {
			text, att := coalesce(batch)
			d.process(phone, text, att)
		}

		d.mu.Lock()
		ln.processing = false
		if len(ln.pending) == 0 {
			delete(d.lines, phone)
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
	}
}

// debounce picks the hold window for the current batch. Media messages
// use the shorter window; the seller already waited for the upload.
func (d *Dispatcher) debounce(ln *line) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, msg := range ln.pending {
		if msg.Attachment != nil {
			return d.mediaDelay
		}
	}
	return d.textDelay
}

func (d *Dispatcher) finish(phone string) {
	d.mu.Lock()
	delete(d.lines, phone)
	d.mu.Unlock()
}

func (d *Dispatcher) process(phone string, text string, att *conversation.Attachment) {
	result, err := d.processor.ProcessTurn(d.ctx, phone, text, att)
	if err != nil {
		d.logger.Error("turn failed", "phone", phone, "error", err)
		return
	}
	if result.Message == "" {
		return
	}
	if err := d.sender.SendText(d.ctx, phone, result.Message); err != nil {
		d.logger.Error("reply delivery failed", "phone", phone, "error", err)
	}
}

// coalesce folds a batch into one turn: texts joined in arrival order,
// last attachment wins.
func coalesce(batch []Inbound) (string, *conversation.Attachment) {
	var texts []string
	var att *conversation.Attachment
	for i := range batch {
		if t := strings.TrimSpace(batch[i].Text); t != "" {
			texts = append(texts, t)
		}
		if batch[i].Attachment != nil {
			att = batch[i].Attachment
		}
	}
	return strings.Join(texts, " "), att
}
