// Package lifecycle coordinates application startup and shutdown.
// Systems register startup hooks that run before the service is marked
// ready and shutdown hooks that drain when the root context is cancelled.
package lifecycle

import (
	"context"
	"sync"
	"sync/atomic"
)

// Coordinator tracks startup and shutdown hooks for the process.
// Create one at startup with New and share it across systems.
type Coordinator struct {
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	startup []func()
	ready   atomic.Bool
	wg      sync.WaitGroup
}

// New creates a Coordinator with an uncancelled root context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the root context. It is cancelled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// Ready reports whether all startup hooks have completed.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// OnStartup registers a hook executed by WaitForStartup. Hooks run in
// registration order on the calling goroutine.
func (c *Coordinator) OnStartup(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startup = append(c.startup, fn)
}

// WaitForStartup runs every registered startup hook and marks the
// coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.mu.Lock()
	hooks := make([]func(), len(c.startup))
	copy(hooks, c.startup)
	c.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	c.ready.Store(true)
}

// OnShutdown registers a hook that runs on its own goroutine. Hooks
// typically block on Context().Done() and then release their resources;
// Shutdown waits for all of them to return.
func (c *Coordinator) OnShutdown(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

// Shutdown cancels the root context and blocks until every shutdown
// hook has completed.
func (c *Coordinator) Shutdown() {
	c.cancel()
	c.wg.Wait()
	c.ready.Store(false)
}
