package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/vendetucasa/intake/pkg/lifecycle"
)

func TestNew(t *testing.T) {
	lc := lifecycle.New()

	if lc == nil {
		t.Fatal("New() returned nil")
	}

	if lc.Context() == nil {
		t.Error("Context() returned nil")
	}

	if lc.Ready() {
		t.Error("Ready() = true, want false for new coordinator")
	}
}

func TestCoordinator_OnStartup(t *testing.T) {
	lc := lifecycle.New()

	var executed atomic.Bool
	lc.OnStartup(func() {
		executed.Store(true)
	})

	lc.WaitForStartup()

	if !executed.Load() {
		t.Error("startup hook was not executed")
	}

	if !lc.Ready() {
		t.Error("Ready() = false after WaitForStartup")
	}
}

func TestCoordinator_OnStartup_Order(t *testing.T) {
	lc := lifecycle.New()

	var order []int
	for i := 1; i <= 3; i++ {
		n := i
		lc.OnStartup(func() {
			order = append(order, n)
		})
	}

	lc.WaitForStartup()

	if len(order) != 3 {
		t.Fatalf("executed %d hooks, want 3", len(order))
	}
	for i, n := range order {
		if n != i+1 {
			t.Errorf("order[%d] = %d, want %d", i, n, i+1)
		}
	}
}

func TestCoordinator_Shutdown(t *testing.T) {
	lc := lifecycle.New()

	var drained atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		drained.Store(true)
	})

	done := make(chan struct{})
	go func() {
		lc.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shutdown did not complete")
	}

	if !drained.Load() {
		t.Error("shutdown hook did not run to completion")
	}
}
