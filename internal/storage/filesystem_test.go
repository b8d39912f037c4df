package storage_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/vendetucasa/intake/internal/config"
	"github.com/vendetucasa/intake/internal/storage"
	"github.com/vendetucasa/intake/pkg/lifecycle"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func tempStorageDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "storage-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func startedSystem(t *testing.T) storage.System {
	t.Helper()
	cfg := &config.StorageConfig{BasePath: tempStorageDir(t)}

	sys, err := storage.New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	lc.WaitForStartup()
	t.Cleanup(lc.Shutdown)

	return sys
}

func TestNew_EmptyBasePath(t *testing.T) {
	cfg := &config.StorageConfig{BasePath: ""}

	_, err := storage.New(cfg, testLogger())
	if err == nil {
		t.Fatal("New() succeeded with empty BasePath, want error")
	}
}

func TestStart_CreatesDirectory(t *testing.T) {
	baseDir := tempStorageDir(t)
	targetDir := filepath.Join(baseDir, "nested", "media")
	cfg := &config.StorageConfig{BasePath: targetDir}

	sys, err := storage.New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	lc.WaitForStartup()
	t.Cleanup(lc.Shutdown)

	if _, err := os.Stat(targetDir); os.IsNotExist(err) {
		t.Error("Start() did not create storage directory")
	}
}

func TestStore_Retrieve_RoundTrip(t *testing.T) {
	sys := startedSystem(t)
	ctx := context.Background()

	data := []byte("media payload")
	key := "573001112233/predial.pdf"

	if err := sys.Store(ctx, key, data); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	got, err := sys.Retrieve(ctx, key)
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Retrieve() = %q, want %q", got, data)
	}
}

func TestRetrieve_NotFound(t *testing.T) {
	sys := startedSystem(t)

	_, err := sys.Retrieve(context.Background(), "missing/key.jpg")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Retrieve() error = %v, want ErrNotFound", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	sys := startedSystem(t)
	ctx := context.Background()

	if err := sys.Delete(ctx, "never/stored.jpg"); err != nil {
		t.Errorf("Delete() on missing key = %v, want nil", err)
	}
}

func TestExists(t *testing.T) {
	sys := startedSystem(t)
	ctx := context.Background()

	key := "573001112233/fachada.jpg"
	if err := sys.Store(ctx, key, []byte("img")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	exists, err := sys.Exists(ctx, key)
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if !exists {
		t.Error("Exists() = false, want true")
	}

	exists, err = sys.Exists(ctx, "other/key.jpg")
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if exists {
		t.Error("Exists() = true for missing key, want false")
	}
}

func TestStore_PathTraversal(t *testing.T) {
	sys := startedSystem(t)

	cases := []string{"", "../escape.txt", "/absolute/path.txt", "a/../../escape.txt"}
	for _, key := range cases {
		if err := sys.Store(context.Background(), key, []byte("x")); !errors.Is(err, storage.ErrInvalidKey) {
			t.Errorf("Store(%q) error = %v, want ErrInvalidKey", key, err)
		}
	}
}
