package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vendetucasa/intake/internal/api"
	"github.com/vendetucasa/intake/internal/config"
	"github.com/vendetucasa/intake/internal/conversation"
	"github.com/vendetucasa/intake/internal/infrastructure"
	"github.com/vendetucasa/intake/internal/listing"
	"github.com/vendetucasa/intake/internal/middleware"
	"github.com/vendetucasa/intake/internal/notify"
	"github.com/vendetucasa/intake/internal/queue"
	"github.com/vendetucasa/intake/internal/server"
	"github.com/vendetucasa/intake/internal/whatsapp"
	"github.com/vendetucasa/intake/pkg/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := cfg.Finalize(); err != nil {
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		os.Stderr.WriteString("infrastructure error: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := infra.Logger

	if err := infra.Start(); err != nil {
		logger.Error("infrastructure startup failed", "error", err)
		os.Exit(1)
	}

	store := listing.NewStore(infra.Database.Connection(), logger, cfg.Pagination)
	extractor, validator := buildCapabilities(cfg, logger)

	var notifier conversation.Notifier
	if cfg.Email.Enabled {
		notifier = notify.New(&cfg.Email, logger)
	}

	engine := conversation.NewEngine(store, extractor, validator, infra.Storage, notifier, logger)
	gateway := whatsapp.NewClient(&cfg.Gateway, cfg.Storage.MaxMediaSizeBytes(), logger)

	dispatcher := queue.NewDispatcher(&cfg.Queue, engine, gateway, logger)
	if err := dispatcher.Start(infra.Lifecycle); err != nil {
		logger.Error("queue startup failed", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.Register(mux, "/api",
		api.NewWebhookHandler(dispatcher, gateway, &cfg.Gateway, logger).Routes(),
		api.NewFormHandler(store, gateway, logger).Routes(),
		api.NewAdminHandler(store, dispatcher, notifier, logger).Routes(),
		listing.NewHandler(store, logger, cfg.Pagination).Routes(),
	)

	handler := middleware.TrimSlash()(mux)
	srv := server.New(&cfg.Server, handler, cfg.ShutdownTimeoutDuration(), logger)
	if err := srv.Start(infra.Lifecycle); err != nil {
		logger.Error("server startup failed", "error", err)
		os.Exit(1)
	}

	infra.Lifecycle.WaitForStartup()
	logger.Info("intake service ready",
		"addr", cfg.Server.Addr(),
		"capability_mode", cfg.Capabilities.Mode,
		"email_enabled", cfg.Email.Enabled,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")
	infra.Lifecycle.Shutdown()
	logger.Info("intake service stopped")
}
