package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/use-agent/scout/api"
	"github.com/use-agent/scout/cache"
	"github.com/use-agent/scout/catalog"
	"github.com/use-agent/scout/config"
	"github.com/use-agent/scout/corpus"
	"github.com/use-agent/scout/scraper"
	"github.com/use-agent/scout/webhook"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// ── 2. Initialise structured logging ────────────────────────────
	config.InitLogger(cfg.Log, os.Stdout)
	slog.Info("scout-api starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"store", cfg.Storage.Driver,
	)

	// ── 3. Open the corpus store ────────────────────────────────────
	ctx := context.Background()
	store, err := corpus.Open(ctx, cfg.Storage)
	if err != nil {
		slog.Error("failed to open corpus store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// ── 4. Pipeline and collaborators ───────────────────────────────
	runner := scraper.NewRunner(
		scraper.BrowserLauncher(cfg.Browser, cfg.Scraper),
		store,
		cfg.Storage.ScreenshotPath,
	)
	importer := catalog.New(cfg.Catalog)
	notifier := webhook.New(cfg.Webhook.URL, cfg.Webhook.Secret)
	cc := cache.New(cfg.Cache.MaxEntries)
	defer cc.Close()

	// ── 5. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(runner, store, importer, cc, notifier, cfg, time.Now())

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// A run in flight holds a browser; give it time to close it.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}
	slog.Info("scout-api stopped")
}
