// Package internal provides the main application initialization and runtime logic.
package internal

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/easelhq/easel/internal/api"
	"github.com/easelhq/easel/internal/cache"
	"github.com/easelhq/easel/internal/catalog"
	"github.com/easelhq/easel/internal/engine"
	"github.com/easelhq/easel/internal/mcpserver"
	"github.com/easelhq/easel/internal/nav"
	"github.com/easelhq/easel/internal/sse"
	"github.com/easelhq/easel/internal/store"
	"github.com/easelhq/easel/internal/surface"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("store_path", cfg.Store.Path),
		slog.String("cache_dir", cfg.Cache.Dir),
		slog.Int("autosave_interval_s", cfg.Autosave.IntervalSeconds),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Record store.
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer st.Close()

	// Single-slot cache mirror.
	slot, err := cache.NewSlot(cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	// Navigation binding over the canonical location.
	base := cfg.App.BaseURL
	if app.initial != "" {
		base = app.initial
	}
	bind, err := nav.NewQueryBinding(base)
	if err != nil {
		return fmt.Errorf("init navigation binding: %w", err)
	}

	// Canvas surface and autosave engine.
	surf := surface.NewMemory()
	eng := engine.New(surf, st, slot, bind, logger)

	// SSE broker for the save indicator and catalog events.
	broker := sse.NewBroker()
	defer broker.Close()
	eng.OnStatus = func(s engine.SaveStatus) { broker.PublishStatus(string(s)) }
	eng.OnDrawing = broker.PublishDrawingEvent

	// Restore the initial scene: location id, then cache slot, then blank.
	eng.Bootstrap(ctx)

	// Catalog service and API router.
	svc := catalog.NewService(st, eng)
	svc.OnDrawing = broker.PublishDrawingEvent
	apiRouter := api.NewRouter(svc, surf, eng, bind, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Autosave scheduler. Cancelling gCtx tears it down; an in-flight
	// write at that point completes or fails unobserved.
	g.Go(func() error {
		return engine.NewScheduler(cfg.Autosave.Interval(), eng, logger).Run(gCtx)
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP starts the stdio MCP server instead of the HTTP stack. The
// autosave scheduler is not armed: MCP exposes catalog operations only.
func RunMCP(cfg *Config) error {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))

	bind, err := nav.NewQueryBinding(cfg.App.BaseURL)
	if err != nil {
		return fmt.Errorf("init navigation binding: %w", err)
	}
	surf := surface.NewMemory()
	eng := engine.New(surf, st, nil, bind, logger)
	svc := catalog.NewService(st, eng)

	return mcpserver.New(st, svc).ServeStdio()
}
