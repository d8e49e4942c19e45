// Package main is the entry point for the blog server. It loads
// configuration, connects to Postgres and Valkey, wires the handler
// groups, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"weiblog/internal/auth"
	"weiblog/internal/cache"
	"weiblog/internal/config"
	"weiblog/internal/database"
	"weiblog/internal/handlers"
	"weiblog/internal/metrics"
	"weiblog/internal/render"
	"weiblog/internal/router"
	"weiblog/internal/session"
	"weiblog/internal/store"
	"weiblog/internal/taxonomy"
)

func main() {
	// Structured logger — text output, debug level.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"site", cfg.SiteName,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions + page cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark session cookies Secure.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// HTML template renderer.
	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Data stores.
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	commentStore := store.NewCommentStore(db)

	// Category tree rules.
	taxonomyService := taxonomy.NewService(categoryStore)

	// Prometheus metrics.
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Google sign-in.
	google := auth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	// Handler groups.
	publicHandlers := handlers.NewPublic(postStore, categoryStore, commentStore, renderer, pageCache, collector, cfg.SiteName, cfg.OwnerEmail)
	authHandlers := handlers.NewAuth(google, sessionStore, renderer, cfg.SiteName)
	postHandlers := handlers.NewPosts(postStore, categoryStore, renderer, pageCache, cfg.SiteName)
	categoryHandlers := handlers.NewCategories(taxonomyService, categoryStore, renderer, pageCache, cfg.SiteName)
	commentHandlers := handlers.NewComments(commentStore, postStore, pageCache, collector, cfg.OwnerEmail)

	r := router.New(router.Deps{
		Sessions:   sessionStore,
		Public:     publicHandlers,
		Auth:       authHandlers,
		Posts:      postHandlers,
		Categories: categoryHandlers,
		Comments:   commentHandlers,
		Collector:  collector,
		Gatherer:   registry,
		OwnerEmail: cfg.OwnerEmail,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
