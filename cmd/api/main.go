// Command api is the Dugout Data API server.
//
// Usage:
//
//	dugout-api
//	API_PORT=8080 dugout-api

// @title Dugout Data API
// @version 1.0.0
// @description Baseball statistics API: player CRUD, external feed sync, and generated player descriptions.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/dugoutlabs/dugout-data/internal/api"
	"github.com/dugoutlabs/dugout-data/internal/api/handler"
	"github.com/dugoutlabs/dugout-data/internal/cache"
	"github.com/dugoutlabs/dugout-data/internal/config"
	"github.com/dugoutlabs/dugout-data/internal/db"
	"github.com/dugoutlabs/dugout-data/internal/describe"
	"github.com/dugoutlabs/dugout-data/internal/external"
	"github.com/dugoutlabs/dugout-data/internal/provider/statsapi"
	"github.com/dugoutlabs/dugout-data/internal/seed"
	"github.com/dugoutlabs/dugout-data/internal/store"

	_ "github.com/dugoutlabs/dugout-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Schema must exist before the pool prepares statements against it.
	logger.Info("Ensuring database schema...")
	if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to initialize schema", "error", err)
		os.Exit(1)
	}

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize response cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Response cache initialized", "enabled", cfg.CacheEnabled)

	// Core services
	st := store.New(pool.Pool)
	feed := statsapi.NewClient(cfg.StatsFeedURL, cfg.StatsFeedTimeout, logger)
	syncer := seed.NewSyncer(feed, st, logger)
	generator := external.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIURL, cfg.OpenAIModel, cfg.OpenAITimeout)
	descriptions := describe.New(st, generator, logger)
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY not set; description generation will fail until configured")
	}

	// Create router
	h := handler.New(pool, st, syncer, descriptions, appCache, cfg, logger)
	router := api.NewRouter(h, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Dugout Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
