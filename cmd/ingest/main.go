// Command ingest is the Dugout Data ingestion CLI.
//
// Usage:
//
//	dugout-ingest init-db
//	dugout-ingest sync
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dugoutlabs/dugout-data/internal/config"
	"github.com/dugoutlabs/dugout-data/internal/db"
	"github.com/dugoutlabs/dugout-data/internal/provider/statsapi"
	"github.com/dugoutlabs/dugout-data/internal/seed"
	"github.com/dugoutlabs/dugout-data/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "dugout-ingest",
		Short: "Dugout Data ingestion CLI",
	}

	root.AddCommand(initDBCmd())
	root.AddCommand(syncCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Initialize the database schema (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger.Info("Initializing database schema...")
			if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
				return err
			}
			logger.Info("Database schema initialized")
			return nil
		},
	}
}

func syncCmd() *cobra.Command {
	var feedURL string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync players from the external statistics feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if feedURL == "" {
					feedURL = cfg.StatsFeedURL
				}
				feed := statsapi.NewClient(feedURL, cfg.StatsFeedTimeout, logger)
				syncer := seed.NewSyncer(feed, store.New(pool.Pool), logger)

				start := time.Now()
				result, err := syncer.Run(ctx)
				if err != nil {
					return err
				}
				logger.Info("Sync finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", result.Summary())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&feedURL, "feed-url", "", "Override the statistics feed URL")
	return cmd
}

// runWithPool handles config loading, schema migration, DB connection, and
// context cancellation.
func runWithPool(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
