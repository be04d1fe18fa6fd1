package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// migrations runs in order. Every statement is idempotent, so repeated
// initialization against an existing schema is a no-op.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id SERIAL PRIMARY KEY,
		player_name VARCHAR(255) NOT NULL,
		position VARCHAR(10) NOT NULL,
		games INTEGER NOT NULL,
		at_bats INTEGER NOT NULL,
		runs INTEGER NOT NULL,
		hits INTEGER NOT NULL,
		doubles INTEGER NOT NULL,
		triples INTEGER NOT NULL,
		home_runs INTEGER NOT NULL,
		rbis INTEGER NOT NULL,
		walks INTEGER NOT NULL,
		strikeouts INTEGER NOT NULL,
		stolen_bases INTEGER NOT NULL,
		caught_stealing INTEGER NOT NULL,
		batting_average DECIMAL(5, 3) NOT NULL,
		on_base_percentage DECIMAL(5, 3) NOT NULL,
		slugging_percentage DECIMAL(5, 3) NOT NULL,
		ops DECIMAL(5, 3) NOT NULL,
		is_edited BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	// Cache of generated player descriptions, at most one per player.
	`CREATE TABLE IF NOT EXISTS player_descriptions (
		id SERIAL PRIMARY KEY,
		player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		description TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(player_id)
	)`,

	// player_name is the natural key sync matches on.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_players_name ON players(player_name)`,

	// hits_per_game used to be a stored column; it is now computed in the
	// list query. Safe to run against schemas that never had it.
	`ALTER TABLE players DROP COLUMN IF EXISTS hits_per_game`,
}

// Migrate initializes the schema over a direct connection. It runs before
// any pool exists because pooled connections prepare statements that
// reference these tables.
func Migrate(ctx context.Context, databaseURL string) error {
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("connect for migration: %w", err)
	}
	defer conn.Close(ctx)

	for i, stmt := range migrations {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
