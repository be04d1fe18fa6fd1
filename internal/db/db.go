// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking, plus idempotent schema migration.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dugoutlabs/dugout-data/internal/config"
)

// PlayerColumns is the canonical column order every player query selects
// and every scan consumes.
const PlayerColumns = "id, player_name, position, games, at_bats, runs, hits, doubles, " +
	"triples, home_runs, rbis, walks, strikeouts, stolen_bases, caught_stealing, " +
	"batting_average, on_base_percentage, slugging_percentage, ops, is_edited"

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers every statement the store uses.
// The list queries get one statement per allow-listed sort key, so the sort
// column is never interpolated from caller input.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	players := config.PlayersTable
	descriptions := config.DescriptionsTable

	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Point lookups
		"player_by_id":   "SELECT " + PlayerColumns + " FROM " + players + " WHERE id = $1",
		"player_by_name": "SELECT " + PlayerColumns + " FROM " + players + " WHERE player_name = $1",

		// List, one statement per allowed sort key
		"list_players_hits":      "SELECT " + PlayerColumns + " FROM " + players + " ORDER BY hits DESC",
		"list_players_home_runs": "SELECT " + PlayerColumns + " FROM " + players + " ORDER BY home_runs DESC",
		"list_players_hits_per_game": "SELECT " + PlayerColumns + " FROM " + players +
			" ORDER BY (hits::float / NULLIF(games, 0)) DESC NULLS LAST",

		// Writes
		"insert_player": "INSERT INTO " + players + " (player_name, position, games, at_bats, runs, " +
			"hits, doubles, triples, home_runs, rbis, walks, strikeouts, stolen_bases, " +
			"caught_stealing, batting_average, on_base_percentage, slugging_percentage, ops, is_edited) " +
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19) RETURNING id",
		"update_player": "UPDATE " + players + " SET player_name = $1, position = $2, games = $3, " +
			"at_bats = $4, runs = $5, hits = $6, doubles = $7, triples = $8, home_runs = $9, " +
			"rbis = $10, walks = $11, strikeouts = $12, stolen_bases = $13, caught_stealing = $14, " +
			"batting_average = $15, on_base_percentage = $16, slugging_percentage = $17, ops = $18, " +
			"is_edited = $19, updated_at = NOW() WHERE id = $20",

		// Description cache
		"description_by_player": "SELECT description FROM " + descriptions + " WHERE player_id = $1",
		"upsert_description": "INSERT INTO " + descriptions + " (player_id, description) VALUES ($1, $2) " +
			"ON CONFLICT (player_id) DO UPDATE SET description = EXCLUDED.description",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
