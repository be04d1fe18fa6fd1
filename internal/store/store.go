// Package store implements data access for players and their cached
// descriptions. All SQL lives in the prepared statements registered by
// internal/db; the store only refers to statements by name.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dugoutlabs/dugout-data/internal/apperr"
	"github.com/dugoutlabs/dugout-data/internal/model"
)

// listStatements maps the allow-listed sort keys onto prepared statement
// names. Anything outside this map is rejected before any query runs.
var listStatements = map[string]string{
	"hits":          "list_players_hits",
	"home_runs":     "list_players_home_runs",
	"hits_per_game": "list_players_hits_per_game",
}

// Store provides player and description persistence over a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store. The pool must have the statements from internal/db
// prepared on its connections.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Create inserts a new player row and returns the assigned identity.
func (s *Store) Create(ctx context.Context, p model.Player) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx, "insert_player", writeArgs(p)...).Scan(&id)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindStorage, "insert player", err)
	}
	return id, nil
}

// Player looks up a player by identity. Absence is not an error: a missing
// row returns (nil, nil).
func (s *Store) Player(ctx context.Context, id int) (*model.Player, error) {
	p, err := scanPlayer(s.pool.QueryRow(ctx, "player_by_id", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "query player by id", err)
	}
	return &p, nil
}

// PlayerByName looks up a player by the natural key used by sync.
// A missing row returns (nil, nil).
func (s *Store) PlayerByName(ctx context.Context, name string) (*model.Player, error) {
	p, err := scanPlayer(s.pool.QueryRow(ctx, "player_by_name", name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "query player by name", err)
	}
	return &p, nil
}

// List returns every player ordered descending by sortKey, which must be
// one of "hits", "home_runs", or "hits_per_game".
func (s *Store) List(ctx context.Context, sortKey string) ([]model.Player, error) {
	stmt, ok := listStatements[sortKey]
	if !ok {
		return nil, apperr.Newf(apperr.KindValidation, "invalid sort key %q", sortKey)
	}

	rows, err := s.pool.Query(ctx, stmt)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "list players", err)
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindStorage, "scan player row", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "list players", err)
	}
	return players, nil
}

// Update overwrites every column of the row matching p.ID, including
// is_edited. Returns whether a row was matched; a missing identity is not
// an error here, the caller decides.
func (s *Store) Update(ctx context.Context, p model.Player) (bool, error) {
	if p.ID == 0 {
		return false, apperr.New(apperr.KindValidation, "player identity is required for update")
	}
	args := append(writeArgs(p), p.ID)
	tag, err := s.pool.Exec(ctx, "update_player", args...)
	if err != nil {
		return false, apperr.Wrap(apperr.KindStorage, "update player", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Description reads the cached description for a player. The bool reports
// whether an entry exists.
func (s *Store) Description(ctx context.Context, playerID int) (string, bool, error) {
	var text string
	err := s.pool.QueryRow(ctx, "description_by_player", playerID).Scan(&text)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperr.Wrap(apperr.KindStorage, "query description", err)
	}
	return text, true, nil
}

// SaveDescription inserts or overwrites the cached description for a player.
func (s *Store) SaveDescription(ctx context.Context, playerID int, text string) error {
	if _, err := s.pool.Exec(ctx, "upsert_description", playerID, text); err != nil {
		return apperr.Wrap(apperr.KindStorage, "save description", err)
	}
	return nil
}

// writeArgs produces the insert/update argument list in column order.
// Rate stats are normalized to three decimals to match DECIMAL(5,3).
func writeArgs(p model.Player) []any {
	return []any{
		p.Name, p.Position, p.Games, p.AtBats, p.Runs, p.Hits, p.Doubles,
		p.Triples, p.HomeRuns, p.RBIs, p.Walks, p.Strikeouts, p.StolenBases,
		p.CaughtStealing, model.Round3(p.BattingAverage),
		model.Round3(p.OnBasePercentage), model.Round3(p.SluggingPercentage),
		model.Round3(p.OPS), p.IsEdited,
	}
}

// scanPlayer reads one row in db.PlayerColumns order.
func scanPlayer(row pgx.Row) (model.Player, error) {
	var p model.Player
	err := row.Scan(
		&p.ID, &p.Name, &p.Position, &p.Games, &p.AtBats, &p.Runs, &p.Hits,
		&p.Doubles, &p.Triples, &p.HomeRuns, &p.RBIs, &p.Walks, &p.Strikeouts,
		&p.StolenBases, &p.CaughtStealing, &p.BattingAverage,
		&p.OnBasePercentage, &p.SluggingPercentage, &p.OPS, &p.IsEdited,
	)
	return p, err
}
