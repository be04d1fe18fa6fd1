// Package seed reconciles the external statistics feed into storage.
//
// Matching is by player name, the natural key: an existing row keeps its
// identity and its is_edited flag while every statistic is overwritten from
// the feed; an unseen name becomes a new row. Rows absent from the feed are
// never deleted.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dugoutlabs/dugout-data/internal/model"
)

// Source fetches the complete player set from the external feed.
type Source interface {
	FetchPlayers(ctx context.Context) ([]model.Player, error)
}

// Store is the slice of player persistence sync needs.
type Store interface {
	PlayerByName(ctx context.Context, name string) (*model.Player, error)
	Create(ctx context.Context, p model.Player) (int, error)
	Update(ctx context.Context, p model.Player) (bool, error)
}

// Syncer merges feed records into storage.
type Syncer struct {
	source Source
	store  Store
	logger *slog.Logger
}

// NewSyncer creates a Syncer.
func NewSyncer(source Source, store Store, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{source: source, store: store, logger: logger}
}

// Run fetches the feed and merges every record. The batch is not wrapped in
// a transaction: the first failed write aborts the run and the remaining
// records are left for the next sync.
func (s *Syncer) Run(ctx context.Context) (SyncResult, error) {
	var result SyncResult

	players, err := s.source.FetchPlayers(ctx)
	if err != nil {
		return result, fmt.Errorf("fetch players: %w", err)
	}
	s.logger.Info("syncing players from feed", "count", len(players))

	for _, p := range players {
		existing, err := s.store.PlayerByName(ctx, p.Name)
		if err != nil {
			return result, fmt.Errorf("look up %q: %w", p.Name, err)
		}

		if existing != nil {
			// Fresh statistics replace the old ones, but a manual edit
			// survives the overwrite.
			p.ID = existing.ID
			p.IsEdited = existing.IsEdited
			if _, err := s.store.Update(ctx, p); err != nil {
				return result, fmt.Errorf("update %q: %w", p.Name, err)
			}
			result.Updated++
			continue
		}

		if _, err := s.store.Create(ctx, p); err != nil {
			return result, fmt.Errorf("create %q: %w", p.Name, err)
		}
		result.Created++
	}

	s.logger.Info("sync complete", "summary", result.Summary())
	return result, nil
}
