// Package describe implements the get-or-compute flow for player
// descriptions: cached text is served as-is, otherwise one generation call
// runs and its result is persisted. The cache never expires and is not
// invalidated by player edits.
package describe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dugoutlabs/dugout-data/internal/apperr"
	"github.com/dugoutlabs/dugout-data/internal/model"
)

// Store is the slice of persistence the service needs.
type Store interface {
	Player(ctx context.Context, id int) (*model.Player, error)
	Description(ctx context.Context, playerID int) (string, bool, error)
	SaveDescription(ctx context.Context, playerID int, text string) error
}

// Generator produces a description from a player record.
type Generator interface {
	Describe(ctx context.Context, p model.Player) (string, error)
}

// Service serves player descriptions from the cache table, generating on
// first request.
type Service struct {
	store  Store
	gen    Generator
	logger *slog.Logger
}

// New creates a Service.
func New(store Store, gen Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, gen: gen, logger: logger}
}

// GetOrGenerate returns the description for a player, generating and caching
// it on the first call. An unknown player is a not-found error.
func (s *Service) GetOrGenerate(ctx context.Context, playerID int) (string, error) {
	cached, ok, err := s.store.Description(ctx, playerID)
	if err != nil {
		return "", fmt.Errorf("read cached description: %w", err)
	}
	if ok {
		return cached, nil
	}

	player, err := s.store.Player(ctx, playerID)
	if err != nil {
		return "", fmt.Errorf("load player %d: %w", playerID, err)
	}
	if player == nil {
		return "", apperr.Newf(apperr.KindNotFound, "player %d not found", playerID)
	}

	text, err := s.gen.Describe(ctx, *player)
	if err != nil {
		return "", fmt.Errorf("generate description for %q: %w", player.Name, err)
	}

	if err := s.store.SaveDescription(ctx, playerID, text); err != nil {
		return "", fmt.Errorf("cache description: %w", err)
	}
	s.logger.Info("generated player description", "player_id", playerID)
	return text, nil
}
