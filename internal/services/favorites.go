package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/pokedex/internal/catalog"
	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/logging"
	"github.com/dmitrijs2005/pokedex/internal/models"
	"github.com/dmitrijs2005/pokedex/internal/repositories/favorites"
)

// FavoritesService toggles and lists a user's favorites. Toggles are
// serialized so two quick toggles of the same entry resolve to add then
// remove.
type FavoritesService struct {
	repo   favorites.Repository
	logger logging.Logger
	mu     sync.Mutex
}

func NewFavoritesService(repo favorites.Repository, logger logging.Logger) *FavoritesService {
	return &FavoritesService{repo: repo, logger: logger.With("component", "favorites")}
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: no acting user", common.ErrValidation)
	}
	return nil
}

func (s *FavoritesService) IsFavorite(ctx context.Context, userID string, pokemonID int) (bool, error) {
	if err := requireUser(userID); err != nil {
		return false, err
	}
	return s.repo.Exists(ctx, userID, pokemonID)
}

// Toggle removes entry from the favorites if present, otherwise adds a
// snapshot of it with weaknesses derived from its types. added reports the
// resulting membership.
func (s *FavoritesService) Toggle(ctx context.Context, userID string, entry models.CatalogEntry) (added bool, err error) {
	if err := requireUser(userID); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.repo.Exists(ctx, userID, entry.ID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.repo.Remove(ctx, userID, entry.ID); err != nil {
			return false, err
		}
		s.logger.Debug(ctx, "favorite removed", "user_id", userID, "pokemon_id", entry.ID)
		return false, nil
	}

	fav := models.NewFavorite(userID, entry, catalog.Weaknesses(entry.Types))
	if _, err := s.repo.Add(ctx, fav); err != nil {
		return false, err
	}
	s.logger.Debug(ctx, "favorite added", "user_id", userID, "pokemon_id", entry.ID)
	return true, nil
}

func (s *FavoritesService) List(ctx context.Context, userID string) ([]models.FavoriteEntry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userID)
}
