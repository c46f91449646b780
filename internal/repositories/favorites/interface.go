// Package favorites is the per-user favorites collection store.
package favorites

import (
	"context"

	"github.com/dmitrijs2005/pokedex/internal/models"
)

// Repository keeps at most one favorite per (user, catalog id). List returns
// entries in insertion order.
type Repository interface {
	Exists(ctx context.Context, userID string, pokemonID int) (bool, error)
	Add(ctx context.Context, entry models.FavoriteEntry) (*models.FavoriteEntry, error)
	Remove(ctx context.Context, userID string, pokemonID int) error
	List(ctx context.Context, userID string) ([]models.FavoriteEntry, error)
}
