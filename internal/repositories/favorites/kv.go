package favorites

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/models"
	"github.com/dmitrijs2005/pokedex/internal/repositories/metadata"
)

// KVRepository keeps the favorites of all users as one JSON list under
// common.KeyFavorites.
type KVRepository struct {
	store metadata.Repository
	mu    sync.Mutex
}

func NewKVRepository(store metadata.Repository) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) load(ctx context.Context) ([]models.FavoriteEntry, error) {
	list, _, err := metadata.GetJSON[[]models.FavoriteEntry](ctx, r.store, common.KeyFavorites)
	return list, err
}

func (r *KVRepository) save(ctx context.Context, list []models.FavoriteEntry) error {
	return metadata.SetJSON(ctx, r.store, common.KeyFavorites, list)
}

func (r *KVRepository) Exists(ctx context.Context, userID string, pokemonID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(list, userID, pokemonID) >= 0, nil
}

func (r *KVRepository) Add(ctx context.Context, entry models.FavoriteEntry) (*models.FavoriteEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if indexOf(list, entry.UserID, entry.PokemonID) >= 0 {
		return nil, common.ErrAlreadyFavorite
	}

	var seq int64
	for _, f := range list {
		seq = max(seq, f.Seq)
	}
	entry.Seq = seq + 1
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if err := r.save(ctx, append(list, entry)); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *KVRepository) Remove(ctx context.Context, userID string, pokemonID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(list, userID, pokemonID)
	if i < 0 {
		return common.ErrorNotFound
	}
	return r.save(ctx, append(list[:i], list[i+1:]...))
}

func (r *KVRepository) List(ctx context.Context, userID string) ([]models.FavoriteEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.FavoriteEntry, 0)
	for _, f := range list {
		if f.UserID == userID {
			result = append(result, f)
		}
	}
	return result, nil
}

func indexOf(list []models.FavoriteEntry, userID string, pokemonID int) int {
	for i, f := range list {
		if f.UserID == userID && f.PokemonID == pokemonID {
			return i
		}
	}
	return -1
}
