package party

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/models"
	"github.com/dmitrijs2005/pokedex/internal/repositories/metadata"
)

// KVRepository keeps the parties of all users as one JSON list under
// common.KeyParty.
type KVRepository struct {
	store metadata.Repository
	mu    sync.Mutex
}

func NewKVRepository(store metadata.Repository) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) load(ctx context.Context) ([]models.PartyEntry, error) {
	list, _, err := metadata.GetJSON[[]models.PartyEntry](ctx, r.store, common.KeyParty)
	return list, err
}

func (r *KVRepository) save(ctx context.Context, list []models.PartyEntry) error {
	return metadata.SetJSON(ctx, r.store, common.KeyParty, list)
}

func (r *KVRepository) Exists(ctx context.Context, userID string, pokemonID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range list {
		if p.UserID == userID && p.PokemonID == pokemonID {
			return true, nil
		}
	}
	return false, nil
}

func (r *KVRepository) Add(ctx context.Context, entry models.PartyEntry) (*models.PartyEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	used := make(map[int]bool)
	for _, p := range list {
		if p.UserID != entry.UserID {
			continue
		}
		if p.PokemonID == entry.PokemonID {
			return nil, common.ErrAlreadyInParty
		}
		used[p.Slot] = true
	}

	entry.Slot = freeSlot(used, common.MaxPartySize)
	if entry.Slot == 0 {
		return nil, common.ErrPartyFull
	}

	if err := r.save(ctx, append(list, entry)); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *KVRepository) RemoveSlot(ctx context.Context, userID string, slot int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.remove(ctx, func(p models.PartyEntry) bool {
		return p.UserID == userID && p.Slot == slot
	})
}

func (r *KVRepository) RemovePokemon(ctx context.Context, userID string, pokemonID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.remove(ctx, func(p models.PartyEntry) bool {
		return p.UserID == userID && p.PokemonID == pokemonID
	})
}

// remove drops the first entry matching and shifts the owner's higher slots
// down by one. Callers hold r.mu.
func (r *KVRepository) remove(ctx context.Context, match func(models.PartyEntry) bool) error {
	list, err := r.load(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, p := range list {
		if match(p) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return common.ErrorNotFound
	}

	removed := list[idx]
	next := make([]models.PartyEntry, 0, len(list)-1)
	for i, p := range list {
		if i == idx {
			continue
		}
		if p.UserID == removed.UserID && p.Slot > removed.Slot {
			p.Slot--
		}
		next = append(next, p)
	}
	return r.save(ctx, next)
}

func (r *KVRepository) List(ctx context.Context, userID string) ([]models.PartyEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.PartyEntry, 0, common.MaxPartySize)
	for _, p := range list {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Slot < result[j].Slot })
	return result, nil
}
