package storage

import (
	"context"
	"sync/atomic"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/models"
	"github.com/dmitrijs2005/pokedex/internal/repositories/favorites"
	"github.com/dmitrijs2005/pokedex/internal/repositories/metadata"
	"github.com/dmitrijs2005/pokedex/internal/repositories/party"
	"github.com/dmitrijs2005/pokedex/internal/repositories/users"
)

// guard vends repositories that refuse every call once the owning storage is
// closed.
type guard struct {
	closed *atomic.Bool

	users     guardedUsers
	favorites guardedFavorites
	party     guardedParty
	metadata  guardedMetadata
}

func newGuard(u users.Repository, f favorites.Repository, p party.Repository, m metadata.Repository) guard {
	closed := &atomic.Bool{}
	return guard{
		closed:    closed,
		users:     guardedUsers{closed: closed, inner: u},
		favorites: guardedFavorites{closed: closed, inner: f},
		party:     guardedParty{closed: closed, inner: p},
		metadata:  guardedMetadata{closed: closed, inner: m},
	}
}

func (g *guard) Users() users.Repository         { return g.users }
func (g *guard) Favorites() favorites.Repository { return g.favorites }
func (g *guard) Party() party.Repository         { return g.party }
func (g *guard) Metadata() metadata.Repository   { return g.metadata }

func (g *guard) check() error {
	return checkOpen(g.closed)
}

// markClosed reports whether this call performed the transition.
func (g *guard) markClosed() bool {
	return g.closed.CompareAndSwap(false, true)
}

func checkOpen(closed *atomic.Bool) error {
	if closed.Load() {
		return common.ErrStorageUnavailable
	}
	return nil
}

type guardedUsers struct {
	closed *atomic.Bool
	inner  users.Repository
}

func (g guardedUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := checkOpen(g.closed); err != nil {
		return nil, err
	}
	return g.inner.Create(ctx, user)
}

func (g guardedUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := checkOpen(g.closed); err != nil {
		return nil, err
	}
	return g.inner.GetByID(ctx, id)
}

func (g guardedUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := checkOpen(g.closed); err != nil {
		return nil, err
	}
	return g.inner.GetByEmail(ctx, email)
}

func (g guardedUsers) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	if err := checkOpen(g.closed); err != nil {
		return nil, err
	}
	return g.inner.GetByNickname(ctx, nickname)
}

func (g guardedUsers) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	if err := checkOpen(g.closed); err != nil {
		return nil, err
	}
	return g.inner.Update(ctx, id, upd)
}

type guardedFavorites struct {
	closed *atomic.Bool
	inner  favorites.Repository
}

func (g guardedFavorites) Exists(ctx context.Context, userID string, pokemonID int) (bool, error) {
	if err := checkOpen(g.closed); err != nil {
		return false, err
	}
	return g.inner.Exists(ctx, userID, pokemonID)
}

func (g guardedFavorites) Add(ctx context.Context, entry models.FavoriteEntry) (*models.FavoriteEntry, error) {
	if err := checkOpen(g.closed); err != nil {
		return nil, err
	}
	return g.inner.Add(ctx, entry)
}

func (g guardedFavorites) Remove(ctx context.Context, userID string, pokemonID int) error {
	if err := checkOpen(g.closed); err != nil {
		return err
	}
	return g.inner.Remove(ctx, userID, pokemonID)
}

func (g guardedFavorites) List(ctx context.Context, userID string) ([]models.FavoriteEntry, error) {
	if err := checkOpen(g.closed); err != nil {
		return nil, err
	}
	return g.inner.List(ctx, userID)
}

type guardedParty struct {
	closed *atomic.Bool
	inner  party.Repository
}

func (g guardedParty) Exists(ctx context.Context, userID string, pokemonID int) (bool, error) {
	if err := checkOpen(g.closed); err != nil {
		return false, err
	}
	return g.inner.Exists(ctx, userID, pokemonID)
}

func (g guardedParty) Add(ctx context.Context, entry models.PartyEntry) (*models.PartyEntry, error) {
	if err := checkOpen(g.closed); err != nil {
		return nil, err
	}
	return g.inner.Add(ctx, entry)
}

func (g guardedParty) RemoveSlot(ctx context.Context, userID string, slot int) error {
	if err := checkOpen(g.closed); err != nil {
		return err
	}
	return g.inner.RemoveSlot(ctx, userID, slot)
}

func (g guardedParty) RemovePokemon(ctx context.Context, userID string, pokemonID int) error {
	if err := checkOpen(g.closed); err != nil {
		return err
	}
	return g.inner.RemovePokemon(ctx, userID, pokemonID)
}

func (g guardedParty) List(ctx context.Context, userID string) ([]models.PartyEntry, error) {
	if err := checkOpen(g.closed); err != nil {
		return nil, err
	}
	return g.inner.List(ctx, userID)
}

type guardedMetadata struct {
	closed *atomic.Bool
	inner  metadata.Repository
}

func (g guardedMetadata) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkOpen(g.closed); err != nil {
		return nil, err
	}
	return g.inner.Get(ctx, key)
}

func (g guardedMetadata) Set(ctx context.Context, key string, value []byte) error {
	if err := checkOpen(g.closed); err != nil {
		return err
	}
	return g.inner.Set(ctx, key, value)
}

func (g guardedMetadata) Delete(ctx context.Context, key string) error {
	if err := checkOpen(g.closed); err != nil {
		return err
	}
	return g.inner.Delete(ctx, key)
}

func (g guardedMetadata) List(ctx context.Context) (map[string][]byte, error) {
	if err := checkOpen(g.closed); err != nil {
		return nil, err
	}
	return g.inner.List(ctx)
}

func (g guardedMetadata) Clear(ctx context.Context) error {
	if err := checkOpen(g.closed); err != nil {
		return err
	}
	return g.inner.Clear(ctx)
}
