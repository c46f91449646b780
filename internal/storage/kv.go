package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/repositories/favorites"
	"github.com/dmitrijs2005/pokedex/internal/repositories/metadata"
	"github.com/dmitrijs2005/pokedex/internal/repositories/party"
	"github.com/dmitrijs2005/pokedex/internal/repositories/users"
)

// kvStorage keeps every collection as a JSON blob in one file-backed
// key-value store.
type kvStorage struct {
	guard
	store *metadata.FileRepository
}

func openKV(path string) (*kvStorage, error) {
	store, err := metadata.OpenFileRepository(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	s := &kvStorage{store: store}
	s.guard = newGuard(
		users.NewKVRepository(store),
		favorites.NewKVRepository(store),
		party.NewKVRepository(store),
		store,
	)
	return s, nil
}

func (s *kvStorage) Backend() string { return BackendKV }

func (s *kvStorage) Reset(ctx context.Context) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.store.Clear(ctx)
}

func (s *kvStorage) Close() error {
	if !s.markClosed() {
		return nil
	}
	return s.store.Close()
}
