package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/pokedex/internal/config"
	"github.com/dmitrijs2005/pokedex/internal/logging"
	"github.com/dmitrijs2005/pokedex/internal/storage"
	"github.com/stretchr/testify/require"
)

// env wires every service over one storage backend.
type env struct {
	cfg       *config.Config
	store     storage.Storage
	session   SessionHolder
	auth      AuthService
	favorites *FavoritesService
	party     *PartyService
}

func newEnv(t *testing.T, cfg *config.Config) *env {
	t.Helper()
	store, err := storage.Open(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	session := NewSessionService(store.Metadata(), []byte(cfg.SessionSecret), cfg.SessionTTL, logging.Nop())
	return &env{
		cfg:       cfg,
		store:     store,
		session:   session,
		auth:      NewAuthService(store.Users(), session, logging.Nop()),
		favorites: NewFavoritesService(store.Favorites(), logging.Nop()),
		party:     NewPartyService(store.Party(), logging.Nop()),
	}
}

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorageBackend = backend
	cfg.DatabaseDSN = filepath.Join(dir, "pokedex.db")
	cfg.KVPath = filepath.Join(dir, "pokedex.kv.json")
	cfg.SessionSecret = "test-secret"
	return cfg
}

// eachBackend runs fn once per storage backend.
func eachBackend(t *testing.T, fn func(t *testing.T, e *env)) {
	for _, b := range []string{storage.BackendSQLite, storage.BackendKV} {
		t.Run(b, func(t *testing.T) { fn(t, newEnv(t, testConfig(t, b))) })
	}
}
