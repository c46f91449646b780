// Package storage selects and opens the persistence backend once at start-up
// and vends the repositories built on it.
package storage

import (
	"context"
	"fmt"
	"runtime"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/config"
	"github.com/dmitrijs2005/pokedex/internal/logging"
	"github.com/dmitrijs2005/pokedex/internal/repositories/favorites"
	"github.com/dmitrijs2005/pokedex/internal/repositories/metadata"
	"github.com/dmitrijs2005/pokedex/internal/repositories/party"
	"github.com/dmitrijs2005/pokedex/internal/repositories/users"
)

const (
	BackendAuto   = "auto"
	BackendSQLite = "sqlite"
	BackendKV     = "kv"
)

// Storage is the capability set shared by every backend. After Close every
// repository it vended fails with common.ErrStorageUnavailable.
type Storage interface {
	Users() users.Repository
	Favorites() favorites.Repository
	Party() party.Repository
	Metadata() metadata.Repository
	// Reset drops all users, collections and session state.
	Reset(ctx context.Context) error
	Backend() string
	Close() error
}

// ResolveBackend maps "auto" to the backend suitable for the current
// platform. Other names are returned unchanged.
func ResolveBackend(name string) string {
	if name != BackendAuto && name != "" {
		return name
	}
	switch runtime.GOOS {
	case "js", "wasip1":
		return BackendKV
	default:
		return BackendSQLite
	}
}

// Open builds the backend named by cfg.StorageBackend. Every failure wraps
// common.ErrStorageUnavailable.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (Storage, error) {
	backend := ResolveBackend(cfg.StorageBackend)
	log := logger.With("component", "storage", "backend", backend)

	var (
		s   Storage
		err error
	)
	switch backend {
	case BackendSQLite:
		s, err = openSQLite(ctx, cfg.DatabaseDSN)
	case BackendKV:
		s, err = openKV(cfg.KVPath)
	default:
		err = fmt.Errorf("%w: unknown backend %q", common.ErrStorageUnavailable, cfg.StorageBackend)
	}
	if err != nil {
		log.Error(ctx, "failed to open storage", "error", err)
		return nil, err
	}

	log.Info(ctx, "storage opened")
	return s, nil
}
