package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/filex"
	"github.com/dmitrijs2005/pokedex/internal/migrations"
	"github.com/dmitrijs2005/pokedex/internal/repositories/favorites"
	"github.com/dmitrijs2005/pokedex/internal/repositories/metadata"
	"github.com/dmitrijs2005/pokedex/internal/repositories/party"
	"github.com/dmitrijs2005/pokedex/internal/repositories/users"

	_ "modernc.org/sqlite"
)

type sqliteStorage struct {
	guard
	db *sql.DB
}

func openSQLite(ctx context.Context, dsn string) (*sqliteStorage, error) {
	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %w", common.ErrStorageUnavailable, err)
	}
	// one connection serializes writers and keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite: %w", common.ErrStorageUnavailable, err)
	}
	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	s := &sqliteStorage{db: db}
	s.guard = newGuard(
		users.NewSQLiteRepository(db),
		favorites.NewSQLiteRepository(db),
		party.NewSQLiteRepository(db),
		metadata.NewSQLiteRepository(db),
	)
	return s, nil
}

func (s *sqliteStorage) Backend() string { return BackendSQLite }

func (s *sqliteStorage) Reset(ctx context.Context) error {
	if err := s.check(); err != nil {
		return err
	}
	return migrations.Reset(ctx, s.db)
}

func (s *sqliteStorage) Close() error {
	if !s.markClosed() {
		return nil
	}
	return s.db.Close()
}
