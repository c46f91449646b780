package favorites

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/dbx"
	"github.com/dmitrijs2005/pokedex/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Exists(ctx context.Context, userID string, pokemonID int) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ? AND pokemon_id = ?`, userID, pokemonID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Add(ctx context.Context, entry models.FavoriteEntry) (*models.FavoriteEntry, error) {
	types, err := models.EncodeList(entry.Types)
	if err != nil {
		return nil, fmt.Errorf("failed to encode types: %w", err)
	}
	weaknesses, err := models.EncodeList(entry.Weaknesses)
	if err != nil {
		return nil, fmt.Errorf("failed to encode weaknesses: %w", err)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, pokemon_id, pokemon_name, pokemon_image, pokemon_types, pokemon_weaknesses, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.UserID, entry.PokemonID, entry.Name, entry.Image, types, weaknesses, entry.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyFavorite
		}
		return nil, fmt.Errorf("failed to insert favorite: %w", err)
	}

	entry.Seq, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read favorite id: %w", err)
	}
	return &entry, nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, userID string, pokemonID int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND pokemon_id = ?`, userID, pokemonID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, userID string) ([]models.FavoriteEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, pokemon_id, pokemon_name, pokemon_image, pokemon_types, pokemon_weaknesses, created_at
		FROM favorites WHERE user_id = ? ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	result := make([]models.FavoriteEntry, 0)
	for rows.Next() {
		var (
			f                 models.FavoriteEntry
			types, weaknesses string
		)
		if err := rows.Scan(&f.Seq, &f.UserID, &f.PokemonID, &f.Name, &f.Image, &types, &weaknesses, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		if f.Types, err = models.DecodeList(types); err != nil {
			return nil, fmt.Errorf("failed to decode types of favorite %d: %w", f.PokemonID, err)
		}
		if f.Weaknesses, err = models.DecodeList(weaknesses); err != nil {
			return nil, fmt.Errorf("failed to decode weaknesses of favorite %d: %w", f.PokemonID, err)
		}
		result = append(result, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorite rows: %w", err)
	}

	return result, nil
}
