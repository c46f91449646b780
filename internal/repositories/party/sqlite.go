package party

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/dbx"
	"github.com/dmitrijs2005/pokedex/internal/models"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Exists(ctx context.Context, userID string, pokemonID int) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM party WHERE user_id = ? AND pokemon_id = ?`, userID, pokemonID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check party member: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Add(ctx context.Context, entry models.PartyEntry) (*models.PartyEntry, error) {
	types, err := models.EncodeList(entry.Types)
	if err != nil {
		return nil, fmt.Errorf("failed to encode types: %w", err)
	}
	weaknesses, err := models.EncodeList(entry.Weaknesses)
	if err != nil {
		return nil, fmt.Errorf("failed to encode weaknesses: %w", err)
	}

	err = dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rows, err := tx.QueryContext(ctx, `SELECT slot, pokemon_id FROM party WHERE user_id = ?`, entry.UserID)
		if err != nil {
			return fmt.Errorf("failed to read party slots: %w", err)
		}
		used := make(map[int]bool)
		for rows.Next() {
			var slot, pokemonID int
			if err := rows.Scan(&slot, &pokemonID); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan party slot: %w", err)
			}
			if pokemonID == entry.PokemonID {
				rows.Close()
				return common.ErrAlreadyInParty
			}
			used[slot] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate party slots: %w", err)
		}

		entry.Slot = freeSlot(used, common.MaxPartySize)
		if entry.Slot == 0 {
			return common.ErrPartyFull
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO party (user_id, slot, pokemon_id, pokemon_name, pokemon_image, pokemon_types, pokemon_weaknesses)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, entry.UserID, entry.Slot, entry.PokemonID, entry.Name, entry.Image, types, weaknesses)
		if err != nil {
			if dbx.IsUniqueViolation(err) {
				return common.ErrAlreadyInParty
			}
			return fmt.Errorf("failed to insert party member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *SQLiteRepository) RemoveSlot(ctx context.Context, userID string, slot int) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return removeSlot(ctx, tx, userID, slot)
	})
}

func (r *SQLiteRepository) RemovePokemon(ctx context.Context, userID string, pokemonID int) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var slot int
		err := tx.QueryRowContext(ctx,
			`SELECT slot FROM party WHERE user_id = ? AND pokemon_id = ?`, userID, pokemonID).Scan(&slot)
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to find party slot: %w", err)
		}
		return removeSlot(ctx, tx, userID, slot)
	})
}

// removeSlot deletes slot and closes the gap. Higher slots move one at a
// time in ascending order so (user_id, slot) stays unique at every step.
func removeSlot(ctx context.Context, tx dbx.DBTX, userID string, slot int) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM party WHERE user_id = ? AND slot = ?`, userID, slot)
	if err != nil {
		return fmt.Errorf("failed to delete party slot %d: %w", slot, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete party slot %d: %w", slot, err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	for s := slot + 1; s <= common.MaxPartySize; s++ {
		if _, err := tx.ExecContext(ctx,
			`UPDATE party SET slot = ? WHERE user_id = ? AND slot = ?`, s-1, userID, s); err != nil {
			return fmt.Errorf("failed to shift party slot %d: %w", s, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, userID string) ([]models.PartyEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT slot, user_id, pokemon_id, pokemon_name, pokemon_image, pokemon_types, pokemon_weaknesses
		FROM party WHERE user_id = ? ORDER BY slot ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list party: %w", err)
	}
	defer rows.Close()

	result := make([]models.PartyEntry, 0, common.MaxPartySize)
	for rows.Next() {
		var (
			p                 models.PartyEntry
			types, weaknesses string
		)
		if err := rows.Scan(&p.Slot, &p.UserID, &p.PokemonID, &p.Name, &p.Image, &types, &weaknesses); err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		if p.Types, err = models.DecodeList(types); err != nil {
			return nil, fmt.Errorf("failed to decode types of slot %d: %w", p.Slot, err)
		}
		if p.Weaknesses, err = models.DecodeList(weaknesses); err != nil {
			return nil, fmt.Errorf("failed to decode weaknesses of slot %d: %w", p.Slot, err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate party rows: %w", err)
	}

	return result, nil
}
