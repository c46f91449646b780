// Package party is the per-user party collection store.
//
// Slots are kept dense: a party of n members always occupies slots 1..n.
// Adding takes the smallest free slot; removing a slot shifts every higher
// slot down by one.
package party

import (
	"context"

	"github.com/dmitrijs2005/pokedex/internal/models"
)

type Repository interface {
	Exists(ctx context.Context, userID string, pokemonID int) (bool, error)
	// Add assigns entry a slot. It fails with common.ErrPartyFull when all
	// slots are taken and common.ErrAlreadyInParty for a repeated catalog id.
	Add(ctx context.Context, entry models.PartyEntry) (*models.PartyEntry, error)
	RemoveSlot(ctx context.Context, userID string, slot int) error
	RemovePokemon(ctx context.Context, userID string, pokemonID int) error
	List(ctx context.Context, userID string) ([]models.PartyEntry, error)
}

// freeSlot returns the smallest slot in 1..common.MaxPartySize not in used,
// or 0 if there is none.
func freeSlot(used map[int]bool, size int) int {
	for s := 1; s <= size; s++ {
		if !used[s] {
			return s
		}
	}
	return 0
}
