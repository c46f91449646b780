// Package catalog reads the public Pokémon catalog (PokeAPI v2). It is
// read-only: nothing here touches local storage.
package catalog

import (
	"context"

	"github.com/dmitrijs2005/pokedex/internal/models"
)

// Catalog is the catalog collaborator consumed by the CLI and services.
// Transport failures and non-2xx answers are reported as
// common.ErrNetworkFailure.
type Catalog interface {
	ListPage(ctx context.Context, offset, limit int) ([]models.ListItem, error)
	ListEntries(ctx context.Context, offset, limit int) ([]models.CatalogEntry, error)
	Lookup(ctx context.Context, id int) (*models.CatalogEntry, error)
	// Search resolves a numeric query as an id and anything else as a name.
	// An unknown species is (nil, nil).
	Search(ctx context.Context, query string) (*models.CatalogEntry, error)
	Details(ctx context.Context, id int) (*models.CatalogDetails, error)
	EvolutionChain(ctx context.Context, url string) (*models.EvolutionNode, error)
	Weaknesses(types []string) []string
}
