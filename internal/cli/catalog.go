package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/models"
)

// List prints one catalog page. Pages are numbered from 1.
func (a *App) List(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 1 {
			return fmt.Errorf("%w: page must be a positive number", common.ErrValidation)
		}
		page = p
	}

	entries, err := a.catalog.ListEntries(ctx, (page-1)*a.pageSize, a.pageSize)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No more pokemon")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(a.out, formatEntry(e))
	}
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: usage: search <query>", common.ErrValidation)
	}
	entry, err := a.catalog.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if entry == nil {
		fmt.Fprintln(a.out, "No pokemon found")
		return nil
	}
	fmt.Fprintln(a.out, formatEntry(*entry))
	return nil
}

// Show prints the detail view of a species, with the current user's
// favorite and party markers when logged in.
func (a *App) Show(ctx context.Context, args []string) error {
	entry, err := a.resolve(ctx, args, "show")
	if err != nil {
		return err
	}

	d, err := a.catalog.Details(ctx, entry.ID)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, formatEntry(d.CatalogEntry))
	fmt.Fprintf(a.out, "  %s\n", d.Description)
	fmt.Fprintf(a.out, "  %s | %.1f kg | %.1f m\n", d.Generation, d.WeightKg, d.HeightM)
	fmt.Fprintf(a.out, "  Weaknesses: %s\n", joinOrDash(d.Weaknesses))
	fmt.Fprintf(a.out, "  Evolves from: %s\n", joinOrDash(d.Involutions))
	fmt.Fprintf(a.out, "  Evolves to: %s\n", joinOrDash(d.Evolutions))
	s := d.Stats
	fmt.Fprintf(a.out, "  HP %d  Atk %d  Def %d  SpA %d  SpD %d  Spe %d\n",
		s.HP, s.Attack, s.Defense, s.SpecialAttack, s.SpecialDefense, s.Speed)

	if a.user == nil {
		return nil
	}
	fav, err := a.favorites.IsFavorite(ctx, a.user.ID, d.ID)
	if err != nil {
		return err
	}
	inParty, err := a.party.IsInParty(ctx, a.user.ID, d.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "  Favorite: %s  In party: %s\n", yesNo(fav), yesNo(inParty))
	return nil
}

// resolve looks up the species named by args, which may be an id or a name.
func (a *App) resolve(ctx context.Context, args []string, cmd string) (*models.CatalogEntry, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: usage: %s <id|name>", common.ErrValidation, cmd)
	}
	entry, err := a.catalog.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("pokemon %q: %w", strings.Join(args, " "), common.ErrorNotFound)
	}
	return entry, nil
}

func formatEntry(e models.CatalogEntry) string {
	return fmt.Sprintf("#%03d %-12s %s", e.ID, e.Name, strings.Join(e.Types, "/"))
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
