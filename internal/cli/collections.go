package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pokedex/internal/common"
)

func (a *App) ToggleFavorite(ctx context.Context, args []string) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	entry, err := a.resolve(ctx, args, "fav")
	if err != nil {
		return err
	}

	added, err := a.favorites.Toggle(ctx, userID, *entry)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(a.out, "%s added to favorites\n", entry.Name)
	} else {
		fmt.Fprintf(a.out, "%s removed from favorites\n", entry.Name)
	}
	return nil
}

func (a *App) Favorites(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	favs, err := a.favorites.List(ctx, userID)
	if err != nil {
		return err
	}
	if len(favs) == 0 {
		fmt.Fprintln(a.out, "No favorites yet")
		return nil
	}
	for _, f := range favs {
		fmt.Fprintf(a.out, "#%03d %-12s %s (weak to %s)\n",
			f.PokemonID, f.Name, strings.Join(f.Types, "/"), joinOrDash(f.Weaknesses))
	}
	return nil
}

func (a *App) Party(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	members, err := a.party.List(ctx, userID)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		fmt.Fprintln(a.out, "Your party is empty")
		return nil
	}
	for _, m := range members {
		fmt.Fprintf(a.out, "[%d] #%03d %-12s %s\n", m.Slot, m.PokemonID, m.Name, strings.Join(m.Types, "/"))
	}
	fmt.Fprintf(a.out, "%d/%d\n", len(members), common.MaxPartySize)
	return nil
}

func (a *App) AddToParty(ctx context.Context, args []string) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	entry, err := a.resolve(ctx, args, "addparty")
	if err != nil {
		return err
	}

	member, err := a.party.Add(ctx, userID, *entry)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s joined your party in slot %d\n", member.Name, member.Slot)
	return nil
}

// RemoveFromParty empties a slot; later members move up one slot.
func (a *App) RemoveFromParty(ctx context.Context, args []string) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: usage: rmparty <slot>", common.ErrValidation)
	}
	slot, err := strconv.Atoi(args[0])
	if err != nil || slot < 1 || slot > common.MaxPartySize {
		return fmt.Errorf("%w: slot must be between 1 and %d", common.ErrValidation, common.MaxPartySize)
	}

	if err := a.party.RemoveSlot(ctx, userID, slot); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("party slot %d is empty: %w", slot, err)
		}
		return err
	}
	fmt.Fprintf(a.out, "Slot %d cleared\n", slot)
	return nil
}

func (a *App) ToggleParty(ctx context.Context, args []string) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	entry, err := a.resolve(ctx, args, "toggleparty")
	if err != nil {
		return err
	}

	added, err := a.party.Toggle(ctx, userID, *entry)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(a.out, "%s joined your party\n", entry.Name)
	} else {
		fmt.Fprintf(a.out, "%s left your party\n", entry.Name)
	}
	return nil
}
