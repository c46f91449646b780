package models

import (
	"encoding/json"
	"time"
)

// FavoriteEntry is a catalog species a user has marked. Name, Image, Types
// and Weaknesses are copied at the time of marking. Seq orders entries by
// insertion.
type FavoriteEntry struct {
	Seq        int64     `json:"seq"`
	UserID     string    `json:"user_id"`
	PokemonID  int       `json:"pokemon_id"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	Types      []string  `json:"types"`
	Weaknesses []string  `json:"weaknesses"`
	CreatedAt  time.Time `json:"created_at"`
}

// PartyEntry is a member of a user's party, addressed by Slot (1..6).
type PartyEntry struct {
	Slot       int      `json:"slot"`
	UserID     string   `json:"user_id"`
	PokemonID  int      `json:"pokemon_id"`
	Name       string   `json:"name"`
	Image      string   `json:"image"`
	Types      []string `json:"types"`
	Weaknesses []string `json:"weaknesses"`
}

// NewFavorite snapshots entry for userID.
func NewFavorite(userID string, entry CatalogEntry, weaknesses []string) FavoriteEntry {
	return FavoriteEntry{
		UserID:     userID,
		PokemonID:  entry.ID,
		Name:       entry.Name,
		Image:      entry.Image,
		Types:      append([]string(nil), entry.Types...),
		Weaknesses: append([]string(nil), weaknesses...),
	}
}

// NewPartyEntry snapshots entry for userID; the slot is assigned on insert.
func NewPartyEntry(userID string, entry CatalogEntry, weaknesses []string) PartyEntry {
	return PartyEntry{
		UserID:     userID,
		PokemonID:  entry.ID,
		Name:       entry.Name,
		Image:      entry.Image,
		Types:      append([]string(nil), entry.Types...),
		Weaknesses: append([]string(nil), weaknesses...),
	}
}

// EncodeList renders a string list as JSON text for a TEXT column.
func EncodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeList parses JSON text written by EncodeList. Empty input is an empty
// list.
func DecodeList(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}
