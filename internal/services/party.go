package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/pokedex/internal/catalog"
	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/logging"
	"github.com/dmitrijs2005/pokedex/internal/models"
	"github.com/dmitrijs2005/pokedex/internal/repositories/party"
)

// PartyService manages a user's party of up to common.MaxPartySize members.
type PartyService struct {
	repo   party.Repository
	logger logging.Logger
	mu     sync.Mutex
}

func NewPartyService(repo party.Repository, logger logging.Logger) *PartyService {
	return &PartyService{repo: repo, logger: logger.With("component", "party")}
}

func (s *PartyService) IsInParty(ctx context.Context, userID string, pokemonID int) (bool, error) {
	if err := requireUser(userID); err != nil {
		return false, err
	}
	return s.repo.Exists(ctx, userID, pokemonID)
}

// Add puts entry into the smallest free slot.
func (s *PartyService) Add(ctx context.Context, userID string, entry models.CatalogEntry) (*models.PartyEntry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.add(ctx, userID, entry)
}

func (s *PartyService) add(ctx context.Context, userID string, entry models.CatalogEntry) (*models.PartyEntry, error) {
	member, err := s.repo.Add(ctx, models.NewPartyEntry(userID, entry, catalog.Weaknesses(entry.Types)))
	if err != nil {
		if errors.Is(err, common.ErrPartyFull) {
			s.logger.Info(ctx, "party is full", "user_id", userID, "pokemon_id", entry.ID)
		}
		return nil, err
	}
	s.logger.Debug(ctx, "party member added", "user_id", userID, "pokemon_id", entry.ID, "slot", member.Slot)
	return member, nil
}

// RemoveSlot empties slot and shifts the members behind it forward.
func (s *PartyService) RemoveSlot(ctx context.Context, userID string, slot int) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.RemoveSlot(ctx, userID, slot); err != nil {
		return err
	}
	s.logger.Debug(ctx, "party slot removed", "user_id", userID, "slot", slot)
	return nil
}

// Toggle removes entry from the party if present, otherwise adds it.
// Adding to a full party fails with common.ErrPartyFull.
func (s *PartyService) Toggle(ctx context.Context, userID string, entry models.CatalogEntry) (added bool, err error) {
	if err := requireUser(userID); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.repo.Exists(ctx, userID, entry.ID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.repo.RemovePokemon(ctx, userID, entry.ID); err != nil {
			return false, err
		}
		s.logger.Debug(ctx, "party member removed", "user_id", userID, "pokemon_id", entry.ID)
		return false, nil
	}

	if _, err := s.add(ctx, userID, entry); err != nil {
		return false, err
	}
	return true, nil
}

func (s *PartyService) List(ctx context.Context, userID string) ([]models.PartyEntry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userID)
}
