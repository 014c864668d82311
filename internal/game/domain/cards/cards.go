// Package cards is the narrow domain service owning card collections:
// draws, discards, activations, and duration ticking at turn boundaries.
package cards

import (
	"context"
	"fmt"
	"strings"

	"github.com/unravelhq/unravel/internal/game/domain/effect"
	"github.com/unravelhq/unravel/internal/game/domain/player"
	apperrors "github.com/unravelhq/unravel/internal/platform/errors"
	"github.com/unravelhq/unravel/internal/platform/id"
)

var (
	// ErrCardNotHeld indicates a discard or activation of a card the
	// player does not hold.
	ErrCardNotHeld = apperrors.New(apperrors.CodeCardNotHeld, "card is not in the player's collection")
	// ErrCountInvalid indicates a non-positive draw or discard count.
	ErrCountInvalid = apperrors.New(apperrors.CodeEffectCountInvalid, "count must be greater than zero")
)

// CardPicker chooses a concrete card id for a drawn card of cardType. An
// empty return falls back to a synthetic id.
type CardPicker func(cardType string) string

// Service mutates player card collections.
type Service struct {
	players *player.Store
	newID   func() (string, error)
	pick    CardPicker
}

// NewService creates a card service over the player store.
func NewService(players *player.Store) *Service {
	return &Service{players: players, newID: id.NewID}
}

// SetCardPicker wires deck sampling for draws. Without one, drawn
// instances carry synthetic card ids.
func (s *Service) SetCardPicker(pick CardPicker) {
	s.pick = pick
}

// Draw adds count card instances of cardType to a player's collection and
// returns the new instance ids in draw order.
func (s *Service) Draw(ctx context.Context, playerID, cardType string, count int, source, reason string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, ErrCountInvalid
	}
	cardType = strings.ToUpper(strings.TrimSpace(cardType))

	drawn := make([]player.HeldCard, 0, count)
	instanceIDs := make([]string, 0, count)
	for i := 0; i < count; i++ {
		instanceID, err := s.newID()
		if err != nil {
			return nil, fmt.Errorf("new card instance id: %w", err)
		}
		cardID := fmt.Sprintf("%s-%s", cardType, instanceID[:8])
		if s.pick != nil {
			if picked := s.pick(cardType); picked != "" {
				cardID = picked
			}
		}
		drawn = append(drawn, player.HeldCard{
			InstanceID: instanceID,
			CardID:     cardID,
			CardType:   cardType,
		})
		instanceIDs = append(instanceIDs, instanceID)
	}
	if err := s.players.Update(playerID, func(state *player.State) {
		state.Hand = append(state.Hand, drawn...)
	}); err != nil {
		return nil, err
	}
	return instanceIDs, nil
}

// DiscardByIDs removes the named card instances from a player's collection.
// Every id must be held or the whole discard is rejected.
func (s *Service) DiscardByIDs(ctx context.Context, playerID string, cardIDs []string, source, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	state, err := s.players.Get(playerID)
	if err != nil {
		return err
	}
	held := make(map[string]bool, len(state.Hand))
	for _, card := range state.Hand {
		held[card.InstanceID] = true
	}
	for _, cardID := range cardIDs {
		if !held[cardID] {
			return fmt.Errorf("discard %s: %w", cardID, ErrCardNotHeld)
		}
	}
	discard := make(map[string]bool, len(cardIDs))
	for _, cardID := range cardIDs {
		discard[cardID] = true
	}
	return s.players.Update(playerID, func(state *player.State) {
		kept := state.Hand[:0]
		for _, card := range state.Hand {
			if !discard[card.InstanceID] {
				kept = append(kept, card)
			}
		}
		state.Hand = kept
	})
}

// DiscardByType removes up to count cards of cardType in collection order.
// Holding fewer than count is a rejection; nothing is removed.
func (s *Service) DiscardByType(ctx context.Context, playerID, cardType string, count int, source, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if count <= 0 {
		return ErrCountInvalid
	}
	cardType = strings.ToUpper(strings.TrimSpace(cardType))
	state, err := s.players.Get(playerID)
	if err != nil {
		return err
	}
	var matching []string
	for _, card := range state.Hand {
		if card.CardType == cardType {
			matching = append(matching, card.InstanceID)
		}
		if len(matching) == count {
			break
		}
	}
	if len(matching) < count {
		return fmt.Errorf("discard %d of type %s, holding %d: %w", count, cardType, len(matching), ErrCardNotHeld)
	}
	return s.DiscardByIDs(ctx, playerID, matching, source, reason)
}

// Activate marks a card active with the given duration in turns.
// effect.DurationIndefinite never expires.
func (s *Service) Activate(ctx context.Context, playerID, cardID string, duration int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if duration == 0 || duration < effect.DurationIndefinite {
		return fmt.Errorf("activation duration must be positive or indefinite: %d", duration)
	}
	return s.players.Update(playerID, func(state *player.State) {
		state.Active = append(state.Active, player.ActiveCard{
			CardID:         strings.TrimSpace(cardID),
			TurnsRemaining: duration,
		})
	})
}

// TickActive decrements every active card's remaining duration by one
// completed turn and discards the ones that reach zero. It must run exactly
// once per player at that player's turn start, never mid-turn. The returned
// ids are the expired cards.
func (s *Service) TickActive(ctx context.Context, playerID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var expired []string
	err := s.players.Update(playerID, func(state *player.State) {
		kept := state.Active[:0]
		for _, active := range state.Active {
			if active.TurnsRemaining == effect.DurationIndefinite {
				kept = append(kept, active)
				continue
			}
			active.TurnsRemaining--
			if active.TurnsRemaining <= 0 {
				expired = append(expired, active.CardID)
				continue
			}
			kept = append(kept, active)
		}
		state.Active = kept
	})
	if err != nil {
		return nil, err
	}
	return expired, nil
}
