// Package turnseq is the narrow domain service owning turn-sequence
// bookkeeping: whose turn it is, skip and reroll modifiers, and the
// turn-boundary work that runs when a player's turn begins.
package turnseq

import (
	"context"
	"fmt"

	"github.com/unravelhq/unravel/internal/game/domain/effect"
	"github.com/unravelhq/unravel/internal/game/domain/player"
	apperrors "github.com/unravelhq/unravel/internal/platform/errors"
)

// ErrModifierInvalid indicates an unknown turn modifier kind.
var ErrModifierInvalid = apperrors.New(apperrors.CodeTurnModifierInvalid, "turn modifier is invalid")

// CardTicker runs card-duration bookkeeping at a player's turn boundary.
type CardTicker interface {
	TickActive(ctx context.Context, playerID string) ([]string, error)
}

// Service advances the turn order and applies turn modifiers.
type Service struct {
	players *player.Store
	ticker  CardTicker

	order   []string
	current int
	turn    int
}

// NewService creates the turn service seating players in store order. The
// card ticker is wired after construction to break the engine/turn cycle.
func NewService(players *player.Store) *Service {
	seats := players.Seats()
	order := make([]string, len(seats))
	for i, seat := range seats {
		order[i] = seat.ID
	}
	return &Service{players: players, order: order, turn: 1}
}

// SetCardTicker wires the card-duration ticker. Two-phase construction:
// the card service depends on the player store and the turn service needs
// the card service at boundaries.
func (s *Service) SetCardTicker(ticker CardTicker) {
	s.ticker = ticker
}

// Current returns the id of the player whose turn is in progress.
func (s *Service) Current() string {
	return s.order[s.current]
}

// Turn returns the current turn number, starting at 1.
func (s *Service) Turn() int {
	return s.turn
}

// SetModifier applies a turn modifier to a player.
func (s *Service) SetModifier(ctx context.Context, playerID string, action effect.TurnAction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch action {
	case effect.TurnActionSkip:
		return s.players.Update(playerID, func(state *player.State) {
			state.SkipTurns++
		})
	case effect.TurnActionGrantReroll:
		return s.players.Update(playerID, func(state *player.State) {
			state.RerollGranted = true
		})
	}
	return fmt.Errorf("set modifier %q: %w", action, ErrModifierInvalid)
}

// ConsumeReroll clears and reports a player's reroll grant.
func (s *Service) ConsumeReroll(playerID string) (bool, error) {
	granted := false
	err := s.players.Update(playerID, func(state *player.State) {
		granted = state.RerollGranted
		state.RerollGranted = false
	})
	return granted, err
}

// Advance ends the current turn and hands control to the next player who is
// not skipping, consuming one skip flag per passed-over player. Card
// durations tick exactly once at the incoming player's boundary. The
// expired card ids per player are returned for history logging.
func (s *Service) Advance(ctx context.Context) (next string, expired map[string][]string, err error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	expired = make(map[string][]string)
	for range s.order {
		s.current = (s.current + 1) % len(s.order)
		if s.current == 0 {
			s.turn++
		}
		candidate := s.order[s.current]

		if s.ticker != nil {
			ids, tickErr := s.ticker.TickActive(ctx, candidate)
			if tickErr != nil {
				return "", nil, fmt.Errorf("tick active cards for %s: %w", candidate, tickErr)
			}
			if len(ids) > 0 {
				expired[candidate] = ids
			}
		}

		skipped := false
		if err := s.players.Update(candidate, func(state *player.State) {
			if state.SkipTurns > 0 {
				state.SkipTurns--
				skipped = true
			}
		}); err != nil {
			return "", nil, err
		}
		if !skipped {
			return candidate, expired, nil
		}
	}
	// Every player is skipping; the seat after the actor still takes the
	// turn so the game cannot stall.
	return s.order[s.current], expired, nil
}
