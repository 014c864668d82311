// Package resources is the narrow domain service owning money and time
// balances. It is the only component that mutates those fields.
package resources

import (
	"context"
	"fmt"

	"github.com/unravelhq/unravel/internal/game/domain/player"
	apperrors "github.com/unravelhq/unravel/internal/platform/errors"
)

var (
	// ErrInsufficientMoney indicates a debit larger than the balance.
	ErrInsufficientMoney = apperrors.New(apperrors.CodeResourceInsufficientMoney, "insufficient money")
	// ErrInsufficientTime indicates a time debit larger than the balance.
	ErrInsufficientTime = apperrors.New(apperrors.CodeResourceInsufficientTime, "insufficient time")
	// ErrAmountInvalid indicates a non-positive amount on a credit or debit call.
	ErrAmountInvalid = apperrors.New(apperrors.CodeResourceAmountInvalid, "amount must be greater than zero")
)

// Service credits and debits player resources.
type Service struct {
	players *player.Store
}

// NewService creates a resource service over the player store.
func NewService(players *player.Store) *Service {
	return &Service{players: players}
}

// AddMoney credits a player's money balance.
func (s *Service) AddMoney(ctx context.Context, playerID string, amount int, source, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if amount <= 0 {
		return ErrAmountInvalid
	}
	return s.players.Update(playerID, func(state *player.State) {
		state.Money += amount
	})
}

// SpendMoney debits a player's money balance, rejecting overdrafts.
func (s *Service) SpendMoney(ctx context.Context, playerID string, amount int, source, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if amount <= 0 {
		return ErrAmountInvalid
	}
	state, err := s.players.Get(playerID)
	if err != nil {
		return err
	}
	if state.Money < amount {
		return fmt.Errorf("spend %d from balance %d (%s): %w", amount, state.Money, source, ErrInsufficientMoney)
	}
	return s.players.Update(playerID, func(state *player.State) {
		state.Money -= amount
	})
}

// AddTime credits a player's time balance.
func (s *Service) AddTime(ctx context.Context, playerID string, amount int, source, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if amount <= 0 {
		return ErrAmountInvalid
	}
	return s.players.Update(playerID, func(state *player.State) {
		state.Time += amount
	})
}

// SpendTime debits a player's time balance, rejecting overdrafts.
func (s *Service) SpendTime(ctx context.Context, playerID string, amount int, source, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if amount <= 0 {
		return ErrAmountInvalid
	}
	state, err := s.players.Get(playerID)
	if err != nil {
		return err
	}
	if state.Time < amount {
		return fmt.Errorf("spend %d from balance %d (%s): %w", amount, state.Time, source, ErrInsufficientTime)
	}
	return s.players.Update(playerID, func(state *player.State) {
		state.Time -= amount
	})
}

// CanAfford reports whether a player's money balance covers an amount.
func (s *Service) CanAfford(playerID string, amount int) bool {
	state, err := s.players.Get(playerID)
	if err != nil {
		return false
	}
	return state.Money >= amount
}
