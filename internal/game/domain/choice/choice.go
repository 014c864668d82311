// Package choice is the single-slot suspension primitive: at most one
// outstanding decision per player, resolved externally at the caller's pace.
//
// The coordinator holds no game-state opinion. It registers a pending
// choice, validates the eventual answer, and clears the slot. There is no
// timeout or cancellation path: an abandoned choice stays pending until
// resolved or the game ends.
package choice

import (
	"fmt"
	"strings"
	"time"

	"github.com/unravelhq/unravel/internal/game/domain/effect"
	apperrors "github.com/unravelhq/unravel/internal/platform/errors"
	"github.com/unravelhq/unravel/internal/platform/id"
)

var (
	// ErrPending indicates a second concurrent choice for one player.
	ErrPending = apperrors.New(apperrors.CodeChoicePending, "player already has a pending choice")
	// ErrNotFound indicates an unknown choice id on resolve.
	ErrNotFound = apperrors.New(apperrors.CodeChoiceNotFound, "choice not found")
	// ErrOptionInvalid indicates an answer outside the offered options.
	ErrOptionInvalid = apperrors.New(apperrors.CodeChoiceOptionInvalid, "selected option is not offered")
	// ErrOptionsEmpty indicates a choice request with no options.
	ErrOptionsEmpty = apperrors.New(apperrors.CodeChoiceOptionsEmpty, "choice must carry at least one option")
)

// Choice is one registered pending decision.
type Choice struct {
	ID        string
	PlayerID  string
	Type      string
	Prompt    string
	Options   []effect.Option
	CreatedAt time.Time
}

// Coordinator registers and resolves pending choices. It is driven only
// from the single game goroutine.
type Coordinator struct {
	byPlayer map[string]*Choice
	byID     map[string]*Choice
	newID    func() (string, error)
	now      func() time.Time
}

// NewCoordinator creates an empty coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		byPlayer: make(map[string]*Choice),
		byID:     make(map[string]*Choice),
		newID:    id.NewID,
		now:      time.Now,
	}
}

// Create registers one pending choice for a player. A second concurrent
// request for the same player is rejected, not queued.
func (c *Coordinator) Create(playerID, choiceType, prompt string, options []effect.Option) (*Choice, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, apperrors.New(apperrors.CodeEffectPlayerMissing, "choice player id is required")
	}
	if len(options) == 0 {
		return nil, ErrOptionsEmpty
	}
	if _, exists := c.byPlayer[playerID]; exists {
		return nil, fmt.Errorf("create choice for %s: %w", playerID, ErrPending)
	}

	choiceID, err := c.newID()
	if err != nil {
		return nil, fmt.Errorf("new choice id: %w", err)
	}
	pending := &Choice{
		ID:        choiceID,
		PlayerID:  playerID,
		Type:      strings.TrimSpace(choiceType),
		Prompt:    strings.TrimSpace(prompt),
		Options:   append([]effect.Option(nil), options...),
		CreatedAt: c.now(),
	}
	c.byPlayer[playerID] = pending
	c.byID[choiceID] = pending
	return pending, nil
}

// Resolve validates an answer against the registered choice, clears the
// player's slot, and returns the resolved choice with the selected option.
func (c *Coordinator) Resolve(choiceID, optionID string) (*Choice, string, error) {
	pending, ok := c.byID[strings.TrimSpace(choiceID)]
	if !ok {
		return nil, "", fmt.Errorf("resolve %q: %w", choiceID, ErrNotFound)
	}
	optionID = strings.TrimSpace(optionID)
	valid := false
	for _, option := range pending.Options {
		if option.ID == optionID {
			valid = true
			break
		}
	}
	if !valid {
		return nil, "", fmt.Errorf("resolve %s with option %q: %w", pending.ID, optionID, ErrOptionInvalid)
	}

	delete(c.byPlayer, pending.PlayerID)
	delete(c.byID, pending.ID)
	return pending, optionID, nil
}

// Pending returns a player's outstanding choice, if any.
func (c *Coordinator) Pending(playerID string) (*Choice, bool) {
	pending, ok := c.byPlayer[strings.TrimSpace(playerID)]
	return pending, ok
}

// PendingCount returns the number of outstanding choices across players.
func (c *Coordinator) PendingCount() int {
	return len(c.byID)
}
