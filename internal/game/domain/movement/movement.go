// Package movement is the narrow domain service owning player positions on
// the board graph.
package movement

import (
	"context"
	"fmt"
	"strings"

	"github.com/unravelhq/unravel/internal/game/domain/content"
	"github.com/unravelhq/unravel/internal/game/domain/player"
	apperrors "github.com/unravelhq/unravel/internal/platform/errors"
)

// ErrSpaceUnknown indicates a destination outside the board graph.
var ErrSpaceUnknown = apperrors.New(apperrors.CodeSpaceUnknown, "destination space is unknown")

// Service relocates players across board spaces.
type Service struct {
	players *player.Store
	board   map[string]content.SpaceConfig
}

// NewService creates a movement service over the player store and the board
// configuration table.
func NewService(players *player.Store, configs []content.SpaceConfig) *Service {
	board := make(map[string]content.SpaceConfig, len(configs))
	for _, config := range configs {
		board[config.SpaceName] = config
	}
	return &Service{players: players, board: board}
}

// Move relocates a player to a destination space and records the visit.
func (s *Service) Move(ctx context.Context, playerID, destination string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	destination = strings.TrimSpace(destination)
	if _, ok := s.board[destination]; !ok {
		return fmt.Errorf("move to %q: %w", destination, ErrSpaceUnknown)
	}
	return s.players.Update(playerID, func(state *player.State) {
		state.Space = destination
		if state.Visited == nil {
			state.Visited = make(map[string]bool)
		}
		state.Visited[destination] = true
	})
}

// VisitTypeFor returns which data row applies when a player arrives at a
// space: First on the first arrival, Subsequent afterwards.
func (s *Service) VisitTypeFor(playerID, spaceName string) (content.VisitType, error) {
	state, err := s.players.Get(playerID)
	if err != nil {
		return content.VisitFirst, err
	}
	if state.Visited[strings.TrimSpace(spaceName)] {
		return content.VisitSubsequent, nil
	}
	return content.VisitFirst, nil
}

// Config returns the configuration row for a space.
func (s *Service) Config(spaceName string) (content.SpaceConfig, error) {
	config, ok := s.board[strings.TrimSpace(spaceName)]
	if !ok {
		return content.SpaceConfig{}, fmt.Errorf("space %q: %w", spaceName, ErrSpaceUnknown)
	}
	return config, nil
}
