// Package player owns the authoritative player state for one running game.
//
// There is exactly one Store per game and it is the only writer of player
// state. Domain services mutate players through Update, which keeps the
// single-writer discipline without locks: all game work runs on one logical
// goroutine.
package player

import (
	"fmt"
	"strings"

	apperrors "github.com/unravelhq/unravel/internal/platform/errors"
)

// ErrNotFound indicates an unknown player id.
var ErrNotFound = apperrors.New(apperrors.CodePlayerNotFound, "player not found")

// HeldCard is one card instance in a player's collection.
type HeldCard struct {
	InstanceID string
	CardID     string
	CardType   string
}

// ActiveCard tracks a played card with remaining duration. TurnsRemaining
// decrements once per completed turn; -1 means indefinite.
type ActiveCard struct {
	CardID         string
	TurnsRemaining int
}

// State is the full mutable state of one player.
type State struct {
	ID      string
	Name    string
	Money   int
	Time    int
	Space   string
	Visited map[string]bool

	Hand   []HeldCard
	Active []ActiveCard

	SkipTurns     int
	RerollGranted bool
}

// Seat is the immutable identity snapshot used for targeting and broadcast.
type Seat struct {
	ID   string
	Name string
}

// Store holds every player's state in fixed seat order.
type Store struct {
	order   []string
	players map[string]*State
}

// NewStore creates a store seating the given players in order.
func NewStore(seats []Seat, startingMoney, startingTime int, startSpace string) (*Store, error) {
	if len(seats) == 0 {
		return nil, fmt.Errorf("at least one player is required")
	}
	store := &Store{players: make(map[string]*State, len(seats))}
	for _, seat := range seats {
		id := strings.TrimSpace(seat.ID)
		if id == "" {
			return nil, fmt.Errorf("player id is required")
		}
		if _, exists := store.players[id]; exists {
			return nil, fmt.Errorf("duplicate player id: %s", id)
		}
		store.order = append(store.order, id)
		store.players[id] = &State{
			ID:      id,
			Name:    strings.TrimSpace(seat.Name),
			Money:   startingMoney,
			Time:    startingTime,
			Space:   startSpace,
			Visited: map[string]bool{startSpace: true},
		}
	}
	return store, nil
}

// Get returns a copy of one player's state.
func (s *Store) Get(playerID string) (State, error) {
	state, ok := s.players[strings.TrimSpace(playerID)]
	if !ok {
		return State{}, ErrNotFound
	}
	return cloneState(state), nil
}

// All returns copies of every player's state in seat order.
func (s *Store) All() []State {
	states := make([]State, 0, len(s.order))
	for _, id := range s.order {
		states = append(states, cloneState(s.players[id]))
	}
	return states
}

// Seats returns the seat snapshot in table order.
func (s *Store) Seats() []Seat {
	seats := make([]Seat, 0, len(s.order))
	for _, id := range s.order {
		seats = append(seats, Seat{ID: id, Name: s.players[id].Name})
	}
	return seats
}

// Update applies a mutation to one player's state. The closure receives the
// live state; last write wins within the single game goroutine.
func (s *Store) Update(playerID string, mutate func(*State)) error {
	state, ok := s.players[strings.TrimSpace(playerID)]
	if !ok {
		return ErrNotFound
	}
	mutate(state)
	return nil
}

func cloneState(state *State) State {
	clone := *state
	clone.Visited = make(map[string]bool, len(state.Visited))
	for space, visited := range state.Visited {
		clone.Visited[space] = visited
	}
	clone.Hand = append([]HeldCard(nil), state.Hand...)
	clone.Active = append([]ActiveCard(nil), state.Active...)
	return clone
}
