package storage

import (
	"context"
	"time"

	apperrors "github.com/unravelhq/unravel/internal/platform/errors"
)

// ErrNotFound indicates a requested persistence record is missing. Callers
// use it to tell "no such game" apart from storage failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// HeldCardRecord is one card instance in a player's hand.
type HeldCardRecord struct {
	InstanceID string
	CardID     string
	CardType   string
}

// ActiveCardRecord is one activated card with its remaining duration.
// TurnsRemaining of -1 marks an indefinite activation.
type ActiveCardRecord struct {
	CardID         string
	TurnsRemaining int
}

// PlayerRecord captures a player's full state at snapshot time.
type PlayerRecord struct {
	PlayerID      string
	Name          string
	Seat          int
	Money         int
	TimeBalance   int
	Space         string
	Visited       []string
	Hand          []HeldCardRecord
	Active        []ActiveCardRecord
	SkipTurns     int
	RerollGranted bool
}

// GameSnapshot is a complete persisted game position.
type GameSnapshot struct {
	GameID        string
	Turn          int
	CurrentPlayer string
	Players       []PlayerRecord
	SavedAt       time.Time
}

// GameLogRecord is one journal entry in the game history.
type GameLogRecord struct {
	ID        int64
	GameID    string
	Turn      int
	PlayerID  string
	Level     string
	Message   string
	Source    string
	CreatedAt time.Time
}

// SnapshotStore persists and restores whole game positions. SaveSnapshot
// replaces any previous snapshot for the same game.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot GameSnapshot) error
	LoadSnapshot(ctx context.Context, gameID string) (GameSnapshot, error)
}

// GameLogStore appends and reads the game history journal.
type GameLogStore interface {
	AppendGameLog(ctx context.Context, record GameLogRecord) (int64, error)
	ListGameLog(ctx context.Context, gameID string, limit int) ([]GameLogRecord, error)
}

// Store combines the persistence surfaces the app layer wires.
type Store interface {
	SnapshotStore
	GameLogStore
	Close() error
}
