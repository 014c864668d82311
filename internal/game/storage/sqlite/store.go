// Package sqlite provides SQLite-backed persistence for game snapshots and
// the game log journal.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/unravelhq/unravel/internal/game/storage"
	"github.com/unravelhq/unravel/internal/game/storage/sqlite/migrations"
	"github.com/unravelhq/unravel/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence implementing storage.Store.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a game SQLite store at the provided path and applies embedded
// migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_pragma=foreign_keys(ON)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveSnapshot replaces the persisted position of a game in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot storage.GameSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(snapshot.GameID) == "" {
		return fmt.Errorf("game id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot write: %w", err)
	}
	rollbackWith := func(cause error) error {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("%w: rollback snapshot write: %v", cause, rollbackErr)
		}
		return cause
	}

	// Cascades clear the per-player tables for the previous snapshot.
	if _, err := tx.ExecContext(ctx, "DELETE FROM game_snapshots WHERE game_id = ?", snapshot.GameID); err != nil {
		return rollbackWith(fmt.Errorf("clear previous snapshot: %w", err))
	}

	savedAt := snapshot.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO game_snapshots (game_id, turn, current_player, saved_at_ms) VALUES (?, ?, ?, ?)",
		snapshot.GameID, snapshot.Turn, snapshot.CurrentPlayer, toMillis(savedAt),
	); err != nil {
		return rollbackWith(fmt.Errorf("insert game snapshot: %w", err))
	}

	for _, p := range snapshot.Players {
		if err := insertPlayer(ctx, tx, snapshot.GameID, p); err != nil {
			return rollbackWith(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot write: %w", err)
	}
	return nil
}

func insertPlayer(ctx context.Context, tx *sql.Tx, gameID string, p storage.PlayerRecord) error {
	reroll := 0
	if p.RerollGranted {
		reroll = 1
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO player_snapshots
		 (game_id, player_id, name, seat, money, time_balance, space, skip_turns, reroll_granted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, p.PlayerID, p.Name, p.Seat, p.Money, p.TimeBalance, p.Space, p.SkipTurns, reroll,
	); err != nil {
		return fmt.Errorf("insert player %s: %w", p.PlayerID, err)
	}
	for i, card := range p.Hand {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO held_cards (game_id, player_id, position, instance_id, card_id, card_type) VALUES (?, ?, ?, ?, ?, ?)",
			gameID, p.PlayerID, i, card.InstanceID, card.CardID, card.CardType,
		); err != nil {
			return fmt.Errorf("insert held card %s: %w", card.InstanceID, err)
		}
	}
	for i, card := range p.Active {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO active_cards (game_id, player_id, position, card_id, turns_remaining) VALUES (?, ?, ?, ?, ?)",
			gameID, p.PlayerID, i, card.CardID, card.TurnsRemaining,
		); err != nil {
			return fmt.Errorf("insert active card %s: %w", card.CardID, err)
		}
	}
	for _, space := range p.Visited {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO visited_spaces (game_id, player_id, space) VALUES (?, ?, ?)",
			gameID, p.PlayerID, space,
		); err != nil {
			return fmt.Errorf("insert visited space %q: %w", space, err)
		}
	}
	return nil
}

// LoadSnapshot restores the persisted position of a game.
func (s *Store) LoadSnapshot(ctx context.Context, gameID string) (storage.GameSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return storage.GameSnapshot{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.GameSnapshot{}, fmt.Errorf("storage is not configured")
	}

	var snapshot storage.GameSnapshot
	var savedAtMillis int64
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT game_id, turn, current_player, saved_at_ms FROM game_snapshots WHERE game_id = ?",
		gameID,
	).Scan(&snapshot.GameID, &snapshot.Turn, &snapshot.CurrentPlayer, &savedAtMillis)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.GameSnapshot{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.GameSnapshot{}, fmt.Errorf("read game snapshot: %w", err)
	}
	snapshot.SavedAt = fromMillis(savedAtMillis)

	players, err := s.loadPlayers(ctx, gameID)
	if err != nil {
		return storage.GameSnapshot{}, err
	}
	snapshot.Players = players
	return snapshot, nil
}

func (s *Store) loadPlayers(ctx context.Context, gameID string) ([]storage.PlayerRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT player_id, name, seat, money, time_balance, space, skip_turns, reroll_granted
		 FROM player_snapshots WHERE game_id = ? ORDER BY seat`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("read player snapshots: %w", err)
	}
	defer rows.Close()

	var players []storage.PlayerRecord
	for rows.Next() {
		var p storage.PlayerRecord
		var reroll int
		if err := rows.Scan(&p.PlayerID, &p.Name, &p.Seat, &p.Money, &p.TimeBalance, &p.Space, &p.SkipTurns, &reroll); err != nil {
			return nil, fmt.Errorf("scan player snapshot: %w", err)
		}
		p.RerollGranted = reroll != 0
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate player snapshots: %w", err)
	}

	for i := range players {
		if err := s.loadPlayerCards(ctx, gameID, &players[i]); err != nil {
			return nil, err
		}
	}
	return players, nil
}

func (s *Store) loadPlayerCards(ctx context.Context, gameID string, p *storage.PlayerRecord) error {
	held, err := s.sqlDB.QueryContext(ctx,
		"SELECT instance_id, card_id, card_type FROM held_cards WHERE game_id = ? AND player_id = ? ORDER BY position",
		gameID, p.PlayerID,
	)
	if err != nil {
		return fmt.Errorf("read held cards: %w", err)
	}
	defer held.Close()
	for held.Next() {
		var card storage.HeldCardRecord
		if err := held.Scan(&card.InstanceID, &card.CardID, &card.CardType); err != nil {
			return fmt.Errorf("scan held card: %w", err)
		}
		p.Hand = append(p.Hand, card)
	}
	if err := held.Err(); err != nil {
		return fmt.Errorf("iterate held cards: %w", err)
	}

	active, err := s.sqlDB.QueryContext(ctx,
		"SELECT card_id, turns_remaining FROM active_cards WHERE game_id = ? AND player_id = ? ORDER BY position",
		gameID, p.PlayerID,
	)
	if err != nil {
		return fmt.Errorf("read active cards: %w", err)
	}
	defer active.Close()
	for active.Next() {
		var card storage.ActiveCardRecord
		if err := active.Scan(&card.CardID, &card.TurnsRemaining); err != nil {
			return fmt.Errorf("scan active card: %w", err)
		}
		p.Active = append(p.Active, card)
	}
	if err := active.Err(); err != nil {
		return fmt.Errorf("iterate active cards: %w", err)
	}

	visited, err := s.sqlDB.QueryContext(ctx,
		"SELECT space FROM visited_spaces WHERE game_id = ? AND player_id = ? ORDER BY space",
		gameID, p.PlayerID,
	)
	if err != nil {
		return fmt.Errorf("read visited spaces: %w", err)
	}
	defer visited.Close()
	for visited.Next() {
		var space string
		if err := visited.Scan(&space); err != nil {
			return fmt.Errorf("scan visited space: %w", err)
		}
		p.Visited = append(p.Visited, space)
	}
	return visited.Err()
}

// AppendGameLog appends one journal entry and returns its row id.
func (s *Store) AppendGameLog(ctx context.Context, record storage.GameLogRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.GameID) == "" {
		return 0, fmt.Errorf("game id is required")
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO game_log (game_id, turn, player_id, level, message, source, created_at_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.GameID, record.Turn, record.PlayerID, record.Level, record.Message, record.Source, toMillis(createdAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert game log: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read game log id: %w", err)
	}
	return id, nil
}

// ListGameLog returns journal entries for a game in append order. A limit of
// zero or less returns everything.
func (s *Store) ListGameLog(ctx context.Context, gameID string, limit int) ([]storage.GameLogRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := "SELECT id, game_id, turn, player_id, level, message, source, created_at_ms FROM game_log WHERE game_id = ? ORDER BY id"
	args := []any{gameID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read game log: %w", err)
	}
	defer rows.Close()

	var records []storage.GameLogRecord
	for rows.Next() {
		var record storage.GameLogRecord
		var createdAtMillis int64
		if err := rows.Scan(&record.ID, &record.GameID, &record.Turn, &record.PlayerID, &record.Level, &record.Message, &record.Source, &createdAtMillis); err != nil {
			return nil, fmt.Errorf("scan game log: %w", err)
		}
		record.CreatedAt = fromMillis(createdAtMillis)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game log: %w", err)
	}
	return records, nil
}
