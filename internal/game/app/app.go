package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/unravelhq/unravel/internal/game/domain/cards"
	"github.com/unravelhq/unravel/internal/game/domain/choice"
	"github.com/unravelhq/unravel/internal/game/domain/content"
	"github.com/unravelhq/unravel/internal/game/domain/dice"
	"github.com/unravelhq/unravel/internal/game/domain/effect"
	"github.com/unravelhq/unravel/internal/game/domain/engine"
	"github.com/unravelhq/unravel/internal/game/domain/movement"
	"github.com/unravelhq/unravel/internal/game/domain/player"
	"github.com/unravelhq/unravel/internal/game/domain/resources"
	"github.com/unravelhq/unravel/internal/game/domain/turnseq"
	"github.com/unravelhq/unravel/internal/game/storage"
	apperrors "github.com/unravelhq/unravel/internal/platform/errors"
)

var (
	// ErrNotPlayersTurn indicates a command from a player out of turn.
	ErrNotPlayersTurn = apperrors.New(apperrors.CodeTurnNotActive, "it is not this player's turn")
	// ErrAwaitingChoice indicates a command while a choice is outstanding.
	ErrAwaitingChoice = apperrors.New(apperrors.CodeChoicePending, "a pending choice must be resolved first")
	// ErrCardUnknown indicates a card id outside the loaded content.
	ErrCardUnknown = apperrors.New(apperrors.CodeCardNotFound, "card is not part of the game content")
	// ErrPhaseRestricted indicates a card played outside its allowed phase.
	ErrPhaseRestricted = apperrors.New(apperrors.CodeCardPhaseRestricted, "card cannot be played in this phase")
	// ErrNoPendingOutcome indicates a resolve for a choice the game does
	// not hold a suspended sequence for.
	ErrNoPendingOutcome = apperrors.New(apperrors.CodeChoiceNotFound, "no suspended processing for this choice")
)

// Phase restriction values recognized on cards. Anything else on a card is
// carried through but not enforced.
const (
	phaseBeforeRoll = "before_roll"
	phaseAfterRoll  = "after_roll"
)

// Content bundles the loaded game data tables.
type Content struct {
	Cards        []content.Card
	SpaceEffects []content.SpaceEffect
	DiceEffects  []content.DiceEffect
	SpaceConfigs []content.SpaceConfig
}

// Config configures one game instance.
type Config struct {
	GameID        string
	Seats         []player.Seat
	StartingMoney int
	StartingTime  int
	StartSpace    string
	DiceSeed      int64
	Content       Content
	// Store is optional; without it the journal stays in memory only.
	Store  storage.Store
	Logger *log.Logger
}

// TriggerOutcome is what a player action produced: a completed result, or a
// pending choice the match is suspended on.
type TriggerOutcome struct {
	Result *engine.Result
	Choice *choice.Choice
	// DiceRoll is the rolled value on dice triggers, zero otherwise.
	DiceRoll int
}

// Suspended reports whether the match is waiting on a choice.
func (t TriggerOutcome) Suspended() bool {
	return t.Choice != nil
}

// Game owns one in-process match.
type Game struct {
	mu sync.Mutex

	id     string
	logger *log.Logger
	tracer trace.Tracer

	content   Content
	cardIndex map[string]content.Card

	players   *player.Store
	resources *resources.Service
	cards     *cards.Service
	movement  *movement.Service
	turns     *turnseq.Service
	roller    *dice.Roller
	choices   *choice.Coordinator
	engine    *engine.Engine

	store   storage.Store
	journal []storage.GameLogRecord

	// pending maps choice id to the suspended outcome awaiting its answer.
	pending    map[string]engine.Outcome
	rolled     bool
	entryVisit content.VisitType
}

// New builds and wires a game instance.
func New(cfg Config) (*Game, error) {
	if strings.TrimSpace(cfg.GameID) == "" {
		return nil, fmt.Errorf("game id is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	players, err := player.NewStore(cfg.Seats, cfg.StartingMoney, cfg.StartingTime, cfg.StartSpace)
	if err != nil {
		return nil, fmt.Errorf("new player store: %w", err)
	}

	g := &Game{
		id:         cfg.GameID,
		logger:     cfg.Logger,
		tracer:     otel.Tracer("unravel/game"),
		content:    cfg.Content,
		cardIndex:  make(map[string]content.Card, len(cfg.Content.Cards)),
		players:    players,
		store:      cfg.Store,
		pending:    make(map[string]engine.Outcome),
		entryVisit: content.VisitSubsequent,
	}
	for _, card := range cfg.Content.Cards {
		g.cardIndex[card.ID] = card
	}

	g.resources = resources.NewService(players)
	g.cards = cards.NewService(players)
	g.movement = movement.NewService(players, cfg.Content.SpaceConfigs)
	g.roller = dice.NewRoller(cfg.DiceSeed)
	g.choices = choice.NewCoordinator()

	// Turn boundaries tick card durations; the ticker is wired after
	// construction because both services sit over the same store.
	g.turns = turnseq.NewService(players)
	g.turns.SetCardTicker(g.cards)

	g.cards.SetCardPicker(g.pickCard)

	g.engine, err = engine.New(engine.Deps{
		Resources: g.resources,
		Cards:     g.cards,
		Movement:  g.movement,
		Turns:     g.turns,
		Seats:     players,
		Choices:   g.choices,
		History:   journalWriter{game: g},
	})
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return g, nil
}

// pickCard samples a concrete card id for a draw of cardType.
func (g *Game) pickCard(cardType string) string {
	var matching []string
	for _, card := range g.content.Cards {
		if string(card.Type) == cardType {
			matching = append(matching, card.ID)
		}
	}
	if len(matching) == 0 {
		return ""
	}
	roll, err := g.roller.Roll(len(matching))
	if err != nil {
		return matching[0]
	}
	return matching[roll-1]
}

// ID returns the game id.
func (g *Game) ID() string {
	return g.id
}

// Players returns a snapshot of every player's state in seat order.
func (g *Game) Players() []player.State {
	return g.players.All()
}

// CurrentPlayer returns the id of the player whose turn is in progress.
func (g *Game) CurrentPlayer() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turns.Current()
}

// Turn returns the current turn number.
func (g *Game) Turn() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turns.Turn()
}

// PendingChoice returns the outstanding choice for a player, if any.
func (g *Game) PendingChoice(playerID string) (*choice.Choice, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.choices.Pending(playerID)
}

// Log returns the most recent journal entries, newest last. A limit of zero
// or less returns everything.
func (g *Game) Log(limit int) []storage.GameLogRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	records := g.journal
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	out := make([]storage.GameLogRecord, len(records))
	copy(out, records)
	return out
}

// journalWriter adapts the game journal to the engine's history port.
type journalWriter struct {
	game *Game
}

func (w journalWriter) AppendLog(ctx context.Context, level effect.LogLevel, message, source string) error {
	return w.game.appendLog(ctx, string(level), message, source)
}

// appendLog journals one entry in memory and mirrors it to storage. Callers
// already hold the game lock or run inside a command.
func (g *Game) appendLog(ctx context.Context, level, message, source string) error {
	record := storage.GameLogRecord{
		GameID:    g.id,
		Turn:      g.turns.Turn(),
		PlayerID:  g.turns.Current(),
		Level:     level,
		Message:   message,
		Source:    source,
		CreatedAt: time.Now(),
	}
	g.journal = append(g.journal, record)
	g.logger.Printf("game %s turn %d [%s] %s: %s", g.id, record.Turn, level, source, message)
	if g.store != nil {
		if _, err := g.store.AppendGameLog(ctx, record); err != nil {
			return fmt.Errorf("append game log: %w", err)
		}
	}
	return nil
}

// snapshot persists the current game position. Persistence failures are
// logged, not surfaced: the in-memory match stays authoritative.
func (g *Game) snapshot(ctx context.Context) {
	if g.store == nil {
		return
	}
	snap := storage.GameSnapshot{
		GameID:        g.id,
		Turn:          g.turns.Turn(),
		CurrentPlayer: g.turns.Current(),
		SavedAt:       time.Now(),
	}
	for i, state := range g.players.All() {
		record := storage.PlayerRecord{
			PlayerID:      state.ID,
			Name:          state.Name,
			Seat:          i,
			Money:         state.Money,
			TimeBalance:   state.Time,
			Space:         state.Space,
			SkipTurns:     state.SkipTurns,
			RerollGranted: state.RerollGranted,
		}
		for space := range state.Visited {
			record.Visited = append(record.Visited, space)
		}
		for _, card := range state.Hand {
			record.Hand = append(record.Hand, storage.HeldCardRecord{
				InstanceID: card.InstanceID,
				CardID:     card.CardID,
				CardType:   card.CardType,
			})
		}
		for _, card := range state.Active {
			record.Active = append(record.Active, storage.ActiveCardRecord{
				CardID:         card.CardID,
				TurnsRemaining: card.TurnsRemaining,
			})
		}
		snap.Players = append(snap.Players, record)
	}
	if err := g.store.SaveSnapshot(ctx, snap); err != nil {
		g.logger.Printf("game %s: save snapshot: %v", g.id, err)
	}
}

func (g *Game) startSpan(ctx context.Context, trigger, playerID string) (context.Context, trace.Span) {
	return g.tracer.Start(ctx, "game."+trigger, trace.WithAttributes(
		attribute.String("game.id", g.id),
		attribute.String("player.id", playerID),
	))
}

// guard enforces turn ownership and the suspension freeze shared by every
// trigger.
func (g *Game) guard(playerID string) error {
	if len(g.pending) > 0 {
		return ErrAwaitingChoice
	}
	if g.turns.Current() != playerID {
		return fmt.Errorf("player %s: %w", playerID, ErrNotPlayersTurn)
	}
	return nil
}

// finish journals a processed outcome and either parks it on its pending
// choice or persists the completed position.
func (g *Game) finish(ctx context.Context, trigger string, out engine.Outcome) (TriggerOutcome, error) {
	if !out.Done {
		g.pending[out.Choice.ID] = out
		return TriggerOutcome{Choice: out.Choice}, nil
	}
	result := out.Result
	if !result.Success {
		_ = g.appendLog(ctx, "warning", fmt.Sprintf("%s completed with %d of %d effects failed", trigger, result.FailedEffects, result.TotalEffects), trigger)
	}
	g.snapshot(ctx)
	return TriggerOutcome{Result: result}, nil
}
