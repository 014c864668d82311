package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/unravelhq/unravel/internal/game/domain/cards"
	"github.com/unravelhq/unravel/internal/game/domain/content"
	"github.com/unravelhq/unravel/internal/game/domain/engine"
	"github.com/unravelhq/unravel/internal/game/domain/factory"
	"github.com/unravelhq/unravel/internal/game/domain/resources"
	apperrors "github.com/unravelhq/unravel/internal/platform/errors"
)

var (
	// ErrAlreadyRolled indicates a second roll without a reroll grant.
	ErrAlreadyRolled = apperrors.New(apperrors.CodeDiceAlreadyRolled, "dice were already rolled this turn")
	// ErrChoiceNotOwned indicates an answer from a player the choice was
	// not addressed to.
	ErrChoiceNotOwned = apperrors.New(apperrors.CodeChoiceNotOwned, "choice belongs to another player")
)

// PlayCard consumes a held card and processes its effect sequence.
func (g *Game) PlayCard(ctx context.Context, playerID, cardID string) (TriggerOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ctx, span := g.startSpan(ctx, "play_card", playerID)
	defer span.End()

	if err := g.guard(playerID); err != nil {
		return TriggerOutcome{}, err
	}
	card, ok := g.cardIndex[strings.TrimSpace(cardID)]
	if !ok {
		return TriggerOutcome{}, fmt.Errorf("play %q: %w", cardID, ErrCardUnknown)
	}
	if err := g.checkPhase(card); err != nil {
		return TriggerOutcome{}, err
	}

	state, err := g.players.Get(playerID)
	if err != nil {
		return TriggerOutcome{}, err
	}
	instanceID := ""
	for _, held := range state.Hand {
		if held.CardID == card.ID {
			instanceID = held.InstanceID
			break
		}
	}
	if instanceID == "" {
		return TriggerOutcome{}, fmt.Errorf("play %s: %w", card.ID, cards.ErrCardNotHeld)
	}

	// Playing consumes the instance up front; a later effect failure does
	// not return it to the hand. An unaffordable cost is refused here so
	// the card stays held.
	if card.Cost > 0 && !g.resources.CanAfford(playerID, card.Cost) {
		return TriggerOutcome{}, fmt.Errorf("play %s costing %d: %w", card.ID, card.Cost, resources.ErrInsufficientMoney)
	}
	if err := g.cards.DiscardByIDs(ctx, playerID, []string{instanceID}, card.ID, "card played"); err != nil {
		return TriggerOutcome{}, err
	}

	effects := factory.FromCard(card, playerID)
	out, err := g.engine.Process(ctx, effects, engine.Context{ActorID: playerID, Trigger: "card_played"})
	if err != nil {
		return TriggerOutcome{}, err
	}
	return g.finish(ctx, "play_card", out)
}

// checkPhase enforces the card's phase restriction against the roll state
// of the current turn. Unrecognized restriction values are not enforced.
func (g *Game) checkPhase(card content.Card) error {
	switch strings.ToLower(strings.TrimSpace(card.PhaseRestriction)) {
	case phaseBeforeRoll:
		if g.rolled {
			return fmt.Errorf("play %s before rolling: %w", card.ID, ErrPhaseRestricted)
		}
	case phaseAfterRoll:
		if !g.rolled {
			return fmt.Errorf("play %s after rolling: %w", card.ID, ErrPhaseRestricted)
		}
	}
	return nil
}

// EnterSpace moves the player to a space and processes its entry effects.
// The visit type (first or subsequent arrival) selects the effect rows.
func (g *Game) EnterSpace(ctx context.Context, playerID, spaceName string) (TriggerOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ctx, span := g.startSpan(ctx, "enter_space", playerID)
	defer span.End()

	if err := g.guard(playerID); err != nil {
		return TriggerOutcome{}, err
	}
	config, err := g.movement.Config(spaceName)
	if err != nil {
		return TriggerOutcome{}, err
	}
	visit, err := g.movement.VisitTypeFor(playerID, spaceName)
	if err != nil {
		return TriggerOutcome{}, err
	}
	if err := g.movement.Move(ctx, playerID, spaceName); err != nil {
		return TriggerOutcome{}, err
	}
	// Dice rows later this turn follow the arrival's visit type.
	g.entryVisit = visit

	effects := factory.FromSpaceEntry(g.content.SpaceEffects, playerID, config.SpaceName, visit, config)
	out, err := g.engine.Process(ctx, effects, engine.Context{ActorID: playerID, Trigger: "space_entered"})
	if err != nil {
		return TriggerOutcome{}, err
	}
	return g.finish(ctx, "enter_space", out)
}

// RollDice rolls a d6 for the current player and processes the dice effects
// of the space they stand on. A second roll needs a reroll grant.
func (g *Game) RollDice(ctx context.Context, playerID string) (TriggerOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ctx, span := g.startSpan(ctx, "roll_dice", playerID)
	defer span.End()

	if err := g.guard(playerID); err != nil {
		return TriggerOutcome{}, err
	}
	if g.rolled {
		granted, err := g.turns.ConsumeReroll(playerID)
		if err != nil {
			return TriggerOutcome{}, err
		}
		if !granted {
			return TriggerOutcome{}, ErrAlreadyRolled
		}
	}

	state, err := g.players.Get(playerID)
	if err != nil {
		return TriggerOutcome{}, err
	}
	roll := g.roller.RollD6()
	g.rolled = true
	if err := g.appendLog(ctx, "info", fmt.Sprintf("%s rolled a %d", state.Name, roll), state.Space); err != nil {
		return TriggerOutcome{}, err
	}

	rows := rowsForVisit(g.content.DiceEffects, g.entryVisit)
	effects := factory.FromDiceRoll(rows, playerID, state.Space, roll)
	out, err := g.engine.Process(ctx, effects, engine.Context{ActorID: playerID, Trigger: "dice_rolled", DiceRoll: roll})
	if err != nil {
		return TriggerOutcome{}, err
	}
	result, err := g.finish(ctx, "roll_dice", out)
	if err != nil {
		return TriggerOutcome{}, err
	}
	result.DiceRoll = roll
	return result, nil
}

// rowsForVisit filters dice rows to the given visit type.
func rowsForVisit(rows []content.DiceEffect, visit content.VisitType) []content.DiceEffect {
	var matching []content.DiceEffect
	for _, row := range rows {
		if row.Visit == visit {
			matching = append(matching, row)
		}
	}
	return matching
}

// ResolveChoice answers a pending choice and resumes the suspended effect
// sequence exactly where it stopped.
func (g *Game) ResolveChoice(ctx context.Context, playerID, choiceID, optionID string) (TriggerOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ctx, span := g.startSpan(ctx, "resolve_choice", playerID)
	defer span.End()

	suspended, ok := g.pending[choiceID]
	if !ok {
		return TriggerOutcome{}, fmt.Errorf("choice %s: %w", choiceID, ErrNoPendingOutcome)
	}
	if suspended.Choice.PlayerID != playerID {
		return TriggerOutcome{}, fmt.Errorf("choice %s: %w", choiceID, ErrChoiceNotOwned)
	}

	// An invalid answer leaves the choice pending and the match suspended.
	_, selected, err := g.choices.Resolve(choiceID, optionID)
	if err != nil {
		return TriggerOutcome{}, err
	}
	delete(g.pending, choiceID)

	next, err := suspended.Resume(selected)
	if err != nil {
		return TriggerOutcome{}, err
	}
	return g.finish(ctx, "resolve_choice", next)
}

// EndTurn hands the turn to the next eligible player, ticking card
// durations at the incoming player's boundary. It returns the next player.
func (g *Game) EndTurn(ctx context.Context, playerID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ctx, span := g.startSpan(ctx, "end_turn", playerID)
	defer span.End()

	if err := g.guard(playerID); err != nil {
		return "", err
	}

	next, expired, err := g.turns.Advance(ctx)
	if err != nil {
		return "", err
	}
	g.rolled = false
	g.entryVisit = content.VisitSubsequent

	for owner, cardIDs := range expired {
		for _, cardID := range cardIDs {
			if err := g.appendLog(ctx, "info", fmt.Sprintf("card %s expired for %s", cardID, owner), cardID); err != nil {
				return "", err
			}
		}
	}
	g.snapshot(ctx)
	return next, nil
}
