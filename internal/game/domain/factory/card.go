package factory

import (
	"fmt"
	"strings"

	"github.com/unravelhq/unravel/internal/game/domain/content"
	"github.com/unravelhq/unravel/internal/game/domain/effect"
)

// FromCard translates one card play into an ordered effect sequence.
//
// Emission order: cost deduction, money effect, card draws and discards,
// loan credit, tick modifier, one turn skip per declared skipped turn, an
// activation when the card has a duration, then a trailing log. When the
// card declares a non-self target, every targetable effect emitted above is
// re-wrapped in place as a targeted group with a synthesized prompt; the
// trailing log stays last.
func FromCard(card content.Card, playerID string) []effect.Effect {
	source := cardSource(card.ID)
	effects := make([]effect.Effect, 0, 8)

	if card.Cost > 0 {
		effects = append(effects, effect.NewResourceChange(
			playerID, effect.ResourceMoney, -card.Cost, source, "card cost"))
	}

	if value := strings.TrimSpace(card.MoneyEffect); value != "" {
		if content.IsPercentage(value) {
			effects = append(effects, effect.NewLog(
				fmt.Sprintf("percentage money effect %q on card %s is not supported, applying 0", value, card.ID),
				effect.LogLevelWarning, source))
		} else if amount, ok := content.ParseAmount(value); ok && amount != 0 {
			effects = append(effects, effect.NewResourceChange(
				playerID, effect.ResourceMoney, amount, source, "card money effect"))
		} else if !ok {
			effects = append(effects, effect.NewLog(
				fmt.Sprintf("unparseable money effect %q on card %s, applying 0", value, card.ID),
				effect.LogLevelWarning, source))
		}
	}

	if value := strings.TrimSpace(card.DrawCards); value != "" {
		if count, cardType, ok := content.ParseCardSpec(value); ok {
			effects = append(effects, effect.NewCardDraw(
				playerID, string(cardType), count, source, "card draw effect"))
		} else {
			effects = append(effects, effect.NewLog(
				fmt.Sprintf("unparseable draw field %q on card %s, drawing nothing", value, card.ID),
				effect.LogLevelWarning, source))
		}
	}
	if value := strings.TrimSpace(card.DiscardCards); value != "" {
		if count, cardType, ok := content.ParseCardSpec(value); ok {
			effects = append(effects, effect.NewCardDiscardByType(
				playerID, string(cardType), count, source, "card discard effect"))
		} else {
			effects = append(effects, effect.NewLog(
				fmt.Sprintf("unparseable discard field %q on card %s, discarding nothing", value, card.ID),
				effect.LogLevelWarning, source))
		}
	}

	if card.LoanAmount > 0 {
		effects = append(effects, effect.NewResourceChange(
			playerID, effect.ResourceMoney, card.LoanAmount, source, "loan credit"))
	}

	if value := strings.TrimSpace(card.TickModifier); value != "" {
		if amount, ok := content.ParseAmount(value); ok && amount != 0 {
			effects = append(effects, effect.NewResourceChange(
				playerID, effect.ResourceTime, amount, source, "card tick modifier"))
		} else if !ok {
			effects = append(effects, effect.NewLog(
				fmt.Sprintf("unparseable tick modifier %q on card %s, applying 0", value, card.ID),
				effect.LogLevelWarning, source))
		}
	}

	for i := 0; i < content.ParseTurnSkips(card.TurnEffect); i++ {
		effects = append(effects, effect.NewTurnControl(
			playerID, effect.TurnActionSkip, source, "card turn effect"))
	}

	if card.DurationTurns > 0 {
		effects = append(effects, effect.NewCardActivation(
			playerID, card.ID, card.DurationTurns, source, "card duration"))
	}

	if targetType, targeted := cardTargetType(card.Target); targeted {
		effects = wrapTargetedEffects(effects, targetType, card)
	}

	effects = append(effects, effect.NewLog(
		fmt.Sprintf("player %s played card %s (%s)", playerID, card.ID, card.Name),
		effect.LogLevelInfo, source))
	return effects
}

// wrapTargetedEffects re-emits every targetable effect as a one-effect
// targeted group, preserving sequence order. Non-targetable effects such as
// activations stay addressed to the actor.
func wrapTargetedEffects(effects []effect.Effect, targetType effect.TargetType, card content.Card) []effect.Effect {
	wrapped := make([]effect.Effect, 0, len(effects))
	for _, e := range effects {
		if !e.Targetable() {
			wrapped = append(wrapped, e)
			continue
		}
		prompt := fmt.Sprintf("Choose a player for %s (%s)", card.Name, card.ID)
		wrapped = append(wrapped, effect.NewGroupTargeted(targetType, e, prompt, cardSource(card.ID)))
	}
	return wrapped
}

// cardTargetType maps the card target field to a group target type. A self
// or unknown target reports false and leaves effects unwrapped.
func cardTargetType(target string) (effect.TargetType, bool) {
	switch strings.TrimSpace(target) {
	case content.TargetChoosePlayer:
		return effect.TargetOtherPlayerChoice, true
	case content.TargetAllOtherPlayers:
		return effect.TargetAllOtherPlayers, true
	case content.TargetAllPlayers:
		return effect.TargetAllPlayers, true
	}
	return "", false
}

func cardSource(cardID string) string {
	return "card:" + strings.TrimSpace(cardID)
}
