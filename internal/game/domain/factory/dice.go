package factory

import (
	"fmt"
	"strings"

	"github.com/unravelhq/unravel/internal/game/domain/content"
	"github.com/unravelhq/unravel/internal/game/domain/effect"
)

// FromDiceRoll translates a 1-6 dice result on a space into an effect
// sequence by looking up the matching column of each configured row. An
// empty cell means the roll has no outcome for that row.
func FromDiceRoll(rows []content.DiceEffect, playerID, spaceName string, diceResult int) []effect.Effect {
	source := diceSource(spaceName, diceResult)
	if diceResult < 1 || diceResult > 6 {
		return []effect.Effect{effect.NewLog(
			fmt.Sprintf("dice result %d outside 1-6 at %s, applying nothing", diceResult, spaceName),
			effect.LogLevelWarning, source)}
	}

	var effects []effect.Effect
	for _, row := range rows {
		if row.SpaceName != spaceName {
			continue
		}
		cell := row.Roll(diceResult)
		if cell == "" {
			continue
		}
		effects = append(effects, fromDiceCell(row, cell, playerID, source)...)
	}
	return effects
}

// fromDiceCell translates one non-empty outcome cell.
func fromDiceCell(row content.DiceEffect, cell, playerID, source string) []effect.Effect {
	switch row.EffectType {
	case "money", "time":
		resource := effect.ResourceMoney
		if row.EffectType == "time" {
			resource = effect.ResourceTime
		}
		amount, ok := content.ParseAmount(cell)
		if !ok {
			return []effect.Effect{effect.NewLog(
				fmt.Sprintf("unparseable dice %s cell %q at %s, applying 0", row.EffectType, cell, row.SpaceName),
				effect.LogLevelWarning, source)}
		}
		if amount == 0 {
			return nil
		}
		return []effect.Effect{effect.NewResourceChange(
			playerID, resource, amount, source, "dice "+row.EffectType+" outcome")}
	case "cards":
		count, ok := content.ParseDrawSpec(cell)
		if !ok {
			return []effect.Effect{effect.NewLog(
				fmt.Sprintf("unparseable dice card cell %q at %s, drawing nothing", cell, row.SpaceName),
				effect.LogLevelWarning, source)}
		}
		return []effect.Effect{effect.NewCardDraw(
			playerID, row.CardType, count, source, "dice card outcome")}
	}
	return []effect.Effect{effect.NewLog(
		fmt.Sprintf("unknown dice effect type %q at %s, applying nothing", row.EffectType, row.SpaceName),
		effect.LogLevelWarning, source)}
}

func diceSource(spaceName string, diceResult int) string {
	return fmt.Sprintf("dice:%s:roll%d", strings.TrimSpace(spaceName), diceResult)
}
