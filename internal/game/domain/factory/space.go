package factory

import (
	"fmt"
	"strings"

	"github.com/unravelhq/unravel/internal/game/domain/content"
	"github.com/unravelhq/unravel/internal/game/domain/effect"
)

// Space action keywords recognized from the configuration table.
const (
	spaceActionGotoJail = "GOTO_JAIL"
	spaceActionPayTax   = "PAY_TAX"
	spaceActionAuction  = "AUCTION"
)

// payTaxAmount is the fixed tax debit applied by PAY_TAX spaces.
const payTaxAmount = 500

// FromSpaceEntry translates a player's arrival at a space into an ordered
// effect sequence: one sub-translation per configured row matching the space
// and visit type, then the space action keyword, then a trailing log.
func FromSpaceEntry(rows []content.SpaceEffect, playerID, spaceName string, visit content.VisitType, config content.SpaceConfig) []effect.Effect {
	source := spaceSource(spaceName)
	effects := make([]effect.Effect, 0, len(rows)+2)

	for _, row := range rows {
		if row.SpaceName != spaceName || row.Visit != visit {
			continue
		}
		effects = append(effects, fromSpaceEffectRow(row, playerID, source)...)
	}

	effects = append(effects, fromSpaceAction(config, playerID, source)...)

	effects = append(effects, effect.NewLog(
		fmt.Sprintf("player %s entered %s (%s visit)", playerID, spaceName, strings.ToLower(string(visit))),
		effect.LogLevelInfo, source))
	return effects
}

// fromSpaceEffectRow translates one configured effect row. The action verb
// decides the amount sign; unparseable rows degrade to a warning log.
func fromSpaceEffectRow(row content.SpaceEffect, playerID, source string) []effect.Effect {
	switch row.EffectType {
	case "money", "time":
		resource := effect.ResourceMoney
		if row.EffectType == "time" {
			resource = effect.ResourceTime
		}
		sign, verbOK := content.SignForAction(row.Action)
		amount, amountOK := content.ParseAmount(row.Value)
		if !verbOK || !amountOK {
			return []effect.Effect{effect.NewLog(
				fmt.Sprintf("unparseable %s effect %q %q at %s, applying 0", row.EffectType, row.Action, row.Value, row.SpaceName),
				effect.LogLevelWarning, source)}
		}
		if amount < 0 {
			amount = -amount
		}
		return []effect.Effect{effect.NewResourceChange(
			playerID, resource, sign*amount, source, "space "+row.EffectType+" effect")}
	case "cards":
		count, cardType, ok := content.ParseCardSpec(row.Value)
		if !ok {
			return []effect.Effect{effect.NewLog(
				fmt.Sprintf("unparseable card effect %q at %s, applying none", row.Value, row.SpaceName),
				effect.LogLevelWarning, source)}
		}
		if strings.Contains(strings.ToLower(row.Action), "discard") {
			return []effect.Effect{effect.NewCardDiscardByType(
				playerID, string(cardType), count, source, "space card effect")}
		}
		return []effect.Effect{effect.NewCardDraw(
			playerID, string(cardType), count, source, "space card effect")}
	}
	return []effect.Effect{effect.NewLog(
		fmt.Sprintf("unknown effect type %q at %s, applying nothing", row.EffectType, row.SpaceName),
		effect.LogLevelWarning, source)}
}

// fromSpaceAction translates the space action keyword.
func fromSpaceAction(config content.SpaceConfig, playerID, source string) []effect.Effect {
	action := strings.ToUpper(strings.TrimSpace(config.Action))
	switch action {
	case "":
		return nil
	case spaceActionGotoJail:
		return []effect.Effect{effect.NewLog(
			fmt.Sprintf("player %s is sent to jail", playerID),
			effect.LogLevelInfo, source)}
	case spaceActionPayTax:
		return []effect.Effect{effect.NewResourceChange(
			playerID, effect.ResourceMoney, -payTaxAmount, source, "tax payment")}
	case spaceActionAuction:
		return []effect.Effect{effect.NewLog(
			fmt.Sprintf("auction triggered at %s (not yet implemented)", config.SpaceName),
			effect.LogLevelInfo, source)}
	}
	return []effect.Effect{effect.NewLog(
		fmt.Sprintf("unknown space action %q at %s, applying nothing", config.Action, config.SpaceName),
		effect.LogLevelWarning, source)}
}

func spaceSource(spaceName string) string {
	return "space:" + strings.TrimSpace(spaceName)
}
