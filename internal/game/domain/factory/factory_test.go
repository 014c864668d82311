package factory

import (
	"testing"

	"github.com/unravelhq/unravel/internal/game/domain/content"
	"github.com/unravelhq/unravel/internal/game/domain/effect"
)

func TestFromCardCostOnly(t *testing.T) {
	card := content.Card{ID: "W001", Name: "Scope Change", Type: content.CardTypeWork, Cost: 100, Target: content.TargetSelf}

	effects := FromCard(card, "p1")
	if len(effects) != 2 {
		t.Fatalf("expected cost + log, got %d effects", len(effects))
	}
	cost := effects[0]
	if cost.Kind != effect.KindResourceChange {
		t.Fatalf("expected resource change first, got %s", cost.Kind)
	}
	if cost.ResourceChange.Amount != -100 {
		t.Fatalf("expected amount -100, got %d", cost.ResourceChange.Amount)
	}
	if cost.ResourceChange.Resource != effect.ResourceMoney {
		t.Fatalf("expected MONEY, got %s", cost.ResourceChange.Resource)
	}
	if cost.Source != "card:W001" {
		t.Fatalf("expected card source, got %q", cost.Source)
	}
	if effects[1].Kind != effect.KindLog {
		t.Fatalf("expected trailing log, got %s", effects[1].Kind)
	}
}

func TestFromCardEmissionOrder(t *testing.T) {
	card := content.Card{
		ID:            "B003",
		Name:          "Small Loan",
		Type:          content.CardTypeBank,
		Cost:          50,
		MoneyEffect:   "200",
		DrawCards:     "1 E",
		DiscardCards:  "1 L",
		LoanAmount:    500,
		TickModifier:  "-2",
		TurnEffect:    "Skip 1 turn",
		DurationTurns: 3,
		Target:        content.TargetSelf,
	}

	effects := FromCard(card, "p1")
	wantKinds := []effect.Kind{
		effect.KindResourceChange, // cost
		effect.KindResourceChange, // money effect
		effect.KindCardDraw,
		effect.KindCardDiscard,
		effect.KindResourceChange, // loan credit
		effect.KindResourceChange, // tick modifier
		effect.KindTurnControl,
		effect.KindCardActivation,
		effect.KindLog,
	}
	if len(effects) != len(wantKinds) {
		t.Fatalf("expected %d effects, got %d", len(wantKinds), len(effects))
	}
	for i, want := range wantKinds {
		if effects[i].Kind != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, effects[i].Kind)
		}
	}
	if effects[0].ResourceChange.Amount != -50 {
		t.Fatalf("expected cost -50, got %d", effects[0].ResourceChange.Amount)
	}
	if effects[4].ResourceChange.Amount != 500 {
		t.Fatalf("expected loan credit +500, got %d", effects[4].ResourceChange.Amount)
	}
	if effects[5].ResourceChange.Resource != effect.ResourceTime || effects[5].ResourceChange.Amount != -2 {
		t.Fatalf("unexpected tick modifier: %+v", effects[5].ResourceChange)
	}
	if effects[7].CardActivation.Duration != 3 {
		t.Fatalf("expected activation duration 3, got %d", effects[7].CardActivation.Duration)
	}
}

func TestFromCardWrapsTargetableEffectsForNonSelfTarget(t *testing.T) {
	card := content.Card{
		ID:            "E066",
		Name:          "Permit Delay",
		Type:          content.CardTypeExpeditor,
		MoneyEffect:   "-200",
		DurationTurns: 2,
		Target:        content.TargetAllOtherPlayers,
	}

	effects := FromCard(card, "p1")
	if len(effects) != 3 {
		t.Fatalf("expected group + activation + log, got %d", len(effects))
	}
	group := effects[0]
	if group.Kind != effect.KindGroupTargeted {
		t.Fatalf("expected targeted group first, got %s", group.Kind)
	}
	if group.Group.TargetType != effect.TargetAllOtherPlayers {
		t.Fatalf("expected ALL_OTHER_PLAYERS, got %s", group.Group.TargetType)
	}
	if group.Group.Template.Kind != effect.KindResourceChange {
		t.Fatalf("expected resource change template, got %s", group.Group.Template.Kind)
	}
	if group.Group.Template.ResourceChange.Amount != -200 {
		t.Fatalf("expected template amount -200, got %d", group.Group.Template.ResourceChange.Amount)
	}
	if group.Group.Prompt == "" {
		t.Fatal("expected synthesized prompt")
	}
	// Activation is not targetable and stays addressed to the actor.
	if effects[1].Kind != effect.KindCardActivation {
		t.Fatalf("expected activation unwrapped, got %s", effects[1].Kind)
	}
	if effects[2].Kind != effect.KindLog {
		t.Fatalf("expected trailing log, got %s", effects[2].Kind)
	}
}

func TestFromCardChoosePlayerTarget(t *testing.T) {
	card := content.Card{ID: "E010", Name: "Audit", MoneyEffect: "-100", Target: content.TargetChoosePlayer}

	effects := FromCard(card, "p1")
	if effects[0].Group.TargetType != effect.TargetOtherPlayerChoice {
		t.Fatalf("expected OTHER_PLAYER_CHOICE, got %s", effects[0].Group.TargetType)
	}
}

func TestFromCardPercentageMoneyEffectDegrades(t *testing.T) {
	card := content.Card{ID: "I020", Name: "Market Swing", MoneyEffect: "10%", Target: content.TargetSelf}

	effects := FromCard(card, "p1")
	if len(effects) != 2 {
		t.Fatalf("expected warning log + trailing log, got %d", len(effects))
	}
	if effects[0].Kind != effect.KindLog || effects[0].Log.Level != effect.LogLevelWarning {
		t.Fatalf("expected warning log, got %+v", effects[0])
	}
}

func TestFromSpaceEntryVerbSign(t *testing.T) {
	rows := []content.SpaceEffect{
		{SpaceName: "OWNER-FUND-INITIATION", Visit: content.VisitFirst, EffectType: "money", Action: "add_money", Value: "300"},
		{SpaceName: "OWNER-FUND-INITIATION", Visit: content.VisitFirst, EffectType: "time", Action: "subtract_time", Value: "2"},
		{SpaceName: "OWNER-FUND-INITIATION", Visit: content.VisitSubsequent, EffectType: "money", Action: "add_money", Value: "900"},
		{SpaceName: "ELSEWHERE", Visit: content.VisitFirst, EffectType: "money", Action: "add_money", Value: "999"},
	}

	effects := FromSpaceEntry(rows, "p1", "OWNER-FUND-INITIATION", content.VisitFirst, content.SpaceConfig{SpaceName: "OWNER-FUND-INITIATION"})
	if len(effects) != 3 {
		t.Fatalf("expected money + time + log, got %d", len(effects))
	}
	if effects[0].ResourceChange.Amount != 300 {
		t.Fatalf("expected +300, got %d", effects[0].ResourceChange.Amount)
	}
	if effects[1].ResourceChange.Resource != effect.ResourceTime || effects[1].ResourceChange.Amount != -2 {
		t.Fatalf("unexpected time effect: %+v", effects[1].ResourceChange)
	}
}

func TestFromSpaceEntryCardRow(t *testing.T) {
	rows := []content.SpaceEffect{
		{SpaceName: "OWNER-SCOPE-INITIATION", Visit: content.VisitFirst, EffectType: "cards", Action: "draw", Value: "3 W"},
	}

	effects := FromSpaceEntry(rows, "p1", "OWNER-SCOPE-INITIATION", content.VisitFirst, content.SpaceConfig{})
	if effects[0].Kind != effect.KindCardDraw {
		t.Fatalf("expected card draw, got %s", effects[0].Kind)
	}
	if effects[0].CardDraw.Count != 3 || effects[0].CardDraw.CardType != "W" {
		t.Fatalf("unexpected draw payload: %+v", effects[0].CardDraw)
	}
}

func TestFromSpaceEntryActions(t *testing.T) {
	cases := []struct {
		action   string
		wantKind effect.Kind
		amount   int
	}{
		{"PAY_TAX", effect.KindResourceChange, -500},
		{"GOTO_JAIL", effect.KindLog, 0},
		{"AUCTION", effect.KindLog, 0},
	}
	for _, tc := range cases {
		effects := FromSpaceEntry(nil, "p1", "TAX-OFFICE", content.VisitFirst, content.SpaceConfig{SpaceName: "TAX-OFFICE", Action: tc.action})
		if len(effects) != 2 {
			t.Fatalf("%s: expected action + log, got %d", tc.action, len(effects))
		}
		if effects[0].Kind != tc.wantKind {
			t.Fatalf("%s: expected %s, got %s", tc.action, tc.wantKind, effects[0].Kind)
		}
		if tc.wantKind == effect.KindResourceChange && effects[0].ResourceChange.Amount != tc.amount {
			t.Fatalf("%s: expected %d, got %d", tc.action, tc.amount, effects[0].ResourceChange.Amount)
		}
	}
}

func TestFromSpaceEntryUnknownActionWarns(t *testing.T) {
	effects := FromSpaceEntry(nil, "p1", "LOBBY", content.VisitFirst, content.SpaceConfig{SpaceName: "LOBBY", Action: "TELEPORT"})
	if effects[0].Kind != effect.KindLog || effects[0].Log.Level != effect.LogLevelWarning {
		t.Fatalf("expected warning log for unknown action, got %+v", effects[0])
	}
}

func TestFromDiceRollCardColumns(t *testing.T) {
	rows := []content.DiceEffect{
		{SpaceName: "LEND-SCOPE-CHECK", EffectType: "cards", CardType: "B", Rolls: [6]string{"Draw 3", "", "", "", "", ""}},
	}

	one := FromDiceRoll(rows, "p1", "LEND-SCOPE-CHECK", 1)
	if len(one) != 1 || one[0].Kind != effect.KindCardDraw {
		t.Fatalf("expected one card draw for roll 1, got %+v", one)
	}
	if one[0].CardDraw.Count != 3 || one[0].CardDraw.CardType != "B" {
		t.Fatalf("unexpected draw payload: %+v", one[0].CardDraw)
	}

	two := FromDiceRoll(rows, "p1", "LEND-SCOPE-CHECK", 2)
	if len(two) != 0 {
		t.Fatalf("expected empty sequence for empty cell, got %d effects", len(two))
	}
}

func TestFromDiceRollMoneyColumn(t *testing.T) {
	rows := []content.DiceEffect{
		{SpaceName: "INVESTOR-FUND-REVIEW", EffectType: "money", Rolls: [6]string{"-100", "200", "", "", "", ""}},
	}

	effects := FromDiceRoll(rows, "p1", "INVESTOR-FUND-REVIEW", 1)
	if len(effects) != 1 || effects[0].ResourceChange.Amount != -100 {
		t.Fatalf("expected -100 money change, got %+v", effects)
	}
}

func TestFromDiceRollOutOfRangeWarns(t *testing.T) {
	effects := FromDiceRoll(nil, "p1", "ANY", 7)
	if len(effects) != 1 || effects[0].Log.Level != effect.LogLevelWarning {
		t.Fatalf("expected warning for out-of-range roll, got %+v", effects)
	}
}
