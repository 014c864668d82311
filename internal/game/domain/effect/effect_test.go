package effect

import (
	"errors"
	"testing"
)

func TestValidateResourceChange(t *testing.T) {
	e := NewResourceChange("p1", ResourceMoney, -100, "card:W001", "work cost")
	if err := Validate(e); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateRejectsMissingSource(t *testing.T) {
	e := NewResourceChange("p1", ResourceMoney, 10, "", "reason")
	if err := Validate(e); !errors.Is(err, ErrSourceMissing) {
		t.Fatalf("expected ErrSourceMissing, got %v", err)
	}
}

func TestValidateRejectsUnknownKind(t *testing.T) {
	e := Effect{Kind: Kind("teleport"), Source: "card:X"}
	if err := Validate(e); !errors.Is(err, ErrKindUnknown) {
		t.Fatalf("expected ErrKindUnknown, got %v", err)
	}
}

func TestValidateRejectsUnknownResource(t *testing.T) {
	e := NewResourceChange("p1", Resource("GOLD"), 10, "card:X", "")
	if err := Validate(e); !errors.Is(err, ErrResourceInvalid) {
		t.Fatalf("expected ErrResourceInvalid, got %v", err)
	}
}

func TestValidateIdempotent(t *testing.T) {
	e := NewCardDraw("p1", "b", 3, "space:OWNER-SCOPE-INITIATION", "draw bank cards")
	first := Validate(e)
	second := Validate(e)
	if (first == nil) != (second == nil) {
		t.Fatalf("expected identical results, got %v then %v", first, second)
	}
}

func TestValidateGroupRejectsNonTargetableTemplate(t *testing.T) {
	template := NewPlayerMovement("p1", "START", "card:E001", "relocate")
	group := NewGroupTargeted(TargetAllOtherPlayers, template, "prompt", "card:E001")
	if err := Validate(group); !errors.Is(err, ErrTemplateNotTargetable) {
		t.Fatalf("expected ErrTemplateNotTargetable, got %v", err)
	}
}

func TestValidateGroupAcceptsTargetableTemplate(t *testing.T) {
	template := NewResourceChange("", ResourceMoney, 50, "card:L005", "gift")
	group := NewGroupTargeted(TargetAllOtherPlayers, template, "prompt", "card:L005")
	// Template player id is substituted at fan-out time; the group carries
	// the structural requirement instead.
	if err := Validate(group); !errors.Is(err, ErrPlayerMissing) {
		t.Fatalf("expected ErrPlayerMissing for unaddressed template, got %v", err)
	}
	addressed := NewGroupTargeted(TargetAllOtherPlayers, template.WithPlayer("p2"), "prompt", "card:L005")
	if err := Validate(addressed); err != nil {
		t.Fatalf("validate addressed group: %v", err)
	}
}

func TestValidateConditionalRejectsInvertedRange(t *testing.T) {
	e := NewConditional("p1", []Branch{{Min: 4, Max: 1}}, "dice:QUALITY-CHECK", "")
	if err := Validate(e); err == nil {
		t.Fatal("expected error for inverted branch range")
	}
}

func TestValidateActivationDuration(t *testing.T) {
	if err := Validate(NewCardActivation("p1", "W001", 3, "card:W001", "")); err != nil {
		t.Fatalf("positive duration: %v", err)
	}
	if err := Validate(NewCardActivation("p1", "W001", DurationIndefinite, "card:W001", "")); err != nil {
		t.Fatalf("indefinite duration: %v", err)
	}
	if err := Validate(NewCardActivation("p1", "W001", 0, "card:W001", "")); err == nil {
		t.Fatal("expected error for zero duration")
	}
}

func TestTargetableKinds(t *testing.T) {
	cases := []struct {
		effect Effect
		want   bool
	}{
		{NewResourceChange("p1", ResourceTime, -2, "s", ""), true},
		{NewCardDraw("p1", "E", 1, "s", ""), true},
		{NewCardDiscardByType("p1", "L", 1, "s", ""), true},
		{NewTurnControl("p1", TurnActionSkip, "s", ""), true},
		{NewPlayerMovement("p1", "START", "s", ""), false},
		{NewLog("hello", LogLevelInfo, "s"), false},
		{NewCardActivation("p1", "c1", 2, "s", ""), false},
	}
	for _, tc := range cases {
		if got := tc.effect.Targetable(); got != tc.want {
			t.Fatalf("%s: expected targetable=%v, got %v", tc.effect.Kind, tc.want, got)
		}
	}
}

func TestWithPlayerDeepCopies(t *testing.T) {
	original := NewCardDiscardByIDs("p1", []string{"c1", "c2"}, "card:E066", "")
	clone := original.WithPlayer("p2")

	if clone.CardDiscard.PlayerID != "p2" {
		t.Fatalf("expected clone addressed to p2, got %s", clone.CardDiscard.PlayerID)
	}
	if original.CardDiscard.PlayerID != "p1" {
		t.Fatalf("expected original untouched, got %s", original.CardDiscard.PlayerID)
	}
	clone.CardDiscard.CardIDs[0] = "mutated"
	if original.CardDiscard.CardIDs[0] != "c1" {
		t.Fatal("expected card id slice to be copied, not shared")
	}
}

func TestCloneDeepCopiesNestedBranches(t *testing.T) {
	nested := NewResourceChange("p1", ResourceMoney, 5, "dice:LEND-SCOPE-CHECK", "")
	original := NewConditional("p1", []Branch{{Min: 1, Max: 3, Effects: []Effect{nested}}}, "dice:LEND-SCOPE-CHECK", "")

	clone := original.CloneDeep()
	clone.Conditional.Branches[0].Effects[0].ResourceChange.Amount = 99
	if original.Conditional.Branches[0].Effects[0].ResourceChange.Amount != 5 {
		t.Fatal("expected nested branch effects to be copied, not shared")
	}
}

func TestValidateAllReportsPosition(t *testing.T) {
	effects := []Effect{
		NewLog("ok", LogLevelInfo, "space:START"),
		{Kind: KindResourceChange, Source: "space:START"},
	}
	err := ValidateAll(effects)
	if err == nil {
		t.Fatal("expected error for malformed second effect")
	}
	if !errors.Is(err, ErrPlayerMissing) {
		t.Fatalf("expected ErrPlayerMissing in chain, got %v", err)
	}
}
