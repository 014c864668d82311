package content

import (
	"strings"
	"testing"
)

func TestLoadCards(t *testing.T) {
	csv := "\uFEFFcard_id,card_name,card_type,cost,duration_count,loan_amount,money_effect,tick_modifier,draw_cards,discard_cards,turn_effect,target,phase_restriction\n" +
		"W001,Scope Change,W,100,0,0,,,,,,Self,Any\n" +
		"B003,Small Loan,B,0,0,500,,,,,,Self,Any\n" +
		"E066,Permit Delay,E,0,3,0,-200,1,,,Skip 1 turn,All Players-Self,Construction\n" +
		",ignored row,,,,,,,,,,\n"

	cards, err := LoadCards(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("load cards: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if cards[0].ID != "W001" || cards[0].Cost != 100 || cards[0].Target != TargetSelf {
		t.Fatalf("unexpected first card: %+v", cards[0])
	}
	if cards[1].LoanAmount != 500 {
		t.Fatalf("expected loan amount 500, got %d", cards[1].LoanAmount)
	}
	e := cards[2]
	if e.DurationTurns != 3 || e.MoneyEffect != "-200" || e.TurnEffect != "Skip 1 turn" || e.Target != TargetAllOtherPlayers {
		t.Fatalf("unexpected expeditor card: %+v", e)
	}
}

func TestLoadSpaceEffects(t *testing.T) {
	csv := "space_name,visit_type,effect_type,effect_action,effect_value,card_type\n" +
		"OWNER-SCOPE-INITIATION,First,cards,draw,3 W,W\n" +
		"OWNER-FUND-INITIATION,Subsequent,money,subtract_money,500,\n"

	rows, err := LoadSpaceEffects(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("load space effects: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Visit != VisitFirst || rows[0].EffectType != "cards" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Visit != VisitSubsequent || rows[1].Action != "subtract_money" {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestLoadDiceEffects(t *testing.T) {
	csv := "space_name,visit_type,effect_type,card_type,roll_1,roll_2,roll_3,roll_4,roll_5,roll_6\n" +
		"LEND-SCOPE-CHECK,First,cards,B,Draw 3,,Draw 1,,,\n"

	rows, err := LoadDiceEffects(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("load dice effects: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Roll(1) != "Draw 3" {
		t.Fatalf("expected roll 1 cell, got %q", row.Roll(1))
	}
	if row.Roll(2) != "" {
		t.Fatalf("expected empty roll 2 cell, got %q", row.Roll(2))
	}
	if row.Roll(7) != "" || row.Roll(0) != "" {
		t.Fatal("expected out-of-range rolls to return empty cells")
	}
}

func TestLoadSpaceConfigs(t *testing.T) {
	csv := "space_name,space_action,destinations\n" +
		"TAX-OFFICE,pay_tax,OWNER-SCOPE-INITIATION;OWNER-FUND-INITIATION\n" +
		"START,,OWNER-SCOPE-INITIATION\n"

	configs, err := LoadSpaceConfigs(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("load space configs: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(configs))
	}
	if configs[0].Action != "PAY_TAX" {
		t.Fatalf("expected normalized action, got %q", configs[0].Action)
	}
	if len(configs[0].Destinations) != 2 {
		t.Fatalf("expected 2 destinations, got %v", configs[0].Destinations)
	}
}
