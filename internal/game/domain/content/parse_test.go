package content

import "testing"

func TestSignForAction(t *testing.T) {
	cases := []struct {
		action string
		sign   int
		ok     bool
	}{
		{"add_money", 1, true},
		{"gain", 1, true},
		{"Receive", 1, true},
		{"subtract_time", -1, true},
		{"lose", -1, true},
		{"pay_fee", -1, true},
		{"transfer", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		sign, ok := SignForAction(tc.action)
		if sign != tc.sign || ok != tc.ok {
			t.Fatalf("%q: expected (%d, %v), got (%d, %v)", tc.action, tc.sign, tc.ok, sign, ok)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		value  string
		amount int
		ok     bool
	}{
		{"500", 500, true},
		{"-200", -200, true},
		{"$1,500", 1500, true},
		{" 42 ", 42, true},
		{"", 0, false},
		{"10%", 0, false},
		{"lots", 0, false},
	}
	for _, tc := range cases {
		amount, ok := ParseAmount(tc.value)
		if amount != tc.amount || ok != tc.ok {
			t.Fatalf("%q: expected (%d, %v), got (%d, %v)", tc.value, tc.amount, tc.ok, amount, ok)
		}
	}
}

func TestParseCardSpec(t *testing.T) {
	count, cardType, ok := ParseCardSpec("3 B")
	if !ok || count != 3 || cardType != CardTypeBank {
		t.Fatalf("expected (3, B, true), got (%d, %s, %v)", count, cardType, ok)
	}
	if _, _, ok := ParseCardSpec("three B"); ok {
		t.Fatal("expected malformed count to degrade")
	}
	if _, _, ok := ParseCardSpec("2 Z"); ok {
		t.Fatal("expected unknown card type to degrade")
	}
	if _, _, ok := ParseCardSpec(""); ok {
		t.Fatal("expected empty spec to degrade")
	}
}

func TestParseDrawSpec(t *testing.T) {
	count, ok := ParseDrawSpec("Draw 3")
	if !ok || count != 3 {
		t.Fatalf("expected (3, true), got (%d, %v)", count, ok)
	}
	if _, ok := ParseDrawSpec("Take 3"); ok {
		t.Fatal("expected non-draw verb to degrade")
	}
	if _, ok := ParseDrawSpec("Draw zero"); ok {
		t.Fatal("expected non-numeric count to degrade")
	}
}

func TestParseTurnSkips(t *testing.T) {
	if got := ParseTurnSkips("Skip 2 turns"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := ParseTurnSkips("skip next turn"); got != 1 {
		t.Fatalf("expected implicit 1, got %d", got)
	}
	if got := ParseTurnSkips("extra time"); got != 0 {
		t.Fatalf("expected 0 for non-skip field, got %d", got)
	}
}
