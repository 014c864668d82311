package choice

import (
	"errors"
	"testing"

	"github.com/unravelhq/unravel/internal/game/domain/effect"
)

var options = []effect.Option{
	{ID: "p2", Label: "Blake"},
	{ID: "p3", Label: "Casey"},
}

func TestCreateAndResolve(t *testing.T) {
	coordinator := NewCoordinator()

	pending, err := coordinator.Create("p1", "target_player", "Choose a player", options)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if pending.ID == "" {
		t.Fatal("expected choice id")
	}
	if got, ok := coordinator.Pending("p1"); !ok || got.ID != pending.ID {
		t.Fatal("expected pending choice for p1")
	}

	resolved, optionID, err := coordinator.Resolve(pending.ID, "p3")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if optionID != "p3" || resolved.PlayerID != "p1" {
		t.Fatalf("unexpected resolution: %s %s", optionID, resolved.PlayerID)
	}
	if _, ok := coordinator.Pending("p1"); ok {
		t.Fatal("expected slot cleared after resolve")
	}
	if coordinator.PendingCount() != 0 {
		t.Fatalf("expected no pending choices, got %d", coordinator.PendingCount())
	}
}

func TestSecondConcurrentChoiceRejected(t *testing.T) {
	coordinator := NewCoordinator()
	if _, err := coordinator.Create("p1", "target_player", "Choose", options); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := coordinator.Create("p1", "target_player", "Choose again", options); !errors.Is(err, ErrPending) {
		t.Fatalf("expected ErrPending, got %v", err)
	}
	// A different player is unaffected.
	if _, err := coordinator.Create("p2", "target_player", "Choose", options); err != nil {
		t.Fatalf("create for other player: %v", err)
	}
}

func TestResolveUnknownChoice(t *testing.T) {
	coordinator := NewCoordinator()
	if _, _, err := coordinator.Resolve("missing", "p2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveRejectsUnofferedOption(t *testing.T) {
	coordinator := NewCoordinator()
	pending, _ := coordinator.Create("p1", "target_player", "Choose", options)

	if _, _, err := coordinator.Resolve(pending.ID, "p1"); !errors.Is(err, ErrOptionInvalid) {
		t.Fatalf("expected ErrOptionInvalid, got %v", err)
	}
	// Rejected answers leave the slot pending.
	if _, ok := coordinator.Pending("p1"); !ok {
		t.Fatal("expected choice still pending after invalid answer")
	}
}

func TestCreateRejectsEmptyOptions(t *testing.T) {
	coordinator := NewCoordinator()
	if _, err := coordinator.Create("p1", "t", "prompt", nil); !errors.Is(err, ErrOptionsEmpty) {
		t.Fatalf("expected ErrOptionsEmpty, got %v", err)
	}
}
