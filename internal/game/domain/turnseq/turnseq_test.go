package turnseq

import (
	"context"
	"errors"
	"testing"

	"github.com/unravelhq/unravel/internal/game/domain/effect"
	"github.com/unravelhq/unravel/internal/game/domain/player"
)

type fakeTicker struct {
	expired map[string][]string
	calls   []string
}

func (f *fakeTicker) TickActive(ctx context.Context, playerID string) ([]string, error) {
	f.calls = append(f.calls, playerID)
	return f.expired[playerID], nil
}

func newService(t *testing.T) (*Service, *player.Store, *fakeTicker) {
	t.Helper()
	players, err := player.NewStore([]player.Seat{
		{ID: "p1", Name: "Avery"},
		{ID: "p2", Name: "Blake"},
		{ID: "p3", Name: "Casey"},
	}, 1000, 20, "START")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	service := NewService(players)
	ticker := &fakeTicker{expired: make(map[string][]string)}
	service.SetCardTicker(ticker)
	return service, players, ticker
}

func TestAdvanceRotatesSeats(t *testing.T) {
	service, _, _ := newService(t)
	if service.Current() != "p1" {
		t.Fatalf("expected p1 first, got %s", service.Current())
	}
	next, _, err := service.Advance(context.Background())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if next != "p2" {
		t.Fatalf("expected p2, got %s", next)
	}
}

func TestAdvanceConsumesSkipFlags(t *testing.T) {
	service, _, _ := newService(t)
	if err := service.SetModifier(context.Background(), "p2", effect.TurnActionSkip); err != nil {
		t.Fatalf("set modifier: %v", err)
	}

	next, _, err := service.Advance(context.Background())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if next != "p3" {
		t.Fatalf("expected p2 skipped, got %s", next)
	}

	// Skip flag is consumed: next round p2 plays normally.
	service.Advance(context.Background()) // -> p1
	next, _, _ = service.Advance(context.Background())
	if next != "p2" {
		t.Fatalf("expected p2 after consumed skip, got %s", next)
	}
}

func TestAdvanceTicksIncomingPlayer(t *testing.T) {
	service, _, ticker := newService(t)
	ticker.expired["p2"] = []string{"E066"}

	_, expired, err := service.Advance(context.Background())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if len(ticker.calls) != 1 || ticker.calls[0] != "p2" {
		t.Fatalf("expected exactly one tick for p2, got %v", ticker.calls)
	}
	if len(expired["p2"]) != 1 || expired["p2"][0] != "E066" {
		t.Fatalf("expected expired cards reported, got %v", expired)
	}
}

func TestTurnCounterIncrementsOnWrap(t *testing.T) {
	service, _, _ := newService(t)
	if service.Turn() != 1 {
		t.Fatalf("expected turn 1, got %d", service.Turn())
	}
	service.Advance(context.Background()) // p2
	service.Advance(context.Background()) // p3
	service.Advance(context.Background()) // p1, wrap
	if service.Turn() != 2 {
		t.Fatalf("expected turn 2 after wrap, got %d", service.Turn())
	}
}

func TestRerollGrantConsumed(t *testing.T) {
	service, _, _ := newService(t)
	if err := service.SetModifier(context.Background(), "p1", effect.TurnActionGrantReroll); err != nil {
		t.Fatalf("set modifier: %v", err)
	}
	granted, err := service.ConsumeReroll("p1")
	if err != nil || !granted {
		t.Fatalf("expected reroll granted, got %v %v", granted, err)
	}
	granted, _ = service.ConsumeReroll("p1")
	if granted {
		t.Fatal("expected reroll consumed")
	}
}

func TestSetModifierRejectsUnknownKind(t *testing.T) {
	service, _, _ := newService(t)
	if err := service.SetModifier(context.Background(), "p1", effect.TurnAction("DOUBLE_TURN")); !errors.Is(err, ErrModifierInvalid) {
		t.Fatalf("expected ErrModifierInvalid, got %v", err)
	}
}
