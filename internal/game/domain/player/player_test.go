package player

import (
	"errors"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore([]Seat{
		{ID: "p1", Name: "Avery"},
		{ID: "p2", Name: "Blake"},
		{ID: "p3", Name: "Casey"},
	}, 1000, 20, "START")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestNewStoreRejectsDuplicates(t *testing.T) {
	_, err := NewStore([]Seat{{ID: "p1"}, {ID: "p1"}}, 0, 0, "START")
	if err == nil {
		t.Fatal("expected error for duplicate player id")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Get("p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	state.Money = 0
	state.Visited["ELSEWHERE"] = true

	again, _ := store.Get("p1")
	if again.Money != 1000 {
		t.Fatalf("expected store state untouched, got money %d", again.Money)
	}
	if again.Visited["ELSEWHERE"] {
		t.Fatal("expected visited map to be copied")
	}
}

func TestGetUnknownPlayer(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get("p9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAllPreservesSeatOrder(t *testing.T) {
	store := newTestStore(t)
	states := store.All()
	if len(states) != 3 {
		t.Fatalf("expected 3 players, got %d", len(states))
	}
	for i, want := range []string{"p1", "p2", "p3"} {
		if states[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, states[i].ID)
		}
	}
}

func TestUpdateMutatesLiveState(t *testing.T) {
	store := newTestStore(t)
	if err := store.Update("p2", func(state *State) {
		state.Money += 500
		state.SkipTurns++
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	state, _ := store.Get("p2")
	if state.Money != 1500 || state.SkipTurns != 1 {
		t.Fatalf("unexpected state after update: money=%d skips=%d", state.Money, state.SkipTurns)
	}
}
