package resources

import (
	"context"
	"errors"
	"testing"

	"github.com/unravelhq/unravel/internal/game/domain/player"
)

func newService(t *testing.T) (*Service, *player.Store) {
	t.Helper()
	players, err := player.NewStore([]player.Seat{{ID: "p1", Name: "Avery"}}, 1000, 20, "START")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return NewService(players), players
}

func TestAddMoney(t *testing.T) {
	service, players := newService(t)
	if err := service.AddMoney(context.Background(), "p1", 250, "card:B003", "loan credit"); err != nil {
		t.Fatalf("add money: %v", err)
	}
	state, _ := players.Get("p1")
	if state.Money != 1250 {
		t.Fatalf("expected 1250, got %d", state.Money)
	}
}

func TestSpendMoneyRejectsOverdraft(t *testing.T) {
	service, players := newService(t)
	err := service.SpendMoney(context.Background(), "p1", 5000, "card:W001", "card cost")
	if !errors.Is(err, ErrInsufficientMoney) {
		t.Fatalf("expected ErrInsufficientMoney, got %v", err)
	}
	state, _ := players.Get("p1")
	if state.Money != 1000 {
		t.Fatalf("expected balance untouched after rejection, got %d", state.Money)
	}
}

func TestSpendMoney(t *testing.T) {
	service, players := newService(t)
	if err := service.SpendMoney(context.Background(), "p1", 100, "card:W001", "card cost"); err != nil {
		t.Fatalf("spend money: %v", err)
	}
	state, _ := players.Get("p1")
	if state.Money != 900 {
		t.Fatalf("expected 900, got %d", state.Money)
	}
}

func TestTimeBalance(t *testing.T) {
	service, players := newService(t)
	if err := service.SpendTime(context.Background(), "p1", 3, "space:X", ""); err != nil {
		t.Fatalf("spend time: %v", err)
	}
	if err := service.AddTime(context.Background(), "p1", 1, "card:L002", ""); err != nil {
		t.Fatalf("add time: %v", err)
	}
	state, _ := players.Get("p1")
	if state.Time != 18 {
		t.Fatalf("expected 18, got %d", state.Time)
	}
	if err := service.SpendTime(context.Background(), "p1", 99, "space:X", ""); !errors.Is(err, ErrInsufficientTime) {
		t.Fatalf("expected ErrInsufficientTime, got %v", err)
	}
}

func TestAmountValidation(t *testing.T) {
	service, _ := newService(t)
	if err := service.AddMoney(context.Background(), "p1", 0, "s", ""); !errors.Is(err, ErrAmountInvalid) {
		t.Fatalf("expected ErrAmountInvalid, got %v", err)
	}
	if err := service.SpendMoney(context.Background(), "p1", -5, "s", ""); !errors.Is(err, ErrAmountInvalid) {
		t.Fatalf("expected ErrAmountInvalid, got %v", err)
	}
}

func TestCanAfford(t *testing.T) {
	service, _ := newService(t)
	if !service.CanAfford("p1", 1000) {
		t.Fatal("expected exact balance to be affordable")
	}
	if service.CanAfford("p1", 1001) {
		t.Fatal("expected overdraft to be unaffordable")
	}
	if service.CanAfford("p9", 1) {
		t.Fatal("expected unknown player to be unaffordable")
	}
}
