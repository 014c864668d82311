package server

import (
	"flag"
	"testing"
)

func TestParseSeats(t *testing.T) {
	seats, err := parseSeats("p1:Ada, p2:Brin")
	if err != nil {
		t.Fatalf("parseSeats: %v", err)
	}
	if len(seats) != 2 || seats[0].ID != "p1" || seats[1].Name != "Brin" {
		t.Fatalf("seats = %+v", seats)
	}

	if _, err := parseSeats("nocolon"); err == nil {
		t.Fatal("malformed seat should fail")
	}
	if _, err := parseSeats(" , "); err == nil {
		t.Fatal("empty seat list should fail")
	}
}

func TestParseConfigFlagOverride(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-addr", ":9999", "-players", "x:X"})
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.Players != "x:X" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.DBPath == "" || cfg.StartSpace == "" {
		t.Fatalf("defaults missing: %+v", cfg)
	}
}
