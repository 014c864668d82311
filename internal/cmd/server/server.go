// Package server parses server command flags and starts the game runtime.
package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/unravelhq/unravel/internal/game/api/ws"
	"github.com/unravelhq/unravel/internal/game/app"
	"github.com/unravelhq/unravel/internal/game/domain/content"
	"github.com/unravelhq/unravel/internal/game/domain/player"
	"github.com/unravelhq/unravel/internal/game/storage"
	storagesqlite "github.com/unravelhq/unravel/internal/game/storage/sqlite"
	"github.com/unravelhq/unravel/internal/platform/config"
	"github.com/unravelhq/unravel/internal/platform/otel"
)

// Config holds server command configuration.
type Config struct {
	Addr          string `env:"UNRAVEL_ADDR" envDefault:":8080"`
	DBPath        string `env:"UNRAVEL_DB_PATH" envDefault:"unravel.db"`
	ContentDir    string `env:"UNRAVEL_CONTENT_DIR" envDefault:"data"`
	GameID        string `env:"UNRAVEL_GAME_ID" envDefault:"default"`
	Players       string `env:"UNRAVEL_PLAYERS" envDefault:"p1:Ada,p2:Brin"`
	StartingMoney int    `env:"UNRAVEL_STARTING_MONEY" envDefault:"1500"`
	StartingTime  int    `env:"UNRAVEL_STARTING_TIME" envDefault:"20"`
	StartSpace    string `env:"UNRAVEL_START_SPACE" envDefault:"Start"`
	DiceSeed      int64  `env:"UNRAVEL_DICE_SEED" envDefault:"0"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database path")
	fs.StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "game content CSV directory")
	fs.StringVar(&cfg.Players, "players", cfg.Players, "seats as id:name pairs, comma separated")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parseSeats parses the id:name seat list.
func parseSeats(value string) ([]player.Seat, error) {
	var seats []player.Seat
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, name, found := strings.Cut(pair, ":")
		if !found || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("invalid seat %q, want id:name", pair)
		}
		seats = append(seats, player.Seat{ID: strings.TrimSpace(id), Name: strings.TrimSpace(name)})
	}
	if len(seats) == 0 {
		return nil, fmt.Errorf("at least one seat is required")
	}
	return seats, nil
}

// loadContent reads the game data tables from CSV files. A missing file
// leaves its table empty so a server can boot with partial content.
func loadContent(dir string, logger *log.Logger) (app.Content, error) {
	var bundle app.Content

	load := func(name string, into func(io.Reader) error) error {
		path := filepath.Join(dir, name)
		file, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			logger.Printf("content file %s not found, table left empty", path)
			return nil
		}
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer file.Close()
		if err := into(file); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		return nil
	}

	if err := load("cards.csv", func(r io.Reader) error {
		records, err := content.LoadCards(r)
		bundle.Cards = records
		return err
	}); err != nil {
		return app.Content{}, err
	}
	if err := load("space_effects.csv", func(r io.Reader) error {
		records, err := content.LoadSpaceEffects(r)
		bundle.SpaceEffects = records
		return err
	}); err != nil {
		return app.Content{}, err
	}
	if err := load("dice_effects.csv", func(r io.Reader) error {
		records, err := content.LoadDiceEffects(r)
		bundle.DiceEffects = records
		return err
	}); err != nil {
		return app.Content{}, err
	}
	if err := load("spaces.csv", func(r io.Reader) error {
		records, err := content.LoadSpaceConfigs(r)
		bundle.SpaceConfigs = records
		return err
	}); err != nil {
		return app.Content{}, err
	}
	return bundle, nil
}

// Run starts the game server and blocks until the context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	logger := log.Default()

	shutdown, err := otel.Setup(ctx, "unravel-server")
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Printf("otel shutdown: %v", err)
		}
	}()

	seats, err := parseSeats(cfg.Players)
	if err != nil {
		return err
	}
	bundle, err := loadContent(cfg.ContentDir, logger)
	if err != nil {
		return err
	}

	store, err := storagesqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	if snap, err := store.LoadSnapshot(ctx, cfg.GameID); err == nil {
		logger.Printf("previous snapshot for game %s at turn %d (saved %s); starting fresh",
			cfg.GameID, snap.Turn, snap.SavedAt.Format(time.RFC3339))
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("load snapshot: %w", err)
	}

	seed := cfg.DiceSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game, err := app.New(app.Config{
		GameID:        cfg.GameID,
		Seats:         seats,
		StartingMoney: cfg.StartingMoney,
		StartingTime:  cfg.StartingTime,
		StartSpace:    cfg.StartSpace,
		DiceSeed:      seed,
		Content:       bundle,
		Store:         store,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}

	hub := ws.NewHub(game)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.NewHandler(hub))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("game server listening on %s", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
