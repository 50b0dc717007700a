// Package factory wires the application graph: storage, dependency seams,
// services, the room runtime and the websocket gateway.
package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pokerhub/holdem-room/internal/config"
	"github.com/pokerhub/holdem-room/internal/dependencies/clock"
	"github.com/pokerhub/holdem-room/internal/dependencies/random"
	"github.com/pokerhub/holdem-room/internal/notify"
	"github.com/pokerhub/holdem-room/internal/room"
	"github.com/pokerhub/holdem-room/internal/services/deck"
	"github.com/pokerhub/holdem-room/internal/services/game"
	"github.com/pokerhub/holdem-room/internal/services/lobby"
	"github.com/pokerhub/holdem-room/internal/services/pot"
	"github.com/pokerhub/holdem-room/internal/storage"
	memorystorage "github.com/pokerhub/holdem-room/internal/storage/memory"
	redisstorage "github.com/pokerhub/holdem-room/internal/storage/redis"
	"github.com/pokerhub/holdem-room/internal/transport/ws"
)

// App holds the constructed application graph.
type App struct {
	Storage storage.Storage
	Deck    *deck.Service
	Pots    *pot.Service
	Engine  *game.Engine
	Lobby   *lobby.Controller
	Runtime *room.Runtime
	Gateway *ws.Gateway
}

// New builds the application from config with production dependencies.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	store, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithDependencies(cfg, logger, store, clock.New(), random.New()), nil
}

// NewWithDependencies builds the application with explicit seams. Tests use
// this to inject mock clocks, fixed randomness and in-memory storage.
func NewWithDependencies(
	cfg config.Config,
	logger *slog.Logger,
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
) *App {
	gateway := ws.NewGateway(logger)
	return newWithSink(cfg, logger, store, clk, rnd, gateway)
}

func newWithSink(
	cfg config.Config,
	logger *slog.Logger,
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	gateway *ws.Gateway,
) *App {
	var sink notify.Sink = gateway

	deckService := deck.New(rnd)
	potService := pot.New()
	engine := game.NewEngine(deckService, potService, sink, logger, cfg.SmallBlind, cfg.BigBlind)
	lobbyController := lobby.NewController(store, engine, clk, sink, logger, cfg)
	runtime := room.New(lobbyController, engine, sink, logger, cfg)
	gateway.Bind(runtime)

	return &App{
		Storage: store,
		Deck:    deckService,
		Pots:    potService,
		Engine:  engine,
		Lobby:   lobbyController,
		Runtime: runtime,
		Gateway: gateway,
	}
}

func newStorage(ctx context.Context, cfg config.Config) (storage.Storage, error) {
	switch cfg.StorageType {
	case config.StorageMemory:
		return memorystorage.New(), nil
	case config.StorageRedis:
		store, err := redisstorage.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("creating redis storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
}
