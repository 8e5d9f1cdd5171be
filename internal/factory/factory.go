package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/tictactoe-strategies/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-strategies/internal/dependencies/random"
	"github.com/mcoot/tictactoe-strategies/internal/events"
	"github.com/mcoot/tictactoe-strategies/internal/services/game"
	"github.com/mcoot/tictactoe-strategies/internal/services/strategy"
	"github.com/mcoot/tictactoe-strategies/internal/storage"
	"github.com/mcoot/tictactoe-strategies/internal/storage/memory"
	redisstorage "github.com/mcoot/tictactoe-strategies/internal/storage/redis"
	"github.com/mcoot/tictactoe-strategies/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	QTable         *strategy.QTable
	GameController *game.Controller
	HubManager     *events.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// QTablePath is a JSON Q-table loaded at startup (optional)
	QTablePath string
	// Game tunes AI timing and the strategies
	// If zero value, defaults to game.DefaultConfig()
	Game game.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	table := strategy.NewQTable()
	if cfg.QTablePath != "" {
		if table, err = strategy.LoadQTableFile(cfg.QTablePath); err != nil {
			_ = closeStorage(store)
			return nil, fmt.Errorf("loading q-table: %w", err)
		}
		logger.Info("q-table loaded",
			slog.String("path", cfg.QTablePath),
			slog.Int("states", table.Len()),
		)
	}

	gameCfg := cfg.Game
	if gameCfg == (game.Config{}) {
		gameCfg = game.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), table, gameCfg, logger), nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		return sqlite.New(cfg.SQLitePath)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	table *strategy.QTable,
	gameCfg game.Config,
	logger *slog.Logger,
) *App {
	hubManager := events.NewHubManager(logger)
	gameController := game.NewController(store, hubManager, table, gameCfg, clk, rnd, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		QTable:         table,
		GameController: gameController,
		HubManager:     hubManager,
	}
}

// Close stops event hubs and releases the storage backend
func (a *App) Close() error {
	a.HubManager.Close()
	return closeStorage(a.Storage)
}

func closeStorage(store storage.Storage) error {
	if closer, ok := store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
