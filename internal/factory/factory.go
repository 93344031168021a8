package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dadportal/dinojump-go/internal/dependencies/clock"
	"github.com/dadportal/dinojump-go/internal/dependencies/random"
	"github.com/dadportal/dinojump-go/internal/model"
	"github.com/dadportal/dinojump-go/internal/services/engine"
	"github.com/dadportal/dinojump-go/internal/services/guardian"
	"github.com/dadportal/dinojump-go/internal/services/ledger"
	"github.com/dadportal/dinojump-go/internal/storage"
	"github.com/dadportal/dinojump-go/internal/storage/memory"
	redisstorage "github.com/dadportal/dinojump-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Logger *slog.Logger

	// Services
	Ledger *ledger.Service
	Gate   *guardian.Gate
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// LedgerConfig holds ledger defaults (optional)
	LedgerConfig ledger.Config
	// GuardianConfig holds guardian gate settings (optional)
	GuardianConfig guardian.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg.LedgerConfig, cfg.GuardianConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	ledgerCfg ledger.Config,
	guardianCfg guardian.Config,
	logger *slog.Logger,
) *App {
	ledgerService := ledger.New(store, clk, ledgerCfg, logger)
	gate := guardian.New(store, clk, guardianCfg, logger)

	return &App{
		Storage: store,
		Clock:   clk,
		Random:  rnd,
		Logger:  logger,
		Ledger:  ledgerService,
		Gate:    gate,
	}
}

// NewEngine creates an arcade engine for one player, sharing the app's
// ledger, clock and randomness
func (a *App) NewEngine(playerID model.PlayerID) *engine.Engine {
	return engine.New(a.Ledger, a.Clock, a.Random, playerID, a.Logger)
}
