package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/conclave-gg/conclave/internal/dependencies/clock"
	"github.com/conclave-gg/conclave/internal/dependencies/random"
	"github.com/conclave-gg/conclave/internal/lobby"
	"github.com/conclave-gg/conclave/internal/storage"
	"github.com/conclave-gg/conclave/internal/storage/memory"
	redisstorage "github.com/conclave-gg/conclave/internal/storage/redis"
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

	// Lobby directory
	Manager *lobby.Manager
}

// Config holds configuration for the application factory
type Config struct {
	// ManagerConfig holds lobby lifecycle settings (optional)
	// If zero value, defaults to lobby.DefaultManagerConfig()
	ManagerConfig lobby.ManagerConfig
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
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

	managerCfg := cfg.ManagerConfig
	if managerCfg.IdleTTL == 0 {
		managerCfg = lobby.DefaultManagerConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), managerCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	managerCfg lobby.ManagerConfig,
	logger *slog.Logger,
) *App {
	return &App{
		Storage: store,
		Clock:   clk,
		Random:  rnd,
		Manager: lobby.NewManager(managerCfg, store, clk, rnd, logger),
	}
}
