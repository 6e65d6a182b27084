// Package backend opens the storage slot selected by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/iho/pocketledger/internal/adapter/repository"
	fileRepo "github.com/iho/pocketledger/internal/adapter/repository/file"
	postgresRepo "github.com/iho/pocketledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/pocketledger/internal/adapter/repository/redis"
	sqliteRepo "github.com/iho/pocketledger/internal/adapter/repository/sqlite"
	"github.com/iho/pocketledger/internal/infrastructure/config"
	"github.com/iho/pocketledger/internal/infrastructure/postgres"
	"github.com/iho/pocketledger/internal/infrastructure/redis"
	"github.com/iho/pocketledger/internal/infrastructure/sqlite"
)

// Backend is an opened storage slot plus what is needed to probe and release it.
type Backend struct {
	Name string
	Slot repository.Slot

	ping  func(ctx context.Context) error
	close func() error
}

// Ping checks the backend is reachable. Local backends always succeed.
func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

// Close releases connections held by the backend.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects to the backend named by cfg.StorageBackend, running
// migrations for the SQL backends.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	logger := log.With().Str("backend", cfg.StorageBackend).Logger()

	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Warn().Msg("entries will not survive a restart")
		return &Backend{Name: cfg.StorageBackend, Slot: repository.NewMemorySlot()}, nil

	case config.BackendFile:
		slot, err := fileRepo.NewSlot(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", slot.Path(cfg.StorageKey)).Msg("using file slot")
		return &Backend{Name: cfg.StorageBackend, Slot: slot}, nil

	case config.BackendRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info().Msg("connected to redis")
		return &Backend{
			Name:  cfg.StorageBackend,
			Slot:  redisRepo.NewSlot(client),
			ping:  func(ctx context.Context) error { return client.Ping(ctx).Err() },
			close: client.Close,
		}, nil

	case config.BackendPostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		logger.Info().Msg("connected to postgres")
		return &Backend{
			Name: cfg.StorageBackend,
			Slot: postgresRepo.NewSlot(pool),
			ping: pool.Ping,
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("using sqlite slot")
		return &Backend{
			Name:  cfg.StorageBackend,
			Slot:  sqliteRepo.NewSlot(db),
			ping:  db.PingContext,
			close: db.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
