package repositories

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"cleaning-console/pkg/config"
)

const (
	StorageDriverFile   = "file"
	StorageDriverRedis  = "redis"
	StorageDriverMemory = "memory"
)

// NewStorageRepository picks the backend named by cfg.Storage.Driver. The returned close func
// releases backend resources.
func NewStorageRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (StorageRepositoryInterface, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case StorageDriverFile, "":
		repo, err := NewFileStorageRepository(cfg.Storage.FilePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, noop, nil
	case StorageDriverMemory:
		return NewMemoryStorageRepository(), noop, nil
	case StorageDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := client.Ping(ctx).Result(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Address, err)
		}
		return NewRedisStorageRepository(client, cfg.Redis.Prefix), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
