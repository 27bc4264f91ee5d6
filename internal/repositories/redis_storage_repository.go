package repositories

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// RedisStorageRepository keeps session keys in Redis under a prefix, without expiry.
type RedisStorageRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisStorageRepository(client *redis.Client, prefix string) StorageRepositoryInterface {
	return &RedisStorageRepository{client: client, prefix: prefix}
}

func (r *RedisStorageRepository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return value, err
}

func (r *RedisStorageRepository) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *RedisStorageRepository) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = r.prefix + key
	}
	return r.client.Del(ctx, prefixed...).Err()
}
