package repositories

import (
	"context"
	"sync"
)

// MemoryStorageRepository keeps values for the lifetime of the process.
type MemoryStorageRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorageRepository() *MemoryStorageRepository {
	return &MemoryStorageRepository{values: make(map[string]string)}
}

func (r *MemoryStorageRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (r *MemoryStorageRepository) Set(_ context.Context, key string, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = value
	return nil
}

func (r *MemoryStorageRepository) Del(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range keys {
		delete(r.values, key)
	}
	return nil
}
