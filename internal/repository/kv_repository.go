package repository

import (
	"context"
	"sync"
)

// KVRepository stores opaque string values under string keys.
// Get returns ErrKeyNotFound when the key was never written or was deleted.
type KVRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type MemoryKVRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKVRepository() *MemoryKVRepository {
	return &MemoryKVRepository{values: make(map[string]string)}
}

func (r *MemoryKVRepository) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrBlankKey
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (r *MemoryKVRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrBlankKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *MemoryKVRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrBlankKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}
