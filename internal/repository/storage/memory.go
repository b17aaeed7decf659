package storage

import (
	"context"
	"sync"

	"toyshop/internal/domain"
)

// memoryRepo is a map-backed Repository for tests and DB-less dev runs.
type memoryRepo struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() Repository {
	return &memoryRepo{data: make(map[string][]byte)}
}

func (r *memoryRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (r *memoryRepo) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	r.data[key] = stored
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}
