package cache

import (
	"context"
	"sync"

	"SwingBasket/internal/domain/models"
)

// MemoryCache is the default process-local snapshot cache.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]models.MarketSnapshot
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]models.MarketSnapshot)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (models.MarketSnapshot, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.data[Key(key)]
	return snap, ok, nil
}

// Put stores snap under key. Concurrent writers for the same key: last one wins.
func (m *MemoryCache) Put(_ context.Context, key string, snap models.MarketSnapshot) error {
	m.mu.Lock()
	m.data[Key(key)] = snap
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Clear(_ context.Context) error {
	m.mu.Lock()
	m.data = make(map[string]models.MarketSnapshot)
	m.mu.Unlock()
	return nil
}

// Len reports the number of cached snapshots.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
