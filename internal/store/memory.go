package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/mission-control/models"
)

// memoryCacheStore keeps the cached config in process memory.
type memoryCacheStore struct {
	mu       sync.RWMutex
	cfg      models.ConfigMap
	cachedAt time.Time
	written  bool
}

// NewMemoryCacheStore returns an empty in-memory [CacheStore].
func NewMemoryCacheStore() CacheStore {
	return &memoryCacheStore{}
}

func (m *memoryCacheStore) Write(ctx context.Context, cfg models.ConfigMap, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cfg = cfg.Clone()
	if m.cfg == nil {
		m.cfg = models.ConfigMap{}
	}
	m.cachedAt = at
	m.written = true
	return nil
}

func (m *memoryCacheStore) Read(ctx context.Context) (models.ConfigMap, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, time.Time{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.written {
		return nil, time.Time{}, ErrCacheEmpty
	}
	return m.cfg.Clone(), m.cachedAt, nil
}

func (m *memoryCacheStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cfg = nil
	m.cachedAt = time.Time{}
	m.written = false
	return nil
}
