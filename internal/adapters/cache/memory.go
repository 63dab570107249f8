package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chuckie/modelpick/internal/domain"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type entry struct {
	models    []domain.ModelInfo
	expiresAt time.Time
}

// InMemory is a TTL cache of model listings protected by a mutex.
// A zero TTL keeps entries forever.
type InMemory struct {
	mu    sync.RWMutex
	cache map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

// NewInMemory creates a new in-memory cache.
func NewInMemory(ttl time.Duration) *InMemory {
	return &InMemory{
		cache: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get retrieves cached models by key.
func (c *InMemory) Get(ctx context.Context, key string) ([]domain.ModelInfo, error) {
	c.mu.RLock()
	e, ok := c.cache[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrMiss
	}
	if c.ttl > 0 && c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.cache, key)
		c.mu.Unlock()
		return nil, ErrMiss
	}

	// Return a copy to prevent external mutation
	result := make([]domain.ModelInfo, len(e.models))
	copy(result, e.models)
	return result, nil
}

// Set stores models in the cache by key.
func (c *InMemory) Set(ctx context.Context, key string, models []domain.ModelInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached := make([]domain.ModelInfo, len(models))
	copy(cached, models)
	c.cache[key] = entry{models: cached, expiresAt: c.now().Add(c.ttl)}

	return nil
}

// Delete removes key from the cache.
func (c *InMemory) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, key)
}
