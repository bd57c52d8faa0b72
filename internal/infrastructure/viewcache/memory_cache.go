package viewcache

import (
	"context"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/janhq/companion-api/internal/domain/view"
)

// MemoryCache keeps rendered views in a process local LRU.
type MemoryCache struct {
	cache *lru.Cache
	mu    sync.Mutex
	now   func() time.Time
}

type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

var _ view.Cache = (*MemoryCache)(nil)

func NewMemoryCache(maxSize int) (*MemoryCache, error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{cache: cache, now: time.Now}, nil
}

func (m *MemoryCache) Get(_ context.Context, path, variant string) ([]byte, bool, error) {
	key := cacheKey(path, variant)
	raw, ok := m.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	entry := raw.(cacheEntry)
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.cache.Remove(key)
		return nil, false, nil
	}
	return entry.payload, true, nil
}

func (m *MemoryCache) Set(_ context.Context, path, variant string, payload []byte, ttl time.Duration) error {
	entry := cacheEntry{payload: payload}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.cache.Add(cacheKey(path, variant), entry)
	return nil
}

// Invalidate removes every variant cached for path.
func (m *MemoryCache) Invalidate(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := pathPrefix(path)
	for _, raw := range m.cache.Keys() {
		if key, ok := raw.(string); ok && strings.HasPrefix(key, prefix) {
			m.cache.Remove(key)
		}
	}
	return nil
}

func (m *MemoryCache) Len() int {
	return m.cache.Len()
}
