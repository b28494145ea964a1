package repository

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultMemoryCacheEntries bounds a MemoryCache built by NewMemoryCache.
	DefaultMemoryCacheEntries = 512
	memorySweepInterval       = time.Minute
)

type memoryEntry struct {
	value     string
	storedAt  time.Time
	expiresAt time.Time // zero means no expiry
}

// MemoryCache is a process-local CacheRepository used when Redis is not
// configured, and in tests. It holds at most maxEntries values; expired
// entries are swept on write and the oldest entry is evicted when full.
type MemoryCache struct {
	mu         sync.Mutex
	data       map[string]memoryEntry
	maxEntries int
	lastSweep  time.Time
	now        func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithLimit(DefaultMemoryCacheEntries)
}

// NewMemoryCacheWithLimit creates a cache holding at most maxEntries values.
func NewMemoryCacheWithLimit(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryCacheEntries
	}
	return &MemoryCache{
		data:       make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	if entry.expired(m.now()) {
		delete(m.data, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry := memoryEntry{value: value, storedAt: now}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}

	if _, exists := m.data[key]; !exists {
		if len(m.data) >= m.maxEntries || now.Sub(m.lastSweep) >= memorySweepInterval {
			m.sweep(now)
		}
		if len(m.data) >= m.maxEntries {
			m.evictOldest()
		}
	}
	m.data[key] = entry
	return nil
}

// sweep drops expired entries. Callers hold mu.
func (m *MemoryCache) sweep(now time.Time) {
	for key, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, key)
		}
	}
	m.lastSweep = now
}

// evictOldest drops the entry stored first. Callers hold mu.
func (m *MemoryCache) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, entry := range m.data {
		if !found || entry.storedAt.Before(oldest) {
			oldestKey, oldest, found = key, entry.storedAt, true
		}
	}
	if found {
		delete(m.data, oldestKey)
	}
}

func (m *MemoryCache) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}
