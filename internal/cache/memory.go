package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nDmitry/storefront/internal/app"
	"golang.org/x/sync/singleflight"
)

// DefaultSweepInterval is how often Run purges expired entries.
const DefaultSweepInterval = 5 * time.Minute

// ErrInvalidTTL is returned by Set when ttl is not positive.
var ErrInvalidTTL = errors.New("cache: ttl must be positive")

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// Memory is an in-process key-value store with per-entry expiration.
// Expired entries are removed when read and by the periodic sweep in Run.
// A single mutex guards the map, so every method is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time

	// loads collapses concurrent read-through loads of the same key
	loads singleflight.Group
}

// MemoryOption configures a Memory store
type MemoryOption func(*Memory)

// WithClock replaces the wall clock, used by tests to move time forward
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates an empty store
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Set inserts or overwrites the entry for key. The entry expires ttl after the call.
// A non-positive ttl is rejected with ErrInvalidTTL and the store is left as is.
func (m *Memory) Set(key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	m.mu.Lock()
	m.entries[key] = entry{value: value, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()

	cacheOperations.WithLabelValues("set", "ok").Inc()

	return nil
}

// Get returns the value for key if it is present and not expired.
// An expired entry is deleted as part of the lookup.
func (m *Memory) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]

	if !ok {
		cacheOperations.WithLabelValues("get", "miss").Inc()
		return nil, false
	}

	if e.expired(m.now()) {
		delete(m.entries, key)
		cacheOperations.WithLabelValues("get", "expired").Inc()
		cacheEvictions.WithLabelValues("lazy").Inc()

		return nil, false
	}

	cacheOperations.WithLabelValues("get", "hit").Inc()

	return e.value, true
}

// Delete removes the entry for key if there is one
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()

	cacheOperations.WithLabelValues("delete", "ok").Inc()
}

// Cleanup removes every entry that is expired at call time and returns how many were removed
func (m *Memory) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0

	for key, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, key)
			removed++
		}
	}

	cacheEvictions.WithLabelValues("sweep").Add(float64(removed))
	cacheEntries.Set(float64(len(m.entries)))

	return removed
}

// Clear removes all entries
func (m *Memory) Clear() {
	m.mu.Lock()
	clear(m.entries)
	m.mu.Unlock()

	cacheEntries.Set(0)
}

// Len returns the number of stored entries, including expired ones not yet removed
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// Run sweeps expired entries every interval and blocks until ctx is canceled
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	logger := app.Logger()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Cache sweeper started", "interval", interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cache sweeper stopped")
			return
		case <-ticker.C:
			if removed := m.Cleanup(); removed > 0 {
				logger.Debug("Cache sweep removed expired entries", "removed", removed)
			}
		}
	}
}
