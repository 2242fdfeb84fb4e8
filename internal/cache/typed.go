package cache

import (
	"context"
	"time"

	"github.com/nDmitry/storefront/internal/app"
)

// Typed gives a call site type-safe access to a shared Memory store.
// A value stored under the key with another type reads as a miss.
type Typed[T any] struct {
	store *Memory
}

// NewTyped wraps store for values of type T
func NewTyped[T any](store *Memory) Typed[T] {
	return Typed[T]{store: store}
}

// Get returns the value stored under key if it is present, unexpired and of type T.
func (t Typed[T]) Get(key string) (T, bool) {
	var zero T

	v, ok := t.store.Get(key)

	if !ok {
		return zero, false
	}

	typed, ok := v.(T)

	if !ok {
		return zero, false
	}

	return typed, true
}

// Set stores value under key for ttl. See Memory.Set.
func (t Typed[T]) Set(key string, value T, ttl time.Duration) error {
	return t.store.Set(key, value, ttl)
}

// Delete removes key regardless of the stored type.
func (t Typed[T]) Delete(key string) {
	t.store.Delete(key)
}

// GetOrLoad returns the cached value for key or calls load on a miss and caches its result.
// Concurrent misses of the same key share a single call to load.
// Errors from load are returned as is and nothing is cached.
func (t Typed[T]) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var zero T

	if v, ok := t.Get(key); ok {
		return v, nil
	}

	res, err, _ := t.store.loads.Do(key, func() (any, error) {
		// another caller may have filled the key while this one waited
		if v, ok := t.Get(key); ok {
			return v, nil
		}

		v, err := load(ctx)

		if err != nil {
			return nil, err
		}

		if err := t.Set(key, v, ttl); err != nil {
			app.Logger().Warn("Could not cache loaded value", "key", key, "error", err)
		}

		return v, nil
	})

	if err != nil {
		return zero, err
	}

	v, ok := res.(T)

	if !ok {
		// a view of another type shared the flight, load for this one directly
		return load(ctx)
	}

	return v, nil
}
