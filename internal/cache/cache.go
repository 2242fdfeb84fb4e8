package cache

import (
	"context"
	"time"
)

// TTL classes used by the storefront services.
const (
	// TTLVolatile is for data that changes often, e.g. currency rates.
	TTLVolatile = 30 * time.Second

	// TTLCatalog is for product listings scraped from the supplier.
	TTLCatalog = 5 * time.Minute

	// TTLPromo is for promo code lookups.
	TTLPromo = 60 * time.Second
)

// Cache defines the interface for caching rendered content
type Cache interface {
	// Get retrieves a value from the cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with optional expiration
	// If ttl is 0, the value will not be cached
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache, a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Close releases any resources used by the cache
	Close() error
}
