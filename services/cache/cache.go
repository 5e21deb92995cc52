package cache

import (
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is not present in the cache
var ErrCacheMiss = errors.New("cache miss")

// CacheService defines the interface for cache implementations
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}

// NoopCache is a CacheService that stores nothing. It is used when no
// memcache address is configured so the fetcher's cooldown checks always
// miss.
type NoopCache struct{}

// NewNoopCache creates a new no-op cache
func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

// Get always misses
func (n *NoopCache) Get(key string) ([]byte, error) {
	return nil, ErrCacheMiss
}

// Set discards the value
func (n *NoopCache) Set(key string, value []byte, expiration time.Duration) error {
	return nil
}

// Delete is a no-op
func (n *NoopCache) Delete(key string) error {
	return nil
}
