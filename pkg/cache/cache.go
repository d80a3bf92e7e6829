// Package cache stores computed automaton artifacts keyed by content hash.
// Minimization, equivalence checks and rendered diagrams are deterministic
// in their inputs, so results can be reused across CLI invocations and API
// requests. Backends: file (CLI), memory (tests, single process), Redis
// (multi-instance server), and a null cache that disables caching.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by helpers that treat a miss as an error.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A non-positive ttl stores the
	// value without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ResultKey builds the cache key for an operation result over one or more
// automaton content hashes. Operand order matters: difference(a, b) and
// difference(b, a) must key differently.
func ResultKey(operation string, hashes ...string) string {
	return hashKey("result:"+operation, hashes)
}

// DiagramKey builds the cache key for a rendered diagram.
func DiagramKey(format, hash string) string {
	return hashKey("diagram:"+format, hash)
}
