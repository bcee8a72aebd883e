// Package cache stores computed layouts and rendered artifacts between runs.
//
// The CLI keeps entries as JSON files under the user cache directory
// ([FileCache]); [NullCache] disables caching. Keys come from a [Keyer] and
// are derived from content hashes, so an edited scene never hits a stale
// entry.
package cache

import (
	"context"
	"time"
)

// Default lifetimes.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored data and true, or false on a miss. Expired and
	// unreadable entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}
