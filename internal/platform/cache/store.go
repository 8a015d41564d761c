// Package cache provides the TTL store and the cached accessor shared by every market data endpoint.
package cache

import (
	"context"
	"time"

	"github.com/samber/mo"
)

// Store is a key/value store with per-entry expiry.
// Values are JSON bytes so the same accessor can sit on top of process memory or Redis.
type Store interface {
	// Get returns the stored value while it is still fresh. An expired or missing key is None.
	Get(ctx context.Context, key string) (mo.Option[[]byte], error)
	// Set overwrites the entry for key. It expires ttl after now.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Clock returns the current time. Tests swap it for a fake.
type Clock func() time.Time
