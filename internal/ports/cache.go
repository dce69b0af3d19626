package ports

import (
	"context"
	"time"
)

// Cache is a TTL-backed key-value capability. The certification window store
// rides on it; adapters may be backed by SQLite, Redis or other stores.
type Cache interface {
	// Get returns the value when the key exists and has not expired.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set upserts the key and re-arms its expiry. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// CompareAndDelete removes the key only while it still holds expected.
	// The check and delete are one atomic store operation.
	CompareAndDelete(ctx context.Context, key string, expected string) (bool, error)
}
