package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store is an opaque key-value store with per-entry TTL. A miss and an
// expired entry look the same to callers.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// ExpiryReader is implemented by stores that can report when an entry
// expires. Tiered uses it to keep back-filled entries from outliving the
// durable copy.
type ExpiryReader interface {
	GetWithExpiry(ctx context.Context, key string) ([]byte, time.Time, bool)
}

func CacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte("|"))
	}
	return hex.EncodeToString(h.Sum(nil))
}
