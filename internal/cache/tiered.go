package cache

import (
	"context"
	"errors"
	"time"
)

// Tiered reads the fast store first and falls back to the durable one,
// copying hits back into the fast store.
type Tiered struct {
	fast    Store
	durable Store
	// backfillTTL bounds how long a durable hit stays in the fast tier. It is
	// further capped by the durable entry's remaining lifetime when the
	// durable store reports expiries.
	backfillTTL time.Duration
	now         func() time.Time
}

func NewTiered(fast, durable Store, backfillTTL time.Duration) *Tiered {
	return &Tiered{fast: fast, durable: durable, backfillTTL: backfillTTL, now: time.Now}
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	if data, ok := t.fast.Get(ctx, key); ok {
		return data, true
	}
	ttl := t.backfillTTL
	var (
		data []byte
		ok   bool
	)
	if er, canExpire := t.durable.(ExpiryReader); canExpire {
		var expiresAt time.Time
		data, expiresAt, ok = er.GetWithExpiry(ctx, key)
		ttl = min(ttl, expiresAt.Sub(t.now()))
	} else {
		data, ok = t.durable.Get(ctx, key)
	}
	if !ok {
		return nil, false
	}
	if ttl > 0 {
		_ = t.fast.Set(ctx, key, data, ttl)
	}
	return data, true
}

func (t *Tiered) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return errors.Join(
		t.fast.Set(ctx, key, data, ttl),
		t.durable.Set(ctx, key, data, ttl),
	)
}

func (t *Tiered) Clear(ctx context.Context) error {
	return errors.Join(t.fast.Clear(ctx), t.durable.Clear(ctx))
}
