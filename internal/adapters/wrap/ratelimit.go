package wrap

import (
	"context"
	"sync"
	"time"

	"github.com/fairtrip/fairtrip/internal/core"
)

type rateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) Wait(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}
	for {
		now := time.Now()
		r.mu.Lock()
		if r.last.IsZero() || now.Sub(r.last) >= r.interval {
			r.last = now
			r.mu.Unlock()
			return nil
		}
		wait := r.interval - now.Sub(r.last)
		r.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

type rateLimitedAdapter struct {
	core.FlightAdapter
	limiter *rateLimiter
}

// WithRateLimit spaces calls to one adapter at least interval apart. All
// three operations share the same budget.
func WithRateLimit(a core.FlightAdapter, interval time.Duration) core.FlightAdapter {
	return &rateLimitedAdapter{FlightAdapter: a, limiter: newRateLimiter(interval)}
}

func (r *rateLimitedAdapter) SearchAirports(ctx context.Context, keyword string) ([]core.AirportMatch, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.FlightAdapter.SearchAirports(ctx, keyword)
}

func (r *rateLimitedAdapter) SearchFlights(ctx context.Context, q core.FlightQuery) ([]core.FlightOffer, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.FlightAdapter.SearchFlights(ctx, q)
}

func (r *rateLimitedAdapter) SearchDestinations(ctx context.Context, origin string) ([]core.DestinationMatch, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.FlightAdapter.SearchDestinations(ctx, origin)
}
