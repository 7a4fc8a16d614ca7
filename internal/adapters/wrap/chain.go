package wrap

import (
	"time"

	"github.com/fairtrip/fairtrip/internal/cache"
	"github.com/fairtrip/fairtrip/internal/core"
	"github.com/fairtrip/fairtrip/internal/logger"
	"github.com/fairtrip/fairtrip/internal/metrics"
)

type Options struct {
	RateLimit      time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	Cache          cache.Store
	CacheTTL       time.Duration
	Currency       string
	Metrics        *metrics.Metrics
	Logger         logger.Logger
}

// Chain applies the decorators so a cache hit never reaches the provider and
// every retry attempt is rate limited. Tracking counts one call per lookup
// that missed the cache, however many attempts it took:
// cache -> tracking -> retry -> rate limit -> adapter.
func Chain(a core.FlightAdapter, opts Options) core.FlightAdapter {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	if opts.RateLimit > 0 {
		a = WithRateLimit(a, opts.RateLimit)
	}
	if opts.MaxRetries > 0 {
		a = WithRetry(a, opts.MaxRetries, opts.InitialBackoff, log)
	}
	if opts.Metrics != nil {
		a = WithTracking(a, opts.Metrics)
	}
	if opts.Cache != nil && opts.CacheTTL > 0 {
		a = WithCache(a, opts.Cache, opts.CacheTTL, opts.Currency, opts.Metrics)
	}
	return a
}
