package wrap

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/fairtrip/fairtrip/internal/cache"
	"github.com/fairtrip/fairtrip/internal/core"
	"github.com/fairtrip/fairtrip/internal/metrics"
)

type cachedAdapter struct {
	core.FlightAdapter
	store    cache.Store
	ttl      time.Duration
	currency string
	metrics  *metrics.Metrics
}

// WithCache serves repeated calls from store. Only successful results are
// cached; an empty result is a valid answer and is cached too. Keys include
// the currency the adapter quotes in, so a persistent store never answers a
// search with prices in a previously configured currency.
func WithCache(a core.FlightAdapter, store cache.Store, ttl time.Duration, currency string, m *metrics.Metrics) core.FlightAdapter {
	return &cachedAdapter{FlightAdapter: a, store: store, ttl: ttl, currency: strings.ToUpper(currency), metrics: m}
}

func (c *cachedAdapter) SearchAirports(ctx context.Context, keyword string) ([]core.AirportMatch, error) {
	key := cache.CacheKey(c.Name(), "airports", strings.ToLower(strings.TrimSpace(keyword)))
	return cached(ctx, c, "airports", key, func() ([]core.AirportMatch, error) {
		return c.FlightAdapter.SearchAirports(ctx, keyword)
	})
}

func (c *cachedAdapter) SearchFlights(ctx context.Context, q core.FlightQuery) ([]core.FlightOffer, error) {
	maxStops := "any"
	if q.Filters.MaxStops != nil {
		maxStops = strconv.Itoa(*q.Filters.MaxStops)
	}
	key := cache.CacheKey(c.Name(), "flights", c.currency,
		strings.ToUpper(q.Origin), strings.ToUpper(q.Destination),
		q.DepartureDate, q.ReturnDate, strconv.Itoa(q.Adults),
		strconv.FormatBool(q.Filters.NonStop), maxStops,
	)
	return cached(ctx, c, "flights", key, func() ([]core.FlightOffer, error) {
		return c.FlightAdapter.SearchFlights(ctx, q)
	})
}

func (c *cachedAdapter) SearchDestinations(ctx context.Context, origin string) ([]core.DestinationMatch, error) {
	key := cache.CacheKey(c.Name(), "destinations", c.currency, strings.ToUpper(origin))
	return cached(ctx, c, "destinations", key, func() ([]core.DestinationMatch, error) {
		return c.FlightAdapter.SearchDestinations(ctx, origin)
	})
}

func cached[T any](ctx context.Context, c *cachedAdapter, op, key string, call func() ([]T, error)) ([]T, error) {
	if data, ok := c.store.Get(ctx, key); ok {
		var res []T
		if err := json.Unmarshal(data, &res); err == nil {
			c.lookup(op, "hit")
			return res, nil
		}
	}
	c.lookup(op, "miss")

	res, err := call()
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(res); err == nil {
		_ = c.store.Set(ctx, key, data, c.ttl)
	}
	return res, nil
}

func (c *cachedAdapter) lookup(op, result string) {
	if c.metrics != nil {
		c.metrics.CacheLookups.WithLabelValues(op, result).Inc()
	}
}
