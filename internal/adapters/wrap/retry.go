package wrap

import (
	"context"
	"errors"
	"time"

	"github.com/fairtrip/fairtrip/internal/core"
	"github.com/fairtrip/fairtrip/internal/logger"
)

type retryAdapter struct {
	core.FlightAdapter
	maxRetries int
	backoff    time.Duration
	log        logger.Logger
}

// WithRetry retries calls failing with core.ErrTemporary, doubling the wait
// after each attempt. Any other error is returned at once.
func WithRetry(a core.FlightAdapter, maxRetries int, backoff time.Duration, log logger.Logger) core.FlightAdapter {
	if log == nil {
		log = logger.Nop()
	}
	return &retryAdapter{FlightAdapter: a, maxRetries: maxRetries, backoff: backoff, log: log}
}

func (r *retryAdapter) SearchAirports(ctx context.Context, keyword string) ([]core.AirportMatch, error) {
	return retry(ctx, r, "airports", func() ([]core.AirportMatch, error) {
		return r.FlightAdapter.SearchAirports(ctx, keyword)
	})
}

func (r *retryAdapter) SearchFlights(ctx context.Context, q core.FlightQuery) ([]core.FlightOffer, error) {
	return retry(ctx, r, "flights", func() ([]core.FlightOffer, error) {
		return r.FlightAdapter.SearchFlights(ctx, q)
	})
}

func (r *retryAdapter) SearchDestinations(ctx context.Context, origin string) ([]core.DestinationMatch, error) {
	return retry(ctx, r, "destinations", func() ([]core.DestinationMatch, error) {
		return r.FlightAdapter.SearchDestinations(ctx, origin)
	})
}

func retry[T any](ctx context.Context, r *retryAdapter, op string, call func() ([]T, error)) ([]T, error) {
	backoff := r.backoff
	for attempt := 0; ; attempt++ {
		res, err := call()
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, core.ErrTemporary) || attempt >= r.maxRetries {
			return nil, err
		}
		r.log.Warn("provider call failed, retrying",
			"provider", r.Name(), "operation", op, "attempt", attempt+1, "backoff", backoff, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}
}
