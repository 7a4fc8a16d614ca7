package wrap

import (
	"context"
	"errors"
	"time"

	"github.com/fairtrip/fairtrip/internal/core"
	"github.com/fairtrip/fairtrip/internal/metrics"
)

type trackedAdapter struct {
	core.FlightAdapter
	metrics *metrics.Metrics
}

// WithTracking records every call that reaches the provider.
func WithTracking(a core.FlightAdapter, m *metrics.Metrics) core.FlightAdapter {
	return &trackedAdapter{FlightAdapter: a, metrics: m}
}

func (t *trackedAdapter) SearchAirports(ctx context.Context, keyword string) ([]core.AirportMatch, error) {
	return track(t, "airports", func() ([]core.AirportMatch, error) {
		return t.FlightAdapter.SearchAirports(ctx, keyword)
	})
}

func (t *trackedAdapter) SearchFlights(ctx context.Context, q core.FlightQuery) ([]core.FlightOffer, error) {
	return track(t, "flights", func() ([]core.FlightOffer, error) {
		return t.FlightAdapter.SearchFlights(ctx, q)
	})
}

func (t *trackedAdapter) SearchDestinations(ctx context.Context, origin string) ([]core.DestinationMatch, error) {
	return track(t, "destinations", func() ([]core.DestinationMatch, error) {
		return t.FlightAdapter.SearchDestinations(ctx, origin)
	})
}

func track[T any](t *trackedAdapter, op string, call func() ([]T, error)) ([]T, error) {
	start := time.Now()
	res, err := call()
	t.metrics.CallDuration.WithLabelValues(t.Name(), op).Observe(time.Since(start).Seconds())
	t.metrics.ProviderCalls.WithLabelValues(t.Name(), op, outcome(res, err)).Inc()
	return res, err
}

func outcome[T any](res []T, err error) string {
	switch {
	case err == nil && len(res) == 0:
		return "empty"
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	case errors.Is(err, core.ErrTemporary):
		return "temporary"
	default:
		return "error"
	}
}
