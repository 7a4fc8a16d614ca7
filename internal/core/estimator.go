package core

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

type Estimator struct {
	aggregator *Aggregator
}

func NewEstimator(aggregator *Aggregator) *Estimator {
	return &Estimator{aggregator: aggregator}
}

// Estimate summarizes what the group would pay to fly to leg.Destination,
// using each traveler's best offer. Prices are the amounts paid; the distance
// penalty only decided which offer was best. It returns nil, nil when no
// traveler has an offer.
//
// This is a ranking aid for destinations and is not a fairness score.
func (e *Estimator) Estimate(ctx context.Context, travelers []Traveler, leg LegQuery) (*PriceEstimate, error) {
	shortlists, err := e.shortlists(ctx, travelers, leg)
	if err != nil {
		return nil, err
	}

	var prices []float64
	currency := ""
	for _, s := range shortlists {
		if s == nil {
			continue
		}
		if currency == "" {
			currency = s.Best.Currency
		} else if s.Best.Currency != currency {
			return nil, fmt.Errorf("estimate %s: %w (%s vs %s)", leg.Destination, ErrCurrencyMismatch, currency, s.Best.Currency)
		}
		prices = append(prices, s.Best.PriceTotal)
	}
	if len(prices) == 0 {
		return nil, nil
	}

	lo, hi := prices[0], prices[0]
	for _, p := range prices[1:] {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return &PriceEstimate{
		AvgPrice:  math.Round(mean(prices)),
		MinPrice:  math.Round(lo),
		MaxPrice:  math.Round(hi),
		Deviation: math.Round(hi - lo),
		Currency:  currency,
	}, nil
}

// shortlists runs the aggregator for every traveler concurrently. The result
// is index-aligned with travelers; nil marks a traveler without offers. A
// cancelled or expired ctx is an error, never an empty result.
func (e *Estimator) shortlists(ctx context.Context, travelers []Traveler, leg LegQuery) ([]*Shortlist, error) {
	out := make([]*Shortlist, len(travelers))
	var g errgroup.Group
	for i, t := range travelers {
		g.Go(func() error {
			out[i] = e.aggregator.Aggregate(ctx, t, leg)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search %s: %w", leg.Destination, err)
	}
	return out, nil
}
