package core

import (
	"context"
	"sync"
	"time"
)

const (
	// ShortlistSize is how many ranked offers a traveler keeps per destination.
	ShortlistSize = 5

	defaultCallTimeout = 15 * time.Second
)

// LegQuery is the part of a flight search shared by every traveler.
type LegQuery struct {
	Destination   string        `json:"destination"`
	DepartureDate string        `json:"departureDate"`
	ReturnDate    string        `json:"returnDate,omitempty"`
	Filters       SearchFilters `json:"filters"`
}

type Aggregator struct {
	provider    FlightProvider
	checkAll    bool
	callTimeout time.Duration
}

type AggregatorOption func(*Aggregator)

// WithCheckAllAirports disables the non-hub airport cap.
func WithCheckAllAirports(checkAll bool) AggregatorOption {
	return func(a *Aggregator) { a.checkAll = checkAll }
}

// WithCallTimeout bounds each provider call. Zero keeps the default.
func WithCallTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		if d > 0 {
			a.callTimeout = d
		}
	}
}

func NewAggregator(provider FlightProvider, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{provider: provider, callTimeout: defaultCallTimeout}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate queries every selected airport of one traveler concurrently and
// returns the ranked shortlist. It returns nil when the traveler has no
// selectable airport or no airport produced an offer; a failing airport
// simply contributes nothing.
func (a *Aggregator) Aggregate(ctx context.Context, t Traveler, leg LegQuery) *Shortlist {
	airports := SelectAirports(t, a.checkAll)
	if len(airports) == 0 {
		return nil
	}

	// Results are slotted by airport position so the flattened order does
	// not depend on which call finished first.
	perAirport := make([][]ScoredOffer, len(airports))

	var wg sync.WaitGroup
	for i, ap := range airports {
		wg.Add(1)
		go func(i int, ap Airport) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
			defer cancel()

			offers, err := a.provider.SearchFlights(callCtx, FlightQuery{
				Origin:        ap.Code,
				Destination:   leg.Destination,
				DepartureDate: leg.DepartureDate,
				ReturnDate:    leg.ReturnDate,
				Adults:        1,
				Filters:       leg.Filters,
			})
			if err != nil {
				return
			}
			perAirport[i] = ScoreOffers(offers, ap)
		}(i, ap)
	}
	wg.Wait()

	var all []ScoredOffer
	for _, offers := range perAirport {
		all = append(all, offers...)
	}
	if len(all) == 0 {
		return nil
	}

	RankOffers(all)
	n := min(ShortlistSize, len(all))
	shortlist := make([]ScoredOffer, n)
	copy(shortlist, all[:n])

	return &Shortlist{
		TravelerID: t.ID,
		Offers:     shortlist,
		Best:       shortlist[0],
	}
}
