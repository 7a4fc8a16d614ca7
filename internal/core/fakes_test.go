package core

import (
	"context"
	"sync"
)

type fakeFlightAdapter struct {
	name    string
	tier    ProviderTier
	avail   bool
	caps    []Capability
	flights func(FlightQuery) ([]FlightOffer, error)
	places  []AirportMatch
	dests   []DestinationMatch
	err     error
}

func (f *fakeFlightAdapter) Name() string       { return f.name }
func (f *fakeFlightAdapter) Tier() ProviderTier { return f.tier }
func (f *fakeFlightAdapter) Capabilities() []Capability {
	if f.caps != nil {
		return f.caps
	}
	return []Capability{CapFlightsSearch, CapAirportsSearch, CapDestinations}
}
func (f *fakeFlightAdapter) Available() (bool, string) {
	if f.avail {
		return true, ""
	}
	return false, "no credentials"
}

func (f *fakeFlightAdapter) SearchAirports(ctx context.Context, keyword string) ([]AirportMatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.places, nil
}

func (f *fakeFlightAdapter) SearchFlights(ctx context.Context, q FlightQuery) ([]FlightOffer, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.flights == nil {
		return nil, nil
	}
	return f.flights(q)
}

func (f *fakeFlightAdapter) SearchDestinations(ctx context.Context, origin string) ([]DestinationMatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.dests, nil
}

// fakeProvider answers flight searches from a table keyed by
// origin+destination and records every query.
type fakeProvider struct {
	mu      sync.Mutex
	offers  map[string][]FlightOffer
	errs    map[string]error
	places  []AirportMatch
	dests   []DestinationMatch
	queries []FlightQuery
}

func (p *fakeProvider) SearchAirports(ctx context.Context, keyword string) ([]AirportMatch, error) {
	return p.places, nil
}

func (p *fakeProvider) SearchFlights(ctx context.Context, q FlightQuery) ([]FlightOffer, error) {
	p.mu.Lock()
	p.queries = append(p.queries, q)
	p.mu.Unlock()

	key := q.Origin + q.Destination
	if err := p.errs[key]; err != nil {
		return nil, err
	}
	return p.offers[key], nil
}

func (p *fakeProvider) SearchDestinations(ctx context.Context, origin string) ([]DestinationMatch, error) {
	return p.dests, nil
}

func (p *fakeProvider) origins() map[string]bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]bool)
	for _, q := range p.queries {
		out[q.Origin] = true
	}
	return out
}

func offer(id string, price float64) FlightOffer {
	return FlightOffer{ID: id, Source: "fake", PriceTotal: price, Currency: "GBP"}
}

// scored builds a shortlist entry departing from airport at dist miles.
func scored(id string, price, dist float64, airport string) ScoredOffer {
	o := offer(id, price)
	o.DepartureAirport = Airport{Code: airport, Name: airport, DistanceMiles: dist}
	return ScoredOffer{FlightOffer: o, WeightedScore: WeightedScore(price, dist)}
}

func shortlist(travelerID string, offers ...ScoredOffer) *Shortlist {
	return &Shortlist{TravelerID: travelerID, Offers: offers, Best: offers[0]}
}

func withStops(o FlightOffer, stops ...int) FlightOffer {
	for _, s := range stops {
		o.Itineraries = append(o.Itineraries, Itinerary{Segments: make([]Segment, s+1)})
	}
	return o
}
