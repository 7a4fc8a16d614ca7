package core

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	dateLayout = "2006-01-02"

	defaultDestinationConcurrency = 4

	// MaxTravelers bounds a group. The combination search is exhaustive over
	// SearchDepth^n picks, so larger groups are rejected up front.
	MaxTravelers = 10
)

var iataPattern = regexp.MustCompile(`^[A-Z]{3}$`)

type TripRequest struct {
	Travelers     []Traveler    `json:"travelers" yaml:"travelers"`
	Destination   string        `json:"destination" yaml:"destination"`
	DepartureDate string        `json:"departureDate" yaml:"departureDate"`
	ReturnDate    string        `json:"returnDate,omitempty" yaml:"returnDate,omitempty"`
	Filters       SearchFilters `json:"filters" yaml:"filters"`
}

type TripPlan struct {
	ID            string                `json:"id"`
	Destination   string                `json:"destination"`
	DepartureDate string                `json:"departureDate"`
	ReturnDate    string                `json:"returnDate,omitempty"`
	Shortlists    map[string]*Shortlist `json:"shortlists"`
	Unsearchable  []string              `json:"unsearchable,omitempty"`
	Combinations  []Combination         `json:"combinations"`
	Currency      string                `json:"currency,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
}

type DestinationRequest struct {
	Travelers     []Traveler    `json:"travelers" yaml:"travelers"`
	DepartureDate string        `json:"departureDate" yaml:"departureDate"`
	ReturnDate    string        `json:"returnDate,omitempty" yaml:"returnDate,omitempty"`
	Filters       SearchFilters `json:"filters" yaml:"filters"`
	TripType      string        `json:"tripType,omitempty" yaml:"tripType,omitempty"`
	DiscoverFrom  string        `json:"discoverFrom,omitempty" yaml:"discoverFrom,omitempty"`
	Limit         int           `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// Planner is the entry point used by the CLI and the HTTP API. It holds no
// per-search state; every call builds and returns fresh results.
type Planner struct {
	provider    FlightProvider
	resolver    *Resolver
	estimator   *Estimator
	concurrency int
	now         func() time.Time
}

func NewPlanner(provider FlightProvider, opts ...AggregatorOption) *Planner {
	agg := NewAggregator(provider, opts...)
	return &Planner{
		provider:    provider,
		resolver:    NewResolver(provider),
		estimator:   NewEstimator(agg),
		concurrency: defaultDestinationConcurrency,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetDestinationConcurrency bounds how many destinations are estimated at once.
func (p *Planner) SetDestinationConcurrency(n int) {
	if n > 0 {
		p.concurrency = n
	}
}

func (p *Planner) Resolver() *Resolver { return p.resolver }

// PrepareTravelers returns copies of travelers with missing ids, candidate
// airports and selected airports filled in.
func (p *Planner) PrepareTravelers(ctx context.Context, travelers []Traveler) ([]Traveler, error) {
	out := make([]Traveler, len(travelers))
	for i, t := range travelers {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if len(t.CandidateAirports) == 0 {
			airports, err := p.resolver.Resolve(ctx, t.Origin)
			if err != nil {
				return nil, fmt.Errorf("traveler %s: %w", t.DisplayName(), err)
			}
			t.CandidateAirports = airports
		} else {
			t.CandidateAirports = append([]Airport(nil), t.CandidateAirports...)
		}
		if t.SelectedAirport == "" && len(t.CandidateAirports) > 0 {
			t.SelectedAirport = t.CandidateAirports[0].Code
		}
		t.ExcludedAirports = append([]string(nil), t.ExcludedAirports...)
		out[i] = t
	}
	return out, nil
}

// PlanTrip searches flights to one destination for every traveler and
// packages the results. Travelers that cannot be searched or have no offers
// are listed in Unsearchable and left out of the combinations.
func (p *Planner) PlanTrip(ctx context.Context, req TripRequest) (*TripPlan, error) {
	destination := strings.ToUpper(strings.TrimSpace(req.Destination))
	if !iataPattern.MatchString(destination) {
		return nil, fmt.Errorf("%w: destination %q is not an IATA code", ErrInvalidTrip, req.Destination)
	}
	if err := validateTrip(req.Travelers, req.DepartureDate, req.ReturnDate, req.Filters); err != nil {
		return nil, err
	}

	leg := LegQuery{
		Destination:   destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Filters:       req.Filters,
	}
	found, err := p.estimator.shortlists(ctx, req.Travelers, leg)
	if err != nil {
		return nil, err
	}

	plan := &TripPlan{
		ID:            uuid.NewString(),
		Destination:   destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Shortlists:    make(map[string]*Shortlist),
		CreatedAt:     p.now(),
	}
	for i, t := range req.Travelers {
		if found[i] == nil {
			plan.Unsearchable = append(plan.Unsearchable, t.ID)
			continue
		}
		plan.Shortlists[t.ID] = found[i]
	}

	combos, err := ComputeCombinations(plan.Shortlists, req.Travelers)
	if err != nil {
		return nil, err
	}
	plan.Combinations = combos
	if combos == nil {
		plan.Combinations = []Combination{}
	} else {
		plan.Currency = combos[0].Currency
	}
	return plan, nil
}

// RankDestinations estimates group prices for candidate destinations and
// returns those with at least one priced traveler, cheapest average first.
func (p *Planner) RankDestinations(ctx context.Context, req DestinationRequest) ([]DestinationCandidate, error) {
	if err := validateTrip(req.Travelers, req.DepartureDate, req.ReturnDate, req.Filters); err != nil {
		return nil, err
	}

	candidates := Catalogue(req.TripType)
	if req.DiscoverFrom != "" {
		found, err := p.provider.SearchDestinations(ctx, strings.ToUpper(req.DiscoverFrom))
		if err != nil {
			return nil, fmt.Errorf("discover destinations from %s: %w", req.DiscoverFrom, err)
		}
		candidates = mergeDiscovered(candidates, found)
	}
	candidates = excludeOrigins(candidates, req.Travelers)

	estimates := make([]*PriceEstimate, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, d := range candidates {
		g.Go(func() error {
			est, err := p.estimator.Estimate(gctx, req.Travelers, LegQuery{
				Destination:   d.Code,
				DepartureDate: req.DepartureDate,
				ReturnDate:    req.ReturnDate,
				Filters:       req.Filters,
			})
			if err != nil {
				return err
			}
			estimates[i] = est
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var ranked []DestinationCandidate
	for i, d := range candidates {
		if estimates[i] == nil {
			continue
		}
		ranked = append(ranked, DestinationCandidate{
			Code:          d.Code,
			City:          d.City,
			TripTypes:     d.TripTypes,
			PriceEstimate: *estimates[i],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].AvgPrice != ranked[j].AvgPrice {
			return ranked[i].AvgPrice < ranked[j].AvgPrice
		}
		if ranked[i].Deviation != ranked[j].Deviation {
			return ranked[i].Deviation < ranked[j].Deviation
		}
		return ranked[i].Code < ranked[j].Code
	})
	if req.Limit > 0 && len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}
	return ranked, nil
}

func mergeDiscovered(candidates []Destination, found []DestinationMatch) []Destination {
	known := make(map[string]bool, len(candidates))
	for _, d := range candidates {
		known[d.Code] = true
	}
	for _, m := range found {
		code := strings.ToUpper(m.DestinationCode)
		if !iataPattern.MatchString(code) || known[code] {
			continue
		}
		known[code] = true
		city, ok := catalogueCity(code)
		if !ok {
			city = code
		}
		candidates = append(candidates, Destination{Code: code, City: city})
	}
	return candidates
}

func excludeOrigins(candidates []Destination, travelers []Traveler) []Destination {
	var out []Destination
	for _, d := range candidates {
		origin := false
		for _, t := range travelers {
			if t.HasCandidate(d.Code) {
				origin = true
				break
			}
		}
		if !origin {
			out = append(out, d)
		}
	}
	return out
}

// validateTrip fails fast on caller bugs instead of correcting them.
func validateTrip(travelers []Traveler, departure, ret string, filters SearchFilters) error {
	if len(travelers) == 0 {
		return fmt.Errorf("%w: no travelers", ErrInvalidTrip)
	}
	if len(travelers) > MaxTravelers {
		return fmt.Errorf("%w: %d travelers, at most %d are supported", ErrInvalidTrip, len(travelers), MaxTravelers)
	}
	ids := make(map[string]bool, len(travelers))
	for _, t := range travelers {
		if t.ID == "" {
			return fmt.Errorf("%w: traveler %q has no id", ErrInvalidTrip, t.DisplayName())
		}
		if ids[t.ID] {
			return fmt.Errorf("%w: duplicate traveler id %q", ErrInvalidTrip, t.ID)
		}
		ids[t.ID] = true
		if t.SelectedAirport != "" && !t.HasCandidate(t.SelectedAirport) {
			return fmt.Errorf("%w: traveler %q selected %s which is not a candidate airport",
				ErrInvalidTrip, t.ID, t.SelectedAirport)
		}
	}

	dep, err := time.Parse(dateLayout, departure)
	if err != nil {
		return fmt.Errorf("%w: departure date %q must be YYYY-MM-DD", ErrInvalidTrip, departure)
	}
	if ret != "" {
		r, err := time.Parse(dateLayout, ret)
		if err != nil {
			return fmt.Errorf("%w: return date %q must be YYYY-MM-DD", ErrInvalidTrip, ret)
		}
		if r.Before(dep) {
			return fmt.Errorf("%w: return date is before departure date", ErrInvalidTrip)
		}
	}
	if filters.MaxStops != nil && (*filters.MaxStops < 0 || *filters.MaxStops > 2) {
		return fmt.Errorf("%w: maxStops must be 0, 1 or 2", ErrInvalidTrip)
	}
	return nil
}
