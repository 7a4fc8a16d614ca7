package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/fairtrip/fairtrip/internal/config"
)

type Router struct {
	cfg      *config.Config
	adapters []FlightAdapter
}

func NewRouter(cfg *config.Config) *Router {
	return &Router{cfg: cfg}
}

func (r *Router) Register(a FlightAdapter) {
	r.adapters = append(r.adapters, a)
}

// ActiveAdapters returns the available adapters the current mode allows,
// highest configured priority first.
func (r *Router) ActiveAdapters() []FlightAdapter {
	var out []FlightAdapter
	for _, a := range r.adapters {
		if avail, _ := a.Available(); avail && r.shouldUse(a.Name()) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return r.cfg.Providers[out[i].Name()].Priority > r.cfg.Providers[out[j].Name()].Priority
	})
	return out
}

func (r *Router) shouldUse(name string) bool {
	if pc, ok := r.cfg.Providers[name]; ok && !pc.Enabled {
		return false
	}
	switch r.cfg.Mode {
	case config.ModeMock:
		return isMockProvider(name)
	case config.ModeLive:
		return !isMockProvider(name)
	case config.ModeHybrid:
		if !isMockProvider(name) {
			return r.cfg.ProviderHasCredentials(name)
		}
		return r.noLiveAlternative()
	}
	return false
}

func (r *Router) noLiveAlternative() bool {
	for _, a := range r.adapters {
		if !isMockProvider(a.Name()) && r.cfg.ProviderHasCredentials(a.Name()) {
			return false
		}
	}
	return true
}

func isMockProvider(name string) bool {
	return strings.HasPrefix(name, "mock_")
}

func (r *Router) ProviderInfos() []ProviderInfo {
	var infos []ProviderInfo
	for _, a := range r.adapters {
		info := ProviderInfo{
			Name:         a.Name(),
			Capabilities: a.Capabilities(),
			Tier:         a.Tier(),
		}
		if avail, reason := a.Available(); avail {
			info.Status = "active"
		} else {
			info.Status = "no_credentials"
			info.Reason = reason
		}
		if info.Status == "active" && !r.shouldUse(a.Name()) {
			info.Status = "inactive"
			info.Reason = fmt.Sprintf("not used in %s mode", r.cfg.Mode)
		}
		infos = append(infos, info)
	}
	return infos
}

// Provider returns a FlightProvider that fans every call out to the active
// adapters supporting it and merges their answers. A call fails only when
// every adapter asked has failed.
func (r *Router) Provider() FlightProvider {
	return &routedProvider{adapters: r.ActiveAdapters()}
}

type routedProvider struct {
	adapters []FlightAdapter
}

func (p *routedProvider) SearchAirports(ctx context.Context, keyword string) ([]AirportMatch, error) {
	results, err := fanOut(ctx, p.supporting(CapAirportsSearch), func(ctx context.Context, a FlightAdapter) ([]AirportMatch, error) {
		return a.SearchAirports(ctx, keyword)
	})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []AirportMatch
	for _, m := range results {
		key := string(m.SubType) + "|" + strings.ToUpper(m.IATACode)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out, nil
}

func (p *routedProvider) SearchFlights(ctx context.Context, q FlightQuery) ([]FlightOffer, error) {
	results, err := fanOut(ctx, p.supporting(CapFlightsSearch), func(ctx context.Context, a FlightAdapter) ([]FlightOffer, error) {
		return a.SearchFlights(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return DedupeOffers(results), nil
}

func (p *routedProvider) SearchDestinations(ctx context.Context, origin string) ([]DestinationMatch, error) {
	results, err := fanOut(ctx, p.supporting(CapDestinations), func(ctx context.Context, a FlightAdapter) ([]DestinationMatch, error) {
		return a.SearchDestinations(ctx, origin)
	})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []DestinationMatch
	for _, d := range results {
		code := strings.ToUpper(d.DestinationCode)
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, d)
	}
	return out, nil
}

func (p *routedProvider) supporting(c Capability) []FlightAdapter {
	var out []FlightAdapter
	for _, a := range p.adapters {
		if slices.Contains(a.Capabilities(), c) {
			out = append(out, a)
		}
	}
	return out
}

// fanOut calls every adapter concurrently and concatenates the results in
// adapter order.
func fanOut[T any](ctx context.Context, adapters []FlightAdapter, call func(context.Context, FlightAdapter) ([]T, error)) ([]T, error) {
	if len(adapters) == 0 {
		return nil, fmt.Errorf("no active adapter for this operation: %w", ErrProviderUnavailable)
	}

	results := make([][]T, len(adapters))
	errs := make([]error, len(adapters))

	var wg sync.WaitGroup
	for i, a := range adapters {
		wg.Add(1)
		go func(i int, a FlightAdapter) {
			defer wg.Done()
			res, err := call(ctx, a)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", a.Name(), err)
				return
			}
			results[i] = res
		}(i, a)
	}
	wg.Wait()

	var out []T
	failed := 0
	for i := range adapters {
		if errs[i] != nil {
			failed++
			continue
		}
		out = append(out, results[i]...)
	}
	if failed == len(adapters) {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
