package core

import (
	"context"
	"fmt"
	"strings"
)

const (
	// DefaultAirportDistanceMiles stands in when a provider lookup gives no
	// distance. It is a placeholder, not a measurement.
	DefaultAirportDistanceMiles = 15

	MaxResolvedAirports = 5
)

type Resolver struct {
	provider FlightProvider
}

func NewResolver(provider FlightProvider) *Resolver {
	return &Resolver{provider: provider}
}

// Resolve maps a free-text origin city to candidate departure airports,
// preferring the predefined table over a provider lookup.
func (r *Resolver) Resolve(ctx context.Context, city string) ([]Airport, error) {
	if airports, ok := KnownCityAirports(city); ok {
		return airports, nil
	}

	keyword := strings.TrimSpace(city)
	if keyword == "" {
		return nil, nil
	}
	matches, err := r.provider.SearchAirports(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("resolve airports for %q: %w", city, err)
	}

	seen := make(map[string]bool)
	var out []Airport
	for _, m := range matches {
		if m.SubType != SubTypeAirport {
			continue
		}
		code := strings.ToUpper(m.IATACode)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, Airport{
			Code:          code,
			Name:          m.Name,
			DistanceMiles: DefaultAirportDistanceMiles,
		})
		if len(out) == MaxResolvedAirports {
			break
		}
	}
	return out, nil
}

func normalizeCity(city string) string {
	return strings.ToLower(strings.Join(strings.Fields(city), " "))
}
