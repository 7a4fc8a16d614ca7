package mock

import (
	"context"
	"reflect"
	"testing"

	"github.com/fairtrip/fairtrip/internal/core"
)

func TestSearchFlights_Deterministic(t *testing.T) {
	a := NewFlightsAdapter("gbp")
	q := core.FlightQuery{Origin: "LBA", Destination: "BCN", DepartureDate: "2026-06-12", ReturnDate: "2026-06-15", Adults: 1}

	first, err := a.SearchFlights(context.Background(), q)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	second, _ := a.SearchFlights(context.Background(), q)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical offers for identical queries")
	}
	if len(first) == 0 {
		t.Fatal("expected offers")
	}
	for _, o := range first {
		if o.Source != Name {
			t.Errorf("source = %q", o.Source)
		}
		if o.Currency != "GBP" {
			t.Errorf("currency = %q", o.Currency)
		}
		if o.OneWay() {
			t.Errorf("offer %s should be a round trip", o.ID)
		}
		if o.PriceTotal <= 0 {
			t.Errorf("offer %s has price %v", o.ID, o.PriceTotal)
		}
		from := o.Itineraries[0].Segments[0].Departure.AirportCode
		if from != "LBA" {
			t.Errorf("offer %s departs from %s", o.ID, from)
		}
	}
}

func TestSearchFlights_Filters(t *testing.T) {
	a := NewFlightsAdapter("GBP")
	zero := 0
	tests := []struct {
		name    string
		filters core.SearchFilters
		limit   int
	}{
		{"non-stop", core.SearchFilters{NonStop: true}, 0},
		{"max stops zero", core.SearchFilters{MaxStops: &zero}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, dest := range []string{"BCN", "LIS", "PRG", "AMS"} {
				offers, err := a.SearchFlights(context.Background(), core.FlightQuery{
					Origin: "MAN", Destination: dest, DepartureDate: "2026-07-01", Filters: tt.filters,
				})
				if err != nil {
					t.Fatalf("search: %v", err)
				}
				for _, o := range offers {
					if o.MaxStops() > tt.limit {
						t.Errorf("%s: offer %s has %d stops", dest, o.ID, o.MaxStops())
					}
				}
			}
		})
	}
}

func TestSearchFlights_InvalidDate(t *testing.T) {
	a := NewFlightsAdapter("GBP")
	if _, err := a.SearchFlights(context.Background(), core.FlightQuery{Origin: "LBA", Destination: "BCN", DepartureDate: "12/06/2026"}); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestSearchAirports(t *testing.T) {
	a := NewFlightsAdapter("GBP")
	got, err := a.SearchAirports(context.Background(), "belfast")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 Belfast airports, got %d", len(got))
	}
	for _, m := range got {
		if m.SubType != core.SubTypeAirport {
			t.Errorf("unexpected subtype %s", m.SubType)
		}
	}

	if got, _ := a.SearchAirports(context.Background(), "  "); len(got) != 0 {
		t.Errorf("expected no matches for blank keyword, got %d", len(got))
	}
}

func TestSearchDestinations_SkipsOrigin(t *testing.T) {
	a := NewFlightsAdapter("GBP")
	got, err := a.SearchDestinations(context.Background(), "bcn")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, d := range got {
		if d.DestinationCode == "BCN" {
			t.Fatal("origin returned as destination")
		}
	}
}
