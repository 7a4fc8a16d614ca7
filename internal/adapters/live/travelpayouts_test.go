package live

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fairtrip/fairtrip/internal/core"
)

func newTestTravelpayouts(t *testing.T, handler http.HandlerFunc) *TravelpayoutsAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTravelpayoutsAdapter(TravelpayoutsConfig{
		Token:           "secret",
		APIURL:          srv.URL,
		AutocompleteURL: srv.URL,
		Currency:        "GBP",
		HTTPClient:      srv.Client(),
	})
}

func TestTravelpayouts_SearchFlights(t *testing.T) {
	a := newTestTravelpayouts(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/aviasales/v3/prices_for_dates" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Access-Token") != "secret" {
			t.Errorf("missing token header")
		}
		if r.URL.Query().Get("one_way") != "false" {
			t.Errorf("round trip should send one_way=false")
		}
		_, _ = w.Write([]byte(`{"success":true,"currency":"gbp","data":[
			{"origin":"LON","destination":"BCN","origin_airport":"STN","destination_airport":"BCN","price":60,
			 "airline":"FR","flight_number":"9000","departure_at":"2026-06-12T06:30:00+01:00",
			 "return_at":"2026-06-15T20:00:00+02:00","transfers":0,"return_transfers":1,
			 "duration_to":130,"duration_back":300,"link":"/search/STN1206BCN15061"},
			{"origin":"LON","destination":"BCN","price":0}
		]}`))
	})

	offers, err := a.SearchFlights(context.Background(), core.FlightQuery{
		Origin: "STN", Destination: "BCN", DepartureDate: "2026-06-12", ReturnDate: "2026-06-15", Adults: 1,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected 1 priced offer, got %d", len(offers))
	}
	o := offers[0]
	if o.Currency != "GBP" || o.PriceTotal != 60 || o.Source != TravelpayoutsName {
		t.Errorf("unexpected offer %+v", o)
	}
	if len(o.Itineraries) != 2 {
		t.Fatalf("expected 2 itineraries, got %d", len(o.Itineraries))
	}
	if o.Itineraries[0].Stops() != 0 || o.Itineraries[1].Stops() != 1 {
		t.Errorf("stops = %d/%d, want 0/1", o.Itineraries[0].Stops(), o.Itineraries[1].Stops())
	}
	if o.Itineraries[0].Duration != "PT2H10M" {
		t.Errorf("duration = %q", o.Itineraries[0].Duration)
	}
	ret := o.Itineraries[1].Segments
	if ret[0].Departure.AirportCode != "BCN" || ret[len(ret)-1].Arrival.AirportCode != "STN" {
		t.Errorf("return itinerary endpoints wrong: %+v", ret)
	}
	if o.DeepLink != "https://www.aviasales.com/search/STN1206BCN15061" {
		t.Errorf("deep link = %q", o.DeepLink)
	}
}

func TestTravelpayouts_MaxStopsPostFilter(t *testing.T) {
	a := newTestTravelpayouts(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"currency":"gbp","data":[
			{"price":50,"transfers":2,"duration_to":400},
			{"price":80,"transfers":1,"duration_to":200}
		]}`))
	})
	one := 1
	offers, err := a.SearchFlights(context.Background(), core.FlightQuery{
		Origin: "LBA", Destination: "BCN", DepartureDate: "2026-06-12",
		Filters: core.SearchFilters{MaxStops: &one},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(offers) != 1 || offers[0].PriceTotal != 80 {
		t.Fatalf("expected only the 1-stop offer, got %+v", offers)
	}
}

func TestTravelpayouts_Unsuccessful(t *testing.T) {
	a := newTestTravelpayouts(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"invalid token","data":[]}`))
	})
	_, err := a.SearchFlights(context.Background(), core.FlightQuery{Origin: "LBA", Destination: "BCN", DepartureDate: "2026-06-12"})
	if !errors.Is(err, core.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestTravelpayouts_SearchAirports(t *testing.T) {
	a := newTestTravelpayouts(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/places2" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"type":"city","code":"LON","name":"London"},
			{"type":"airport","code":"lgw","name":"Gatwick","city_name":"London"},
			{"type":"country","code":"GB","name":"United Kingdom"}
		]`))
	})

	got, err := a.SearchAirports(context.Background(), "london")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected country entry skipped, got %d matches", len(got))
	}
	if got[0].SubType != core.SubTypeCity || got[0].CityName != "London" {
		t.Errorf("unexpected city %+v", got[0])
	}
	if got[1].IATACode != "LGW" || got[1].SubType != core.SubTypeAirport {
		t.Errorf("unexpected airport %+v", got[1])
	}
}

func TestTravelpayouts_SearchDestinations(t *testing.T) {
	a := newTestTravelpayouts(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"currency":"gbp","data":{
			"PRG":{"destination":"PRG","price":70,"departure_at":"2026-06-12T06:00:00Z"},
			"BCN":{"destination":"BCN","price":55,"departure_at":"2026-06-13T06:00:00Z"}
		}}`))
	})

	got, err := a.SearchDestinations(context.Background(), "lba")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 || got[0].DestinationCode != "BCN" || got[1].DestinationCode != "PRG" {
		t.Fatalf("expected sorted destinations, got %+v", got)
	}
	if got[0].DepartureDate != "2026-06-13" || got[0].Currency != "GBP" {
		t.Errorf("unexpected destination %+v", got[0])
	}
}

func TestTravelpayouts_ServerErrorIsTemporary(t *testing.T) {
	a := newTestTravelpayouts(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := a.SearchDestinations(context.Background(), "LBA")
	if !errors.Is(err, core.ErrTemporary) {
		t.Fatalf("expected ErrTemporary, got %v", err)
	}
}
