package mock

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/fairtrip/fairtrip/internal/core"
)

const Name = "mock_flights"

// FlightsAdapter answers every operation from deterministic fake data so the
// whole planner can run offline. The same query always yields the same offers.
type FlightsAdapter struct {
	currency string
}

func NewFlightsAdapter(currency string) *FlightsAdapter {
	if currency == "" {
		currency = "GBP"
	}
	return &FlightsAdapter{currency: strings.ToUpper(currency)}
}

func (a *FlightsAdapter) Name() string            { return Name }
func (a *FlightsAdapter) Tier() core.ProviderTier { return core.TierEasySignup }
func (a *FlightsAdapter) Capabilities() []core.Capability {
	return []core.Capability{core.CapFlightsSearch, core.CapAirportsSearch, core.CapDestinations}
}
func (a *FlightsAdapter) Available() (bool, string) { return true, "" }

var mockCarriers = []string{"BA", "FR", "U2", "LS", "W6", "KL", "IB", "VY"}

var mockHubs = []string{"AMS", "DUB", "FRA", "CDG", "MAD"}

var mockLocations = []core.AirportMatch{
	{IATACode: "LON", Name: "London", SubType: core.SubTypeCity, CityName: "London"},
	{IATACode: "LHR", Name: "Heathrow", SubType: core.SubTypeAirport, CityName: "London"},
	{IATACode: "LGW", Name: "Gatwick", SubType: core.SubTypeAirport, CityName: "London"},
	{IATACode: "STN", Name: "Stansted", SubType: core.SubTypeAirport, CityName: "London"},
	{IATACode: "LBA", Name: "Leeds Bradford", SubType: core.SubTypeAirport, CityName: "Leeds"},
	{IATACode: "MAN", Name: "Manchester", SubType: core.SubTypeAirport, CityName: "Manchester"},
	{IATACode: "NCL", Name: "Newcastle", SubType: core.SubTypeAirport, CityName: "Newcastle"},
	{IATACode: "LPL", Name: "Liverpool John Lennon", SubType: core.SubTypeAirport, CityName: "Liverpool"},
	{IATACode: "SOU", Name: "Southampton", SubType: core.SubTypeAirport, CityName: "Southampton"},
	{IATACode: "CWL", Name: "Cardiff", SubType: core.SubTypeAirport, CityName: "Cardiff"},
	{IATACode: "BHD", Name: "George Best Belfast City", SubType: core.SubTypeAirport, CityName: "Belfast"},
	{IATACode: "BFS", Name: "Belfast International", SubType: core.SubTypeAirport, CityName: "Belfast"},
}

func (a *FlightsAdapter) SearchAirports(_ context.Context, keyword string) ([]core.AirportMatch, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return nil, nil
	}
	var out []core.AirportMatch
	for _, m := range mockLocations {
		if strings.Contains(strings.ToLower(m.CityName), kw) ||
			strings.Contains(strings.ToLower(m.Name), kw) ||
			strings.EqualFold(m.IATACode, kw) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (a *FlightsAdapter) SearchFlights(_ context.Context, q core.FlightQuery) ([]core.FlightOffer, error) {
	depart, err := time.Parse("2006-01-02", q.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("invalid departure date: %w", err)
	}
	var ret time.Time
	if q.ReturnDate != "" {
		if ret, err = time.Parse("2006-01-02", q.ReturnDate); err != nil {
			return nil, fmt.Errorf("invalid return date: %w", err)
		}
	}

	origin, dest := strings.ToUpper(q.Origin), strings.ToUpper(q.Destination)
	rng := rand.New(rand.NewSource(hashSeed(origin + dest + q.DepartureDate + q.ReturnDate)))
	count := 3 + rng.Intn(4)
	adults := max(q.Adults, 1)

	var offers []core.FlightOffer
	for i := range count {
		carrier := mockCarriers[rng.Intn(len(mockCarriers))]
		stops := rng.Intn(3)
		price := 45.0 + float64(rng.Intn(260)) - float64(stops)*15
		if !ret.IsZero() {
			price *= 1.8
		}
		price = float64(int(price*float64(adults)*100)) / 100

		itineraries := []core.Itinerary{
			mockItinerary(rng, origin, dest, depart, carrier, stops),
		}
		if !ret.IsZero() {
			itineraries = append(itineraries, mockItinerary(rng, dest, origin, ret, carrier, stops))
		}

		offer := core.FlightOffer{
			ID:          fmt.Sprintf("%s-%s-%d", origin, dest, i+1),
			Source:      Name,
			PriceTotal:  price,
			Currency:    a.currency,
			Itineraries: itineraries,
			DeepLink:    fmt.Sprintf("https://example.com/book/%s%s/%d", origin, dest, i+1),
		}
		if q.Filters.NonStop && offer.MaxStops() > 0 {
			continue
		}
		if q.Filters.MaxStops != nil && offer.MaxStops() > *q.Filters.MaxStops {
			continue
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

func (a *FlightsAdapter) SearchDestinations(_ context.Context, origin string) ([]core.DestinationMatch, error) {
	origin = strings.ToUpper(origin)
	rng := rand.New(rand.NewSource(hashSeed("destinations" + origin)))
	var out []core.DestinationMatch
	for _, d := range core.Catalogue("") {
		if d.Code == origin || rng.Intn(3) == 0 {
			continue
		}
		out = append(out, core.DestinationMatch{
			DestinationCode: d.Code,
			Price:           float64(30 + rng.Intn(200)),
			Currency:        a.currency,
		})
	}
	return out, nil
}

func mockItinerary(rng *rand.Rand, from, to string, day time.Time, carrier string, stops int) core.Itinerary {
	at := day.Add(time.Duration(6+rng.Intn(14)) * time.Hour)
	stopsAt := make([]string, 0, stops+2)
	stopsAt = append(stopsAt, from)
	for s := range stops {
		stopsAt = append(stopsAt, mockHubs[(rng.Intn(len(mockHubs))+s)%len(mockHubs)])
	}
	stopsAt = append(stopsAt, to)

	var segments []core.Segment
	start := at
	for i := 0; i+1 < len(stopsAt); i++ {
		legMinutes := 70 + rng.Intn(120)
		arrive := at.Add(time.Duration(legMinutes) * time.Minute)
		segments = append(segments, core.Segment{
			Departure:    core.Endpoint{AirportCode: stopsAt[i], At: at},
			Arrival:      core.Endpoint{AirportCode: stopsAt[i+1], At: arrive},
			CarrierCode:  carrier,
			FlightNumber: fmt.Sprintf("%d", 100+rng.Intn(900)),
		})
		at = arrive.Add(time.Duration(45+rng.Intn(90)) * time.Minute)
	}
	total := segments[len(segments)-1].Arrival.At.Sub(start)
	return core.Itinerary{Duration: isoDuration(total), Segments: segments}
}

func isoDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if m == 0 {
		return fmt.Sprintf("PT%dH", h)
	}
	return fmt.Sprintf("PT%dH%dM", h, m)
}

func hashSeed(s string) int64 {
	var h int64
	for _, c := range s {
		h = h*31 + int64(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
