package core

import (
	"context"
	"strings"
	"time"

	"github.com/fairtrip/fairtrip/internal/config"
)

type Capability string

const (
	CapFlightsSearch  Capability = "flights.search"
	CapAirportsSearch Capability = "airports.search"
	CapDestinations   Capability = "destinations.search"
)

type ProviderTier string

const (
	TierEasySignup      ProviderTier = "easySignup"
	TierPartnerRequired ProviderTier = "partnerRequired"
	TierEnterpriseOnly  ProviderTier = "enterpriseOnly"
)

type Luggage string

const (
	LuggageHand    Luggage = "hand"
	LuggageCabin   Luggage = "cabin"
	LuggageChecked Luggage = "checked"
)

type Airport struct {
	Code          string  `json:"code" yaml:"code"`
	Name          string  `json:"name" yaml:"name"`
	DistanceMiles float64 `json:"distanceMiles" yaml:"distanceMiles"`
}

// Label renders an airport the way it is shown next to a traveler's cost.
func (a Airport) Label() string {
	if a.Name == "" {
		return a.Code
	}
	return a.Name + " (" + a.Code + ")"
}

// Traveler is session state owned by the caller. The core only reads it.
type Traveler struct {
	ID                string    `json:"id" yaml:"id"`
	Name              string    `json:"name,omitempty" yaml:"name,omitempty"`
	Origin            string    `json:"origin" yaml:"origin"`
	Luggage           Luggage   `json:"luggage,omitempty" yaml:"luggage,omitempty"`
	CandidateAirports []Airport `json:"candidateAirports" yaml:"candidateAirports"`
	SelectedAirport   string    `json:"selectedAirport,omitempty" yaml:"selectedAirport,omitempty"`
	ExcludedAirports  []string  `json:"excludedAirports,omitempty" yaml:"excludedAirports,omitempty"`
}

func (t Traveler) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return "From " + t.Origin
}

func (t Traveler) IsExcluded(code string) bool {
	for _, c := range t.ExcludedAirports {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

func (t Traveler) HasCandidate(code string) bool {
	for _, a := range t.CandidateAirports {
		if strings.EqualFold(a.Code, code) {
			return true
		}
	}
	return false
}

type Endpoint struct {
	AirportCode string    `json:"airportCode"`
	At          time.Time `json:"at"`
}

type Segment struct {
	Departure    Endpoint `json:"departure"`
	Arrival      Endpoint `json:"arrival"`
	CarrierCode  string   `json:"carrierCode"`
	FlightNumber string   `json:"flightNumber"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

func (it Itinerary) Stops() int {
	if len(it.Segments) == 0 {
		return 0
	}
	return len(it.Segments) - 1
}

// FlightOffer is the normalized offer every adapter produces. DepartureAirport
// is attached by the aggregator, never by a provider.
type FlightOffer struct {
	ID               string      `json:"id"`
	Source           string      `json:"source"`
	PriceTotal       float64     `json:"priceTotal"`
	Currency         string      `json:"currency"`
	Itineraries      []Itinerary `json:"itineraries"`
	DepartureAirport Airport     `json:"departureAirport"`
	DeepLink         string      `json:"deepLink,omitempty"`
}

// MaxStops is the largest stop count over the offer's itineraries.
func (o FlightOffer) MaxStops() int {
	stops := 0
	for _, it := range o.Itineraries {
		if s := it.Stops(); s > stops {
			stops = s
		}
	}
	return stops
}

func (o FlightOffer) OneWay() bool {
	return len(o.Itineraries) < 2
}

type ScoredOffer struct {
	FlightOffer
	WeightedScore float64 `json:"weightedScore"`
}

// Shortlist is one traveler's aggregated result for a destination.
// Offers is best-first and Best is always Offers[0].
type Shortlist struct {
	TravelerID string        `json:"travelerId"`
	Offers     []ScoredOffer `json:"offers"`
	Best       ScoredOffer   `json:"best"`
}

type SearchFilters struct {
	NonStop  bool `json:"nonStop,omitempty" yaml:"nonStop,omitempty"`
	MaxStops *int `json:"maxStops,omitempty" yaml:"maxStops,omitempty"`
}

type FlightQuery struct {
	Origin        string        `json:"origin"`
	Destination   string        `json:"destination"`
	DepartureDate string        `json:"departureDate"`
	ReturnDate    string        `json:"returnDate,omitempty"`
	Adults        int           `json:"adults"`
	Filters       SearchFilters `json:"filters"`
}

type LocationSubType string

const (
	SubTypeAirport LocationSubType = "AIRPORT"
	SubTypeCity    LocationSubType = "CITY"
)

type AirportMatch struct {
	IATACode string          `json:"iataCode"`
	Name     string          `json:"name"`
	SubType  LocationSubType `json:"subType"`
	CityName string          `json:"cityName,omitempty"`
}

type DestinationMatch struct {
	DestinationCode string  `json:"destinationCode"`
	Price           float64 `json:"price,omitempty"`
	Currency        string  `json:"currency,omitempty"`
	DepartureDate   string  `json:"departureDate,omitempty"`
	ReturnDate      string  `json:"returnDate,omitempty"`
}

type PriceEstimate struct {
	AvgPrice  float64 `json:"avgPrice"`
	MinPrice  float64 `json:"minPrice"`
	MaxPrice  float64 `json:"maxPrice"`
	Deviation float64 `json:"deviation"`
	Currency  string  `json:"currency"`
}

type DestinationCandidate struct {
	Code      string   `json:"code"`
	City      string   `json:"city"`
	TripTypes []string `json:"tripTypes,omitempty"`
	PriceEstimate
}

type StrategyID string

const (
	StrategyCheapest StrategyID = "cheapest"
	StrategyFairest  StrategyID = "fairest"
	StrategyBalanced StrategyID = "balanced"
)

type Selection struct {
	TravelerID   string      `json:"travelerId"`
	TravelerName string      `json:"travelerName"`
	Offer        ScoredOffer `json:"offer"`
}

type Combination struct {
	ID          StrategyID     `json:"id"`
	Selections  []Selection    `json:"selections"`
	TotalCost   float64        `json:"totalCost"`
	Currency    string         `json:"currency"`
	Fairness    FairnessDetail `json:"fairness"`
	Recommended bool           `json:"recommended"`
}

type TravelerCost struct {
	TravelerID   string  `json:"travelerId"`
	Name         string  `json:"name"`
	AirportLabel string  `json:"airportLabel"`
	Cost         float64 `json:"cost"`
	DiffFromAvg  float64 `json:"diffFromAvg"`
}

type FairnessDetail struct {
	Score       int            `json:"score"`
	AvgCost     float64        `json:"avgCost"`
	PerTraveler []TravelerCost `json:"perTraveler"`
}

type ProviderInfo struct {
	Name         string       `json:"name"`
	Capabilities []Capability `json:"capabilities"`
	Tier         ProviderTier `json:"tier"`
	Status       string       `json:"status"`
	Reason       string       `json:"reason,omitempty"`
}

type DoctorReport struct {
	Mode      config.Mode    `json:"mode"`
	Providers []ProviderInfo `json:"providers"`
	Cache     string         `json:"cache"`
	Healthy   bool           `json:"healthy"`
	Summary   string         `json:"summary"`
}

// FlightProvider is the narrow contract the core consumes. Implementations
// return a possibly empty slice or an error; they never return partial data
// alongside an error.
type FlightProvider interface {
	SearchAirports(ctx context.Context, keyword string) ([]AirportMatch, error)
	SearchFlights(ctx context.Context, q FlightQuery) ([]FlightOffer, error)
	SearchDestinations(ctx context.Context, origin string) ([]DestinationMatch, error)
}

type FlightAdapter interface {
	FlightProvider
	Name() string
	Tier() ProviderTier
	Capabilities() []Capability
	Available() (bool, string)
}
