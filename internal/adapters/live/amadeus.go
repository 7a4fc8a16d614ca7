package live

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/fairtrip/fairtrip/internal/core"
)

const (
	AmadeusName = "amadeus"

	amadeusTestURL       = "https://test.api.amadeus.com"
	amadeusProductionURL = "https://api.amadeus.com"
	amadeusTimeLayout    = "2006-01-02T15:04:05"
)

type AmadeusConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Currency     string
	MaxResults   int
	HTTPClient   *http.Client
}

// AmadeusConfigFromEnv reads credentials from AMADEUS_CLIENT_ID and
// AMADEUS_CLIENT_SECRET. AMADEUS_ENV=production selects the live host; any
// other value uses the free test environment.
func AmadeusConfigFromEnv(currency string, maxResults int) AmadeusConfig {
	base := amadeusTestURL
	if env := strings.ToLower(os.Getenv("AMADEUS_ENV")); env == "production" || env == "prod" {
		base = amadeusProductionURL
	}
	return AmadeusConfig{
		ClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		ClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		BaseURL:      base,
		Currency:     currency,
		MaxResults:   maxResults,
	}
}

// AmadeusAdapter talks to the Amadeus Self-Service APIs. The access token is
// fetched and refreshed by the oauth2 client credentials flow.
type AmadeusAdapter struct {
	cfg    AmadeusConfig
	client *http.Client
}

func NewAmadeusAdapter(cfg AmadeusConfig) *AmadeusAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = amadeusTestURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if cfg.Currency == "" {
		cfg.Currency = "GBP"
	}

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: defaultHTTPTimeout}
	}
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.BaseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	client := cc.Client(context.WithValue(context.Background(), oauth2.HTTPClient, base))
	client.Timeout = base.Timeout

	return &AmadeusAdapter{cfg: cfg, client: client}
}

func (a *AmadeusAdapter) Name() string            { return AmadeusName }
func (a *AmadeusAdapter) Tier() core.ProviderTier { return core.TierEasySignup }
func (a *AmadeusAdapter) Capabilities() []core.Capability {
	return []core.Capability{core.CapFlightsSearch, core.CapAirportsSearch, core.CapDestinations}
}

func (a *AmadeusAdapter) Available() (bool, string) {
	if a.cfg.ClientID == "" || a.cfg.ClientSecret == "" {
		return false, "set AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET (free keys at https://developers.amadeus.com)"
	}
	return true, ""
}

type amadeusLocationsResponse struct {
	Data []struct {
		SubType  string `json:"subType"`
		Name     string `json:"name"`
		IATACode string `json:"iataCode"`
		Address  struct {
			CityName string `json:"cityName"`
		} `json:"address"`
	} `json:"data"`
}

func (a *AmadeusAdapter) SearchAirports(ctx context.Context, keyword string) ([]core.AirportMatch, error) {
	v := url.Values{}
	v.Set("subType", "AIRPORT,CITY")
	v.Set("keyword", strings.TrimSpace(keyword))
	v.Set("page[limit]", "10")

	var resp amadeusLocationsResponse
	if err := getJSON(ctx, a.client, AmadeusName, a.cfg.BaseURL+"/v1/reference-data/locations?"+v.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	out := make([]core.AirportMatch, 0, len(resp.Data))
	for _, d := range resp.Data {
		if d.IATACode == "" {
			continue
		}
		out = append(out, core.AirportMatch{
			IATACode: strings.ToUpper(d.IATACode),
			Name:     titleCase(d.Name),
			SubType:  core.LocationSubType(strings.ToUpper(d.SubType)),
			CityName: titleCase(d.Address.CityName),
		})
	}
	return out, nil
}

type amadeusFlightOffersResponse struct {
	Data []amadeusFlightOffer `json:"data"`
}

type amadeusFlightOffer struct {
	ID    string `json:"id"`
	Price struct {
		GrandTotal string `json:"grandTotal"`
		Total      string `json:"total"`
		Currency   string `json:"currency"`
	} `json:"price"`
	Itineraries []struct {
		Duration string `json:"duration"`
		Segments []struct {
			Departure struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"departure"`
			Arrival struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"arrival"`
			CarrierCode string `json:"carrierCode"`
			Number      string `json:"number"`
		} `json:"segments"`
	} `json:"itineraries"`
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
}

func (a *AmadeusAdapter) SearchFlights(ctx context.Context, q core.FlightQuery) ([]core.FlightOffer, error) {
	v := url.Values{}
	v.Set("originLocationCode", strings.ToUpper(q.Origin))
	v.Set("destinationLocationCode", strings.ToUpper(q.Destination))
	v.Set("departureDate", q.DepartureDate)
	if q.ReturnDate != "" {
		v.Set("returnDate", q.ReturnDate)
	}
	v.Set("adults", strconv.Itoa(max(q.Adults, 1)))
	v.Set("currencyCode", a.cfg.Currency)
	v.Set("max", strconv.Itoa(a.cfg.MaxResults))
	if q.Filters.NonStop || (q.Filters.MaxStops != nil && *q.Filters.MaxStops == 0) {
		v.Set("nonStop", "true")
	}

	var resp amadeusFlightOffersResponse
	if err := getJSON(ctx, a.client, AmadeusName, a.cfg.BaseURL+"/v2/shopping/flight-offers?"+v.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	offers := make([]core.FlightOffer, 0, len(resp.Data))
	for _, raw := range resp.Data {
		offer, ok := a.normalizeOffer(q, raw)
		if !ok || !passesStopFilters(offer, q.Filters) {
			continue
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

// normalizeOffer drops offers without a usable price or itinerary. Amadeus
// ids are only unique within one response, so the query is folded in.
func (a *AmadeusAdapter) normalizeOffer(q core.FlightQuery, raw amadeusFlightOffer) (core.FlightOffer, bool) {
	total := raw.Price.GrandTotal
	if total == "" {
		total = raw.Price.Total
	}
	price, err := strconv.ParseFloat(total, 64)
	if err != nil || price <= 0 || len(raw.Itineraries) == 0 {
		return core.FlightOffer{}, false
	}

	fallbackCarrier := ""
	if len(raw.ValidatingAirlineCodes) > 0 {
		fallbackCarrier = raw.ValidatingAirlineCodes[0]
	}

	itineraries := make([]core.Itinerary, 0, len(raw.Itineraries))
	for _, it := range raw.Itineraries {
		if len(it.Segments) == 0 {
			return core.FlightOffer{}, false
		}
		segments := make([]core.Segment, 0, len(it.Segments))
		for _, s := range it.Segments {
			carrier := s.CarrierCode
			if carrier == "" {
				carrier = fallbackCarrier
			}
			segments = append(segments, core.Segment{
				Departure:    core.Endpoint{AirportCode: s.Departure.IataCode, At: parseAmadeusTime(s.Departure.At)},
				Arrival:      core.Endpoint{AirportCode: s.Arrival.IataCode, At: parseAmadeusTime(s.Arrival.At)},
				CarrierCode:  carrier,
				FlightNumber: s.Number,
			})
		}
		itineraries = append(itineraries, core.Itinerary{Duration: it.Duration, Segments: segments})
	}

	currency := strings.ToUpper(raw.Price.Currency)
	if currency == "" {
		currency = a.cfg.Currency
	}
	return core.FlightOffer{
		ID:          fmt.Sprintf("%s-%s-%s-%s", strings.ToUpper(q.Origin), strings.ToUpper(q.Destination), q.DepartureDate, raw.ID),
		Source:      AmadeusName,
		PriceTotal:  price,
		Currency:    currency,
		Itineraries: itineraries,
	}, true
}

type amadeusDestinationsResponse struct {
	Data []struct {
		Destination   string `json:"destination"`
		DepartureDate string `json:"departureDate"`
		ReturnDate    string `json:"returnDate"`
		Price         struct {
			Total string `json:"total"`
		} `json:"price"`
	} `json:"data"`
	Meta struct {
		Currency string `json:"currency"`
	} `json:"meta"`
}

func (a *AmadeusAdapter) SearchDestinations(ctx context.Context, origin string) ([]core.DestinationMatch, error) {
	v := url.Values{}
	v.Set("origin", strings.ToUpper(origin))

	var resp amadeusDestinationsResponse
	if err := getJSON(ctx, a.client, AmadeusName, a.cfg.BaseURL+"/v1/shopping/flight-destinations?"+v.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(resp.Meta.Currency)
	out := make([]core.DestinationMatch, 0, len(resp.Data))
	for _, d := range resp.Data {
		if d.Destination == "" {
			continue
		}
		price, _ := strconv.ParseFloat(d.Price.Total, 64)
		out = append(out, core.DestinationMatch{
			DestinationCode: strings.ToUpper(d.Destination),
			Price:           price,
			Currency:        currency,
			DepartureDate:   d.DepartureDate,
			ReturnDate:      d.ReturnDate,
		})
	}
	return out, nil
}

func parseAmadeusTime(s string) time.Time {
	t, err := time.Parse(amadeusTimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// titleCase turns Amadeus' upper-case names ("LEEDS BRADFORD") into display
// form.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
