package live

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fairtrip/fairtrip/internal/core"
)

const (
	TravelpayoutsName = "travelpayouts"

	travelpayoutsAPIURL          = "https://api.travelpayouts.com"
	travelpayoutsAutocompleteURL = "https://autocomplete.travelpayouts.com"
)

type TravelpayoutsConfig struct {
	Token           string
	APIURL          string
	AutocompleteURL string
	Currency        string
	MaxResults      int
	HTTPClient      *http.Client
}

func TravelpayoutsConfigFromEnv(currency string, maxResults int) TravelpayoutsConfig {
	return TravelpayoutsConfig{
		Token:      os.Getenv("TRAVELPAYOUTS_TOKEN"),
		Currency:   currency,
		MaxResults: maxResults,
	}
}

// TravelpayoutsAdapter reads the Aviasales price cache. Offers carry the
// number of transfers but not the connecting airports, so connections are
// represented by segments with an empty airport code.
type TravelpayoutsAdapter struct {
	cfg    TravelpayoutsConfig
	client *http.Client
}

func NewTravelpayoutsAdapter(cfg TravelpayoutsConfig) *TravelpayoutsAdapter {
	if cfg.APIURL == "" {
		cfg.APIURL = travelpayoutsAPIURL
	}
	if cfg.AutocompleteURL == "" {
		cfg.AutocompleteURL = travelpayoutsAutocompleteURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.AutocompleteURL = strings.TrimRight(cfg.AutocompleteURL, "/")
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if cfg.Currency == "" {
		cfg.Currency = "GBP"
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &TravelpayoutsAdapter{cfg: cfg, client: client}
}

func (a *TravelpayoutsAdapter) Name() string            { return TravelpayoutsName }
func (a *TravelpayoutsAdapter) Tier() core.ProviderTier { return core.TierPartnerRequired }
func (a *TravelpayoutsAdapter) Capabilities() []core.Capability {
	return []core.Capability{core.CapFlightsSearch, core.CapAirportsSearch, core.CapDestinations}
}

func (a *TravelpayoutsAdapter) Available() (bool, string) {
	if a.cfg.Token == "" {
		return false, "set TRAVELPAYOUTS_TOKEN (partner account at https://www.travelpayouts.com)"
	}
	return true, ""
}

func (a *TravelpayoutsAdapter) header() http.Header {
	h := http.Header{}
	h.Set("X-Access-Token", a.cfg.Token)
	return h
}

type travelpayoutsPlace struct {
	Type     string `json:"type"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	CityName string `json:"city_name"`
}

func (a *TravelpayoutsAdapter) SearchAirports(ctx context.Context, keyword string) ([]core.AirportMatch, error) {
	v := url.Values{}
	v.Set("term", strings.TrimSpace(keyword))
	v.Set("locale", "en")
	v.Add("types[]", "airport")
	v.Add("types[]", "city")

	var places []travelpayoutsPlace
	if err := getJSON(ctx, a.client, TravelpayoutsName, a.cfg.AutocompleteURL+"/places2?"+v.Encode(), nil, &places); err != nil {
		return nil, err
	}

	out := make([]core.AirportMatch, 0, len(places))
	for _, p := range places {
		var sub core.LocationSubType
		switch p.Type {
		case "airport":
			sub = core.SubTypeAirport
		case "city":
			sub = core.SubTypeCity
		default:
			continue
		}
		city := p.CityName
		if city == "" && sub == core.SubTypeCity {
			city = p.Name
		}
		out = append(out, core.AirportMatch{
			IATACode: strings.ToUpper(p.Code),
			Name:     p.Name,
			SubType:  sub,
			CityName: city,
		})
	}
	return out, nil
}

type travelpayoutsPricesResponse struct {
	Success  bool                 `json:"success"`
	Currency string               `json:"currency"`
	Data     []travelpayoutsPrice `json:"data"`
	Error    string               `json:"error"`
}

type travelpayoutsPrice struct {
	Origin             string  `json:"origin"`
	Destination        string  `json:"destination"`
	OriginAirport      string  `json:"origin_airport"`
	DestinationAirport string  `json:"destination_airport"`
	Price              float64 `json:"price"`
	Airline            string  `json:"airline"`
	FlightNumber       string  `json:"flight_number"`
	DepartureAt        string  `json:"departure_at"`
	ReturnAt           string  `json:"return_at"`
	Transfers          int     `json:"transfers"`
	ReturnTransfers    int     `json:"return_transfers"`
	DurationTo         int     `json:"duration_to"`
	DurationBack       int     `json:"duration_back"`
	Link               string  `json:"link"`
}

func (a *TravelpayoutsAdapter) SearchFlights(ctx context.Context, q core.FlightQuery) ([]core.FlightOffer, error) {
	origin, dest := strings.ToUpper(q.Origin), strings.ToUpper(q.Destination)
	v := url.Values{}
	v.Set("origin", origin)
	v.Set("destination", dest)
	v.Set("departure_at", q.DepartureDate)
	if q.ReturnDate != "" {
		v.Set("return_at", q.ReturnDate)
		v.Set("one_way", "false")
	} else {
		v.Set("one_way", "true")
	}
	v.Set("currency", strings.ToLower(a.cfg.Currency))
	v.Set("sorting", "price")
	v.Set("limit", strconv.Itoa(a.cfg.MaxResults))
	if q.Filters.NonStop || (q.Filters.MaxStops != nil && *q.Filters.MaxStops == 0) {
		v.Set("direct", "true")
	}

	var resp travelpayoutsPricesResponse
	if err := getJSON(ctx, a.client, TravelpayoutsName, a.cfg.APIURL+"/aviasales/v3/prices_for_dates?"+v.Encode(), a.header(), &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("%s: %s: %w", TravelpayoutsName, resp.Error, core.ErrProviderUnavailable)
	}

	currency := strings.ToUpper(resp.Currency)
	if currency == "" {
		currency = strings.ToUpper(a.cfg.Currency)
	}
	adults := max(q.Adults, 1)

	offers := make([]core.FlightOffer, 0, len(resp.Data))
	for i, p := range resp.Data {
		if p.Price <= 0 {
			continue
		}
		from := firstNonEmpty(p.OriginAirport, origin)
		to := firstNonEmpty(p.DestinationAirport, dest)

		itineraries := []core.Itinerary{
			syntheticItinerary(from, to, parseTravelpayoutsTime(p.DepartureAt), p.DurationTo, p.Transfers, p.Airline, p.FlightNumber),
		}
		if q.ReturnDate != "" {
			itineraries = append(itineraries,
				syntheticItinerary(to, from, parseTravelpayoutsTime(p.ReturnAt), p.DurationBack, p.ReturnTransfers, p.Airline, ""))
		}

		offer := core.FlightOffer{
			ID:          fmt.Sprintf("%s-%s-%s-%d", from, to, q.DepartureDate, i+1),
			Source:      TravelpayoutsName,
			PriceTotal:  p.Price * float64(adults),
			Currency:    currency,
			Itineraries: itineraries,
		}
		if p.Link != "" {
			offer.DeepLink = "https://www.aviasales.com" + p.Link
		}
		if !passesStopFilters(offer, q.Filters) {
			continue
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

type travelpayoutsDirectionsResponse struct {
	Success  bool   `json:"success"`
	Currency string `json:"currency"`
	Data     map[string]struct {
		Destination string  `json:"destination"`
		Price       float64 `json:"price"`
		DepartureAt string  `json:"departure_at"`
		ReturnAt    string  `json:"return_at"`
	} `json:"data"`
	Error string `json:"error"`
}

func (a *TravelpayoutsAdapter) SearchDestinations(ctx context.Context, origin string) ([]core.DestinationMatch, error) {
	v := url.Values{}
	v.Set("origin", strings.ToUpper(origin))
	v.Set("currency", strings.ToLower(a.cfg.Currency))

	var resp travelpayoutsDirectionsResponse
	if err := getJSON(ctx, a.client, TravelpayoutsName, a.cfg.APIURL+"/v1/city-directions?"+v.Encode(), a.header(), &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("%s: %s: %w", TravelpayoutsName, resp.Error, core.ErrProviderUnavailable)
	}

	currency := strings.ToUpper(firstNonEmpty(resp.Currency, a.cfg.Currency))
	out := make([]core.DestinationMatch, 0, len(resp.Data))
	for key, d := range resp.Data {
		code := strings.ToUpper(firstNonEmpty(d.Destination, key))
		out = append(out, core.DestinationMatch{
			DestinationCode: code,
			Price:           d.Price,
			Currency:        currency,
			DepartureDate:   datePart(d.DepartureAt),
			ReturnDate:      datePart(d.ReturnAt),
		})
	}
	// Map iteration order is random.
	sortDestinations(out)
	return out, nil
}

// syntheticItinerary spreads the total duration evenly over transfers+1
// segments.
func syntheticItinerary(from, to string, departAt time.Time, minutes, transfers int, carrier, number string) core.Itinerary {
	transfers = max(transfers, 0)
	legs := transfers + 1
	total := time.Duration(minutes) * time.Minute
	per := total / time.Duration(legs)

	segments := make([]core.Segment, 0, legs)
	at := departAt
	for i := range legs {
		depCode, arrCode := "", ""
		if i == 0 {
			depCode = from
		}
		if i == legs-1 {
			arrCode = to
		}
		seg := core.Segment{
			Departure:   core.Endpoint{AirportCode: depCode, At: at},
			Arrival:     core.Endpoint{AirportCode: arrCode, At: at.Add(per)},
			CarrierCode: carrier,
		}
		if i == 0 {
			seg.FlightNumber = number
		}
		segments = append(segments, seg)
		at = at.Add(per)
	}

	duration := ""
	if minutes > 0 {
		duration = fmt.Sprintf("PT%dH%dM", minutes/60, minutes%60)
	}
	return core.Itinerary{Duration: duration, Segments: segments}
}

func parseTravelpayoutsTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func datePart(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func sortDestinations(ds []core.DestinationMatch) {
	slices.SortFunc(ds, func(a, b core.DestinationMatch) int {
		return strings.Compare(a.DestinationCode, b.DestinationCode)
	})
}
