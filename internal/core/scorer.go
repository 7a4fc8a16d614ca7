package core

import "sort"

// DistancePenaltyPerMile is the currency-unit cost charged for each mile a
// traveler has to go to reach the departure airport. The value has no stated
// derivation; treat it as configuration, not as a tuned result.
const DistancePenaltyPerMile = 0.5

// WeightedScore folds the distance to the departure airport into the price so
// offers from different airports are comparable.
func WeightedScore(price, distanceMiles float64) float64 {
	return price + distanceMiles*DistancePenaltyPerMile
}

// ScoreOffers decorates offers from one airport with that airport and their
// weighted score. The input slice is not modified.
func ScoreOffers(offers []FlightOffer, from Airport) []ScoredOffer {
	out := make([]ScoredOffer, 0, len(offers))
	for _, o := range offers {
		o.DepartureAirport = from
		out = append(out, ScoredOffer{
			FlightOffer:   o,
			WeightedScore: WeightedScore(o.PriceTotal, from.DistanceMiles),
		})
	}
	return out
}

// RankOffers sorts best-first by weighted score. Equal scores keep their
// arrival order.
func RankOffers(offers []ScoredOffer) {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].WeightedScore < offers[j].WeightedScore
	})
}

// FilterByMaxStops keeps offers whose every itinerary has at most maxStops
// stops. Adapters without a native stop filter call this on their results.
func FilterByMaxStops(offers []FlightOffer, maxStops *int) []FlightOffer {
	if maxStops == nil {
		return offers
	}
	out := make([]FlightOffer, 0, len(offers))
	for _, o := range offers {
		if o.MaxStops() <= *maxStops {
			out = append(out, o)
		}
	}
	return out
}

// DedupeOffers drops repeated offer ids, keeping the first occurrence.
func DedupeOffers(offers []FlightOffer) []FlightOffer {
	seen := make(map[string]bool)
	var out []FlightOffer
	for _, o := range offers {
		key := o.Source + "|" + o.ID
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, o)
	}
	return out
}
