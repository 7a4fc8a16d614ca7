package core

import "math"

// FairnessScore maps a set of per-traveler costs to 0..100. The worst single
// deviation from the mean, relative to the mean, is what costs points.
func FairnessScore(costs []float64) int {
	if len(costs) == 0 {
		return 0
	}
	avg := mean(costs)
	maxDeviation := 0.0
	for _, c := range costs {
		if d := math.Abs(c - avg); d > maxDeviation {
			maxDeviation = d
		}
	}
	if avg <= 0 {
		// Only reachable with all-zero costs, which are perfectly even.
		if maxDeviation == 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(math.Max(0, 100-(maxDeviation/avg)*100)))
}

// FairnessDetails builds the per-traveler breakdown for the travelers that
// have a resolved offer, in traveler order. It returns nil when nobody does.
func FairnessDetails(travelers []Traveler, bestByTraveler map[string]ScoredOffer) *FairnessDetail {
	var rows []TravelerCost
	var costs []float64
	for _, t := range travelers {
		offer, ok := bestByTraveler[t.ID]
		if !ok {
			continue
		}
		rows = append(rows, TravelerCost{
			TravelerID:   t.ID,
			Name:         t.DisplayName(),
			AirportLabel: offer.DepartureAirport.Label(),
			Cost:         offer.PriceTotal,
		})
		costs = append(costs, offer.PriceTotal)
	}
	if len(rows) == 0 {
		return nil
	}

	avg := mean(costs)
	for i := range rows {
		rows[i].DiffFromAvg = rows[i].Cost - avg
	}
	return &FairnessDetail{
		Score:       FairnessScore(costs),
		AvgCost:     avg,
		PerTraveler: rows,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
