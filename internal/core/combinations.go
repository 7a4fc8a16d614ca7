package core

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"sort"
)

// Search bounds and weights for group packaging.
//
// The search is exhaustive over SearchDepth choices per traveler, so it
// evaluates SearchDepth^n combinations: 729 for 6 travelers, 59049 for 10.
// That is fine for one interactive search of a small group and is not meant
// to scale past roughly a dozen travelers.
const (
	SearchDepth = 3

	FairnessWeight = 0.6
	CostWeight     = 0.4

	// CostScoreDivisor maps an average per-traveler cost onto 0..100, assuming
	// costs mostly fall under 500 units. Higher averages score 0.
	CostScoreDivisor = 5.0

	RecommendFairestAt  = 75
	RecommendBalancedAt = 60
)

type participant struct {
	traveler Traveler
	offers   []ScoredOffer
}

// ComputeCombinations packages the group's shortlists into up to three
// trade-offs: cheapest, fairest and balanced. Packages with the same offer
// selection as an earlier one are dropped, exactly one result is
// recommended, and the recommended one comes first. Travelers without a
// shortlist are left out of every package. The result is empty when nobody
// has a shortlist.
func ComputeCombinations(shortlists map[string]*Shortlist, travelers []Traveler) ([]Combination, error) {
	parts := participants(shortlists, travelers)
	if len(parts) == 0 {
		return nil, nil
	}
	if err := checkCurrency(parts); err != nil {
		return nil, err
	}

	cheapest := bestPicks(parts)
	fairest := searchBest(parts, func(picks []ScoredOffer) float64 {
		return float64(FairnessScore(prices(picks)))
	})
	balanced := searchBest(parts, balanceScore)

	var (
		results []Combination
		seen    [][]selectionKey
	)
	include := func(id StrategyID, picks []ScoredOffer) (int, bool) {
		if len(picks) == 0 {
			return 0, false
		}
		key := keyOf(parts, picks)
		for _, k := range seen {
			if slices.Equal(k, key) {
				return 0, false
			}
		}
		seen = append(seen, key)
		results = append(results, buildCombination(id, parts, picks))
		return len(results) - 1, true
	}

	include(StrategyCheapest, cheapest)

	fairestRecommended := false
	if i, ok := include(StrategyFairest, fairest); ok && results[i].Fairness.Score >= RecommendFairestAt {
		results[i].Recommended = true
		fairestRecommended = true
	}

	if i, ok := include(StrategyBalanced, balanced); ok && !fairestRecommended {
		score := results[i].Fairness.Score
		if score >= RecommendBalancedAt && score < RecommendFairestAt {
			results[i].Recommended = true
		}
	}

	if !slices.ContainsFunc(results, func(c Combination) bool { return c.Recommended }) {
		results[0].Recommended = true
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Recommended != results[j].Recommended {
			return results[i].Recommended
		}
		return results[i].Fairness.Score > results[j].Fairness.Score
	})
	return results, nil
}

// participants keeps travelers with a non-empty shortlist, in traveler order.
func participants(shortlists map[string]*Shortlist, travelers []Traveler) []participant {
	var out []participant
	for _, t := range travelers {
		s, ok := shortlists[t.ID]
		if !ok || s == nil || len(s.Offers) == 0 {
			continue
		}
		out = append(out, participant{traveler: t, offers: s.Offers})
	}
	return out
}

func checkCurrency(parts []participant) error {
	currency := parts[0].offers[0].Currency
	for _, p := range parts {
		for _, o := range p.offers {
			if o.Currency != currency {
				return fmt.Errorf("traveler %s: %w (%s vs %s)", p.traveler.ID, ErrCurrencyMismatch, currency, o.Currency)
			}
		}
	}
	return nil
}

func bestPicks(parts []participant) []ScoredOffer {
	picks := make([]ScoredOffer, len(parts))
	for i, p := range parts {
		picks[i] = p.offers[0]
	}
	return picks
}

// searchBest returns the highest-scoring combination over each participant's
// top SearchDepth offers. The first combination reaching the best score wins.
func searchBest(parts []participant, score func([]ScoredOffer) float64) []ScoredOffer {
	if len(parts) == 1 {
		return bestPicks(parts)
	}

	choices := make([][]ScoredOffer, len(parts))
	for i, p := range parts {
		choices[i] = p.offers[:min(SearchDepth, len(p.offers))]
	}

	var best []ScoredOffer
	bestScore := math.Inf(-1)
	for picks := range enumerate(choices) {
		if s := score(picks); s > bestScore {
			bestScore = s
			best = slices.Clone(picks)
		}
	}
	return best
}

// enumerate yields the Cartesian product of choices, varying the last
// position fastest. The yielded slice is reused between iterations.
func enumerate(choices [][]ScoredOffer) iter.Seq[[]ScoredOffer] {
	return func(yield func([]ScoredOffer) bool) {
		if len(choices) == 0 {
			return
		}
		for _, c := range choices {
			if len(c) == 0 {
				return
			}
		}

		idx := make([]int, len(choices))
		picks := make([]ScoredOffer, len(choices))
		for {
			for i, j := range idx {
				picks[i] = choices[i][j]
			}
			if !yield(picks) {
				return
			}

			k := len(idx) - 1
			for ; k >= 0; k-- {
				idx[k]++
				if idx[k] < len(choices[k]) {
					break
				}
				idx[k] = 0
			}
			if k < 0 {
				return
			}
		}
	}
}

func balanceScore(picks []ScoredOffer) float64 {
	costs := prices(picks)
	fairness := float64(FairnessScore(costs))
	costScore := math.Max(0, 100-mean(costs)/CostScoreDivisor)
	return fairness*FairnessWeight + costScore*CostWeight
}

func prices(picks []ScoredOffer) []float64 {
	out := make([]float64, len(picks))
	for i, p := range picks {
		out[i] = p.PriceTotal
	}
	return out
}

// selectionKey identifies one traveler's chosen offer. Offer ids are only
// unique per provider response, so the departure airport is part of the key.
type selectionKey struct {
	TravelerID string
	Source     string
	Airport    string
	OfferID    string
}

func keyOf(parts []participant, picks []ScoredOffer) []selectionKey {
	key := make([]selectionKey, len(picks))
	for i, p := range picks {
		key[i] = selectionKey{
			TravelerID: parts[i].traveler.ID,
			Source:     p.Source,
			Airport:    p.DepartureAirport.Code,
			OfferID:    p.ID,
		}
	}
	return key
}

func buildCombination(id StrategyID, parts []participant, picks []ScoredOffer) Combination {
	travelers := make([]Traveler, len(parts))
	byTraveler := make(map[string]ScoredOffer, len(parts))
	selections := make([]Selection, len(parts))
	total := 0.0
	for i, p := range parts {
		travelers[i] = p.traveler
		byTraveler[p.traveler.ID] = picks[i]
		selections[i] = Selection{
			TravelerID:   p.traveler.ID,
			TravelerName: p.traveler.DisplayName(),
			Offer:        picks[i],
		}
		total += picks[i].PriceTotal
	}

	c := Combination{
		ID:         id,
		Selections: selections,
		TotalCost:  total,
		Currency:   picks[0].Currency,
	}
	if detail := FairnessDetails(travelers, byTraveler); detail != nil {
		c.Fairness = *detail
	}
	return c
}
