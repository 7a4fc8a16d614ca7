package core

import (
	"sort"
	"strings"
)

// NonHubAirportCap bounds how many airports are queried for a traveler whose
// origin is not a major hub.
const NonHubAirportCap = 3

var majorHubCities = []string{
	"london",
	"paris",
	"new york",
	"tokyo",
	"dubai",
	"los angeles",
	"chicago",
	"frankfurt",
	"amsterdam",
	"istanbul",
	"singapore",
	"hong kong",
	"bangkok",
	"madrid",
	"barcelona",
	"rome",
	"milan",
	"berlin",
	"munich",
	"moscow",
	"beijing",
	"shanghai",
	"seoul",
	"sydney",
	"toronto",
	"san francisco",
	"miami",
	"washington",
}

// IsMajorHub reports whether origin names one of the major hub cities.
func IsMajorHub(origin string) bool {
	o := strings.ToLower(origin)
	for _, hub := range majorHubCities {
		if strings.Contains(o, hub) {
			return true
		}
	}
	return false
}

// SelectAirports decides which of a traveler's candidate airports get
// queried. It never mutates the traveler. An all-excluded traveler yields an
// empty slice.
func SelectAirports(t Traveler, checkAll bool) []Airport {
	remaining := make([]Airport, 0, len(t.CandidateAirports))
	for _, a := range t.CandidateAirports {
		if t.IsExcluded(a.Code) {
			continue
		}
		remaining = append(remaining, a)
	}

	if checkAll || IsMajorHub(t.Origin) {
		return remaining
	}

	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].DistanceMiles < remaining[j].DistanceMiles
	})
	if len(remaining) > NonHubAirportCap {
		remaining = remaining[:NonHubAirportCap]
	}
	return remaining
}
