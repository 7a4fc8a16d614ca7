package core

import "testing"

func airports(codes ...string) []Airport {
	out := make([]Airport, len(codes))
	for i, c := range codes {
		out[i] = Airport{Code: c, Name: c, DistanceMiles: float64(10 * (len(codes) - i))}
	}
	return out
}

func TestSelectAirports(t *testing.T) {
	tests := []struct {
		name     string
		traveler Traveler
		checkAll bool
		want     []string
	}{
		{
			name:     "non-hub capped to nearest three",
			traveler: Traveler{Origin: "Leeds", CandidateAirports: airports("A", "B", "C", "D", "E")},
			want:     []string{"E", "D", "C"},
		},
		{
			name:     "hub keeps every airport in order",
			traveler: Traveler{Origin: "London", CandidateAirports: airports("A", "B", "C", "D", "E")},
			want:     []string{"A", "B", "C", "D", "E"},
		},
		{
			name:     "hub matched inside longer origin",
			traveler: Traveler{Origin: "Greater London, UK", CandidateAirports: airports("A", "B", "C", "D")},
			want:     []string{"A", "B", "C", "D"},
		},
		{
			name:     "check all disables the cap",
			traveler: Traveler{Origin: "Leeds", CandidateAirports: airports("A", "B", "C", "D")},
			checkAll: true,
			want:     []string{"A", "B", "C", "D"},
		},
		{
			name:     "exclusions applied before the cap",
			traveler: Traveler{Origin: "Leeds", CandidateAirports: airports("A", "B", "C", "D", "E"), ExcludedAirports: []string{"E"}},
			want:     []string{"D", "C", "B"},
		},
		{
			name:     "everything excluded",
			traveler: Traveler{Origin: "Leeds", CandidateAirports: airports("A"), ExcludedAirports: []string{"A"}},
			want:     []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectAirports(tt.traveler, tt.checkAll)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d airports, want %d", len(got), len(tt.want))
			}
			for i, code := range tt.want {
				if got[i].Code != code {
					t.Errorf("position %d: got %s, want %s", i, got[i].Code, code)
				}
			}
		})
	}
}

func TestSelectAirports_DoesNotMutate(t *testing.T) {
	tr := Traveler{Origin: "Leeds", CandidateAirports: airports("A", "B", "C", "D")}
	_ = SelectAirports(tr, false)
	if tr.CandidateAirports[0].Code != "A" {
		t.Error("candidate airports were reordered in place")
	}
}

func TestIsMajorHub(t *testing.T) {
	hubs := []string{"london", "NEW YORK", "Barcelona"}
	for _, origin := range hubs {
		if !IsMajorHub(origin) {
			t.Errorf("IsMajorHub(%q) = false, want true", origin)
		}
	}
	for _, origin := range []string{"Leeds", "Manchester", ""} {
		if IsMajorHub(origin) {
			t.Errorf("IsMajorHub(%q) = true, want false", origin)
		}
	}
}
