package core

import (
	"math"
	"testing"
)

func TestFairnessScore(t *testing.T) {
	tests := []struct {
		name  string
		costs []float64
		want  int
	}{
		{"empty", nil, 0},
		{"single traveler", []float64{120}, 100},
		{"equal costs", []float64{80, 80, 80}, 100},
		{"small spread", []float64{50, 55}, 95},
		{"wide spread", []float64{100, 200}, 67},
		{"very wide spread floors at zero", []float64{10, 1000}, 2},
		{"all zero", []float64{0, 0}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FairnessScore(tt.costs); got != tt.want {
				t.Errorf("FairnessScore(%v) = %d, want %d", tt.costs, got, tt.want)
			}
		})
	}
}

func TestFairnessScore_Bounds(t *testing.T) {
	for _, costs := range [][]float64{{1, 1000, 1000}, {0, 300}, {5, 5, 500, 2000}} {
		got := FairnessScore(costs)
		if got < 0 || got > 100 {
			t.Errorf("FairnessScore(%v) = %d out of range", costs, got)
		}
	}
}

func TestFairnessDetails(t *testing.T) {
	travelers := []Traveler{
		{ID: "t1", Name: "Ana"},
		{ID: "t2", Origin: "Leeds"},
		{ID: "t3", Name: "Cat"},
	}
	best := map[string]ScoredOffer{
		"t1": scored("a", 80, 0, "LBA"),
		"t2": scored("b", 100, 0, "MAN"),
	}

	d := FairnessDetails(travelers, best)
	if d == nil {
		t.Fatal("expected details")
	}
	if d.AvgCost != 90 || d.Score != 89 {
		t.Errorf("avg=%v score=%d, want 90/89", d.AvgCost, d.Score)
	}
	if len(d.PerTraveler) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(d.PerTraveler))
	}
	if d.PerTraveler[0].DiffFromAvg != -10 || d.PerTraveler[1].DiffFromAvg != 10 {
		t.Errorf("unexpected diffs %+v", d.PerTraveler)
	}
	if d.PerTraveler[1].Name != "From Leeds" {
		t.Errorf("name = %q", d.PerTraveler[1].Name)
	}

	sum := 0.0
	for _, r := range d.PerTraveler {
		sum += r.DiffFromAvg
	}
	if math.Abs(sum) > 1e-9 {
		t.Errorf("differences should sum to zero, got %v", sum)
	}

	if FairnessDetails(travelers, nil) != nil {
		t.Error("expected nil when nobody has an offer")
	}
}
