package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fairtrip/fairtrip/internal/core"
)

// tripFile is the YAML document passed with --trip. Travelers may omit ids
// and candidate airports; both are filled in before searching.
type tripFile struct {
	Travelers     []core.Traveler    `yaml:"travelers"`
	Destination   string             `yaml:"destination,omitempty"`
	DepartureDate string             `yaml:"departureDate,omitempty"`
	ReturnDate    string             `yaml:"returnDate,omitempty"`
	Filters       core.SearchFilters `yaml:"filters,omitempty"`
	TripType      string             `yaml:"tripType,omitempty"`
}

func loadTrip(path string) (*tripFile, error) {
	if path == "" {
		return nil, fmt.Errorf("--trip is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trip %s: %w", path, err)
	}
	var t tripFile
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse trip %s: %w", path, err)
	}
	if len(t.Travelers) == 0 {
		return nil, fmt.Errorf("trip %s lists no travelers", path)
	}
	return &t, nil
}

// tripOverrides are the command-line flags that win over the trip file.
type tripOverrides struct {
	to, depart, ret string
	nonStop         bool
	maxStops        int
}

func (o tripOverrides) apply(t *tripFile) {
	if o.to != "" {
		t.Destination = o.to
	}
	if o.depart != "" {
		t.DepartureDate = o.depart
	}
	if o.ret != "" {
		t.ReturnDate = o.ret
	}
	if o.nonStop {
		t.Filters.NonStop = true
	}
	if o.maxStops >= 0 {
		n := o.maxStops
		t.Filters.MaxStops = &n
	}
}
