package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fairtrip/fairtrip/internal/core"
	"github.com/fairtrip/fairtrip/internal/output"
)

const tripYAML = `travelers:
  - name: Ana
    origin: Leeds
  - name: Ben
    origin: Bristol
    excludedAirports: [EXT]
destination: BCN
departureDate: "2026-06-12"
returnDate: "2026-06-15"
`

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FAIRTRIP_CONFIG", "")
	t.Setenv("FAIRTRIP_MODE", "mock")
	t.Setenv("FAIRTRIP_CACHE_BACKEND", "none")
	t.Setenv("FAIRTRIP_LOG_LEVEL", "error")
	t.Setenv("AMADEUS_CLIENT_ID", "")
	t.Setenv("AMADEUS_CLIENT_SECRET", "")
	t.Setenv("TRAVELPAYOUTS_TOKEN", "")
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := output.Writer
	output.Writer = &buf
	t.Cleanup(func() { output.Writer = prev })
	return &buf
}

func writeTrip(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trip.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write trip: %v", err)
	}
	return path
}

func TestLoadTrip(t *testing.T) {
	trip, err := loadTrip(writeTrip(t, tripYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(trip.Travelers) != 2 || trip.Destination != "BCN" || trip.ReturnDate != "2026-06-15" {
		t.Fatalf("unexpected trip %+v", trip)
	}
	if !trip.Travelers[1].IsExcluded("EXT") {
		t.Error("excluded airports not parsed")
	}

	if _, err := loadTrip(writeTrip(t, "destination: BCN\n")); err == nil {
		t.Error("expected error for trip without travelers")
	}
	if _, err := loadTrip(""); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestTripOverrides(t *testing.T) {
	trip := &tripFile{Destination: "BCN", DepartureDate: "2026-06-12"}
	tripOverrides{to: "LIS", maxStops: 1}.apply(trip)

	if trip.Destination != "LIS" || trip.DepartureDate != "2026-06-12" {
		t.Errorf("unexpected trip %+v", trip)
	}
	if trip.Filters.MaxStops == nil || *trip.Filters.MaxStops != 1 {
		t.Errorf("max stops not applied: %+v", trip.Filters)
	}

	untouched := &tripFile{}
	tripOverrides{maxStops: -1}.apply(untouched)
	if untouched.Filters.MaxStops != nil {
		t.Error("negative max stops should leave the filter unset")
	}
}

func TestPlanCmd_MockMode(t *testing.T) {
	setupEnv(t)
	buf := captureOutput(t)
	pdfPath := filepath.Join(t.TempDir(), "plan.pdf")

	cmd := PlanCmd()
	cmd.SetArgs([]string{"--trip", writeTrip(t, tripYAML), "--pdf", pdfPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	var plan core.TripPlan
	if err := json.Unmarshal(buf.Bytes(), &plan); err != nil {
		t.Fatalf("decode plan: %v\n%s", err, buf.String())
	}
	if plan.Destination != "BCN" || len(plan.Combinations) == 0 {
		t.Fatalf("unexpected plan %+v", plan)
	}
	for _, c := range plan.Combinations {
		for _, s := range c.Selections {
			if s.Offer.DepartureAirport.Code == "EXT" {
				t.Errorf("excluded airport EXT used in %s", c.ID)
			}
		}
	}

	info, err := os.Stat(pdfPath)
	if err != nil || info.Size() == 0 {
		t.Fatalf("pdf not written: %v", err)
	}
}

func TestPlanCmd_InvalidDestination(t *testing.T) {
	setupEnv(t)
	buf := captureOutput(t)

	cmd := PlanCmd()
	cmd.SetArgs([]string{"--trip", writeTrip(t, tripYAML), "--to", "Barcelona"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	var resp output.ErrorResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Kind != output.KindInvalidTrip {
		t.Errorf("kind = %q", resp.Kind)
	}
}

func TestDestinationsCmd_Limit(t *testing.T) {
	setupEnv(t)
	buf := captureOutput(t)

	cmd := DestinationsCmd()
	cmd.SetArgs([]string{"--trip", writeTrip(t, tripYAML), "--type", "city", "--limit", "2"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	var ranked []core.DestinationCandidate
	if err := json.Unmarshal(buf.Bytes(), &ranked); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 destinations, got %d", len(ranked))
	}
	if ranked[0].AvgPrice > ranked[1].AvgPrice {
		t.Errorf("not sorted by average price: %+v", ranked)
	}
}

func TestDoctorReport_MockMode(t *testing.T) {
	setupEnv(t)
	cmd := DoctorCmd()
	a, err := newApp(cmd)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	report := doctorReport(a)
	if !report.Healthy {
		t.Errorf("mock mode should be healthy: %s", report.Summary)
	}
	if report.Cache != "disabled" {
		t.Errorf("cache = %q", report.Cache)
	}
	statuses := map[string]string{}
	for _, p := range report.Providers {
		statuses[p.Name] = p.Status
	}
	if statuses["mock_flights"] != "active" {
		t.Errorf("mock_flights status = %q", statuses["mock_flights"])
	}
	if statuses["amadeus"] != "no_credentials" {
		t.Errorf("amadeus status = %q", statuses["amadeus"])
	}
	if !strings.Contains(report.Summary, "AMADEUS_CLIENT_ID") {
		t.Errorf("summary should name the missing variable: %s", report.Summary)
	}
}
