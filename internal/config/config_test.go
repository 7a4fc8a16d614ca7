package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// isolate points HOME at a temp dir and blanks every variable Load reads.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{
		"FAIRTRIP_CONFIG", "FAIRTRIP_MODE", "FAIRTRIP_PROVIDERS", "FAIRTRIP_CHECK_ALL_AIRPORTS",
		"FAIRTRIP_CURRENCY", "FAIRTRIP_CACHE_BACKEND", "FAIRTRIP_CACHE_DSN", "DATABASE_URL",
		"FAIRTRIP_LOG_LEVEL", "PORT", "FRONTEND_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != ModeMock {
		t.Errorf("mode = %s, want mock", cfg.Mode)
	}
	if cfg.Search.Currency != "GBP" || cfg.Search.CheckAllAirports {
		t.Errorf("unexpected search defaults: %+v", cfg.Search)
	}
	if cfg.Cache.Backend != CacheMemory || cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if cfg.Resilience.MaxRetries != 2 || cfg.Resilience.CallTimeout != 15*time.Second {
		t.Errorf("unexpected resilience defaults: %+v", cfg.Resilience)
	}
	for _, name := range []string{"mock_flights", "amadeus", "travelpayouts"} {
		if pc, ok := cfg.Providers[name]; !ok || !pc.Enabled {
			t.Errorf("provider %s missing or disabled", name)
		}
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `mode: hybrid
search:
  currency: EUR
  checkAllAirports: true
  destinationConcurrency: 8
cache:
  backend: file
  ttl: 10m
  dir: /tmp/fairtrip-test
server:
  address: ":9000"
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FAIRTRIP_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != ModeHybrid {
		t.Errorf("mode = %s", cfg.Mode)
	}
	if cfg.Search.Currency != "EUR" || !cfg.Search.CheckAllAirports || cfg.Search.DestinationConcurrency != 8 {
		t.Errorf("search = %+v", cfg.Search)
	}
	if cfg.Cache.Backend != CacheFile || cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if dir, _ := cfg.CacheDir(); dir != "/tmp/fairtrip-test" {
		t.Errorf("cache dir = %s", dir)
	}
	if cfg.Server.Address != ":9000" {
		t.Errorf("address = %s", cfg.Server.Address)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Search.MaxOffersPerCall != 10 || cfg.LogLevel != "info" {
		t.Errorf("defaults lost: maxOffers=%d logLevel=%s", cfg.Search.MaxOffersPerCall, cfg.LogLevel)
	}
}

func TestLoad_HomeConfig(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")
	dir := filepath.Join(home, ".config", "fairtrip")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("mode: live\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != ModeLive {
		t.Errorf("mode = %s, want live", cfg.Mode)
	}
}

func TestLoad_FileErrors(t *testing.T) {
	isolate(t)

	t.Setenv("FAIRTRIP_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for a missing config file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(bad, []byte("mode: [unclosed\n"), 0o644)
	t.Setenv("FAIRTRIP_CONFIG", bad)
	if _, err := Load(); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("FAIRTRIP_MODE", "LIVE")
	t.Setenv("FAIRTRIP_PROVIDERS", "custom_api, amadeus,")
	t.Setenv("FAIRTRIP_CHECK_ALL_AIRPORTS", "true")
	t.Setenv("FAIRTRIP_CURRENCY", "usd")
	t.Setenv("FAIRTRIP_CACHE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/fairtrip")
	t.Setenv("FAIRTRIP_LOG_LEVEL", "debug")
	t.Setenv("PORT", "9090")
	t.Setenv("FRONTEND_URL", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != ModeLive {
		t.Errorf("mode = %s", cfg.Mode)
	}
	if pc, ok := cfg.Providers["custom_api"]; !ok || !pc.Enabled || pc.Priority != 50 {
		t.Errorf("custom provider not registered: %+v", pc)
	}
	if cfg.Providers["amadeus"].Priority != 60 {
		t.Error("existing provider config overwritten")
	}
	if !cfg.Search.CheckAllAirports || cfg.Search.Currency != "USD" {
		t.Errorf("search = %+v", cfg.Search)
	}
	if cfg.Cache.Backend != CachePostgres || cfg.Cache.DSN != "postgres://localhost/fairtrip" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.LogLevel != "debug" || cfg.Server.Address != ":9090" {
		t.Errorf("logLevel=%s address=%s", cfg.LogLevel, cfg.Server.Address)
	}
	for _, origin := range []string{"https://a.example", "https://b.example", "http://localhost:5173"} {
		if !slices.Contains(cfg.Server.AllowedOrigins, origin) {
			t.Errorf("allowed origins %v missing %s", cfg.Server.AllowedOrigins, origin)
		}
	}
}

func TestLoad_CacheDSNPrecedence(t *testing.T) {
	isolate(t)
	t.Setenv("FAIRTRIP_CACHE_DSN", "postgres://explicit")
	t.Setenv("DATABASE_URL", "postgres://fallback")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cache.DSN != "postgres://explicit" {
		t.Errorf("dsn = %s", cfg.Cache.DSN)
	}
}

func TestWithMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"mock", ModeMock},
		{"LIVE", ModeLive},
		{"Hybrid", ModeHybrid},
		{"", ModeLive},
		{"bogus", ModeLive},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Mode = ModeLive
		if got := cfg.WithMode(tt.in).Mode; got != tt.want {
			t.Errorf("WithMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCredentials(t *testing.T) {
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "")
	t.Setenv("TRAVELPAYOUTS_TOKEN", "token")
	cfg := DefaultConfig()

	if cfg.ProviderHasCredentials("amadeus") {
		t.Error("amadeus should lack credentials")
	}
	missing := cfg.MissingCredentials("amadeus")
	if len(missing) != 1 || missing[0] != "client secret (AMADEUS_CLIENT_SECRET)" {
		t.Errorf("missing = %v", missing)
	}

	if !cfg.ProviderHasCredentials("travelpayouts") || len(cfg.MissingCredentials("travelpayouts")) != 0 {
		t.Error("travelpayouts should have credentials")
	}
	if !cfg.ProviderHasCredentials("mock_flights") {
		t.Error("mock provider needs no credentials")
	}
	if cfg.ProviderHasCredentials("unknown") || cfg.MissingCredentials("unknown") != nil {
		t.Error("unknown provider should report no credentials and nothing missing")
	}
}
