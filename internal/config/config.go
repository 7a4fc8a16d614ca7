package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeMock   Mode = "mock"
	ModeLive   Mode = "live"
	ModeHybrid Mode = "hybrid"
)

type CacheBackend string

const (
	CacheMemory   CacheBackend = "memory"
	CacheFile     CacheBackend = "file"
	CachePostgres CacheBackend = "postgres"
	CacheTiered   CacheBackend = "tiered"
	CacheNone     CacheBackend = "none"
)

type ProviderConfig struct {
	Enabled  bool              `yaml:"enabled"`
	Priority int               `yaml:"priority"`
	EnvKeys  map[string]string `yaml:"envKeys,omitempty"`
}

type SearchConfig struct {
	CheckAllAirports       bool   `yaml:"checkAllAirports"`
	Currency               string `yaml:"currency"`
	MaxOffersPerCall       int    `yaml:"maxOffersPerCall"`
	DestinationConcurrency int    `yaml:"destinationConcurrency"`
}

type CacheConfig struct {
	Backend CacheBackend  `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
	Dir     string        `yaml:"dir,omitempty"`
	DSN     string        `yaml:"dsn,omitempty"`
}

// ResilienceConfig drives the decorators around every provider.
type ResilienceConfig struct {
	RateLimit      time.Duration `yaml:"rateLimit"`
	MaxRetries     int           `yaml:"maxRetries"`
	InitialBackoff time.Duration `yaml:"initialBackoff"`
	CallTimeout    time.Duration `yaml:"callTimeout"`
}

type ServerConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type Config struct {
	Mode       Mode                      `yaml:"mode"`
	Providers  map[string]ProviderConfig `yaml:"providers"`
	Search     SearchConfig              `yaml:"search"`
	Cache      CacheConfig               `yaml:"cache"`
	Resilience ResilienceConfig          `yaml:"resilience"`
	Server     ServerConfig              `yaml:"server"`
	LogLevel   string                    `yaml:"logLevel"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode: ModeMock,
		Providers: map[string]ProviderConfig{
			"mock_flights": {Enabled: true, Priority: 100},
			"amadeus": {Enabled: true, Priority: 60, EnvKeys: map[string]string{
				"client id":     "AMADEUS_CLIENT_ID",
				"client secret": "AMADEUS_CLIENT_SECRET",
			}},
			"travelpayouts": {Enabled: true, Priority: 50, EnvKeys: map[string]string{
				"token": "TRAVELPAYOUTS_TOKEN",
			}},
		},
		Search: SearchConfig{
			Currency:               "GBP",
			MaxOffersPerCall:       10,
			DestinationConcurrency: 4,
		},
		Cache: CacheConfig{
			Backend: CacheMemory,
			TTL:     30 * time.Minute,
		},
		Resilience: ResilienceConfig{
			RateLimit:      100 * time.Millisecond,
			MaxRetries:     2,
			InitialBackoff: 200 * time.Millisecond,
			CallTimeout:    15 * time.Second,
		},
		Server: ServerConfig{
			Address:        ":8080",
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
		LogLevel: "info",
	}
}

// Load layers defaults, the YAML file, a local .env file and the process
// environment, in that order.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if path := configPath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if envMode := os.Getenv("FAIRTRIP_MODE"); envMode != "" {
		c.WithMode(envMode)
	}

	if envProviders := os.Getenv("FAIRTRIP_PROVIDERS"); envProviders != "" {
		for _, n := range strings.Split(envProviders, ",") {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			if _, ok := c.Providers[n]; !ok {
				c.Providers[n] = ProviderConfig{Enabled: true, Priority: 50}
			}
		}
	}

	if v, err := strconv.ParseBool(os.Getenv("FAIRTRIP_CHECK_ALL_AIRPORTS")); err == nil {
		c.Search.CheckAllAirports = v
	}
	if v := os.Getenv("FAIRTRIP_CURRENCY"); v != "" {
		c.Search.Currency = strings.ToUpper(v)
	}
	if v := os.Getenv("FAIRTRIP_CACHE_BACKEND"); v != "" {
		c.Cache.Backend = CacheBackend(strings.ToLower(v))
	}
	if v := os.Getenv("FAIRTRIP_CACHE_DSN"); v != "" {
		c.Cache.DSN = v
	} else if v := os.Getenv("DATABASE_URL"); v != "" && c.Cache.DSN == "" {
		c.Cache.DSN = v
	}
	if v := os.Getenv("FAIRTRIP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Address = ":" + port
	}
	if urls := os.Getenv("FRONTEND_URL"); urls != "" {
		for _, u := range strings.Split(urls, ",") {
			if u = strings.TrimSpace(u); u != "" {
				c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, u)
			}
		}
	}
}

func (c *Config) WithMode(mode string) *Config {
	if mode == "" {
		return c
	}
	switch strings.ToLower(mode) {
	case "mock":
		c.Mode = ModeMock
	case "live":
		c.Mode = ModeLive
	case "hybrid":
		c.Mode = ModeHybrid
	}
	return c
}

func (c *Config) ProviderHasCredentials(name string) bool {
	pc, ok := c.Providers[name]
	if !ok {
		return false
	}
	for _, envKey := range pc.EnvKeys {
		if os.Getenv(envKey) == "" {
			return false
		}
	}
	return true
}

func (c *Config) MissingCredentials(name string) []string {
	pc, ok := c.Providers[name]
	if !ok {
		return nil
	}
	var missing []string
	for label, envKey := range pc.EnvKeys {
		if os.Getenv(envKey) == "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", label, envKey))
		}
	}
	return missing
}

// CacheDir is where the file cache lives when no directory is configured.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fairtrip"), nil
}

func configPath() string {
	if p := os.Getenv("FAIRTRIP_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".config", "fairtrip", "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
