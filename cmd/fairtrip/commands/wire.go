package commands

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/fairtrip/fairtrip/internal/adapters/live"
	"github.com/fairtrip/fairtrip/internal/adapters/mock"
	"github.com/fairtrip/fairtrip/internal/adapters/wrap"
	"github.com/fairtrip/fairtrip/internal/cache"
	"github.com/fairtrip/fairtrip/internal/config"
	"github.com/fairtrip/fairtrip/internal/core"
	"github.com/fairtrip/fairtrip/internal/logger"
	"github.com/fairtrip/fairtrip/internal/metrics"
)

const metricsNamespace = "fairtrip"

// app holds everything a command needs. It is built once per invocation.
type app struct {
	cfg       *config.Config
	log       logger.Logger
	metrics   *metrics.Metrics
	store     cache.Store
	storeDesc string
	router    *core.Router
	planner   *core.Planner
	closers   []func() error
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	modeFlag, _ := cmd.Flags().GetString("mode")
	cfg.WithMode(modeFlag)
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if checkAll, err := cmd.Flags().GetBool("check-all"); err == nil && checkAll {
		cfg.Search.CheckAllAirports = true
	}

	a := &app{
		cfg:     cfg,
		log:     logger.New(cfg.LogLevel),
		metrics: metrics.New(metricsNamespace, prometheus.NewRegistry()),
	}

	if err := a.openStore(cmd.Context()); err != nil {
		return nil, err
	}
	a.router = buildRouter(a)
	a.planner = core.NewPlanner(a.router.Provider(),
		core.WithCheckAllAirports(cfg.Search.CheckAllAirports),
		core.WithCallTimeout(cfg.Resilience.CallTimeout),
	)
	a.planner.SetDestinationConcurrency(cfg.Search.DestinationConcurrency)
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn("close failed", "error", err)
		}
	}
	_ = a.log.Sync()
}

func (a *app) openStore(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c := a.cfg.Cache
	switch c.Backend {
	case config.CacheNone, "":
		a.storeDesc = "disabled"
		return nil
	case config.CacheMemory:
		a.store, a.storeDesc = cache.NewMemory(), "memory"
		return nil
	case config.CacheFile:
		fc, desc, err := a.fileStore()
		if err != nil {
			return err
		}
		a.store, a.storeDesc = fc, desc
		return nil
	case config.CachePostgres:
		pg, err := a.postgresStore(ctx)
		if err != nil {
			return err
		}
		a.store, a.storeDesc = pg, "postgres"
		return nil
	case config.CacheTiered:
		var durable cache.Store
		desc := "memory+"
		if c.DSN != "" {
			pg, err := a.postgresStore(ctx)
			if err != nil {
				return err
			}
			durable, desc = pg, desc+"postgres"
		} else {
			fc, fdesc, err := a.fileStore()
			if err != nil {
				return err
			}
			durable, desc = fc, desc+fdesc
		}
		a.store, a.storeDesc = cache.NewTiered(cache.NewMemory(), durable, c.TTL), desc
		return nil
	default:
		return fmt.Errorf("unknown cache backend %q", c.Backend)
	}
}

func (a *app) fileStore() (cache.Store, string, error) {
	dir, err := a.cfg.CacheDir()
	if err != nil {
		return nil, "", fmt.Errorf("cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, "", err
	}
	return fc, "file:" + dir, nil
}

func (a *app) postgresStore(ctx context.Context) (cache.Store, error) {
	if a.cfg.Cache.DSN == "" {
		return nil, fmt.Errorf("postgres cache needs FAIRTRIP_CACHE_DSN or DATABASE_URL")
	}
	pg, err := cache.OpenPostgres(ctx, a.cfg.Cache.DSN)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, pg.Close)
	return pg, nil
}

// buildRouter registers every known adapter behind the decorator chain. The
// router decides per mode which of them are used.
func buildRouter(a *app) *core.Router {
	cfg := a.cfg
	router := core.NewRouter(cfg)

	opts := wrap.Options{
		RateLimit:      cfg.Resilience.RateLimit,
		MaxRetries:     cfg.Resilience.MaxRetries,
		InitialBackoff: cfg.Resilience.InitialBackoff,
		Cache:          a.store,
		CacheTTL:       cfg.Cache.TTL,
		Currency:       cfg.Search.Currency,
		Metrics:        a.metrics,
		Logger:         a.log,
	}
	currency, maxResults := cfg.Search.Currency, cfg.Search.MaxOffersPerCall

	// The mock adapter is deterministic and free; only metrics apply.
	router.Register(wrap.Chain(mock.NewFlightsAdapter(currency), wrap.Options{Metrics: a.metrics}))
	router.Register(wrap.Chain(live.NewAmadeusAdapter(live.AmadeusConfigFromEnv(currency, maxResults)), opts))
	router.Register(wrap.Chain(live.NewTravelpayoutsAdapter(live.TravelpayoutsConfigFromEnv(currency, maxResults)), opts))

	return router
}
