package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fairtrip/fairtrip/internal/config"
	"github.com/fairtrip/fairtrip/internal/core"
	"github.com/fairtrip/fairtrip/internal/logger"
	"github.com/fairtrip/fairtrip/internal/metrics"
	"github.com/fairtrip/fairtrip/internal/output"
)

type Server struct {
	cfg     config.ServerConfig
	mode    config.Mode
	planner *core.Planner
	metrics *metrics.Metrics
	log     logger.Logger
	engine  *gin.Engine
}

func New(cfg *config.Config, planner *core.Planner, m *metrics.Metrics, log logger.Logger) *Server {
	s := &Server{
		cfg:     cfg.Server,
		mode:    cfg.Mode,
		planner: planner,
		metrics: m,
		log:     log,
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/airports", s.airports)
		api.POST("/trips/plan", s.planTrip)
		api.POST("/destinations/rank", s.rankDestinations)
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "address", s.cfg.Address, "mode", s.mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) fail(c *gin.Context, msg string, err error) {
	status := http.StatusInternalServerError
	switch output.ErrorKind(err) {
	case output.KindInvalidTrip:
		status = http.StatusBadRequest
	case output.KindCurrencyMismatch:
		status = http.StatusUnprocessableEntity
	case output.KindProviderUnavailable:
		status = http.StatusBadGateway
	}
	if status >= 500 {
		s.log.Error(msg, "error", err)
	}
	c.JSON(status, output.NewErrorResponse(msg, err))
}
