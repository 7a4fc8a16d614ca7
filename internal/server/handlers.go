package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fairtrip/fairtrip/internal/core"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"mode":   s.mode,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) airports(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		s.fail(c, "city is required", fmt.Errorf("%w: missing city", core.ErrInvalidTrip))
		return
	}
	airports, err := s.planner.Resolver().Resolve(c.Request.Context(), city)
	if err != nil {
		s.fail(c, "airport lookup failed", err)
		return
	}
	if airports == nil {
		airports = []core.Airport{}
	}
	c.JSON(http.StatusOK, gin.H{"city": city, "airports": airports})
}

func (s *Server) planTrip(c *gin.Context) {
	var req core.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, "invalid request body", fmt.Errorf("%w: %v", core.ErrInvalidTrip, err))
		return
	}

	ctx := c.Request.Context()
	travelers, err := s.planner.PrepareTravelers(ctx, req.Travelers)
	if err != nil {
		s.fail(c, "could not resolve traveler airports", err)
		return
	}
	req.Travelers = travelers

	plan, err := s.planner.PlanTrip(ctx, req)
	if err != nil {
		s.fail(c, "trip planning failed", err)
		return
	}
	s.metrics.Plans.Inc()
	c.JSON(http.StatusOK, plan)
}

func (s *Server) rankDestinations(c *gin.Context) {
	var req core.DestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, "invalid request body", fmt.Errorf("%w: %v", core.ErrInvalidTrip, err))
		return
	}

	ctx := c.Request.Context()
	travelers, err := s.planner.PrepareTravelers(ctx, req.Travelers)
	if err != nil {
		s.fail(c, "could not resolve traveler airports", err)
		return
	}
	req.Travelers = travelers

	ranked, err := s.planner.RankDestinations(ctx, req)
	if err != nil {
		s.fail(c, "destination ranking failed", err)
		return
	}
	if ranked == nil {
		ranked = []core.DestinationCandidate{}
	}
	c.JSON(http.StatusOK, gin.H{"destinations": ranked})
}
