package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/docuchain/docuchain_app/internal/core/ports/services"
	"github.com/docuchain/docuchain_app/internal/dto"
	"github.com/docuchain/docuchain_app/internal/middleware"
	"github.com/docuchain/docuchain_app/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// matchHandler handles batch matching runs.
type matchHandler struct {
	matcherService portssvc.MatcherSvc
	defaultLimit   int
}

func newMatchHandler(ms portssvc.MatcherSvc, defaultLimit int) *matchHandler {
	return &matchHandler{
		matcherService: ms,
		defaultLimit:   defaultLimit,
	}
}

// registerMatchRoutes registers routes for batch matching. Batch runs are
// expensive, so they carry a per-client rate limit.
func registerMatchRoutes(rg *gin.RouterGroup, cfg *config.Config, matcherService portssvc.MatcherSvc) {
	h := newMatchHandler(matcherService, cfg.MatchBatchLimit)

	rate, _ := limiter.NewRateFromFormatted(fmt.Sprintf("%d-M", int(cfg.RateLimitRPS)))
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	match := rg.Group("/match")
	{
		match.POST("/run", middleware.RateLimit(ipLimiter), h.runMatch)
	}
}

// runMatch extracts all unprocessed documents and resolves chains over the
// whole document set.
func (h *matchHandler) runMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// The body is optional; an empty body runs with the configured limit.
	req := dto.RunMatchRequest{Limit: h.defaultLimit}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for RunMatch", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	stats, err := h.matcherService.MatchAll(c.Request.Context(), req.Limit)
	if err != nil {
		logger.Error("Batch matching run failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Batch matching run failed"})
		return
	}

	logger.Info("Batch matching run finished",
		slog.Int("total", stats.Total),
		slog.Int("extracted", stats.Extracted),
		slog.Int("matched_chains", stats.MatchedChains),
		slog.Int("failed", stats.Failed))
	c.JSON(http.StatusOK, stats)
}
