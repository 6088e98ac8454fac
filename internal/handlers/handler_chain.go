package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/docuchain/docuchain_app/internal/apperrors"
	"github.com/docuchain/docuchain_app/internal/core/domain"
	portssvc "github.com/docuchain/docuchain_app/internal/core/ports/services"
	"github.com/docuchain/docuchain_app/internal/dto"
	"github.com/docuchain/docuchain_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// chainHandler handles HTTP requests related to resolved document chains.
type chainHandler struct {
	chainService portssvc.ChainSvc
}

func newChainHandler(cs portssvc.ChainSvc) *chainHandler {
	return &chainHandler{chainService: cs}
}

// registerChainRoutes registers routes related to chains.
func registerChainRoutes(rg *gin.RouterGroup, chainService portssvc.ChainSvc) {
	h := newChainHandler(chainService)

	chains := rg.Group("/chains")
	{
		chains.GET("", h.listChains)
		chains.GET("/export", h.exportChains)
		chains.GET("/:chainID", h.getChain)
	}
}

func (h *chainHandler) getChain(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chainID := c.Param("chainID")

	chain, err := h.chainService.GetChainByID(c.Request.Context(), chainID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chain not found"})
			return
		}
		logger.Error("Failed to get chain", slog.String("chain_id", chainID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve chain"})
		return
	}
	c.JSON(http.StatusOK, dto.ToChainResponse(*chain))
}

func (h *chainHandler) listChains(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var status *domain.ChainStatus
	if s := c.Query("status"); s != "" {
		if !domain.IsValidChainStatus(s) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown chain status: " + s})
			return
		}
		cs := domain.ChainStatus(s)
		status = &cs
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	chains, err := h.chainService.ListChains(c.Request.Context(), status, limit, offset)
	if err != nil {
		logger.Error("Failed to list chains", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list chains"})
		return
	}

	resp := dto.ListChainsResponse{Chains: make([]dto.ChainResponse, 0, len(chains))}
	for _, chain := range chains {
		resp.Chains = append(resp.Chains, dto.ToChainResponse(chain))
	}
	c.JSON(http.StatusOK, resp)
}

// exportChains dumps every chain as a JSON array, for downstream systems.
func (h *chainHandler) exportChains(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	chains, err := h.chainService.ExportChains(c.Request.Context())
	if err != nil {
		logger.Error("Failed to export chains", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export chains"})
		return
	}

	resp := make([]dto.ChainResponse, 0, len(chains))
	for _, chain := range chains {
		resp = append(resp, dto.ToChainResponse(chain))
	}
	c.JSON(http.StatusOK, resp)
}
