package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/docuchain/docuchain_app/internal/apperrors"
	"github.com/docuchain/docuchain_app/internal/core/domain"
	portssvc "github.com/docuchain/docuchain_app/internal/core/ports/services"
	"github.com/docuchain/docuchain_app/internal/dto"
	"github.com/docuchain/docuchain_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statementHandler handles HTTP requests related to bank statements.
type statementHandler struct {
	statementService portssvc.StatementSvc
}

func newStatementHandler(ss portssvc.StatementSvc) *statementHandler {
	return &statementHandler{statementService: ss}
}

// registerStatementRoutes registers routes related to bank statements.
func registerStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvc) {
	h := newStatementHandler(statementService)

	statements := rg.Group("/statements")
	{
		statements.POST("/parse", h.parseStatement)
		statements.POST("/import", h.importStatement)
		statements.GET("/:statementID", h.getStatement)
	}
}

// parseStatement decodes statement content without persisting anything.
func (h *statementHandler) parseStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ParseStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	stmt, err := h.statementService.ParseStatement(c.Request.Context(), []byte(req.Content), domain.StatementFormat(req.Format))
	if err != nil {
		if apperrors.IsUnsupportedFormat(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		logger.Warn("Failed to parse statement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse statement: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, stmt)
}

func (h *statementHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImportStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	stmt, paymentDocs, err := h.statementService.ImportStatement(c.Request.Context(), []byte(req.Content), domain.StatementFormat(req.Format))
	if err != nil {
		if apperrors.IsUnsupportedFormat(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to import statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import statement"})
		return
	}

	logger.Info("Statement import finished",
		slog.String("statement_id", stmt.StatementID),
		slog.Int("payment_docs", paymentDocs))
	c.JSON(http.StatusCreated, dto.ToStatementResponse(*stmt, paymentDocs))
}

func (h *statementHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	statementID := c.Param("statementID")

	stmt, err := h.statementService.GetStatementByID(c.Request.Context(), statementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Statement not found"})
			return
		}
		logger.Error("Failed to get statement", slog.String("statement_id", statementID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statement"})
		return
	}
	c.JSON(http.StatusOK, stmt)
}
