package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/docuchain/docuchain_app/internal/apperrors"
	portssvc "github.com/docuchain/docuchain_app/internal/core/ports/services"
	"github.com/docuchain/docuchain_app/internal/dto"
	"github.com/docuchain/docuchain_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests related to the document registry.
type documentHandler struct {
	documentService portssvc.DocumentSvc
	matcherService  portssvc.MatcherSvc
}

func newDocumentHandler(ds portssvc.DocumentSvc, ms portssvc.MatcherSvc) *documentHandler {
	return &documentHandler{
		documentService: ds,
		matcherService:  ms,
	}
}

// registerDocumentRoutes registers routes related to documents.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvc, matcherService portssvc.MatcherSvc) {
	h := newDocumentHandler(documentService, matcherService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:documentID", h.getDocument)
		documents.GET("/:documentID/metadata", h.getDocumentMetadata)
		documents.POST("/:documentID/match", h.matchDocument)
	}
}

func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.documentService.RegisterDocument(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Document already exists"})
			return
		}
		logger.Error("Failed to register document", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register document"})
		return
	}

	logger.Info("Document registered", slog.String("document_id", doc.DocumentID), slog.String("doc_type", string(doc.DocType)))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(*doc))
}

func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		logger.Error("Failed to get document", slog.String("document_id", documentID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document"})
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(*doc))
}

func (h *documentHandler) getDocumentMetadata(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	info, err := h.documentService.GetMetadataByDocID(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No extraction record for document"})
			return
		}
		logger.Error("Failed to get document metadata", slog.String("document_id", documentID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document metadata"})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	docs, err := h.documentService.ListDocuments(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list documents", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}

	resp := dto.ListDocumentsResponse{Documents: make([]dto.DocumentResponse, 0, len(docs))}
	for _, d := range docs {
		resp.Documents = append(resp.Documents, dto.ToDocumentResponse(d))
	}
	c.JSON(http.StatusOK, resp)
}

// matchDocument resolves the chain anchored at one document on demand.
func (h *documentHandler) matchDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	chainID, err := h.matcherService.ResolveDocument(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document has no extraction record; extract it first"})
			return
		}
		logger.Error("Failed to resolve document", slog.String("document_id", documentID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve document"})
		return
	}
	if chainID == "" {
		c.JSON(http.StatusOK, gin.H{"chainID": nil, "message": "No related documents found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chainID": chainID})
}
