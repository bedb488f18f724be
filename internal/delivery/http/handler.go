package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	intelligence *usecase.IntelligenceService
}

// NewHandler creates a new HTTP handler
func NewHandler(intelligence *usecase.IntelligenceService) *Handler {
	return &Handler{intelligence: intelligence}
}

// searchRequest is the body of POST /api/v1/search
type searchRequest struct {
	Query     string  `json:"query" binding:"required"`
	Threshold float64 `json:"threshold,omitempty"`
}

// imageSearchRequest is the body of POST /api/v1/search/image
type imageSearchRequest struct {
	Description *domain.AnalyzedDescription `json:"description" binding:"required"`
	Colors      []string                    `json:"colors,omitempty"`
}

// recommendRequest is the body of POST /api/v1/price/recommend
type recommendRequest struct {
	Query string `json:"query" binding:"required"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricelens-backend",
		"version": "1.0.0",
	})
}

// ListCollections returns the scraped collection names
func (h *Handler) ListCollections(c *gin.Context) {
	if h.intelligence == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "intelligence service not configured"})
		return
	}

	collections, err := h.intelligence.ListCollections(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

// Search handles free-text product search requests
func (h *Handler) Search(c *gin.Context) {
	if h.intelligence == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "intelligence service not configured"})
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	response, err := h.intelligence.SearchByText(c.Request.Context(), req.Query, req.Threshold)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SearchByImage handles structured-description search requests
func (h *Handler) SearchByImage(c *gin.Context) {
	if h.intelligence == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "intelligence service not configured"})
		return
	}

	var req imageSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}

	response, err := h.intelligence.SearchByImage(c.Request.Context(), req.Description, req.Colors)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// RecommendPrice handles price recommendation requests
func (h *Handler) RecommendPrice(c *gin.Context) {
	if h.intelligence == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "intelligence service not configured"})
		return
	}

	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	recommendation, err := h.intelligence.RecommendPrice(c.Request.Context(), req.Query)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recommendation)
}

// writeError maps domain errors to HTTP responses
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidDescription):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoComparableProducts), errors.Is(err, domain.ErrCollectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCatalogUnavailable), errors.Is(err, domain.ErrCacheUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
