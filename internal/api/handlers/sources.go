package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "source-manager-backend/internal/errors"
	"source-manager-backend/internal/service"
)

// SourceHandler handles HTTP requests for master source operations
type SourceHandler struct {
	sourceService *service.SourceService
}

// NewSourceHandler creates a new source handler
func NewSourceHandler(sourceService *service.SourceService) *SourceHandler {
	return &SourceHandler{sourceService: sourceService}
}

// ListRegions handles GET /regions
func (h *SourceHandler) ListRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": h.sourceService.Regions()})
}

// ResolveRegion handles GET /resolve-region?path=
func (h *SourceHandler) ResolveRegion(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		respondError(c, apperrors.NewValidationError("path", "path query parameter is required"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"region": h.sourceService.ResolveRegion(path)})
}

// ListRegionSources handles GET /regions/:region/sources
func (h *SourceHandler) ListRegionSources(c *gin.Context) {
	records, err := h.sourceService.ListByRegion(c.Param("region"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sources": records})
}

// ListSources handles GET /sources
func (h *SourceHandler) ListSources(c *gin.Context) {
	records, err := h.sourceService.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sources": records})
}

// GetSource handles GET /sources/:id
func (h *SourceHandler) GetSource(c *gin.Context) {
	record, err := h.sourceService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// CreateSource handles POST /sources
func (h *SourceHandler) CreateSource(c *gin.Context) {
	var req service.CreateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	record, err := h.sourceService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// UpdateSource handles PATCH /sources/:id
func (h *SourceHandler) UpdateSource(c *gin.Context) {
	var req service.UpdateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	record, err := h.sourceService.Update(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
