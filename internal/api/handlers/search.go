package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"source-manager-backend/internal/service"
)

// SearchHandler handles HTTP requests against the source index
type SearchHandler struct {
	indexService *service.IndexService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(indexService *service.IndexService) *SearchHandler {
	return &SearchHandler{indexService: indexService}
}

// Search handles GET /search
func (h *SearchHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, err := h.indexService.Search(
		c.Query("q"),
		c.Query("region"),
		c.Query("type"),
		limit,
		offset,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Rebuild handles POST /search/rebuild
func (h *SearchHandler) Rebuild(c *gin.Context) {
	resp, err := h.indexService.Rebuild()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
