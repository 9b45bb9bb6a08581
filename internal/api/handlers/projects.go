package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "source-manager-backend/internal/errors"
	"source-manager-backend/internal/service"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// projectPath extracts the required path query parameter
func projectPath(c *gin.Context) (string, bool) {
	path := c.Query("path")
	if path == "" {
		respondError(c, apperrors.NewValidationError("path", "path query parameter is required"))
		return "", false
	}
	return path, true
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.projectService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListProjects handles GET /projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	summaries, err := h.projectService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": summaries})
}

// GetProject handles GET /projects/detail?path=
func (h *ProjectHandler) GetProject(c *gin.Context) {
	path, ok := projectPath(c)
	if !ok {
		return
	}

	resp, err := h.projectService.Get(path)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateMetadata handles PATCH /projects/metadata?path=
func (h *ProjectHandler) UpdateMetadata(c *gin.Context) {
	path, ok := projectPath(c)
	if !ok {
		return
	}

	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.projectService.UpdateMetadata(path, updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AttachSource handles POST /projects/sources/attach?path=
func (h *ProjectHandler) AttachSource(c *gin.Context) {
	path, ok := projectPath(c)
	if !ok {
		return
	}

	var req service.AttachSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.projectService.AttachSource(path, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// sourceIDRequest carries a bare source id in the request body
type sourceIDRequest struct {
	SourceID string `json:"source_id" binding:"required"`
}

// DetachSource handles POST /projects/sources/detach?path=
func (h *ProjectHandler) DetachSource(c *gin.Context) {
	path, ok := projectPath(c)
	if !ok {
		return
	}

	var req sourceIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.projectService.DetachSource(path, req.SourceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StageSource handles POST /projects/sources/stage?path=
func (h *ProjectHandler) StageSource(c *gin.Context) {
	path, ok := projectPath(c)
	if !ok {
		return
	}

	var req sourceIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.projectService.StageSource(path, req.SourceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UnstageSource handles POST /projects/sources/unstage?path=
func (h *ProjectHandler) UnstageSource(c *gin.Context) {
	path, ok := projectPath(c)
	if !ok {
		return
	}

	var req sourceIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.projectService.UnstageSource(path, req.SourceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
