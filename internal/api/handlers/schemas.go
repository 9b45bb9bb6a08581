package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "source-manager-backend/internal/errors"
	"source-manager-backend/internal/schema"
)

// SchemaHandler exposes the static project and source type schemas
type SchemaHandler struct{}

// NewSchemaHandler creates a new schema handler
func NewSchemaHandler() *SchemaHandler {
	return &SchemaHandler{}
}

// TypeInfo represents one schema type in list responses
type TypeInfo struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
}

// FieldInfo represents one field definition in API responses
type FieldInfo struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	Hint     string   `json:"hint,omitempty"`
	Options  []string `json:"options,omitempty"`
	Group    string   `json:"group"`
	Order    int      `json:"order"`
}

// SchemaResponse represents a full type schema
type SchemaResponse struct {
	Code            string      `json:"code"`
	DisplayName     string      `json:"display_name"`
	Description     string      `json:"description,omitempty"`
	FilenamePattern string      `json:"filename_pattern"`
	Groups          []string    `json:"groups"`
	Fields          []FieldInfo `json:"fields"`
}

func toTypeInfo(s *schema.TypeSchema) TypeInfo {
	return TypeInfo{Code: s.Code, DisplayName: s.DisplayName, Description: s.Description}
}

func toSchemaResponse(s *schema.TypeSchema) SchemaResponse {
	sorted := schema.FieldsSorted(s)
	fields := make([]FieldInfo, len(sorted))
	for i, f := range sorted {
		group := f.Group
		if group == "" {
			group = schema.DefaultGroup
		}
		fields[i] = FieldInfo{
			Name:     f.Name,
			Label:    f.Label,
			Kind:     string(f.Kind),
			Required: f.Required,
			Hint:     f.Hint,
			Options:  f.Options,
			Group:    group,
			Order:    f.Order,
		}
	}
	return SchemaResponse{
		Code:            s.Code,
		DisplayName:     s.DisplayName,
		Description:     s.Description,
		FilenamePattern: s.FilenamePattern,
		Groups:          schema.GroupNames(s),
		Fields:          fields,
	}
}

// ListProjectTypes handles GET /project-types
func (h *SchemaHandler) ListProjectTypes(c *gin.Context) {
	types := schema.ProjectTypes()
	out := make([]TypeInfo, len(types))
	for i, t := range types {
		out[i] = toTypeInfo(t)
	}
	c.JSON(http.StatusOK, gin.H{"project_types": out})
}

// GetProjectType handles GET /project-types/:code
func (h *SchemaHandler) GetProjectType(c *gin.Context) {
	s := schema.GetProjectType(c.Param("code"))
	if s == nil {
		respondError(c, apperrors.ErrProjectTypeNotFound)
		return
	}
	c.JSON(http.StatusOK, toSchemaResponse(s))
}

// ListSourceTypes handles GET /source-types
func (h *SchemaHandler) ListSourceTypes(c *gin.Context) {
	types := schema.SourceTypes()
	out := make([]TypeInfo, len(types))
	for i, t := range types {
		out[i] = toTypeInfo(t)
	}
	c.JSON(http.StatusOK, gin.H{"source_types": out})
}

// GetSourceType handles GET /source-types/:code
func (h *SchemaHandler) GetSourceType(c *gin.Context) {
	s := schema.GetSourceType(c.Param("code"))
	if s == nil {
		respondError(c, apperrors.ErrSourceTypeNotFound)
		return
	}
	c.JSON(http.StatusOK, toSchemaResponse(s))
}
