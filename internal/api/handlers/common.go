package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "source-manager-backend/internal/errors"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsAlreadyExists(err),
		errors.Is(err, apperrors.ErrSourceAlreadyStaged),
		errors.Is(err, apperrors.ErrSourceNotStaged):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsLegacyFormat(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "legacy": true})
	case apperrors.IsFormat(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "legacy": false})
	case apperrors.IsAuthentication(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
