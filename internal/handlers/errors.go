package handlers

import (
	"errors"
	"net/http"

	"offerwall-service/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the wire. notFoundMsg customizes
// the 404 body so callers see which entity was missing.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid request fields"})
	case errors.Is(err, services.ErrNotFound):
		if notFoundMsg == "" {
			notFoundMsg = "Not found"
		}
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg, "message": notFoundMsg})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate record"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, services.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream service unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
