package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"confportal-backend/internal/lifecycle"
)

// respondError maps a lifecycle error kind to its HTTP reply. Not-found and
// ownership failures share one reply so existence never leaks; persistence
// failures are logged but never echoed to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrValidation), errors.Is(err, lifecycle.ErrMissingFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, lifecycle.ErrDeadlineExceeded),
		errors.Is(err, lifecycle.ErrConferenceNotOngoing),
		errors.Is(err, lifecycle.ErrDuplicateReview):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
