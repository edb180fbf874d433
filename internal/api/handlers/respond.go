package handlers

import (
	"errors"

	"koyomi/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the HTTP taxonomy. Unknown errors
// become a generic 500; their detail belongs in the server log only.
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(422, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(404, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(409, gin.H{"error": "Already exists"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(403, gin.H{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(401, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrAccountDisabled):
		c.JSON(403, gin.H{"error": "Account is disabled"})
	default:
		c.JSON(500, gin.H{"error": "Internal server error"})
	}
}
