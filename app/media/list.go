// Package media contains the ownership-scoped record endpoints
package media

import (
	"errors"
	"net/http"

	"clippie/media-api/internal"
	"clippie/media-api/internal/service"
	"clippie/media-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// List returns every record the caller owns, newest first. Owning
// nothing is a 200 with an empty array
func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	records, err := d.Media.ListMine(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Unauthorized",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list media", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, records)
}
