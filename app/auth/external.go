package auth

import (
	"errors"
	"net/http"

	"clippie/media-api/internal"
	"clippie/media-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// External handles the callback leg of an OAuth sign-in. The provider
// exchange and profile verification happen upstream, this endpoint
// only provisions the local account and materializes a session
func External(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var profile service.ExternalProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ident, token, err := d.Auth.ProvisionExternal(c.Request.Context(), profile)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to provision external identity", zap.Error(err), zap.String("requestID", requestID), zap.String("provider", profile.Provider))
		return
	}

	setSessionCookies(c, token)

	c.JSON(http.StatusOK, gin.H{
		"userID":   ident.ID,
		"username": ident.Username,
	})
}
