package media

import (
	"errors"
	"net/http"

	"clippie/media-api/internal"
	"clippie/media-api/internal/cdn"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadAuth hands the upload widget a signed single-use
// authorization for pushing a file straight to the CDN
func UploadAuth(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	auth, err := d.Signer.Sign()
	if err != nil {
		if errors.Is(err, cdn.ErrNoPrivateKey) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":     "Upload authorization is not configured",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to sign upload authorization", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, auth)
}
