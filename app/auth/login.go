package auth

import (
	"errors"
	"net/http"

	"clippie/media-api/internal"
	"clippie/media-api/internal/service"
	"clippie/media-api/pkg/middleware"
	"clippie/media-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ident, token, err := d.Auth.Login(c.Request.Context(), data.Email, data.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid credentials",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to log in user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	setSessionCookies(c, token)

	c.JSON(http.StatusOK, gin.H{
		"userID":   ident.ID,
		"username": ident.Username,
	})
}

func setSessionCookies(c *gin.Context, token string) {
	maxAge := int(security.DefaultSessionTTL.Seconds())
	ssl := viper.GetBool("host.ssl.enabled")

	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", ssl, true)
	c.SetCookie("logged_in", "1", maxAge, "/", "", ssl, false)
}
