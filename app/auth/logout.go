package auth

import (
	"net/http"

	"clippie/media-api/internal"
	"clippie/media-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func Logout(c *gin.Context, _ *internal.Deps) {
	ssl := viper.GetBool("host.ssl.enabled")

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ssl, true)
	c.SetCookie("logged_in", "", -1, "/", "", ssl, false)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}
