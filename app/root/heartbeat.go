// Package root holds the unauthenticated service endpoints
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate only runs behind the session middleware, reaching it at
// all means the session held up
func Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}
