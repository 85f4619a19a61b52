package middleware

import (
	"context"
	"net/http"
	"strings"

	"clippie/media-api/internal/model"
	"clippie/media-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionCookie carries the signed session token between requests
const SessionCookie = "auth_token"

// IdentityKey is where the resolved identity lives in the gin context
const IdentityKey = "identity"

type userLookup interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// NewSessionMiddleware resolves the session token from the auth cookie
// (or a bearer header) and requires that the embedded user still
// exists. Requests that fail either check never reach the handler
func NewSessionMiddleware(sessions *security.Sessions, users userLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimPrefix(h, "Bearer ")
			}
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "No session",
				"requestID": requestID,
			})
			return
		}

		ident, err := sessions.Resolve(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Session invalid or expired",
				"requestID": requestID,
			})
			return
		}

		// A valid token alone isn't enough, the account could have
		// been removed since issuance
		user, err := users.FindByEmail(c.Request.Context(), strings.ToLower(ident.Email))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Session user no longer exists",
				"requestID": requestID,
			})
			return
		}

		c.Set(IdentityKey, ident)
		c.Set("userID", user.ID.Hex())
		c.Next()
	}
}

// Identity pulls the resolved caller out of the gin context, nil when
// the route ran without the session middleware
func Identity(c *gin.Context) *model.Identity {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}

	ident, _ := v.(*model.Identity)
	return ident
}
