package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/sessions"
)

// UserIDKey is the gin context key holding the authenticated user id (uint).
const UserIDKey = "userID"

// RequireSession aborts with 401 unless the request carries a session bound to a user.
// Must run after the sessions middleware.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessions.GetLoginUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Set(UserIDKey, id)
		c.Next()
	}
}

// UserID returns the id set by RequireSession, or 0.
func UserID(c *gin.Context) uint {
	return c.GetUint(UserIDKey)
}
