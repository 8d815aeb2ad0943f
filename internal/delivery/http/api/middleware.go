package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// RequireUser resolves the caller identity from the X-User-ID header set by
// the gateway. Identity is always explicit: handlers pass it down as a
// parameter, nothing reads ambient session state.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
