package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userId"

	// anonymousUser scopes requests that carry no identity header. Every
	// anonymous caller shares this bucket, which is fine for single-user
	// and local deployments.
	anonymousUser = "anonymous"
)

// Identity resolves the caller from the X-User-Id header set by the
// fronting gateway and stores it in the request context. Requests without
// the header are treated as anonymous rather than rejected; authentication
// proper happens upstream.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if userID == "" {
			userID = anonymousUser
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
