package middleware

import (
	"crypto/hmac"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uwezo/shop-backend/internal/session"
)

// RequireCSRF enforces the echoed token on state-changing requests.
// Must run after RequireSession.
func RequireCSRF(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		want := session.CSRFToken(secret, GetSessionToken(c))
		got := c.GetHeader("X-CSRF-Token")
		if got == "" || !hmac.Equal([]byte(got), []byte(want)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid csrf token"})
			return
		}
		c.Next()
	}
}
