package middleware

import (
	"net/http"
	"strings"

	"offerwall-service/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminAuth guards admin routes: it requires a valid Bearer token issued by
// the auth service and stores the claims on the request context.
func AdminAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid authorization header"})
			return
		}

		claims, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("admin", claims.Username)
		c.Next()
	}
}
