package middleware

import (
	"strings"

	"school-site-backend/internal/shared/response"
	"school-site-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AdminAuth verifies the bearer token on mutating endpoints. Only
// mounted when an admin JWT secret is configured; without one the
// CRUD surface stays open, matching the original site's behavior.
func AdminAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("adminEmail", claims.Email)
		c.Next()
	}
}
