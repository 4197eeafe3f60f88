package middleware

import (
	"github.com/gin-gonic/gin"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/pkg/response"
)

// RequireRole lets the request through only when the access token carries role.
// Must be used after JWTAuth middleware.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			response.Unauthorized(c, "missing authentication")
			c.Abort()
			return
		}

		if model.Role(claims.Role) != role {
			response.Forbidden(c, string(role)+" access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
