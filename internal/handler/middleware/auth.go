package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hackhub/teamhub/internal/repository"
	jwtpkg "hackhub/teamhub/pkg/jwt"
	"hackhub/teamhub/pkg/response"
)

const ContextKeyUserClaims = "user_claims"

// JWTAuth requires a valid, unrevoked bearer access token and stores its
// claims in the context under ContextKeyUserClaims.
func JWTAuth(jwtManager *jwtpkg.Manager, tokens repository.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "invalid authorization format")
			c.Abort()
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		if claims.TokenType != jwtpkg.TokenTypeAccess {
			response.Unauthorized(c, "invalid token type")
			c.Abort()
			return
		}

		revoked, err := tokens.IsAccessRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			_ = c.Error(err)
			response.InternalError(c, "token check failed")
			c.Abort()
			return
		}
		if revoked {
			response.Unauthorized(c, "token has been revoked")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserClaims, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by JWTAuth.
func ClaimsFrom(c *gin.Context) (*jwtpkg.Claims, bool) {
	v, exists := c.Get(ContextKeyUserClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwtpkg.Claims)
	return claims, ok
}
