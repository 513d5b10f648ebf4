package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"atelier-backend/internal/shared/response"
	"atelier-backend/pkg/jwt"
)

const authenticatedKey = "authenticated"

// Authenticate checks a Bearer token when present and marks the request as
// authenticated. It never rejects: public routes stay public, handlers that
// need the author check IsAuthenticated.
func Authenticate(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if _, err := tokens.ValidateSessionToken(token); err == nil {
				c.Set(authenticatedKey, true)
			}
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 unless the request carries a valid session
// token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// IsAuthenticated reports whether the request holds a valid author session.
func IsAuthenticated(c *gin.Context) bool {
	return c.GetBool(authenticatedKey)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
