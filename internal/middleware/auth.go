package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenVerifier validates a provider-issued bearer token and returns its
// subject (the identity id).
type TokenVerifier interface {
	VerifyToken(ctx context.Context, raw string) (string, error)
}

// RequireAuth gates a route on a valid provider bearer token and attaches
// the identity id to the gin context as "userID".
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read the bearer token
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "Missing authorization header"},
			)
			return
		}

		// 2. Verify with the provider's keys
		subject, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "Invalid or expired token"},
			)
			return
		}

		// 3. Continue with the identity attached
		c.Set("userID", subject)
		c.Next()
	}
}
