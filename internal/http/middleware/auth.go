// README: Firebase ID token auth middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ridemoto/internal/infra"
)

const (
	uidKey    = "auth_uid"
	claimsKey = "auth_claims"
)

// Auth verifies the Bearer token on every request and stores the caller's
// uid in the request context.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if raw == "" || raw == c.GetHeader("Authorization") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(uidKey, token.UID)
		c.Set(claimsKey, token.Claims)
		c.Next()
	}
}

// UID returns the authenticated caller's uid, or "" when unauthenticated.
func UID(c *gin.Context) string {
	return c.GetString(uidKey)
}

// HasRole reports whether the verified token carries the given role claim.
func HasRole(c *gin.Context, role string) bool {
	v, ok := c.Get(claimsKey)
	if !ok {
		return false
	}
	claims, ok := v.(map[string]interface{})
	if !ok {
		return false
	}
	return claims["role"] == role
}
