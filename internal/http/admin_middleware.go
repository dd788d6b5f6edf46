package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lottery-secretary/internal/service"
)

const adminClaimsKey = "admin_claims"

// AdminAuthMiddleware requires a valid admin bearer token.
func AdminAuthMiddleware(tokens *service.AdminTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !tokens.Enabled() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "description": "admin api disabled"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "description": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := tokens.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "description": "invalid token"})
			c.Abort()
			return
		}

		c.Set(adminClaimsKey, claims)
		c.Next()
	}
}

// GetAdminClaims returns the claims stored by AdminAuthMiddleware.
func GetAdminClaims(c *gin.Context) (service.AdminClaims, bool) {
	val, ok := c.Get(adminClaimsKey)
	if !ok {
		return service.AdminClaims{}, false
	}
	claims, ok := val.(service.AdminClaims)
	return claims, ok
}
