package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wallcove/internal/config"
	"wallcove/internal/security"
)

// StaffAuth guards the upload surface. It only verifies that the caller
// presents a staff token minted with the shared secret; who hands out
// tokens is not this service's concern.
func StaffAuth(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseStaffToken(tokenStr, cfg.Security.StaffTokenSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		if !claims.Staff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff_only"})
			return
		}

		c.Set("staff_claims", *claims)

		c.Next()
	}
}
