// README: Capability gate for admin routes.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentora/internal/auth"
)

// RoleHeader carries the caller's admin role. Authenticating the caller is
// the gateway's job; this layer only maps the asserted role to capabilities.
const RoleHeader = "X-Admin-Role"

// RequireCapability aborts with 401 when no role is asserted and 403 when
// the role does not hold the capability.
func RequireCapability(cap auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := auth.Role(c.GetHeader(RoleHeader))
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing admin role"})
			return
		}
		if !auth.Can(role, cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}
