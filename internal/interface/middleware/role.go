package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirewire/hirewire-api/internal/domain/entity"
	"github.com/hirewire/hirewire-api/pkg/response"
)

// RequireRole admits callers whose role is in the allowed set. Admin passes
// every role gate. The missing-identity branch is defensive: route
// composition puts Authenticate ahead of this.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.AbortMessage(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !u.HasRole(roles...) {
			response.AbortMessage(c, http.StatusForbidden, "Access denied. Insufficient permissions.")
			return
		}
		c.Next()
	}
}

// RequireAdmin admits only admins.
func RequireAdmin() gin.HandlerFunc { return RequireRole(entity.RoleAdmin) }

// RequireRecruiter admits recruiters (and admins).
func RequireRecruiter() gin.HandlerFunc { return RequireRole(entity.RoleRecruiter) }

// RequireJobSeeker admits job seekers (and admins).
func RequireJobSeeker() gin.HandlerFunc { return RequireRole(entity.RoleJobSeeker) }
