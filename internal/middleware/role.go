package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airport/internal/domain"
	"airport/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has one of the given roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		current, _ := role.(string)
		for _, r := range roles {
			if current == string(r) {
				c.Next()
				return
			}
		}

		response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

// AdminForWrites lets every authenticated user read and restricts
// POST, PUT, PATCH and DELETE to admins.
func AdminForWrites() gin.HandlerFunc {
	admin := AdminOnly()
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			admin(c)
		}
	}
}
