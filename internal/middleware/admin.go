package middleware

import (
	"net/http" // HTTP status codes
	"slices"   // Role membership
	"strconv"  // Path parameter parsing

	"event_management/internal/domain" // Roles

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRole lets the request through only when the caller holds one of roles.
// It must run after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := PrincipalFrom(c) // Get principal from context
		// Check if principal exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !slices.Contains(roles, principal.Role) {
			// If the role is not allowed, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}
		c.Next()
	}
}

// RequireSelfOrRole lets the request through when the caller is the user named
// by the path parameter or holds one of roles. It must run after AuthMiddleware.
func RequireSelfOrRole(param string, roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := PrincipalFrom(c) // Get principal from context
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err == nil && uint(id) == principal.UserID {
			c.Next() // Acting on their own account
			return
		}
		if !slices.Contains(roles, principal.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not allowed to act on this user"})
			return
		}
		c.Next()
	}
}
