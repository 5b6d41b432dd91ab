package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jverbeek/hockeyclub/internal/middleware"
	"github.com/jverbeek/hockeyclub/internal/user"
)

const userRolesKey = "user_roles"

// RoleMiddleware allows the request through when the authenticated user holds
// any of the required roles. Roles are also stored in the context for
// downstream handlers.
func RoleMiddleware(userRepo user.UserRepository, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		userRoles, err := userRepo.GetUserRoles(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user roles"})
			return
		}

		if !hasAny(userRoles, requiredRoles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "Forbidden",
				"message":  "You don't have permission to access this resource",
				"required": requiredRoles,
			})
			return
		}

		c.Set(userRolesKey, userRoles)
		c.Next()
	}
}

// HasRole reports whether the current request's user carries the named role.
// Only valid after RoleMiddleware has run; otherwise returns false.
func HasRole(c *gin.Context, role string) bool {
	rolesVal, exists := c.Get(userRolesKey)
	if !exists {
		return false
	}
	roles, ok := rolesVal.([]string)
	if !ok {
		return false
	}
	return hasAny(roles, []string{role})
}

func hasAny(userRoles, required []string) bool {
	for _, have := range userRoles {
		for _, want := range required {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

// AdminMiddleware is a convenience middleware for admin-only access.
func AdminMiddleware(userRepo user.UserRepository) gin.HandlerFunc {
	return RoleMiddleware(userRepo, user.RoleAdmin)
}

// LeagueManagerMiddleware allows league managers and admins.
func LeagueManagerMiddleware(userRepo user.UserRepository) gin.HandlerFunc {
	return RoleMiddleware(userRepo, user.RoleLeagueManager, user.RoleAdmin)
}
