package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func requireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || !allowed[role.(string)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return requireRole("admin")
}

func AuthorOrAdmin() gin.HandlerFunc {
	return requireRole("author", "admin")
}

func ReviewerOrAdmin() gin.HandlerFunc {
	return requireRole("reviewer", "admin")
}
