package middleware

import (
	"net/http"
	"strings"

	"fixly/config"
	"fixly/models"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware authenticates the operator-configured admin token.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		adminToken := config.AppConfig.AdminToken
		if adminToken == "" || tokenString != adminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		SetPrincipal(c, &models.Principal{ID: "admin", Role: models.RoleAdmin, DisplayName: "Administrator"})
		c.Next()
	}
}
