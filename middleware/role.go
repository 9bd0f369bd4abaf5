package middleware

import (
	"net/http"

	"fixly/models"
	"fixly/services/access"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group on the navigation guard's decision table.
// Redirect outcomes become 403 responses carrying the logical screen the
// client should route to; the pending outcome (identity resolution still
// outstanding) is reported as 503 so the client retries rather than
// navigating anywhere.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, resolved := PrincipalFromContext(c)
		decision := access.Evaluate(principal, resolved, required)
		switch decision.Outcome {
		case access.OutcomeAllow:
			c.Next()
		case access.OutcomePending:
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "identity resolution in progress"})
		default:
			status := http.StatusForbidden
			if principal == nil {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, gin.H{
				"error":    "forbidden",
				"redirect": decision.Redirect,
			})
		}
	}
}
