package handlers

import (
	"net/http"

	"fixly/middleware"
	"fixly/services/access"

	"github.com/gin-gonic/gin"
)

// AccessHandler exposes the navigation guard to clients, so screen routing
// and the server agree on one decision table.
type AccessHandler struct{}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler() *AccessHandler {
	return &AccessHandler{}
}

// RouteHandler returns the guard's decision for a logical screen identifier.
// Runs behind optional authentication: anonymous callers get the landing
// redirect rather than an error.
func (h *AccessHandler) RouteHandler(c *gin.Context) {
	var input struct {
		Screen string `json:"screen" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	principal, resolved := middleware.PrincipalFromContext(c)
	decision := access.Route(principal, resolved, input.Screen)
	c.JSON(http.StatusOK, decision)
}
