package handlers

import (
	"net/http"

	"fixly/middleware"
	"fixly/models"
	accountSvc "fixly/services/account"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes account registration and authentication endpoints.
type AuthHandler struct {
	Service accountSvc.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc accountSvc.Service) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// RegisterHandler creates a customer or professional account.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var input struct {
		Role        models.Role `json:"role" binding:"required"`
		DisplayName string      `json:"displayName" binding:"required"`
		Email       string      `json:"email" binding:"required"`
		Password    string      `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	acct, err := h.Service.Register(c.Request.Context(), accountSvc.RegisterInput{
		Role:        input.Role,
		DisplayName: input.DisplayName,
		Email:       input.Email,
		Password:    input.Password,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, acct)
}

// LoginHandler authenticates an account and returns a fresh token.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RevokeHandler invalidates the caller's current token.
func (h *AuthHandler) RevokeHandler(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	if err := h.Service.Revoke(c.Request.Context(), principal.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"revoked": true})
}
