package handlers

import (
	"net/http"
	"time"

	"fixly/middleware"
	"fixly/services/cancellation"

	"github.com/gin-gonic/gin"
)

// CancellationHandler exposes the penalty preview and confirmation endpoints.
type CancellationHandler struct {
	Engine *cancellation.Engine
}

// NewCancellationHandler creates a new CancellationHandler.
func NewCancellationHandler(engine *cancellation.Engine) *CancellationHandler {
	return &CancellationHandler{Engine: engine}
}

// PreviewCancellationHandler returns the fresh cancellation decision for a
// job: penalty amount and the reasons the caller may select. Nothing is
// mutated.
func (h *CancellationHandler) PreviewCancellationHandler(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)
	decision, err := h.Engine.Preview(c.Request.Context(), c.Param("id"), principal, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}

// ConfirmCancellationHandler confirms a cancellation with a reason. The
// penalty charge and counterparty notification are emitted on success.
func (h *CancellationHandler) ConfirmCancellationHandler(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)
	var input struct {
		Reason string `json:"reason" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Engine.Confirm(c.Request.Context(), principal, cancellation.ConfirmInput{
		JobID:  c.Param("id"),
		Reason: input.Reason,
		Note:   input.Note,
	}, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
