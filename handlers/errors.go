package handlers

import (
	"errors"
	"net/http"

	jobsvc "fixly/services/job"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps the core error taxonomy onto HTTP statuses. Every error
// in the taxonomy is recoverable: the caller gets a user-facing message and
// no state was mutated.
func respondError(c *gin.Context, err error) {
	var (
		notFound     jobsvc.NotFoundError
		invalidState jobsvc.InvalidStateError
		validation   jobsvc.ValidationError
		unauthorized jobsvc.UnauthorizedError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, gin.H{"error": invalidState.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validation.Error()})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": unauthorized.Error()})
	default:
		zap.L().Error("unexpected handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
