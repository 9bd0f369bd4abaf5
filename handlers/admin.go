// File: fixly/handlers/admin.go
package handlers

import (
	"net/http"

	accountRepo "fixly/database/repository/account"
	"fixly/models"
	"fixly/services/cancellation"
	jobsvc "fixly/services/job"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Accounts accountRepo.AccountRepository
	Jobs     jobsvc.Service
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(accounts accountRepo.AccountRepository, jobs jobsvc.Service) *AdminHandler {
	return &AdminHandler{Accounts: accounts, Jobs: jobs}
}

// GetAllAccountsHandler returns all accounts of a role (default: customers).
func (ah *AdminHandler) GetAllAccountsHandler(c *gin.Context) {
	role := models.Role(c.DefaultQuery("role", string(models.RoleCustomer)))
	if !role.Valid() || role == models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be customer or professional"})
		return
	}
	accounts, err := ah.Accounts.ListByRole(c.Request.Context(), role)
	if err != nil {
		zap.L().Error("Failed to fetch accounts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"})
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// GetAllJobsHandler returns every job record.
func (ah *AdminHandler) GetAllJobsHandler(c *gin.Context) {
	principal := &models.Principal{ID: "admin", Role: models.RoleAdmin}
	jobs, err := ah.Jobs.ListForPrincipal(c.Request.Context(), principal)
	if err != nil {
		zap.L().Error("Failed to fetch jobs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetReviewQueueHandler returns accounts whose cancellation count reached the
// administrative review tier.
func (ah *AdminHandler) GetReviewQueueHandler(c *gin.Context) {
	accounts, err := ah.Accounts.ListByMinCancellations(c.Request.Context(), models.CancellationReviewTier)
	if err != nil {
		zap.L().Error("Failed to fetch review queue", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review queue"})
		return
	}
	entries := make([]gin.H, 0, len(accounts))
	for _, a := range accounts {
		entries = append(entries, gin.H{
			"accountId":         a.ID,
			"displayName":       a.DisplayName,
			"role":              a.Role,
			"cancellationCount": a.CancellationCount,
			"tier":              cancellation.TierFor(a.CancellationCount),
		})
	}
	c.JSON(http.StatusOK, gin.H{"queue": entries})
}
