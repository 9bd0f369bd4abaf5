package handlers

import (
	"context"
	"net/http"
	"time"

	"fixly/middleware"
	"fixly/models"
	jobsvc "fixly/services/job"

	"github.com/gin-gonic/gin"
)

// JobHandler exposes the job lifecycle endpoints.
type JobHandler struct {
	Service jobsvc.Service
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(svc jobsvc.Service) *JobHandler {
	return &JobHandler{Service: svc}
}

// CreateJobHandler creates a new pending job for the calling customer.
func (h *JobHandler) CreateJobHandler(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)
	var input struct {
		Title       string    `json:"title" binding:"required"`
		Price       float64   `json:"price" binding:"required"`
		Currency    string    `json:"currency"`
		ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	job, err := h.Service.CreateJob(c.Request.Context(), principal.ID, input.Title, input.Price, input.Currency, input.ScheduledAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// GetJobHandler returns a job by ID. Only parties to the job and admins may
// see it.
func (h *JobHandler) GetJobHandler(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)
	job, err := h.Service.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !jobVisibleTo(job, principal) {
		respondError(c, jobsvc.UnauthorizedError{Action: "view this job", Role: principal.Role})
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobsHandler returns the jobs visible to the caller.
func (h *JobHandler) ListJobsHandler(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)
	jobs, err := h.Service.ListForPrincipal(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// ListOpenJobsHandler returns pending jobs awaiting a professional.
func (h *JobHandler) ListOpenJobsHandler(c *gin.Context) {
	jobs, err := h.Service.ListOpen(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// AcceptJobHandler assigns the calling professional to a pending job.
func (h *JobHandler) AcceptJobHandler(c *gin.Context) {
	h.transition(c, h.Service.Accept)
}

// StartJobHandler moves an accepted job to in_progress.
func (h *JobHandler) StartJobHandler(c *gin.Context) {
	h.transition(c, h.Service.Start)
}

// CompleteJobHandler moves an in-progress job to completed.
func (h *JobHandler) CompleteJobHandler(c *gin.Context) {
	h.transition(c, h.Service.Complete)
}

func (h *JobHandler) transition(c *gin.Context, op func(ctx context.Context, id string, actor *models.Principal) (*models.Job, error)) {
	principal, _ := middleware.PrincipalFromContext(c)
	job, err := op(c.Request.Context(), c.Param("id"), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func jobVisibleTo(job *models.Job, p *models.Principal) bool {
	if p == nil {
		return false
	}
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleCustomer:
		return job.CustomerID == p.ID
	case models.RoleProfessional:
		return job.ProfessionalID == p.ID || job.Status == models.JobPending
	}
	return false
}
