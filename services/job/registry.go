package job

import (
	"context"
	"strings"
	"time"

	jobRepo "fixly/database/repository/job"
	"fixly/models"
	"fixly/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultJobService implements Service on top of the job repository.
type DefaultJobService struct {
	Repo jobRepo.JobRepository
}

// CreateJob validates and persists a new pending job for a customer.
func (s *DefaultJobService) CreateJob(ctx context.Context, customerID, title string, price float64, currency string, scheduledAt time.Time) (*models.Job, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if price < 0 {
		return nil, ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if scheduledAt.IsZero() {
		return nil, ValidationError{Field: "scheduledAt", Reason: "must be set"}
	}
	if currency == "" {
		currency = "USD"
	}

	job := models.Job{
		Title:       strings.TrimSpace(title),
		Price:       price,
		Currency:    currency,
		ScheduledAt: scheduledAt,
		Status:      models.JobPending,
		CustomerID:  customerID,
	}
	id, err := s.Repo.Create(ctx, job)
	if err != nil {
		return nil, err
	}
	return s.Find(ctx, id)
}

// Find returns the job with the given ID.
func (s *DefaultJobService) Find(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, NotFoundError{ID: id}
	}
	return job, nil
}

// SetStatus applies a validated lifecycle transition. The repository update
// is conditional on the current status, so a concurrent session that already
// moved the job is reported as an invalid transition, not a silent overwrite.
func (s *DefaultJobService) SetStatus(ctx context.Context, id string, status models.JobStatus) error {
	job, err := s.Find(ctx, id)
	if err != nil {
		return err
	}
	if !job.Status.CanTransitionTo(status) {
		return InvalidStateError{ID: id, From: job.Status, To: status}
	}
	if err := s.Repo.UpdateStatus(ctx, id, job.Status, status); err != nil {
		if err == mongo.ErrNoDocuments {
			return InvalidStateError{ID: id, From: job.Status, To: status}
		}
		return err
	}
	utils.GetLogger().Info("job status changed",
		zap.String("jobId", id),
		zap.String("from", string(job.Status)),
		zap.String("to", string(status)),
	)
	return nil
}

// Accept assigns the acting professional to a pending job.
func (s *DefaultJobService) Accept(ctx context.Context, id string, actor *models.Principal) (*models.Job, error) {
	if actor == nil || actor.Role != models.RoleProfessional {
		return nil, UnauthorizedError{Action: "accept a job", Role: roleOf(actor)}
	}
	job, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobPending {
		return nil, InvalidStateError{ID: id, From: job.Status, To: models.JobAccepted}
	}
	if err := s.Repo.Accept(ctx, id, actor.ID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, InvalidStateError{ID: id, From: job.Status, To: models.JobAccepted}
		}
		return nil, err
	}
	return s.Find(ctx, id)
}

// Start moves an accepted job to in_progress. Only the assigned professional
// may start it.
func (s *DefaultJobService) Start(ctx context.Context, id string, actor *models.Principal) (*models.Job, error) {
	return s.professionalTransition(ctx, id, actor, models.JobInProgress, "start a job")
}

// Complete moves an in-progress job to completed. Only the assigned
// professional may complete it.
func (s *DefaultJobService) Complete(ctx context.Context, id string, actor *models.Principal) (*models.Job, error) {
	return s.professionalTransition(ctx, id, actor, models.JobCompleted, "complete a job")
}

func (s *DefaultJobService) professionalTransition(ctx context.Context, id string, actor *models.Principal, to models.JobStatus, action string) (*models.Job, error) {
	if actor == nil || actor.Role != models.RoleProfessional {
		return nil, UnauthorizedError{Action: action, Role: roleOf(actor)}
	}
	job, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.ProfessionalID != actor.ID {
		return nil, UnauthorizedError{Action: action, Role: actor.Role}
	}
	if err := s.SetStatus(ctx, id, to); err != nil {
		return nil, err
	}
	return s.Find(ctx, id)
}

// ListForPrincipal returns the jobs visible to the principal: their own for
// customers and professionals, all jobs for admins.
func (s *DefaultJobService) ListForPrincipal(ctx context.Context, p *models.Principal) ([]models.Job, error) {
	if p == nil {
		return nil, UnauthorizedError{Action: "list jobs", Role: ""}
	}
	switch p.Role {
	case models.RoleCustomer:
		return s.Repo.ListByCustomer(ctx, p.ID)
	case models.RoleProfessional:
		return s.Repo.ListByProfessional(ctx, p.ID)
	case models.RoleAdmin:
		return s.Repo.ListAll(ctx)
	default:
		return nil, UnauthorizedError{Action: "list jobs", Role: p.Role}
	}
}

// ListOpen returns all pending jobs awaiting a professional.
func (s *DefaultJobService) ListOpen(ctx context.Context) ([]models.Job, error) {
	return s.Repo.ListByStatus(ctx, models.JobPending)
}

func roleOf(p *models.Principal) models.Role {
	if p == nil {
		return ""
	}
	return p.Role
}
