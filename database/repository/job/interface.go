package jobRepo

import (
	"context"

	"fixly/models"
)

// JobRepository is the persistence collaborator for job records. Lifecycle
// rules are enforced above it, in the job service; status updates here are
// conditional on the expected current status so that concurrent sessions are
// arbitrated by the database.
type JobRepository interface {
	Create(ctx context.Context, job models.Job) (string, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	// UpdateStatus moves a job from the expected current status to the new
	// one. It reports mongo.ErrNoDocuments when the job is missing or its
	// status no longer matches.
	UpdateStatus(ctx context.Context, id string, from, to models.JobStatus) error
	// Accept assigns a professional and moves a pending job to accepted in a
	// single update.
	Accept(ctx context.Context, id, professionalID string) error
	ListByCustomer(ctx context.Context, customerID string) ([]models.Job, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]models.Job, error)
	ListByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error)
	ListAll(ctx context.Context) ([]models.Job, error)
}
