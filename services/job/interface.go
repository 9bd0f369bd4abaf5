package job

import (
	"context"
	"time"

	"fixly/models"
)

// Registry is the minimal lookup/mutation surface over a job collection. It
// is implemented both by the Mongo-backed service and by the in-memory
// session store, so the guard and the cancellation engine reach identical
// conclusions regardless of which backs them.
type Registry interface {
	Find(ctx context.Context, id string) (*models.Job, error)
	SetStatus(ctx context.Context, id string, status models.JobStatus) error
}

// Service defines the full job lifecycle surface.
type Service interface {
	Registry
	CreateJob(ctx context.Context, customerID, title string, price float64, currency string, scheduledAt time.Time) (*models.Job, error)
	Accept(ctx context.Context, id string, actor *models.Principal) (*models.Job, error)
	Start(ctx context.Context, id string, actor *models.Principal) (*models.Job, error)
	Complete(ctx context.Context, id string, actor *models.Principal) (*models.Job, error)
	ListForPrincipal(ctx context.Context, p *models.Principal) ([]models.Job, error)
	ListOpen(ctx context.Context) ([]models.Job, error)
}
