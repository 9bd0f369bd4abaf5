package notification

import (
	"context"

	"fixly/models"

	"go.uber.org/zap"
)

// Notifier informs counterparties about job lifecycle events. Delivery
// transport is an external collaborator; the default implementation records
// the event in the structured log for the delivery pipeline to pick up.
type Notifier interface {
	JobCancelled(ctx context.Context, job *models.Job, actor *models.Principal, penalty float64)
}

// LogNotifier writes notification events to the application log.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) JobCancelled(_ context.Context, job *models.Job, actor *models.Principal, penalty float64) {
	n.Logger.Info("job cancelled",
		zap.String("jobId", job.ID),
		zap.String("title", job.Title),
		zap.String("cancelledBy", actor.ID),
		zap.String("role", string(actor.Role)),
		zap.Float64("penalty", penalty),
		zap.String("customerId", job.CustomerID),
		zap.String("professionalId", job.ProfessionalID),
	)
}
