package cancellation

import (
	"context"

	"fixly/models"
	"fixly/tasks"

	"github.com/hibiken/asynq"
)

// Tier classifies a lifetime cancellation count against the advisory
// thresholds. Tiers are informational and never block a cancellation.
type Tier string

const (
	TierNone    Tier = "none"
	TierWarning Tier = "warning" // in-app warning
	TierProfile Tier = "profile" // shown on the public profile
	TierReview  Tier = "review"  // queued for administrative review
)

// TierFor returns the tier a cancellation count falls in.
func TierFor(count int) Tier {
	switch {
	case count >= models.CancellationReviewTier:
		return TierReview
	case count >= models.CancellationProfileTier:
		return TierProfile
	case count >= models.CancellationWarnTier:
		return TierWarning
	default:
		return TierNone
	}
}

// Escalator queues an account for administrative review.
type Escalator interface {
	QueueReview(ctx context.Context, accountID, displayName string, count int) error
}

// AsynqEscalator enqueues review tasks on the shared Redis-backed queue.
type AsynqEscalator struct {
	Client *asynq.Client
}

func (a *AsynqEscalator) QueueReview(ctx context.Context, accountID, displayName string, count int) error {
	task, err := tasks.NewEscalationReviewTask(tasks.EscalationPayload{
		AccountID:   accountID,
		DisplayName: displayName,
		Count:       count,
	})
	if err != nil {
		return err
	}
	_, err = a.Client.EnqueueContext(ctx, task)
	return err
}
