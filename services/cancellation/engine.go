package cancellation

import (
	"context"
	"strings"
	"time"

	accountRepo "fixly/database/repository/account"
	"fixly/models"
	"fixly/services/billing"
	jobsvc "fixly/services/job"
	"fixly/services/notification"

	"go.uber.org/zap"
)

// Engine applies the cancellation policy. It is stateless: it borrows read
// access to the registry and requests exactly one state mutation on a
// confirmed cancellation. The penalty charge and counterparty notification
// are handed to external collaborators; the engine performs no I/O of its own
// beyond those handoffs.
type Engine struct {
	Registry  jobsvc.Registry
	Accounts  accountRepo.AccountRepository
	Billing   billing.Charger
	Notifier  notification.Notifier
	Escalator Escalator
	Logger    *zap.Logger
}

// ConfirmInput carries a cancellation confirmation request.
type ConfirmInput struct {
	JobID  string
	Reason string
	Note   string
}

// Result is the outcome of a confirmed cancellation.
type Result struct {
	Job               *models.Job                   `json:"job"`
	Decision          *models.CancellationDecision  `json:"decision"`
	Invoice           *models.Invoice               `json:"invoice,omitempty"`
	CancellationCount int                           `json:"cancellationCount"`
	Tier              Tier                          `json:"tier"`
}

// Preview returns the fresh decision for cancelling a job now, without
// mutating anything.
func (e *Engine) Preview(ctx context.Context, jobID string, actor *models.Principal, now time.Time) (*models.CancellationDecision, error) {
	job, err := e.Registry.Find(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := partyCheck(job, actor); err != nil {
		return nil, err
	}
	decision, err := Decide(job, actor.Role, now)
	if err != nil {
		return nil, err
	}
	e.flagStale(job, now)
	return decision, nil
}

// Confirm validates the cancellation and, only once every check has passed,
// applies the single registry transition to cancelled, then emits the penalty
// to billing and notifies the counterparties. No partial writes: any error
// before the transition leaves the job untouched.
func (e *Engine) Confirm(ctx context.Context, actor *models.Principal, in ConfirmInput, now time.Time) (*Result, error) {
	job, err := e.Registry.Find(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	if err := partyCheck(job, actor); err != nil {
		return nil, err
	}
	decision, err := Decide(job, actor.Role, now)
	if err != nil {
		return nil, err
	}
	if err := validateReason(actor.Role, in.Reason, in.Note); err != nil {
		return nil, err
	}
	e.flagStale(job, now)

	if err := e.Registry.SetStatus(ctx, job.ID, models.JobCancelled); err != nil {
		return nil, err
	}
	job.Status = models.JobCancelled

	res := &Result{Job: job, Decision: decision, Tier: TierNone}

	count, err := e.Accounts.IncrementCancellationCount(ctx, actor.ID)
	if err != nil {
		e.Logger.Error("cancellation counter update failed",
			zap.String("accountId", actor.ID), zap.Error(err))
	} else {
		res.CancellationCount = count
		res.Tier = TierFor(count)
		e.escalate(ctx, actor, count)
	}

	if decision.PenaltyAmount > 0 && e.Billing != nil {
		inv, err := e.Billing.ChargePenalty(ctx, actor.ID, decision.PenaltyAmount, decision.Currency, job.ID)
		if err != nil {
			// Settlement is the billing collaborator's responsibility; the
			// cancellation stands either way.
			e.Logger.Error("penalty charge handoff failed",
				zap.String("jobId", job.ID), zap.Error(err))
		} else {
			res.Invoice = inv
		}
	}

	if e.Notifier != nil {
		e.Notifier.JobCancelled(ctx, job, actor, decision.PenaltyAmount)
	}

	return res, nil
}

// partyCheck ensures the actor is a party to the job: the owning customer or
// the assigned professional.
func partyCheck(job *models.Job, actor *models.Principal) error {
	if actor == nil {
		return jobsvc.UnauthorizedError{Action: "cancel a job", Role: ""}
	}
	switch actor.Role {
	case models.RoleCustomer:
		if job.CustomerID == actor.ID {
			return nil
		}
	case models.RoleProfessional:
		if job.ProfessionalID != "" && job.ProfessionalID == actor.ID {
			return nil
		}
	}
	return jobsvc.UnauthorizedError{Action: "cancel this job", Role: actor.Role}
}

func validateReason(role models.Role, reason, note string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return jobsvc.ValidationError{Field: "reason", Reason: "must not be empty"}
	}
	if !reasonAllowed(role, reason) {
		return jobsvc.ValidationError{Field: "reason", Reason: "not an allowed reason for role " + string(role)}
	}
	if reason == ReasonOther && strings.TrimSpace(note) == "" {
		return jobsvc.ValidationError{Field: "note", Reason: `required when reason is "Other"`}
	}
	return nil
}

// flagStale surfaces accepted jobs whose appointment time elapsed without any
// transition. They currently cancel free of charge; whether that grace is
// intentional is undecided, so every sighting is logged.
func (e *Engine) flagStale(job *models.Job, now time.Time) {
	if job.Status == models.JobAccepted && !job.ScheduledAt.After(now) {
		e.Logger.Warn("stale past-due accepted job",
			zap.String("jobId", job.ID),
			zap.Time("scheduledAt", job.ScheduledAt),
		)
	}
}

func (e *Engine) escalate(ctx context.Context, actor *models.Principal, count int) {
	switch {
	case count >= models.CancellationReviewTier:
		if e.Escalator == nil {
			return
		}
		if err := e.Escalator.QueueReview(ctx, actor.ID, actor.DisplayName, count); err != nil {
			e.Logger.Error("failed to queue account for review",
				zap.String("accountId", actor.ID), zap.Error(err))
			return
		}
		e.Logger.Info("account queued for administrative review",
			zap.String("accountId", actor.ID), zap.Int("count", count))
	case count == models.CancellationProfileTier:
		e.Logger.Info("cancellation count now visible on public profile",
			zap.String("accountId", actor.ID), zap.Int("count", count))
	case count == models.CancellationWarnTier:
		e.Logger.Warn("cancellation warning tier reached",
			zap.String("accountId", actor.ID), zap.Int("count", count))
	}
}
