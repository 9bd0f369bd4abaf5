package cancellation

import (
	"time"

	"fixly/models"
	jobsvc "fixly/services/job"
)

// Penalty schedule. Flat fees in the job's currency.
const (
	lateWindow              = 30 * time.Minute
	lateCustomerPenalty     = 20
	lateProfessionalPenalty = 30
	abandonPenalty          = 100
)

// Decide computes the cancellation consequence for a (job, actor role, now)
// triple. Rules are evaluated in precedence order and the first match wins:
//
//  1. pending: free; no commitment exists yet.
//  2. accepted: free with more than 30 minutes to the appointment; inside the
//     30-minute window the professional pays 30 and the customer 20. Exactly
//     30 minutes out is inside the window.
//  3. in_progress: the professional abandoning mid-job pays 100; the customer
//     may halt free of charge.
//  4. completed or cancelled: not a cancellation target at all.
//
// The decision depends on wall-clock time and must be computed fresh on each
// request, never cached.
func Decide(job *models.Job, actorRole models.Role, now time.Time) (*models.CancellationDecision, error) {
	if actorRole != models.RoleCustomer && actorRole != models.RoleProfessional {
		return nil, jobsvc.UnauthorizedError{Action: "cancel a job", Role: actorRole}
	}

	decision := &models.CancellationDecision{
		Currency:       job.Currency,
		AllowedReasons: AllowedReasons(actorRole),
		RequiresOther:  true,
	}

	switch job.Status {
	case models.JobPending:
		// Free withdrawal for either party.
	case models.JobAccepted:
		until := job.ScheduledAt.Sub(now)
		switch {
		case until > lateWindow:
			// Enough notice; free.
		case until > 0:
			if actorRole == models.RoleProfessional {
				decision.PenaltyAmount = lateProfessionalPenalty
			} else {
				decision.PenaltyAmount = lateCustomerPenalty
			}
		default:
			// Appointment time already elapsed without any transition having
			// fired. Cancels free of charge; the engine flags these stale
			// records whenever it sees one.
		}
	case models.JobInProgress:
		if actorRole == models.RoleProfessional {
			decision.PenaltyAmount = abandonPenalty
		}
	default:
		// completed, cancelled, or unknown: terminal for cancellation purposes.
		return nil, jobsvc.InvalidStateError{ID: job.ID, From: job.Status, To: models.JobCancelled}
	}

	return decision, nil
}
