package models

// CancellationDecision is the computed consequence of cancelling a job. It is
// derived fresh on every request, never persisted or cached, since the
// penalty depends on wall-clock time relative to the job's scheduled slot.
type CancellationDecision struct {
	PenaltyAmount  float64  `json:"penaltyAmount"`
	Currency       string   `json:"currency"`
	AllowedReasons []string `json:"allowedReasons"`
	RequiresOther  bool     `json:"requiresOther"` // selecting "Other" requires a free-text note
}

// Advisory cancellation-count tiers. The counter itself is maintained on the
// account record; crossing a tier never blocks a cancellation.
const (
	CancellationWarnTier    = 3  // in-app warning
	CancellationProfileTier = 5  // visible on the public profile
	CancellationReviewTier  = 10 // queued for administrative review
)
