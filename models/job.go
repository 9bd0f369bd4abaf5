package models

import "time"

// JobStatus represents the lifecycle state of a job.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobAccepted   JobStatus = "accepted"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// validTransitions defines the allowed lifecycle edges. No edge is ever
// skipped; completed and cancelled are terminal.
var validTransitions = map[JobStatus][]JobStatus{
	JobPending:    {JobAccepted, JobCancelled},
	JobAccepted:   {JobInProgress, JobCancelled},
	JobInProgress: {JobCompleted, JobCancelled},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobCancelled
}

// Job is a single service engagement between a customer and a professional.
type Job struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Price       float64   `bson:"price" json:"price"`
	Currency    string    `bson:"currency" json:"currency"`
	ScheduledAt time.Time `bson:"scheduledAt" json:"scheduledAt"` // fixed at creation, read-only afterwards
	Status      JobStatus `bson:"status" json:"status"`
	CustomerID  string    `bson:"customerId" json:"customerId"`
	// ProfessionalID is unset while the job is pending and set on entry to accepted.
	ProfessionalID string    `bson:"professionalId,omitempty" json:"professionalId,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
