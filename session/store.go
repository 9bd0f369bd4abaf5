// File: fixly/session/store.go
package session

import (
	"context"
	"sync"

	"fixly/models"
	"fixly/services/access"
	jobsvc "fixly/services/job"
)

// Store is the explicitly owned context object for one user session. It holds
// the resolved principal (or none, once resolution completes) and the
// session's view of the job collection, hydrated from the persistence
// collaborator. The guard and the cancellation engine borrow read access;
// confirmed cancellations mutate through SetStatus.
//
// All operations within one session are driven by a single logical actor;
// the mutex only protects against the asynchronous identity resolution
// racing a concurrent read.
type Store struct {
	mu        sync.RWMutex
	principal *models.Principal
	resolved  bool
	jobs      map[string]*models.Job
}

// NewStore returns an empty session store awaiting identity resolution.
func NewStore() *Store {
	return &Store{
		jobs: make(map[string]*models.Job),
	}
}

// Resolve completes identity resolution. A nil principal marks the session
// anonymous. Safe to call again on re-authentication.
func (s *Store) Resolve(p *models.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = p
	s.resolved = true
}

// Clear logs the session out: the principal is destroyed and the job view
// emptied. The session stays resolved (resolved-anonymous, not pending).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = nil
	s.resolved = true
	s.jobs = make(map[string]*models.Job)
}

// Principal returns the active principal, if any, and whether identity
// resolution has completed.
func (s *Store) Principal() (*models.Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal, s.resolved
}

// LoadJobs hydrates the session's job view from the persistence collaborator.
func (s *Store) LoadJobs(jobs []models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range jobs {
		j := jobs[i]
		s.jobs[j.ID] = &j
	}
}

// Find returns a copy of the stored job, or a NotFoundError.
func (s *Store) Find(_ context.Context, id string) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, jobsvc.NotFoundError{ID: id}
	}
	clone := *job
	return &clone, nil
}

// SetStatus mutates the stored record in place. Transitions are validated
// against the lifecycle state machine; terminal records are immutable.
func (s *Store) SetStatus(_ context.Context, id string, status models.JobStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return jobsvc.NotFoundError{ID: id}
	}
	if !job.Status.CanTransitionTo(status) {
		return jobsvc.InvalidStateError{ID: id, From: job.Status, To: status}
	}
	job.Status = status
	return nil
}

// Route evaluates the navigation guard against this session's current
// identity state. While resolution is outstanding the outcome is pending and
// must not trigger navigation.
func (s *Store) Route(screen string) access.Decision {
	p, resolved := s.Principal()
	return access.Route(p, resolved, screen)
}

var _ jobsvc.Registry = (*Store)(nil)
