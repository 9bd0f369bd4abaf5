package job

import (
	"fmt"

	"fixly/models"
)

// NotFoundError signals an unknown job identifier.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("job %s not found", e.ID)
}

// InvalidStateError signals a lifecycle transition the state machine forbids,
// including any mutation of a terminal job.
type InvalidStateError struct {
	ID   string
	From models.JobStatus
	To   models.JobStatus
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("job %s cannot move from %s to %s", e.ID, e.From, e.To)
}

// ValidationError signals rejected input; nothing is mutated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnauthorizedError signals an operation invoked by a principal that is not
// permitted to perform it. The service layer re-checks role and party
// membership even when a route guard already ran.
type UnauthorizedError struct {
	Action string
	Role   models.Role
}

func (e UnauthorizedError) Error() string {
	return fmt.Sprintf("role %s may not %s", e.Role, e.Action)
}
