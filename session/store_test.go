package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"fixly/models"
	"fixly/services/access"
	jobsvc "fixly/services/job"
)

func seededStore() *Store {
	s := NewStore()
	s.LoadJobs([]models.Job{
		{ID: "j1", Title: "Fix sink", Status: models.JobPending, CustomerID: "c1", ScheduledAt: time.Now().Add(2 * time.Hour)},
		{ID: "j2", Title: "Rewire outlet", Status: models.JobAccepted, CustomerID: "c1", ProfessionalID: "p1", ScheduledAt: time.Now().Add(time.Hour)},
		{ID: "j3", Title: "Paint fence", Status: models.JobCompleted, CustomerID: "c1", ProfessionalID: "p1", ScheduledAt: time.Now().Add(-time.Hour)},
	})
	return s
}

func TestFindReturnsCopy(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	job, err := s.Find(ctx, "j1")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	job.Status = models.JobCancelled

	again, err := s.Find(ctx, "j1")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if again.Status != models.JobPending {
		t.Fatalf("stored job mutated through returned copy: status = %s", again.Status)
	}
}

func TestFindUnknownJob(t *testing.T) {
	s := seededStore()
	_, err := s.Find(context.Background(), "missing")
	var notFound jobsvc.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestSetStatusFollowsStateMachine(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	if err := s.SetStatus(ctx, "j1", models.JobAccepted); err != nil {
		t.Fatalf("pending -> accepted: %v", err)
	}
	if err := s.SetStatus(ctx, "j1", models.JobInProgress); err != nil {
		t.Fatalf("accepted -> in_progress: %v", err)
	}

	// Skipping an edge is rejected.
	err := s.SetStatus(ctx, "j2", models.JobCompleted)
	var invalid jobsvc.InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("accepted -> completed err = %v, want InvalidStateError", err)
	}
}

func TestTerminalJobsAreImmutable(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	err := s.SetStatus(ctx, "j3", models.JobCancelled)
	var invalid jobsvc.InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidStateError", err)
	}

	job, _ := s.Find(ctx, "j3")
	if job.Status != models.JobCompleted {
		t.Fatalf("terminal job mutated: status = %s", job.Status)
	}
}

func TestRouteTracksIdentityResolution(t *testing.T) {
	s := NewStore()

	// Resolution outstanding: neutral outcome, no navigation.
	if d := s.Route(models.ScreenCustomerHome); d.Outcome != access.OutcomePending {
		t.Fatalf("outcome before resolution = %q, want pending", d.Outcome)
	}

	s.Resolve(&models.Principal{ID: "c1", Role: models.RoleCustomer})
	if d := s.Route(models.ScreenCustomerHome); !d.Allowed() {
		t.Fatalf("customer on customer-home after resolution = %+v, want allow", d)
	}
	if d := s.Route(models.ScreenAdminHome); d.Redirect != models.ScreenCustomerHome {
		t.Fatalf("customer on admin-home = %+v, want redirect to customer-home", d)
	}

	// Logout leaves the session resolved-anonymous.
	s.Clear()
	if d := s.Route(models.ScreenCustomerHome); d.Redirect != models.ScreenLanding {
		t.Fatalf("anonymous after Clear = %+v, want redirect to landing", d)
	}
}
