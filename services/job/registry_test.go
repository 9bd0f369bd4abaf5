package job

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"fixly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// stubJobRepo is an in-memory JobRepository with the same conditional-update
// contract as the Mongo implementation.
type stubJobRepo struct {
	jobs   map[string]*models.Job
	nextID int
}

func newStubJobRepo(jobs ...*models.Job) *stubJobRepo {
	r := &stubJobRepo{jobs: make(map[string]*models.Job)}
	for _, j := range jobs {
		r.jobs[j.ID] = j
	}
	return r
}

func (r *stubJobRepo) Create(_ context.Context, job models.Job) (string, error) {
	r.nextID++
	job.ID = fmt.Sprintf("job-%d", r.nextID)
	r.jobs[job.ID] = &job
	return job.ID, nil
}

func (r *stubJobRepo) GetByID(_ context.Context, id string) (*models.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) UpdateStatus(_ context.Context, id string, from, to models.JobStatus) error {
	j, ok := r.jobs[id]
	if !ok || j.Status != from {
		return mongo.ErrNoDocuments
	}
	j.Status = to
	return nil
}

func (r *stubJobRepo) Accept(_ context.Context, id, professionalID string) error {
	j, ok := r.jobs[id]
	if !ok || j.Status != models.JobPending {
		return mongo.ErrNoDocuments
	}
	j.Status = models.JobAccepted
	j.ProfessionalID = professionalID
	return nil
}

func (r *stubJobRepo) ListByCustomer(_ context.Context, customerID string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.CustomerID == customerID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *stubJobRepo) ListByProfessional(_ context.Context, professionalID string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.ProfessionalID == professionalID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *stubJobRepo) ListByStatus(_ context.Context, status models.JobStatus) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.Status == status {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *stubJobRepo) ListAll(_ context.Context) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		out = append(out, *j)
	}
	return out, nil
}

var (
	pro      = &models.Principal{ID: "p1", Role: models.RoleProfessional}
	otherPro = &models.Principal{ID: "p2", Role: models.RoleProfessional}
	cust     = &models.Principal{ID: "c1", Role: models.RoleCustomer}
)

func pendingJob(id string) *models.Job {
	return &models.Job{
		ID:          id,
		Title:       "Fix sink",
		Price:       120,
		Currency:    "USD",
		Status:      models.JobPending,
		CustomerID:  "c1",
		ScheduledAt: time.Now().Add(24 * time.Hour),
	}
}

func TestCreateJobValidation(t *testing.T) {
	svc := &DefaultJobService{Repo: newStubJobRepo()}
	ctx := context.Background()
	when := time.Now().Add(48 * time.Hour)

	cases := []struct {
		name        string
		title       string
		price       float64
		scheduledAt time.Time
		field       string
	}{
		{"blank title", "   ", 50, when, "title"},
		{"negative price", "Fix sink", -1, when, "price"},
		{"missing schedule", "Fix sink", 50, time.Time{}, "scheduledAt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateJob(ctx, "c1", tc.title, tc.price, "USD", tc.scheduledAt)
			var validation ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if validation.Field != tc.field {
				t.Fatalf("field = %q, want %q", validation.Field, tc.field)
			}
		})
	}
}

func TestCreateJobDefaults(t *testing.T) {
	svc := &DefaultJobService{Repo: newStubJobRepo()}

	job, err := svc.CreateJob(context.Background(), "c1", "  Fix sink  ", 120, "", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.Status != models.JobPending {
		t.Fatalf("status = %s, want pending", job.Status)
	}
	if job.Currency != "USD" {
		t.Fatalf("currency = %q, want USD default", job.Currency)
	}
	if job.Title != "Fix sink" {
		t.Fatalf("title = %q, want trimmed", job.Title)
	}
	if job.CustomerID != "c1" {
		t.Fatalf("customerID = %q, want c1", job.CustomerID)
	}
}

func TestFindUnknownJob(t *testing.T) {
	svc := &DefaultJobService{Repo: newStubJobRepo()}
	_, err := svc.Find(context.Background(), "missing")
	var notFound NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestAcceptAssignsProfessional(t *testing.T) {
	repo := newStubJobRepo(pendingJob("j1"))
	svc := &DefaultJobService{Repo: repo}

	job, err := svc.Accept(context.Background(), "j1", pro)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if job.Status != models.JobAccepted {
		t.Fatalf("status = %s, want accepted", job.Status)
	}
	if job.ProfessionalID != pro.ID {
		t.Fatalf("professionalID = %q, want %q", job.ProfessionalID, pro.ID)
	}
}

func TestAcceptRequiresProfessionalRole(t *testing.T) {
	svc := &DefaultJobService{Repo: newStubJobRepo(pendingJob("j1"))}

	for _, actor := range []*models.Principal{nil, cust} {
		_, err := svc.Accept(context.Background(), "j1", actor)
		var unauthorized UnauthorizedError
		if !errors.As(err, &unauthorized) {
			t.Fatalf("actor %+v: err = %v, want UnauthorizedError", actor, err)
		}
	}
}

func TestAcceptOnlyFromPending(t *testing.T) {
	repo := newStubJobRepo(pendingJob("j1"))
	svc := &DefaultJobService{Repo: repo}
	ctx := context.Background()

	if _, err := svc.Accept(ctx, "j1", pro); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	_, err := svc.Accept(ctx, "j1", otherPro)
	var invalid InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("second accept err = %v, want InvalidStateError", err)
	}
}

func TestStartAndCompleteByAssignedProfessional(t *testing.T) {
	repo := newStubJobRepo(pendingJob("j1"))
	svc := &DefaultJobService{Repo: repo}
	ctx := context.Background()

	if _, err := svc.Accept(ctx, "j1", pro); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	job, err := svc.Start(ctx, "j1", pro)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if job.Status != models.JobInProgress {
		t.Fatalf("status = %s, want in_progress", job.Status)
	}
	job, err = svc.Complete(ctx, "j1", pro)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if job.Status != models.JobCompleted {
		t.Fatalf("status = %s, want completed", job.Status)
	}
}

func TestStartRejectsUnassignedProfessional(t *testing.T) {
	repo := newStubJobRepo(pendingJob("j1"))
	svc := &DefaultJobService{Repo: repo}
	ctx := context.Background()

	if _, err := svc.Accept(ctx, "j1", pro); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	_, err := svc.Start(ctx, "j1", otherPro)
	var unauthorized UnauthorizedError
	if !errors.As(err, &unauthorized) {
		t.Fatalf("err = %v, want UnauthorizedError", err)
	}
	stored, _ := repo.GetByID(ctx, "j1")
	if stored.Status != models.JobAccepted {
		t.Fatalf("status = %s, want accepted (unchanged)", stored.Status)
	}
}

func TestCompleteRequiresInProgress(t *testing.T) {
	repo := newStubJobRepo(pendingJob("j1"))
	svc := &DefaultJobService{Repo: repo}
	ctx := context.Background()

	if _, err := svc.Accept(ctx, "j1", pro); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	// accepted -> completed skips in_progress
	_, err := svc.Complete(ctx, "j1", pro)
	var invalid InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidStateError", err)
	}
}

func TestSetStatusRejectsInvalidTransitions(t *testing.T) {
	repo := newStubJobRepo(pendingJob("j1"))
	svc := &DefaultJobService{Repo: repo}

	err := svc.SetStatus(context.Background(), "j1", models.JobCompleted)
	var invalid InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidStateError", err)
	}
}

func TestListForPrincipalScopesByRole(t *testing.T) {
	j1 := pendingJob("j1")
	j2 := pendingJob("j2")
	j2.CustomerID = "c2"
	j2.Status = models.JobAccepted
	j2.ProfessionalID = "p1"
	svc := &DefaultJobService{Repo: newStubJobRepo(j1, j2)}
	ctx := context.Background()

	mine, err := svc.ListForPrincipal(ctx, cust)
	if err != nil {
		t.Fatalf("customer list: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "j1" {
		t.Fatalf("customer sees %v, want only j1", mine)
	}

	assigned, err := svc.ListForPrincipal(ctx, pro)
	if err != nil {
		t.Fatalf("professional list: %v", err)
	}
	if len(assigned) != 1 || assigned[0].ID != "j2" {
		t.Fatalf("professional sees %v, want only j2", assigned)
	}

	all, err := svc.ListForPrincipal(ctx, &models.Principal{ID: "a1", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin sees %d jobs, want 2", len(all))
	}

	_, err = svc.ListForPrincipal(ctx, nil)
	var unauthorized UnauthorizedError
	if !errors.As(err, &unauthorized) {
		t.Fatalf("nil principal err = %v, want UnauthorizedError", err)
	}
}

func TestListOpenReturnsPendingOnly(t *testing.T) {
	j1 := pendingJob("j1")
	j2 := pendingJob("j2")
	j2.Status = models.JobAccepted
	svc := &DefaultJobService{Repo: newStubJobRepo(j1, j2)}

	open, err := svc.ListOpen(context.Background())
	if err != nil {
		t.Fatalf("ListOpen: %v", err)
	}
	if len(open) != 1 || open[0].ID != "j1" {
		t.Fatalf("open = %v, want only j1", open)
	}
}
