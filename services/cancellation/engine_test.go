package cancellation

import (
	"context"
	"errors"
	"testing"
	"time"

	"fixly/models"
	jobsvc "fixly/services/job"

	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubRegistry struct {
	jobs map[string]*models.Job
}

func (r *stubRegistry) Find(_ context.Context, id string) (*models.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, jobsvc.NotFoundError{ID: id}
	}
	clone := *j
	return &clone, nil
}

func (r *stubRegistry) SetStatus(_ context.Context, id string, status models.JobStatus) error {
	j, ok := r.jobs[id]
	if !ok {
		return jobsvc.NotFoundError{ID: id}
	}
	if !j.Status.CanTransitionTo(status) {
		return jobsvc.InvalidStateError{ID: id, From: j.Status, To: status}
	}
	j.Status = status
	return nil
}

type stubAccounts struct {
	counts map[string]int
}

func (a *stubAccounts) Create(_ context.Context, acct models.Account) (string, error) {
	return acct.ID, nil
}
func (a *stubAccounts) GetByID(_ context.Context, id string) (*models.Account, error) {
	return &models.Account{ID: id, CancellationCount: a.counts[id]}, nil
}
func (a *stubAccounts) GetByEmail(_ context.Context, _ string) (*models.Account, error) {
	return nil, nil
}
func (a *stubAccounts) SetTokenHash(_ context.Context, _, _ string) error { return nil }
func (a *stubAccounts) IncrementCancellationCount(_ context.Context, id string) (int, error) {
	a.counts[id]++
	return a.counts[id], nil
}
func (a *stubAccounts) ListByRole(_ context.Context, _ models.Role) ([]models.Account, error) {
	return nil, nil
}
func (a *stubAccounts) ListByMinCancellations(_ context.Context, _ int) ([]models.Account, error) {
	return nil, nil
}

type stubCharger struct {
	charged []float64
}

func (c *stubCharger) ChargePenalty(_ context.Context, accountID string, amount float64, currency, jobID string) (*models.Invoice, error) {
	c.charged = append(c.charged, amount)
	return &models.Invoice{InvoiceID: "inv1", AccountID: accountID, JobID: jobID, Amount: amount, Currency: currency, Status: "pending"}, nil
}

type stubNotifier struct {
	events int
}

func (n *stubNotifier) JobCancelled(_ context.Context, _ *models.Job, _ *models.Principal, _ float64) {
	n.events++
}

type stubEscalator struct {
	queued []string
}

func (e *stubEscalator) QueueReview(_ context.Context, accountID, _ string, _ int) error {
	e.queued = append(e.queued, accountID)
	return nil
}

type fixture struct {
	engine    *Engine
	registry  *stubRegistry
	accounts  *stubAccounts
	charger   *stubCharger
	notifier  *stubNotifier
	escalator *stubEscalator
}

func newFixture(jobs ...*models.Job) *fixture {
	reg := &stubRegistry{jobs: make(map[string]*models.Job)}
	for _, j := range jobs {
		reg.jobs[j.ID] = j
	}
	f := &fixture{
		registry:  reg,
		accounts:  &stubAccounts{counts: make(map[string]int)},
		charger:   &stubCharger{},
		notifier:  &stubNotifier{},
		escalator: &stubEscalator{},
	}
	f.engine = &Engine{
		Registry:  f.registry,
		Accounts:  f.accounts,
		Billing:   f.charger,
		Notifier:  f.notifier,
		Escalator: f.escalator,
		Logger:    zap.NewNop(),
	}
	return f
}

var (
	customer     = &models.Principal{ID: "c1", Role: models.RoleCustomer, DisplayName: "Dana"}
	professional = &models.Principal{ID: "p1", Role: models.RoleProfessional, DisplayName: "Sam"}
)

// ---------------------------------------------------------------------------
// Preview
// ---------------------------------------------------------------------------

func TestPreviewComputesFreshDecision(t *testing.T) {
	f := newFixture(jobIn(models.JobAccepted, 15*time.Minute))

	decision, err := f.engine.Preview(context.Background(), "j1", professional, now)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if decision.PenaltyAmount != 30 {
		t.Fatalf("penalty = %v, want 30", decision.PenaltyAmount)
	}

	// Nothing mutated, nothing emitted.
	if f.registry.jobs["j1"].Status != models.JobAccepted {
		t.Fatalf("preview mutated job status to %s", f.registry.jobs["j1"].Status)
	}
	if len(f.charger.charged) != 0 || f.notifier.events != 0 {
		t.Fatal("preview must not emit charges or notifications")
	}
}

func TestPreviewRejectsNonParties(t *testing.T) {
	f := newFixture(jobIn(models.JobAccepted, 15*time.Minute))
	outsider := &models.Principal{ID: "p9", Role: models.RoleProfessional}

	_, err := f.engine.Preview(context.Background(), "j1", outsider, now)
	var unauthorized jobsvc.UnauthorizedError
	if !errors.As(err, &unauthorized) {
		t.Fatalf("err = %v, want UnauthorizedError", err)
	}
}

func TestPreviewUnknownJob(t *testing.T) {
	f := newFixture()
	_, err := f.engine.Preview(context.Background(), "missing", customer, now)
	var notFound jobsvc.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

// ---------------------------------------------------------------------------
// Confirm
// ---------------------------------------------------------------------------

func TestConfirmCancelsOnceAndEmitsPenalty(t *testing.T) {
	f := newFixture(jobIn(models.JobAccepted, 15*time.Minute))

	res, err := f.engine.Confirm(context.Background(), professional, ConfirmInput{
		JobID:  "j1",
		Reason: "Double booked",
	}, now)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if res.Job.Status != models.JobCancelled {
		t.Fatalf("result status = %s, want cancelled", res.Job.Status)
	}
	if f.registry.jobs["j1"].Status != models.JobCancelled {
		t.Fatalf("stored status = %s, want cancelled", f.registry.jobs["j1"].Status)
	}
	if len(f.charger.charged) != 1 || f.charger.charged[0] != 30 {
		t.Fatalf("charged = %v, want exactly one charge of 30", f.charger.charged)
	}
	if res.Invoice == nil || res.Invoice.Amount != 30 {
		t.Fatalf("invoice = %+v, want amount 30", res.Invoice)
	}
	if f.notifier.events != 1 {
		t.Fatalf("notifications = %d, want 1", f.notifier.events)
	}
	if res.CancellationCount != 1 {
		t.Fatalf("cancellation count = %d, want 1", res.CancellationCount)
	}

	// Re-confirming the now-terminal job fails and emits nothing more.
	_, err = f.engine.Confirm(context.Background(), professional, ConfirmInput{
		JobID:  "j1",
		Reason: "Double booked",
	}, now)
	var invalid jobsvc.InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("second confirm err = %v, want InvalidStateError", err)
	}
	if len(f.charger.charged) != 1 || f.notifier.events != 1 {
		t.Fatal("failed confirm must not emit again")
	}
}

func TestConfirmFreeCancellationSkipsBilling(t *testing.T) {
	f := newFixture(jobIn(models.JobPending, time.Hour))

	res, err := f.engine.Confirm(context.Background(), customer, ConfirmInput{
		JobID:  "j1",
		Reason: "Schedule conflict",
	}, now)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if res.Decision.PenaltyAmount != 0 {
		t.Fatalf("penalty = %v, want 0", res.Decision.PenaltyAmount)
	}
	if len(f.charger.charged) != 0 {
		t.Fatalf("charged = %v, want no charges for a free cancellation", f.charger.charged)
	}
	if res.Invoice != nil {
		t.Fatalf("invoice = %+v, want none", res.Invoice)
	}
}

func TestConfirmValidatesReason(t *testing.T) {
	cases := []struct {
		name   string
		reason string
		note   string
	}{
		{"empty reason", "", ""},
		{"reason from the other role's list", "Double booked", ""},
		{"unknown reason", "Just because", ""},
		{"Other without note", ReasonOther, ""},
		{"Other with blank note", ReasonOther, "   "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(jobIn(models.JobAccepted, 15*time.Minute))
			_, err := f.engine.Confirm(context.Background(), customer, ConfirmInput{
				JobID:  "j1",
				Reason: tc.reason,
				Note:   tc.note,
			}, now)
			var validation jobsvc.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			// Failed validation leaves the record untouched.
			if f.registry.jobs["j1"].Status != models.JobAccepted {
				t.Fatalf("status = %s, want accepted", f.registry.jobs["j1"].Status)
			}
			if len(f.charger.charged) != 0 || f.notifier.events != 0 {
				t.Fatal("failed validation must not emit")
			}
		})
	}
}

func TestConfirmOtherWithNoteSucceeds(t *testing.T) {
	f := newFixture(jobIn(models.JobAccepted, 15*time.Minute))

	res, err := f.engine.Confirm(context.Background(), customer, ConfirmInput{
		JobID:  "j1",
		Reason: ReasonOther,
		Note:   "moving house earlier than planned",
	}, now)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if res.Job.Status != models.JobCancelled {
		t.Fatalf("status = %s, want cancelled", res.Job.Status)
	}
	if res.Decision.PenaltyAmount != 20 {
		t.Fatalf("penalty = %v, want 20", res.Decision.PenaltyAmount)
	}
}

func TestConfirmTerminalJobLeavesRecordUnchanged(t *testing.T) {
	f := newFixture(jobIn(models.JobCompleted, -time.Hour))

	_, err := f.engine.Confirm(context.Background(), customer, ConfirmInput{
		JobID:  "j1",
		Reason: "Schedule conflict",
	}, now)
	var invalid jobsvc.InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidStateError", err)
	}
	if f.registry.jobs["j1"].Status != models.JobCompleted {
		t.Fatalf("status = %s, want completed", f.registry.jobs["j1"].Status)
	}
	if f.accounts.counts[customer.ID] != 0 {
		t.Fatal("failed confirm must not touch the cancellation counter")
	}
}

func TestConfirmQueuesReviewAtTier(t *testing.T) {
	f := newFixture(jobIn(models.JobPending, time.Hour))
	f.accounts.counts[customer.ID] = models.CancellationReviewTier - 1

	res, err := f.engine.Confirm(context.Background(), customer, ConfirmInput{
		JobID:  "j1",
		Reason: "Schedule conflict",
	}, now)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if res.CancellationCount != models.CancellationReviewTier {
		t.Fatalf("count = %d, want %d", res.CancellationCount, models.CancellationReviewTier)
	}
	if res.Tier != TierReview {
		t.Fatalf("tier = %q, want %q", res.Tier, TierReview)
	}
	if len(f.escalator.queued) != 1 || f.escalator.queued[0] != customer.ID {
		t.Fatalf("queued = %v, want [%s]", f.escalator.queued, customer.ID)
	}
}

func TestConfirmBelowTierDoesNotQueue(t *testing.T) {
	f := newFixture(jobIn(models.JobPending, time.Hour))

	res, err := f.engine.Confirm(context.Background(), customer, ConfirmInput{
		JobID:  "j1",
		Reason: "Schedule conflict",
	}, now)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if res.Tier != TierNone {
		t.Fatalf("tier = %q, want %q", res.Tier, TierNone)
	}
	if len(f.escalator.queued) != 0 {
		t.Fatalf("queued = %v, want none", f.escalator.queued)
	}
}
