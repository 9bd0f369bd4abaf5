package billing

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"fixly/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// Charger settles penalty charges. The cancellation engine computes the
// amount; collecting it is this collaborator's responsibility.
type Charger interface {
	ChargePenalty(ctx context.Context, accountID string, amount float64, currency, jobID string) (*models.Invoice, error)
}

// StripeCharger hands the penalty off to Stripe as a PaymentIntent.
type StripeCharger struct {
	Logger *zap.Logger
}

// NewStripeCharger creates a StripeCharger.
func NewStripeCharger(logger *zap.Logger) *StripeCharger {
	return &StripeCharger{Logger: logger}
}

// ChargePenalty creates the payment intent and returns the pending invoice.
func (s *StripeCharger) ChargePenalty(ctx context.Context, accountID string, amount float64, currency, jobID string) (*models.Invoice, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(int64(math.Round(amount * 100))),
		Currency:    stripe.String(strings.ToLower(currency)),
		Description: stripe.String(fmt.Sprintf("Cancellation penalty for job %s", jobID)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("jobId", jobID)
	params.AddMetadata("accountId", accountID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create penalty payment intent: %w", err)
	}

	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		AccountID: accountID,
		JobID:     jobID,
		Amount:    amount,
		Currency:  currency,
		Status:    "pending",
		PaymentID: pi.ID,
		CreatedAt: time.Now(),
	}

	s.Logger.Info("penalty charge created",
		zap.String("invoice", inv.InvoiceID),
		zap.String("accountId", accountID),
		zap.String("jobId", jobID),
		zap.Float64("amount", amount),
	)
	return inv, nil
}
