package models

import "time"

// Invoice records a penalty charge handed off to billing.
type Invoice struct {
	InvoiceID string    `json:"invoiceId"`
	AccountID string    `json:"accountId"`
	JobID     string    `json:"jobId"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	PaymentID string    `json:"paymentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
