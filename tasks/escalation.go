package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeEscalationReview = "cancellation:review"

// EscalationPayload identifies an account whose cancellation count reached
// the administrative review tier.
type EscalationPayload struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
	Count       int    `json:"count"`
}

func NewEscalationReviewTask(payload EscalationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEscalationReview, b), nil
}
