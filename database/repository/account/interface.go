package accountRepo

import (
	"context"

	"fixly/models"
)

// AccountRepository is the persistence collaborator for customer and
// professional accounts.
type AccountRepository interface {
	Create(ctx context.Context, account models.Account) (string, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	SetTokenHash(ctx context.Context, id, tokenHash string) error
	// IncrementCancellationCount bumps the account's lifetime cancellation
	// counter and returns the new value.
	IncrementCancellationCount(ctx context.Context, id string) (int, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.Account, error)
	// ListByMinCancellations returns accounts whose cancellation counter is at
	// or above the given threshold, for the administrative review queue.
	ListByMinCancellations(ctx context.Context, min int) ([]models.Account, error)
}
