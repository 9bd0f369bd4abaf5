package account

import (
	"context"

	"fixly/models"
)

// RegisterInput carries a customer or professional signup request.
type RegisterInput struct {
	Role        models.Role
	DisplayName string
	Email       string
	Password    string
}

// AuthResponse is returned on successful authentication.
type AuthResponse struct {
	Token   string         `json:"token"`
	Account models.Account `json:"account"`
}

// Service manages account registration and authentication.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*models.Account, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	Revoke(ctx context.Context, accountID string) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.Account, error)
}
