package account

import (
	"context"
	"fmt"
	"strings"

	accountRepo "fixly/database/repository/account"
	"fixly/models"
	"fixly/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAccountService implements Service on top of the account repository.
type DefaultAccountService struct {
	Repo accountRepo.AccountRepository
}

// Register creates a customer or professional account. Admin principals are
// operator-configured, never registered.
func (s *DefaultAccountService) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	if in.Role != models.RoleCustomer && in.Role != models.RoleProfessional {
		return nil, fmt.Errorf("role must be %q or %q", models.RoleCustomer, models.RoleProfessional)
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if strings.TrimSpace(in.DisplayName) == "" {
		return nil, fmt.Errorf("display name is required")
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		utils.GetLogger().Error("Register: email lookup failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acct := models.Account{
		Role:         in.Role,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	id, err := s.Repo.Create(ctx, acct)
	if err != nil {
		utils.GetLogger().Error("Register: failed to create account", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	return s.Repo.GetByID(ctx, id)
}

// Authenticate verifies credentials and issues a fresh token. The token hash
// is stored on the account record and mirrored into the auth cache so the
// middleware can validate without a database round trip.
func (s *DefaultAccountService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	acct, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch account", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if acct == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(acct.ID, acct.Role, utils.AuthTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.SetTokenHash(ctx, acct.ID, tokenHash); err != nil {
		utils.GetLogger().Error("Authenticate: failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	acct.TokenHash = tokenHash

	// Best-effort cache warm; the middleware falls back to the repository.
	authCache := utils.GetAuthCacheClient()
	if authCache != nil {
		cacheKey := utils.AuthCachePrefix + acct.ID
		if err := authCache.Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("Authenticate: failed to warm auth cache", zap.Error(err))
		}
	}

	return &AuthResponse{Token: token, Account: *acct}, nil
}

// Revoke invalidates the account's current token.
func (s *DefaultAccountService) Revoke(ctx context.Context, accountID string) error {
	if err := s.Repo.SetTokenHash(ctx, accountID, ""); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	authCache := utils.GetAuthCacheClient()
	if authCache != nil {
		if err := authCache.Del(ctx, utils.AuthCachePrefix+accountID).Err(); err != nil {
			utils.GetLogger().Warn("Revoke: failed to clear auth cache", zap.Error(err))
		}
	}
	return nil
}

// GetByID returns the account with the given ID.
func (s *DefaultAccountService) GetByID(ctx context.Context, id string) (*models.Account, error) {
	acct, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, fmt.Errorf("account %s not found", id)
	}
	return acct, nil
}

// ListByRole returns all accounts with the given role.
func (s *DefaultAccountService) ListByRole(ctx context.Context, role models.Role) ([]models.Account, error) {
	return s.Repo.ListByRole(ctx, role)
}
