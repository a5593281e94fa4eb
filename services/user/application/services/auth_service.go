package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghuser/inventory/pkg/logger"
	userdomain "github.com/ghuser/inventory/services/user/domain"
	"github.com/ghuser/inventory/services/user/domain/models"
	"github.com/ghuser/inventory/services/user/domain/repositories"
)

// AuthService registers accounts and checks credentials.
type AuthService struct {
	repo repositories.UserRepository
	cost int
	log  logger.Logger
}

// NewAuthService returns an AuthService hashing with bcrypt at cost.
// A cost of zero uses bcrypt.DefaultCost.
func NewAuthService(repo repositories.UserRepository, cost int, log logger.Logger) *AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, cost: cost, log: log}
}

// Register creates an account. Returns ErrEmailTaken when the email is
// already registered in any letter case.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if len(password) < models.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", userdomain.ErrInvalidUser, models.MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := models.NewUser(name, email, string(hash))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", userdomain.ErrInvalidUser, err)
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.InfoContext(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Authenticate returns the account for email when password matches. Unknown
// emails and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	normalized, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, userdomain.ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return nil, userdomain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.log.InfoContext(ctx, "login rejected", "user_id", u.ID)
		return nil, userdomain.ErrInvalidCredentials
	}
	return u, nil
}

// Get returns the account with id.
func (s *AuthService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
