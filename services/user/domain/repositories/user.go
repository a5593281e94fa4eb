package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/inventory/services/user/domain/models"
)

// UserRepository persists accounts. Emails are unique case-insensitively.
type UserRepository interface {
	// Create returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, u *models.User) error
	// GetByEmail returns ErrUserNotFound when no account matches.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID returns ErrUserNotFound when no account matches.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}
