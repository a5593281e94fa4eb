package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/inventory/pkg/database"
	userdomain "github.com/ghuser/inventory/services/user/domain"
	"github.com/ghuser/inventory/services/user/domain/models"
	"github.com/ghuser/inventory/services/user/infrastructure/persistence/postgres/db"
)

const pgUniqueViolation = "23505"

// UserRepository implements repositories.UserRepository against PostgreSQL.
type UserRepository struct {
	db *database.Database
}

// NewUserRepository returns a UserRepository backed by the given pool.
func NewUserRepository(database *database.Database) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts u. The unique index on lower(email) turns a concurrent
// duplicate registration into ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	err := db.New(r.db.DB()).InsertUser(ctx, db.InsertUserParams{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return userdomain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail matches email case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row, err := db.New(r.db.DB()).GetUserByEmail(ctx, email)
	if err != nil {
		return nil, mapReadError(err)
	}
	return rowToUser(row), nil
}

// GetByID returns ErrUserNotFound when no row matches.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row, err := db.New(r.db.DB()).GetUserByID(ctx, id)
	if err != nil {
		return nil, mapReadError(err)
	}
	return rowToUser(row), nil
}

func mapReadError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return userdomain.ErrUserNotFound
	}
	return fmt.Errorf("query user: %w", err)
}

func rowToUser(row db.UserUser) *models.User {
	return &models.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
