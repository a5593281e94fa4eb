package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/inventory/pkg/database/dbtest"
	userdomain "github.com/ghuser/inventory/services/user/domain"
	"github.com/ghuser/inventory/services/user/domain/models"
)

func TestUserRepository_EmailIsCaseInsensitive(t *testing.T) {
	repo := NewUserRepository(dbtest.Start(t))
	ctx := context.Background()

	u, err := models.NewUser("Ada", "ada@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	dup, err := models.NewUser("Imposter", "ada@example.com", "hash")
	require.NoError(t, err)
	dup.Email = "Ada@Example.com"
	assert.ErrorIs(t, repo.Create(ctx, dup), userdomain.ErrEmailTaken)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository(dbtest.Start(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
	_, err = repo.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
}
