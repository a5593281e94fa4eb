package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/inventory/services/category/domain/models"
)

// CategoryRepository is the persistence interface for categories.
type CategoryRepository interface {
	// List returns every category ordered by name ascending.
	List(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	// Upsert inserts c, or refreshes the slug of an existing category with the
	// same name. It returns the stored row.
	Upsert(ctx context.Context, c *models.Category) (*models.Category, error)
	// Prune deletes categories whose name is not in keep and which no product
	// references. It returns the number removed.
	Prune(ctx context.Context, keep []string) (int64, error)
}
