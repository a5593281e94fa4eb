package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/inventory/services/product/domain/models"
)

// ProductRepository is the persistence interface for the Product aggregate.
// Every method that takes an ownerID only sees that owner's products.
// Returned products carry resolved category names.
type ProductRepository interface {
	// Create inserts p and publishes product.created in the same transaction.
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error)

	// List returns one newest-first page for q and the total match count.
	List(ctx context.Context, q models.ListQuery) ([]*models.Product, int, error)

	// Update persists p and publishes product.updated.
	Update(ctx context.Context, p *models.Product) (*models.Product, error)

	// Delete removes the product and publishes product.deleted.
	// Returns ErrProductNotFound when nothing matched.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// NameTaken reports whether ownerID has another product whose name equals
	// name case-insensitively. excludeID (uuid.Nil for none) is ignored.
	NameTaken(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)

	// CategoriesExist reports whether every ID names a stored category.
	CategoriesExist(ctx context.Context, ids []uuid.UUID) (bool, error)
}
