package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/inventory/pkg/database"
	categorydomain "github.com/ghuser/inventory/services/category/domain"
	"github.com/ghuser/inventory/services/category/domain/models"
	"github.com/ghuser/inventory/services/category/infrastructure/persistence/postgres/db"
)

// CategoryRepository implements repositories.CategoryRepository against PostgreSQL.
type CategoryRepository struct {
	db *database.Database
}

// NewCategoryRepository returns a CategoryRepository backed by the given pool.
func NewCategoryRepository(database *database.Database) *CategoryRepository {
	return &CategoryRepository{db: database}
}

// List returns every category ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := db.New(r.db.DB()).ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	out := make([]*models.Category, len(rows))
	for i, row := range rows {
		out[i] = rowToCategory(row)
	}
	return out, nil
}

// GetByID returns ErrCategoryNotFound when no row matches.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row, err := db.New(r.db.DB()).GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, categorydomain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("query category: %w", err)
	}
	return rowToCategory(row), nil
}

// Upsert inserts c or refreshes the existing row with the same name.
func (r *CategoryRepository) Upsert(ctx context.Context, c *models.Category) (*models.Category, error) {
	row, err := db.New(r.db.DB()).UpsertCategory(ctx, db.UpsertCategoryParams{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		UpdatedAt: c.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert category %q: %w", c.Name, err)
	}
	return rowToCategory(row), nil
}

// Prune removes unreferenced categories whose name is not in keep.
func (r *CategoryRepository) Prune(ctx context.Context, keep []string) (int64, error) {
	n, err := db.New(r.db.DB()).PruneCategories(ctx, keep)
	if err != nil {
		return 0, fmt.Errorf("prune categories: %w", err)
	}
	return n, nil
}

func rowToCategory(row db.CategoryCategory) *models.Category {
	return &models.Category{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
