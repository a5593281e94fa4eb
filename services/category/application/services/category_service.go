package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/inventory/pkg/logger"
	"github.com/ghuser/inventory/services/category/domain/models"
	"github.com/ghuser/inventory/services/category/domain/repositories"
)

// DefaultCategories is the catalog installed by the seeder.
var DefaultCategories = []string{
	"Electronics",
	"Clothing",
	"Food & Beverages",
	"Home & Garden",
	"Sports & Outdoors",
	"Books & Media",
	"Toys & Games",
	"Health & Beauty",
	"Automotive",
	"Office Supplies",
}

// CategoryService serves the read-only catalog and seeds it.
type CategoryService struct {
	repo repositories.CategoryRepository
	log  logger.Logger
}

// NewCategoryService returns a CategoryService over repo.
func NewCategoryService(repo repositories.CategoryRepository, log logger.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

// List returns all categories sorted by name.
func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Get returns one category or ErrCategoryNotFound.
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// Seed makes names the category set: each name is inserted or refreshed, and
// categories outside the set are removed unless a product still uses them.
func (s *CategoryService) Seed(ctx context.Context, names []string) ([]*models.Category, error) {
	out := make([]*models.Category, 0, len(names))
	keep := make([]string, 0, len(names))
	for _, name := range names {
		c, err := models.NewCategory(name)
		if err != nil {
			return nil, fmt.Errorf("seed category %q: %w", name, err)
		}
		stored, err := s.repo.Upsert(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, stored)
		keep = append(keep, stored.Name)
	}

	removed, err := s.repo.Prune(ctx, keep)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "categories seeded", "count", len(out), "removed", removed)
	return out, nil
}
