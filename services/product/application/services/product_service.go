package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/inventory/pkg/cache"
	"github.com/ghuser/inventory/pkg/logger"
	"github.com/ghuser/inventory/pkg/telemetry"
	productdomain "github.com/ghuser/inventory/services/product/domain"
	"github.com/ghuser/inventory/services/product/domain/models"
	"github.com/ghuser/inventory/services/product/domain/repositories"
	domainsvcs "github.com/ghuser/inventory/services/product/domain/services"
)

// ProductCache is the read-through cache the service consults on GetByID.
type ProductCache interface {
	Get(ctx context.Context, ownerID, productID uuid.UUID) (*cache.CachedProduct, error)
	Set(ctx context.Context, p *cache.CachedProduct) error
	Delete(ctx context.Context, ownerID, productID uuid.UUID) error
}

// ProductService orchestrates the owner-scoped product workflow.
// Event publishing is handled by the repository layer (outbox pattern).
type ProductService struct {
	repo    repositories.ProductRepository
	cache   ProductCache
	metrics *telemetry.ProductMetrics
	log     logger.Logger
}

// NewProductService returns a ProductService. cache and metrics may be nil.
func NewProductService(repo repositories.ProductRepository, c ProductCache, m *telemetry.ProductMetrics, log logger.Logger) *ProductService {
	return &ProductService{repo: repo, cache: c, metrics: m, log: log}
}

// Create validates d, runs the uniqueness guard, and persists a new product
// for ownerID.
func (s *ProductService) Create(ctx context.Context, ownerID uuid.UUID, d models.Draft) (*models.Product, error) {
	p, err := models.NewProduct(ownerID, d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", productdomain.ErrInvalidProduct, err)
	}
	if err := domainsvcs.ValidateForSave(p); err != nil {
		return nil, fmt.Errorf("%w: %w", productdomain.ErrInvalidProduct, err)
	}
	if err := s.guardName(ctx, ownerID, p.Name.String(), uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.guardCategories(ctx, p.CategoryIDs()); err != nil {
		return nil, err
	}

	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, s.writeFailed(ctx, "create product", err)
	}
	s.metrics.Write(ctx, "create")
	s.log.InfoContext(ctx, "product created", "product_id", stored.ID, "owner_id", ownerID)
	return stored, nil
}

// GetByID reads from the cache first and falls back to Postgres. A cache
// failure is logged and treated as a miss.
func (s *ProductService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, ownerID, id)
		switch {
		case err == nil:
			s.metrics.CacheRead(ctx, true)
			return FromCached(cached), nil
		case !errors.Is(err, cache.ErrMiss):
			s.log.WarnContext(ctx, "product cache read failed", "product_id", id, "error", err)
		}
		s.metrics.CacheRead(ctx, false)
	}

	p, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ToCached(p)); err != nil {
			s.log.WarnContext(ctx, "product cache write failed", "product_id", id, "error", err)
		}
	}
	return p, nil
}

// List returns one page of the owner's products matching q.
func (s *ProductService) List(ctx context.Context, q models.ListQuery) (*models.Page, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return models.NewPage(q, items, total), nil
}

// Update replaces every editable field of the product with d.
func (s *ProductService) Update(ctx context.Context, ownerID, id uuid.UUID, d models.Draft) (*models.Product, error) {
	name := d.Name
	return s.update(ctx, ownerID, id, &name, func(p *models.Product) error { return p.Replace(d) })
}

// Patch changes only the fields present in patch. The uniqueness guard runs
// only when patch carries a name.
func (s *ProductService) Patch(ctx context.Context, ownerID, id uuid.UUID, patch models.Patch) (*models.Product, error) {
	return s.update(ctx, ownerID, id, patch.Name, func(p *models.Product) error { return p.Apply(patch) })
}

func (s *ProductService) update(ctx context.Context, ownerID, id uuid.UUID, name *string, mutate func(*models.Product) error) (*models.Product, error) {
	p, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if err := mutate(p); err != nil {
		return nil, fmt.Errorf("%w: %w", productdomain.ErrInvalidProduct, err)
	}
	if err := domainsvcs.ValidateForSave(p); err != nil {
		return nil, fmt.Errorf("%w: %w", productdomain.ErrInvalidProduct, err)
	}
	if name != nil {
		if err := s.guardName(ctx, ownerID, p.Name.String(), p.ID); err != nil {
			return nil, err
		}
	}
	if err := s.guardCategories(ctx, p.CategoryIDs()); err != nil {
		return nil, err
	}

	stored, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, s.writeFailed(ctx, "update product", err)
	}
	s.evict(ctx, ownerID, id)
	s.metrics.Write(ctx, "update")
	s.log.InfoContext(ctx, "product updated", "product_id", id, "owner_id", ownerID)
	return stored, nil
}

// Delete removes the product. Returns ErrProductNotFound for a missing or
// foreign product.
func (s *ProductService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.evict(ctx, ownerID, id)
	s.metrics.Write(ctx, "delete")
	s.log.InfoContext(ctx, "product deleted", "product_id", id, "owner_id", ownerID)
	return nil
}

// guardName fails with ErrDuplicateName when the owner already has another
// product whose name matches case-insensitively.
func (s *ProductService) guardName(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) error {
	taken, err := s.repo.NameTaken(ctx, ownerID, name, excludeID)
	if err != nil {
		return fmt.Errorf("check product name: %w", err)
	}
	if taken {
		s.metrics.DuplicateName(ctx)
		return productdomain.ErrDuplicateName
	}
	return nil
}

func (s *ProductService) guardCategories(ctx context.Context, ids []uuid.UUID) error {
	ok, err := s.repo.CategoriesExist(ctx, ids)
	if err != nil {
		return fmt.Errorf("check categories: %w", err)
	}
	if !ok {
		return productdomain.ErrUnknownCategory
	}
	return nil
}

// writeFailed wraps a repository write error. A duplicate that slipped past
// the guard is counted like one caught by it.
func (s *ProductService) writeFailed(ctx context.Context, op string, err error) error {
	if errors.Is(err, productdomain.ErrDuplicateName) {
		s.metrics.DuplicateName(ctx)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *ProductService) evict(ctx context.Context, ownerID, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, ownerID, id); err != nil {
		s.log.WarnContext(ctx, "product cache evict failed", "product_id", id, "error", err)
	}
}

// ToCached converts a product into its cache representation.
func ToCached(p *models.Product) *cache.CachedProduct {
	cats := make([]cache.CachedCategory, len(p.Categories))
	for i, c := range p.Categories {
		cats[i] = cache.CachedCategory{ID: c.ID, Name: c.Name}
	}
	return &cache.CachedProduct{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name.String(),
		Description: p.Description,
		Quantity:    p.Quantity,
		Categories:  cats,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromCached converts a cache entry back into a product.
func FromCached(c *cache.CachedProduct) *models.Product {
	cats := make([]models.CategoryRef, len(c.Categories))
	for i, cc := range c.Categories {
		cats[i] = models.CategoryRef{ID: cc.ID, Name: cc.Name}
	}
	return &models.Product{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Name:        models.ProductName(c.Name),
		Description: c.Description,
		Quantity:    c.Quantity,
		Categories:  cats,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
