package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/inventory/pkg/cache"
	"github.com/ghuser/inventory/pkg/logger"
	productdomain "github.com/ghuser/inventory/services/product/domain"
	"github.com/ghuser/inventory/services/product/domain/models"
)

// memRepo is an in-memory ProductRepository that mirrors the Postgres query
// semantics closely enough for service tests.
type memRepo struct {
	mu         sync.Mutex
	products   map[uuid.UUID]*models.Product
	categories map[uuid.UUID]string
	writes     int
	failList   error
}

func newMemRepo(categoryNames ...string) *memRepo {
	r := &memRepo{products: map[uuid.UUID]*models.Product{}, categories: map[uuid.UUID]string{}}
	for _, n := range categoryNames {
		r.categories[uuid.New()] = n
	}
	return r
}

func (r *memRepo) categoryID(name string) uuid.UUID {
	for id, n := range r.categories {
		if n == name {
			return id
		}
	}
	return uuid.Nil
}

func (r *memRepo) resolve(p *models.Product) *models.Product {
	cp := *p
	cp.Categories = make([]models.CategoryRef, len(p.Categories))
	for i, c := range p.Categories {
		cp.Categories[i] = models.CategoryRef{ID: c.ID, Name: r.categories[c.ID]}
	}
	return &cp
}

func (r *memRepo) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	stored := r.resolve(p)
	r.products[p.ID] = stored
	return r.resolve(stored), nil
}

func (r *memRepo) GetByID(_ context.Context, ownerID, id uuid.UUID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, productdomain.ErrProductNotFound
	}
	return r.resolve(p), nil
}

func (r *memRepo) List(_ context.Context, q models.ListQuery) ([]*models.Product, int, error) {
	if r.failList != nil {
		return nil, 0, r.failList
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.Product
	for _, p := range r.products {
		if p.OwnerID != q.OwnerID {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(p.Name.String()), strings.ToLower(q.Search)) {
			continue
		}
		if len(q.CategoryIDs) > 0 && !hasAny(p, q.CategoryIDs) {
			continue
		}
		matched = append(matched, r.resolve(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	offset, limit := q.Window()
	if offset >= len(matched) {
		return []*models.Product{}, len(matched), nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], len(matched), nil
}

func hasAny(p *models.Product, ids []uuid.UUID) bool {
	for _, c := range p.Categories {
		for _, id := range ids {
			if c.ID == id {
				return true
			}
		}
	}
	return false
}

func (r *memRepo) Update(_ context.Context, p *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[p.ID]
	if !ok || existing.OwnerID != p.OwnerID {
		return nil, productdomain.ErrProductNotFound
	}
	r.writes++
	stored := r.resolve(p)
	r.products[p.ID] = stored
	return r.resolve(stored), nil
}

func (r *memRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.OwnerID != ownerID {
		return productdomain.ErrProductNotFound
	}
	r.writes++
	delete(r.products, id)
	return nil
}

func (r *memRepo) NameTaken(_ context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.OwnerID == ownerID && p.ID != excludeID && strings.EqualFold(p.Name.String(), name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) CategoriesExist(_ context.Context, ids []uuid.UUID) (bool, error) {
	for _, id := range ids {
		if _, ok := r.categories[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// fakeCache records cache traffic and can be told to fail.
type fakeCache struct {
	entries map[string]*cache.CachedProduct
	getErr  error
	deletes int
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[string]*cache.CachedProduct{}} }

func (c *fakeCache) Get(_ context.Context, ownerID, id uuid.UUID) (*cache.CachedProduct, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	e, ok := c.entries[cache.Key(ownerID, id)]
	if !ok {
		return nil, cache.ErrMiss
	}
	return e, nil
}

func (c *fakeCache) Set(_ context.Context, p *cache.CachedProduct) error {
	c.entries[cache.Key(p.OwnerID, p.ID)] = p
	return nil
}

func (c *fakeCache) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	c.deletes++
	delete(c.entries, cache.Key(ownerID, id))
	return nil
}

func newTestService(repo *memRepo, c ProductCache) *ProductService {
	return NewProductService(repo, c, nil, logger.Nop())
}

func draft(name string, cats ...uuid.UUID) models.Draft {
	return models.Draft{Name: name, Description: "A thing", Quantity: 3, CategoryIDs: cats}
}

func TestProductService_CreateResolvesCategories(t *testing.T) {
	repo := newMemRepo("Electronics", "Books & Media")
	svc := newTestService(repo, nil)
	owner := uuid.New()
	books, electronics := repo.categoryID("Books & Media"), repo.categoryID("Electronics")

	p, err := svc.Create(context.Background(), owner, draft("  Kindle ", books, electronics))
	require.NoError(t, err)

	assert.Equal(t, "Kindle", p.Name.String())
	assert.Equal(t, owner, p.OwnerID)
	require.Len(t, p.Categories, 2)
	assert.Equal(t, "Books & Media", p.Categories[0].Name, "categories keep input order")
	assert.Equal(t, "Electronics", p.Categories[1].Name)
}

func TestProductService_CreateDuplicateNameCaseInsensitive(t *testing.T) {
	repo := newMemRepo("Electronics")
	svc := newTestService(repo, nil)
	owner := uuid.New()
	cat := repo.categoryID("Electronics")
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, draft("Widget", cat))
	require.NoError(t, err)

	_, err = svc.Create(ctx, owner, draft("WIDGET", cat))
	assert.ErrorIs(t, err, productdomain.ErrDuplicateName)
	assert.Equal(t, 1, repo.writes, "no write after a duplicate")
}

func TestProductService_SameNameDifferentOwners(t *testing.T) {
	repo := newMemRepo("Electronics")
	svc := newTestService(repo, nil)
	cat := repo.categoryID("Electronics")
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), draft("Widget", cat))
	require.NoError(t, err)
	_, err = svc.Create(ctx, uuid.New(), draft("widget", cat))
	assert.NoError(t, err)
}

func TestProductService_CreateUnknownCategory(t *testing.T) {
	repo := newMemRepo("Electronics")
	svc := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), uuid.New(), draft("Widget", uuid.New()))
	assert.ErrorIs(t, err, productdomain.ErrUnknownCategory)
	assert.Zero(t, repo.writes)
}

func TestProductService_CreateInvalid(t *testing.T) {
	repo := newMemRepo("Electronics")
	svc := newTestService(repo, nil)
	cat := repo.categoryID("Electronics")

	tests := []struct {
		name string
		d    models.Draft
	}{
		{"blank name", draft("   ", cat)},
		{"long name", draft(strings.Repeat("x", models.MaxNameLength+1), cat)},
		{"no categories", draft("Widget")},
		{"negative quantity", models.Draft{Name: "Widget", Description: "d", Quantity: -1, CategoryIDs: []uuid.UUID{cat}}},
		{"blank description", models.Draft{Name: "Widget", Description: " ", Quantity: 1, CategoryIDs: []uuid.UUID{cat}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), tt.d)
			assert.ErrorIs(t, err, productdomain.ErrInvalidProduct)
		})
	}
	assert.Zero(t, repo.writes)
}

func TestProductService_ForeignOwnerIsNotFound(t *testing.T) {
	repo := newMemRepo("Electronics")
	svc := newTestService(repo, nil)
	cat := repo.categoryID("Electronics")
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()

	p, err := svc.Create(ctx, owner, draft("Widget", cat))
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, stranger, p.ID)
	assert.ErrorIs(t, err, productdomain.ErrProductNotFound)

	_, err = svc.Update(ctx, stranger, p.ID, draft("Other", cat))
	assert.ErrorIs(t, err, productdomain.ErrProductNotFound)

	err = svc.Delete(ctx, stranger, p.ID)
	assert.ErrorIs(t, err, productdomain.ErrProductNotFound)

	_, err = svc.GetByID(ctx, owner, p.ID)
	assert.NoError(t, err, "owner still sees the product")
}

func TestProductService_UpdateRenameGuard(t *testing.T) {
	repo := newMemRepo("Electronics")
	svc := newTestService(repo, nil)
	cat := repo.categoryID("Electronics")
	ctx := context.Background()
	owner := uuid.New()

	a, err := svc.Create(ctx, owner, draft("Alpha", cat))
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner, draft("Beta", cat))
	require.NoError(t, err)

	_, err = svc.Update(ctx, owner, a.ID, draft("beta", cat))
	assert.ErrorIs(t, err, productdomain.ErrDuplicateName)

	updated, err := svc.Update(ctx, owner, a.ID, draft("ALPHA", cat))
	require.NoError(t, err, "renaming to its own name in another case is allowed")
	assert.Equal(t, "ALPHA", updated.Name.String())
}

func TestProductService_PatchWithoutNameSkipsGuard(t *testing.T) {
	repo := newMemRepo("Electronics", "Clothing")
	svc := newTestService(repo, nil)
	ctx := context.Background()
	owner := uuid.New()
	electronics, clothing := repo.categoryID("Electronics"), repo.categoryID("Clothing")

	p, err := svc.Create(ctx, owner, draft("Jacket", electronics))
	require.NoError(t, err)

	qty := 42
	patched, err := svc.Patch(ctx, owner, p.ID, models.Patch{Quantity: &qty, CategoryIDs: []uuid.UUID{clothing}})
	require.NoError(t, err)

	assert.Equal(t, 42, patched.Quantity)
	assert.Equal(t, "Jacket", patched.Name.String())
	assert.Equal(t, "A thing", patched.Description)
	require.Len(t, patched.Categories, 1)
	assert.Equal(t, "Clothing", patched.Categories[0].Name)
}

func TestProductService_PatchNameConflict(t *testing.T) {
	repo := newMemRepo("Electronics")
	svc := newTestService(repo, nil)
	cat := repo.categoryID("Electronics")
	ctx := context.Background()
	owner := uuid.New()

	p, err := svc.Create(ctx, owner, draft("Alpha", cat))
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner, draft("Beta", cat))
	require.NoError(t, err)

	name := "BETA"
	_, err = svc.Patch(ctx, owner, p.ID, models.Patch{Name: &name})
	assert.ErrorIs(t, err, productdomain.ErrDuplicateName)

	got, err := svc.GetByID(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name.String())
}

func TestProductService_ListFiltersAndPages(t *testing.T) {
	repo := newMemRepo("Electronics", "Clothing")
	svc := newTestService(repo, nil)
	ctx := context.Background()
	owner := uuid.New()
	electronics, clothing := repo.categoryID("Electronics"), repo.categoryID("Clothing")

	names := []string{"Phone", "Phone Case", "Shirt", "Headphones", "Socks"}
	cats := []uuid.UUID{electronics, electronics, clothing, electronics, clothing}
	for i, n := range names {
		p, err := svc.Create(ctx, owner, draft(n, cats[i]))
		require.NoError(t, err)
		repo.products[p.ID].CreatedAt = time.Unix(int64(1000+i), 0)
	}
	_, err := svc.Create(ctx, uuid.New(), draft("Phone", electronics))
	require.NoError(t, err)

	page, err := svc.List(ctx, models.ListQuery{OwnerID: owner, Page: 1, Limit: 10, Search: "PHONE"})
	require.NoError(t, err)
	require.Equal(t, 3, page.TotalCount)
	assert.Equal(t, "Headphones", page.Items[0].Name.String(), "newest first")
	assert.False(t, page.HasMore)

	page, err = svc.List(ctx, models.ListQuery{OwnerID: owner, Page: 1, Limit: 2, CategoryIDs: []uuid.UUID{clothing}})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)

	page, err = svc.List(ctx, models.ListQuery{OwnerID: owner, Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)

	page, err = svc.List(ctx, models.ListQuery{OwnerID: owner, Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.False(t, page.HasMore)
}

func TestProductService_ListError(t *testing.T) {
	repo := newMemRepo()
	repo.failList = errors.New("connection reset")
	svc := newTestService(repo, nil)

	_, err := svc.List(context.Background(), models.ListQuery{OwnerID: uuid.New(), Page: 1, Limit: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list products")
}

func TestProductService_GetReadsThroughCache(t *testing.T) {
	repo := newMemRepo("Electronics")
	c := newFakeCache()
	svc := newTestService(repo, c)
	ctx := context.Background()
	owner := uuid.New()

	p, err := svc.Create(ctx, owner, draft("Widget", repo.categoryID("Electronics")))
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, owner, p.ID)
	require.NoError(t, err)
	require.Contains(t, c.entries, cache.Key(owner, p.ID), "miss populates the cache")

	delete(repo.products, p.ID)
	got, err := svc.GetByID(ctx, owner, p.ID)
	require.NoError(t, err, "second read is served from cache")
	assert.Equal(t, "Widget", got.Name.String())
	assert.Equal(t, "Electronics", got.Categories[0].Name)
}

func TestProductService_CacheFailureFallsBack(t *testing.T) {
	repo := newMemRepo("Electronics")
	c := newFakeCache()
	c.getErr = errors.New("redis down")
	svc := newTestService(repo, c)
	ctx := context.Background()
	owner := uuid.New()

	p, err := svc.Create(ctx, owner, draft("Widget", repo.categoryID("Electronics")))
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestProductService_WritesEvictCache(t *testing.T) {
	repo := newMemRepo("Electronics")
	c := newFakeCache()
	svc := newTestService(repo, c)
	ctx := context.Background()
	owner := uuid.New()
	cat := repo.categoryID("Electronics")

	p, err := svc.Create(ctx, owner, draft("Widget", cat))
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, owner, p.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, owner, p.ID, draft("Gadget", cat))
	require.NoError(t, err)
	assert.NotContains(t, c.entries, cache.Key(owner, p.ID))

	require.NoError(t, svc.Delete(ctx, owner, p.ID))
	assert.Equal(t, 2, c.deletes)

	_, err = svc.GetByID(ctx, owner, p.ID)
	assert.ErrorIs(t, err, productdomain.ErrProductNotFound)
}

func TestCachedRoundTrip(t *testing.T) {
	p := &models.Product{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Name:        "Widget",
		Description: "d",
		Quantity:    7,
		Categories:  []models.CategoryRef{{ID: uuid.New(), Name: "Electronics"}},
		CreatedAt:   time.Unix(100, 0).UTC(),
		UpdatedAt:   time.Unix(200, 0).UTC(),
	}
	assert.Equal(t, p, FromCached(ToCached(p)))
}
