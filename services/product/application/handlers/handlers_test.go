package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/inventory/pkg/auth"
	"github.com/ghuser/inventory/pkg/logger"
	appsvcs "github.com/ghuser/inventory/services/product/application/services"
	productdomain "github.com/ghuser/inventory/services/product/domain"
	"github.com/ghuser/inventory/services/product/domain/models"
)

// stubRepo is a minimal in-memory ProductRepository.
type stubRepo struct {
	mu         sync.Mutex
	products   []*models.Product
	categories map[uuid.UUID]string
	clock      time.Time
}

func (s *stubRepo) resolve(p *models.Product) *models.Product {
	cp := *p
	cp.Categories = make([]models.CategoryRef, len(p.Categories))
	for i, c := range p.Categories {
		cp.Categories[i] = models.CategoryRef{ID: c.ID, Name: s.categories[c.ID]}
	}
	return &cp
}

func (s *stubRepo) find(ownerID, id uuid.UUID) int {
	for i, p := range s.products {
		if p.ID == id && p.OwnerID == ownerID {
			return i
		}
	}
	return -1
}

func (s *stubRepo) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(time.Second)
	stored := s.resolve(p)
	stored.CreatedAt = s.clock
	s.products = append(s.products, stored)
	return s.resolve(stored), nil
}

func (s *stubRepo) GetByID(_ context.Context, ownerID, id uuid.UUID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(ownerID, id)
	if i < 0 {
		return nil, productdomain.ErrProductNotFound
	}
	return s.resolve(s.products[i]), nil
}

func (s *stubRepo) List(_ context.Context, q models.ListQuery) ([]*models.Product, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Product
	for _, p := range s.products {
		if p.OwnerID != q.OwnerID {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(p.Name.String()), strings.ToLower(q.Search)) {
			continue
		}
		if len(q.CategoryIDs) > 0 {
			match := false
			for _, c := range p.Categories {
				for _, id := range q.CategoryIDs {
					match = match || c.ID == id
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, s.resolve(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	offset, limit := q.Window()
	if offset >= len(out) {
		return nil, len(out), nil
	}
	end := min(offset+limit, len(out))
	return out[offset:end], len(out), nil
}

func (s *stubRepo) Update(_ context.Context, p *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(p.OwnerID, p.ID)
	if i < 0 {
		return nil, productdomain.ErrProductNotFound
	}
	s.products[i] = s.resolve(p)
	return s.resolve(p), nil
}

func (s *stubRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(ownerID, id)
	if i < 0 {
		return productdomain.ErrProductNotFound
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return nil
}

func (s *stubRepo) NameTaken(_ context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.OwnerID == ownerID && p.ID != excludeID && strings.EqualFold(p.Name.String(), name) {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRepo) CategoriesExist(_ context.Context, ids []uuid.UUID) (bool, error) {
	for _, id := range ids {
		if _, ok := s.categories[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

var (
	catElectronics = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	catClothing    = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

type fixture struct {
	router http.Handler
	repo   *stubRepo
}

// newFixture routes product endpoints the way ProductRoutes does, with the
// acting user taken from the X-Test-User header instead of a token.
func newFixture() *fixture {
	repo := &stubRepo{
		categories: map[uuid.UUID]string{catElectronics: "Electronics", catClothing: "Clothing"},
		clock:      time.Unix(1_700_000_000, 0).UTC(),
	}
	svcs := &appsvcs.Services{Product: appsvcs.NewProductService(repo, nil, nil, logger.Nop())}
	log := logger.Nop()

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if id, err := uuid.Parse(req.Header.Get("X-Test-User")); err == nil {
				req = req.WithContext(auth.WithUserID(req.Context(), id))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/products", func(r chi.Router) {
		r.Get("/", NewListProductsHandler(svcs, log).Execute)
		r.Post("/", NewPostProductHandler(svcs, log).Execute)
		r.Get("/{id}", NewGetProductHandler(svcs, log).Execute)
		r.Put("/{id}", NewPutProductHandler(svcs, log).Execute)
		r.Patch("/{id}", NewPatchProductHandler(svcs, log).Execute)
		r.Delete("/{id}", NewDeleteProductHandler(svcs, log).Execute)
	})
	return &fixture{router: r, repo: repo}
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		CurrentPage int  `json:"currentPage"`
		TotalPages  int  `json:"totalPages"`
		TotalCount  int  `json:"totalCount"`
		HasMore     bool `json:"hasMore"`
	} `json:"pagination"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (f *fixture) do(t *testing.T, user uuid.UUID, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if user != uuid.Nil {
		req.Header.Set("X-Test-User", user.String())
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), "body: %s", rr.Body.String())
	return rr.Code, env
}

func productBody(name string, cats ...uuid.UUID) map[string]any {
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = c.String()
	}
	return map[string]any{"name": name, "description": "d", "quantity": 5, "categories": ids}
}

func decodeProduct(t *testing.T, env envelope) ProductResponse {
	t.Helper()
	var p ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestCreate_DuplicateScopedToOwner(t *testing.T) {
	f := newFixture()
	ownerA, ownerB := uuid.New(), uuid.New()

	code, env := f.do(t, ownerA, http.MethodPost, "/products", productBody("Widget", catElectronics))
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, MsgCreated, env.Message)
	p := decodeProduct(t, env)
	assert.Equal(t, []CategoryRefResponse{{ID: catElectronics, Name: "Electronics"}}, p.Categories)
	assert.Equal(t, ownerA, p.User)

	code, env = f.do(t, ownerA, http.MethodPost, "/products", productBody("widget", catElectronics))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Product with this name already exists", env.Message)

	code, _ = f.do(t, ownerB, http.MethodPost, "/products", productBody("Widget", catElectronics))
	assert.Equal(t, http.StatusCreated, code)
}

func TestCreate_ValidationReportsEveryField(t *testing.T) {
	f := newFixture()
	body := map[string]any{
		"name":        "   ",
		"description": strings.Repeat("x", 501),
		"quantity":    -3,
		"categories":  []string{"not-an-id"},
	}

	code, env := f.do(t, uuid.New(), http.MethodPost, "/products", body)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Message)

	got := map[string]string{}
	for _, e := range env.Errors {
		got[e.Field] = e.Message
	}
	assert.Equal(t, map[string]string{
		"name":        "Product name is required",
		"description": "Description must not exceed 500 characters",
		"quantity":    "Quantity must be a positive number",
		"categories":  "Invalid category ID format",
	}, got)
}

func TestCreate_MissingFields(t *testing.T) {
	f := newFixture()
	code, env := f.do(t, uuid.New(), http.MethodPost, "/products", map[string]any{"categories": []string{}})
	require.Equal(t, http.StatusBadRequest, code)

	got := map[string]string{}
	for _, e := range env.Errors {
		got[e.Field] = e.Message
	}
	assert.Equal(t, "Quantity is required", got["quantity"])
	assert.Equal(t, "At least one category must be selected", got["categories"])
	assert.Len(t, env.Errors, 4)
}

func TestCreate_ZeroQuantityAccepted(t *testing.T) {
	f := newFixture()
	body := productBody("Empty Shelf", catClothing)
	body["quantity"] = 0
	code, env := f.do(t, uuid.New(), http.MethodPost, "/products", body)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 0, decodeProduct(t, env).Quantity)
}

func TestCreate_UnknownCategory(t *testing.T) {
	f := newFixture()
	code, env := f.do(t, uuid.New(), http.MethodPost, "/products", productBody("Widget", uuid.New()))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "One or more categories do not exist", env.Message)
}

func TestCreate_Unauthenticated(t *testing.T) {
	f := newFixture()
	code, env := f.do(t, uuid.Nil, http.MethodPost, "/products", productBody("Widget", catElectronics))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
}

func TestList_PaginationWindow(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	for i := 0; i < 12; i++ {
		code, _ := f.do(t, owner, http.MethodPost, "/products", productBody(fmt.Sprintf("Item %02d", i), catElectronics))
		require.Equal(t, http.StatusCreated, code)
	}

	code, env := f.do(t, owner, http.MethodGet, "/products?limit=5&page=3", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 3, env.Pagination.CurrentPage)
	assert.Equal(t, 3, env.Pagination.TotalPages)
	assert.Equal(t, 12, env.Pagination.TotalCount)
	assert.False(t, env.Pagination.HasMore)

	var items []ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Item 01", items[0].Name)
	assert.Equal(t, "Item 00", items[1].Name)

	code, env = f.do(t, owner, http.MethodGet, "/products?limit=5&page=4", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "[]", string(env.Data))
	assert.False(t, env.Pagination.HasMore)
}

func TestList_DefaultsAndClamping(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	code, env := f.do(t, owner, http.MethodGet, "/products?page=abc&limit=-2", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, env.Pagination.CurrentPage)
	assert.Equal(t, 0, env.Pagination.TotalPages)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestList_SearchAndCategoryUnion(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	for _, b := range []map[string]any{
		productBody("Red Shirt", catClothing),
		productBody("Phone", catElectronics),
		productBody("Shirt Printer", catElectronics, catClothing),
	} {
		code, _ := f.do(t, owner, http.MethodPost, "/products", b)
		require.Equal(t, http.StatusCreated, code)
	}

	_, env := f.do(t, owner, http.MethodGet, "/products?search=SHIRT", nil)
	assert.Equal(t, 2, env.Pagination.TotalCount)

	_, env = f.do(t, owner, http.MethodGet, "/products?categories="+catElectronics.String(), nil)
	assert.Equal(t, 2, env.Pagination.TotalCount)

	_, env = f.do(t, owner, http.MethodGet, "/products?categories="+catElectronics.String()+","+catClothing.String(), nil)
	assert.Equal(t, 3, env.Pagination.TotalCount)

	_, env = f.do(t, uuid.New(), http.MethodGet, "/products", nil)
	assert.Equal(t, 0, env.Pagination.TotalCount, "other owners see nothing")
}

func TestList_MalformedCategoryFilter(t *testing.T) {
	f := newFixture()
	code, env := f.do(t, uuid.New(), http.MethodGet, "/products?categories=abc", nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "categories", env.Errors[0].Field)
}

func TestGet_NotFoundCases(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	_, env := f.do(t, owner, http.MethodPost, "/products", productBody("Widget", catElectronics))
	id := decodeProduct(t, env).ID

	for _, tt := range []struct {
		name string
		user uuid.UUID
		path string
	}{
		{"malformed id", owner, "/products/nope"},
		{"missing id", owner, "/products/" + uuid.NewString()},
		{"other owner", uuid.New(), "/products/" + id.String()},
	} {
		t.Run(tt.name, func(t *testing.T) {
			code, env := f.do(t, tt.user, http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusNotFound, code)
			assert.Equal(t, "Product not found", env.Message)
		})
	}

	code, env := f.do(t, owner, http.MethodGet, "/products/"+id.String(), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Widget", decodeProduct(t, env).Name)
}

func TestPut_ReplacesAndGuardsRename(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	_, env := f.do(t, owner, http.MethodPost, "/products", productBody("Alpha", catElectronics))
	alpha := decodeProduct(t, env).ID
	f.do(t, owner, http.MethodPost, "/products", productBody("Beta", catElectronics))

	code, env := f.do(t, owner, http.MethodPut, "/products/"+alpha.String(), productBody("BETA", catClothing))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Product with this name already exists", env.Message)

	code, env = f.do(t, owner, http.MethodPut, "/products/"+alpha.String(), productBody("Alpha 2", catClothing))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, MsgUpdated, env.Message)
	p := decodeProduct(t, env)
	assert.Equal(t, "Alpha 2", p.Name)
	assert.Equal(t, []CategoryRefResponse{{ID: catClothing, Name: "Clothing"}}, p.Categories)

	code, _ = f.do(t, uuid.New(), http.MethodPut, "/products/"+alpha.String(), productBody("Mine", catClothing))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPatch_OnlySuppliedFields(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	_, env := f.do(t, owner, http.MethodPost, "/products", productBody("Alpha", catElectronics))
	id := decodeProduct(t, env).ID

	code, env := f.do(t, owner, http.MethodPatch, "/products/"+id.String(), map[string]any{"quantity": 99})
	require.Equal(t, http.StatusOK, code)
	p := decodeProduct(t, env)
	assert.Equal(t, 99, p.Quantity)
	assert.Equal(t, "Alpha", p.Name)
	assert.Equal(t, "d", p.Description)

	code, env = f.do(t, owner, http.MethodPatch, "/products/"+id.String(), map[string]any{"name": "  ", "categories": []string{}})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Len(t, env.Errors, 2)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	_, env := f.do(t, owner, http.MethodPost, "/products", productBody("Alpha", catElectronics))
	id := decodeProduct(t, env).ID

	code, _ := f.do(t, uuid.New(), http.MethodDelete, "/products/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = f.do(t, owner, http.MethodDelete, "/products/"+id.String(), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, MsgDeleted, env.Message)

	code, _ = f.do(t, owner, http.MethodGet, "/products/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreate_QuantityBeyondColumnRange(t *testing.T) {
	f := newFixture()
	owner := uuid.New()

	body := productBody("Bulk Bolts", catElectronics)
	body["quantity"] = json.Number("4294967301")
	code, env := f.do(t, owner, http.MethodPost, "/products", body)
	require.Equal(t, http.StatusBadRequest, code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "quantity", env.Errors[0].Field)
	assert.Equal(t, "Quantity must not exceed 2147483647", env.Errors[0].Message)
	assert.Empty(t, f.repo.products, "nothing stored")

	body["quantity"] = json.Number("2147483647")
	code, env = f.do(t, owner, http.MethodPost, "/products", body)
	require.Equal(t, http.StatusCreated, code)
	id := decodeProduct(t, env).ID

	code, env = f.do(t, owner, http.MethodGet, "/products/"+id.String(), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.MaxQuantity, decodeProduct(t, env).Quantity)

	code, env = f.do(t, owner, http.MethodPatch, "/products/"+id.String(), map[string]any{"quantity": json.Number("2147483648")})
	require.Equal(t, http.StatusBadRequest, code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "quantity", env.Errors[0].Field)
}

func TestCreate_NilCategoryIsFieldError(t *testing.T) {
	f := newFixture()
	owner := uuid.New()

	code, env := f.do(t, owner, http.MethodPost, "/products", productBody("Widget", uuid.Nil))
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Message)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "categories", env.Errors[0].Field)
	assert.Equal(t, "Invalid category ID format", env.Errors[0].Message)

	_, env = f.do(t, owner, http.MethodPost, "/products", productBody("Widget", catElectronics))
	id := decodeProduct(t, env).ID
	code, env = f.do(t, owner, http.MethodPatch, "/products/"+id.String(), map[string]any{
		"categories": []string{catClothing.String(), uuid.Nil.String()},
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "categories", env.Errors[0].Field)
}

func TestList_PageFarPastTheEnd(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	for i := 0; i < 3; i++ {
		code, _ := f.do(t, owner, http.MethodPost, "/products", productBody(fmt.Sprintf("Item %d", i), catElectronics))
		require.Equal(t, http.StatusCreated, code)
	}

	for _, page := range []string{"4611686018427387905", "9223372036854775807"} {
		code, env := f.do(t, owner, http.MethodGet, "/products?limit=4&page="+page, nil)
		require.Equal(t, http.StatusOK, code, "page %s", page)
		assert.JSONEq(t, "[]", string(env.Data), "page %s", page)
		assert.Equal(t, 3, env.Pagination.TotalCount)
		assert.Equal(t, 1, env.Pagination.TotalPages)
		assert.False(t, env.Pagination.HasMore)
	}
}

func TestList_WhitespaceSearchIsAFilter(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	for _, name := range []string{"Red Shirt", "Phone"} {
		code, _ := f.do(t, owner, http.MethodPost, "/products", productBody(name, catClothing))
		require.Equal(t, http.StatusCreated, code)
	}

	_, env := f.do(t, owner, http.MethodGet, "/products?search=%20", nil)
	assert.Equal(t, 1, env.Pagination.TotalCount)

	_, env = f.do(t, owner, http.MethodGet, "/products?search=", nil)
	assert.Equal(t, 2, env.Pagination.TotalCount)
}
