// Package client is a typed Go client for the inventory API. Sign-in state
// lives in an explicit Session that callers create, load, and share.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// User is an account as returned by the API.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CategoryRef is a category embedded in a product.
type CategoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Product is a product as returned by the API.
type Product struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Quantity    int           `json:"quantity"`
	Categories  []CategoryRef `json:"categories"`
	User        string        `json:"user"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Category is a category as returned by the API.
type Category struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Pagination is the page metadata of a product listing.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasMore     bool `json:"hasMore"`
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products   []Product
	Pagination Pagination
}

// ProductInput is the body of a create or full update.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	Categories  []string `json:"categories"`
}

// ProductPatch is the body of a partial update. Nil fields are not sent.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// ListOptions selects a page of products. Zero values use the server defaults.
type ListOptions struct {
	Page       int
	Limit      int
	Search     string
	Categories []string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if s := strings.TrimSpace(o.Search); s != "" {
		q.Set("search", s)
	}
	if len(o.Categories) > 0 {
		q.Set("categories", strings.Join(o.Categories, ","))
	}
	return q
}

// Client calls the inventory API at a base URL such as
// "http://localhost:8080/api".
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default traced HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a Client that authenticates with session. A nil session
// creates an in-memory one.
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession("")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   20 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the client's sign-in state.
func (c *Client) Session() *Session {
	return c.session
}

type authResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Register creates an account and signs the session in.
func (c *Client) Register(ctx context.Context, name, email, password string) (User, error) {
	return c.signIn(ctx, "/auth/register", map[string]string{"name": name, "email": email, "password": password})
}

// Login signs the session in.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	return c.signIn(ctx, "/auth/login", map[string]string{"email": email, "password": password})
}

func (c *Client) signIn(ctx context.Context, path string, body any) (User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return User{}, err
	}
	if err := c.session.Set(resp.Token, resp.User); err != nil {
		return User{}, err
	}
	return resp.User, nil
}

// Logout ends the server-side session and clears the local one. The local
// session is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	callErr := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if err := c.session.Clear(); err != nil {
		return err
	}
	var apiErr *APIError
	if errors.As(callErr, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return nil
	}
	return callErr
}

// Me returns the signed-in user as the server sees it.
func (c *Client) Me(ctx context.Context) (User, error) {
	return data[User](ctx, c, http.MethodGet, "/auth/me", nil)
}

// ListProducts returns one page of the signed-in user's products.
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) (*ProductPage, error) {
	var env struct {
		Data       []Product  `json:"data"`
		Pagination Pagination `json:"pagination"`
	}
	path := "/products"
	if q := opts.query().Encode(); q != "" {
		path += "?" + q
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return &ProductPage{Products: env.Data, Pagination: env.Pagination}, nil
}

// GetProduct returns one product.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	return data[Product](ctx, c, http.MethodGet, "/products/"+url.PathEscape(id), nil)
}

// CreateProduct creates a product owned by the signed-in user.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	return data[Product](ctx, c, http.MethodPost, "/products", in)
}

// UpdateProduct replaces every editable field of a product.
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (Product, error) {
	return data[Product](ctx, c, http.MethodPut, "/products/"+url.PathEscape(id), in)
}

// PatchProduct changes only the fields set in patch.
func (c *Client) PatchProduct(ctx context.Context, id string, patch ProductPatch) (Product, error) {
	return data[Product](ctx, c, http.MethodPatch, "/products/"+url.PathEscape(id), patch)
}

// DeleteProduct deletes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

// ListCategories returns every category sorted by name.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	return data[[]Category](ctx, c, http.MethodGet, "/categories", nil)
}

// GetCategory returns one category.
func (c *Client) GetCategory(ctx context.Context, id string) (Category, error) {
	return data[Category](ctx, c, http.MethodGet, "/categories/"+url.PathEscape(id), nil)
}

// data sends a request and returns the "data" member of the reply.
func data[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var env struct {
		Data T `json:"data"`
	}
	err := c.do(ctx, method, path, body, &env)
	return env.Data, err
}

// do sends one request. A non-2xx reply becomes an *APIError. A 401 clears
// the session, since the stored token is no longer accepted.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		_ = json.Unmarshal(raw, &env)
		if resp.StatusCode == http.StatusUnauthorized && c.session.Token() != "" {
			_ = c.session.Clear()
		}
		return newAPIError(resp.StatusCode, env)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
